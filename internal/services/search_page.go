package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stwalsh4118/atlas/portal/internal/fallback"
	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/normalize"
)

// ErrSuperseded is returned by a search whose result was dropped because a
// newer search was issued while it waited.
var ErrSuperseded = errors.New("search superseded by a newer query")

// SearchView is the rendered state of the search page.
type SearchView struct {
	State     FetchState             `json:"state"`
	Notice    string                 `json:"notice,omitempty"`
	Query     string                 `json:"query"`
	Results   []models.ParcelSummary `json:"results"`
	Total     int                    `json:"total"`
	Empty     bool                   `json:"empty"`
	Searching bool                   `json:"searching"`
}

// SearchPage loads the parcel list once and filters it locally.
type SearchPage struct {
	loader *Loader
	delay  time.Duration

	mu        sync.Mutex
	parcels   Result[[]models.ParcelSummary]
	results   []models.ParcelSummary
	query     string
	seq       uint64
	searching bool
}

// NewSearchPage creates a search page controller. delay is the pause
// applied before each search result is shown.
func NewSearchPage(loader *Loader, delay time.Duration) *SearchPage {
	return &SearchPage{
		loader:  loader,
		delay:   delay,
		parcels: Result[[]models.ParcelSummary]{State: StateIdle, Value: []models.ParcelSummary{}},
		results: []models.ParcelSummary{},
	}
}

// Load fetches /parcels. An empty live list is a success, not a failure.
func (p *SearchPage) Load(ctx context.Context) SearchView {
	p.mu.Lock()
	p.parcels.State = StateLoading
	p.mu.Unlock()

	result := fetchWithFallback(ctx, p.loader, "parcels",
		func(ctx context.Context) ([]models.ParcelSummary, error) {
			records, err := p.loader.repo.ListParcels(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.ParcelSummaries(records)
		},
		fallback.Parcels,
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.parcels = result
	p.results = result.Value
	p.query = ""
	return p.viewLocked()
}

// Search filters the loaded parcels after the configured delay. Only the
// most recently issued search is applied; older ones return ErrSuperseded.
// Cancelling ctx abandons the wait.
func (p *SearchPage) Search(ctx context.Context, query string) (SearchView, error) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.searching = true
	p.mu.Unlock()

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			p.mu.Lock()
			if seq == p.seq {
				p.searching = false
			}
			p.mu.Unlock()
			return SearchView{}, fmt.Errorf("search cancelled: %w", ctx.Err())
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return SearchView{}, ErrSuperseded
	}
	p.query = query
	p.results = FilterParcels(p.parcels.Value, query)
	p.searching = false
	return p.viewLocked(), nil
}

// View returns the current page state.
func (p *SearchPage) View() SearchView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked()
}

func (p *SearchPage) viewLocked() SearchView {
	results := make([]models.ParcelSummary, len(p.results))
	copy(results, p.results)
	return SearchView{
		State:     p.parcels.State,
		Notice:    p.parcels.Notice,
		Query:     p.query,
		Results:   results,
		Total:     len(results),
		Empty:     len(results) == 0 && p.parcels.State != StateIdle && p.parcels.State != StateLoading,
		Searching: p.searching,
	}
}

// FilterParcels keeps parcels whose address, owner or id contains query,
// ignoring case. A blank query keeps everything.
func FilterParcels(parcels []models.ParcelSummary, query string) []models.ParcelSummary {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.ParcelSummary, 0, len(parcels))
	for _, p := range parcels {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Address), needle) ||
			strings.Contains(strings.ToLower(p.Owner), needle) ||
			strings.Contains(strings.ToLower(p.ID), needle) {
			out = append(out, p)
		}
	}
	return out
}
