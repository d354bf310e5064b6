package services

import (
	"context"
	"sync"

	"github.com/stwalsh4118/atlas/portal/internal/fallback"
	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/normalize"
)

// TransfersView is the rendered state of the transfers page.
type TransfersView struct {
	State     FetchState                    `json:"state"`
	Notice    string                        `json:"notice,omitempty"`
	Transfers []models.TransferRecord       `json:"transfers"`
	Counts    map[models.TransferStatus]int `json:"counts"`
}

// TransfersPage loads the full transfer history.
type TransfersPage struct {
	loader *Loader

	mu     sync.Mutex
	result Result[[]models.TransferRecord]
}

// NewTransfersPage creates a transfers page controller.
func NewTransfersPage(loader *Loader) *TransfersPage {
	return &TransfersPage{
		loader: loader,
		result: Result[[]models.TransferRecord]{State: StateIdle, Value: []models.TransferRecord{}},
	}
}

// Load fetches /transfers.
func (p *TransfersPage) Load(ctx context.Context) TransfersView {
	p.mu.Lock()
	p.result.State = StateLoading
	p.mu.Unlock()

	result := fetchWithFallback(ctx, p.loader, "transfers",
		func(ctx context.Context) ([]models.TransferRecord, error) {
			records, err := p.loader.repo.ListTransfers(ctx, "")
			if err != nil {
				return nil, err
			}
			return normalize.Transfers(records)
		},
		fallback.Transfers,
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = result
	return TransfersView{
		State:     result.State,
		Notice:    result.Notice,
		Transfers: result.Value,
		Counts:    countByStatus(result.Value),
	}
}

func countByStatus(transfers []models.TransferRecord) map[models.TransferStatus]int {
	counts := make(map[models.TransferStatus]int)
	for _, t := range transfers {
		counts[t.Status]++
	}
	return counts
}
