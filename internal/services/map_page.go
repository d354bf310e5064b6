package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/stwalsh4118/atlas/portal/internal/fallback"
	"github.com/stwalsh4118/atlas/portal/internal/models"
)

// ErrMarkerNotFound is returned when selecting a parcel that is not on the map.
var ErrMarkerNotFound = errors.New("map marker not found")

// MapView is the rendered state of the map page.
type MapView struct {
	Query    string             `json:"query"`
	Markers  []models.MapMarker `json:"markers"`
	Selected *models.MapMarker  `json:"selected"`
}

// MapPage holds the sample parcel pins and the current selection.
// It performs no network reads.
type MapPage struct {
	mu       sync.Mutex
	markers  []models.MapMarker
	query    string
	selected *models.MapMarker
}

// NewMapPage creates a map page controller.
func NewMapPage() *MapPage {
	return &MapPage{markers: fallback.MapMarkers()}
}

// Filter narrows the visible markers to names containing query.
func (p *MapPage) Filter(query string) MapView {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = query
	return p.viewLocked()
}

// Select marks the parcel with id as selected. An empty id clears it.
func (p *MapPage) Select(id string) (MapView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id == "" {
		p.selected = nil
		return p.viewLocked(), nil
	}
	for i := range p.markers {
		if p.markers[i].ID == id {
			marker := p.markers[i]
			p.selected = &marker
			return p.viewLocked(), nil
		}
	}
	return p.viewLocked(), ErrMarkerNotFound
}

func (p *MapPage) viewLocked() MapView {
	needle := strings.ToLower(strings.TrimSpace(p.query))
	visible := make([]models.MapMarker, 0, len(p.markers))
	for _, m := range p.markers {
		if needle == "" || strings.Contains(strings.ToLower(m.Name), needle) {
			visible = append(visible, m)
		}
	}
	return MapView{Query: p.query, Markers: visible, Selected: p.selected}
}
