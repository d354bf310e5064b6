package services

import "time"

// Pages builds page controllers. Each request gets its own controller so
// no state is shared between browser sessions.
type Pages struct {
	loader      *Loader
	searchDelay time.Duration
}

// NewPages creates a controller factory.
func NewPages(loader *Loader, searchDelay time.Duration) *Pages {
	return &Pages{loader: loader, searchDelay: searchDelay}
}

// Search returns a fresh search controller that debounces queries by the
// configured delay.
func (p *Pages) Search() *SearchPage { return NewSearchPage(p.loader, p.searchDelay) }

// ParcelDetail returns a controller for a single parcel's detail view.
func (p *Pages) ParcelDetail() *ParcelDetailPage { return NewParcelDetailPage(p.loader) }

// Transfers returns a controller for the transfer listing.
func (p *Pages) Transfers() *TransfersPage { return NewTransfersPage(p.loader) }

// Admin returns a controller that loads dashboard stats and fraud alerts.
func (p *Pages) Admin() *AdminPage { return NewAdminPage(p.loader) }

// Map returns a map controller. It needs no registry access.
func (p *Pages) Map() *MapPage { return NewMapPage() }

// Loader returns the shared registry loader.
func (p *Pages) Loader() *Loader { return p.loader }
