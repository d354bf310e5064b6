package services

import (
	"context"
	"sync"

	"github.com/stwalsh4118/atlas/portal/internal/fallback"
	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/normalize"
)

// ParcelDetailView is the rendered state of a parcel page.
type ParcelDetailView struct {
	State  FetchState           `json:"state"`
	Notice string               `json:"notice,omitempty"`
	Parcel *models.ParcelDetail `json:"parcel"`
}

// ParcelDetailPage loads a single parcel record.
type ParcelDetailPage struct {
	loader *Loader

	mu     sync.Mutex
	result Result[*models.ParcelDetail]
}

// NewParcelDetailPage creates a parcel page controller.
func NewParcelDetailPage(loader *Loader) *ParcelDetailPage {
	return &ParcelDetailPage{
		loader: loader,
		result: Result[*models.ParcelDetail]{State: StateIdle},
	}
}

// Load fetches /parcel/{id}. On failure the sample record for id is shown.
func (p *ParcelDetailPage) Load(ctx context.Context, id string) ParcelDetailView {
	p.mu.Lock()
	p.result.State = StateLoading
	p.mu.Unlock()

	result := LoadParcelDetail(ctx, p.loader, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = result
	return ParcelDetailView{State: result.State, Notice: result.Notice, Parcel: result.Value}
}

// LoadParcelDetail fetches and normalizes one parcel with fallback.
func LoadParcelDetail(ctx context.Context, loader *Loader, id string) Result[*models.ParcelDetail] {
	return fetchWithFallback(ctx, loader, "parcel",
		func(ctx context.Context) (*models.ParcelDetail, error) {
			record, err := loader.repo.GetParcel(ctx, id)
			if err != nil {
				return nil, err
			}
			return normalize.ParcelDetail(record)
		},
		func() *models.ParcelDetail { return fallback.ParcelDetail(id) },
	)
}

// LoadPropertyPanel fetches the parcel a transfer wizard is opened for.
func LoadPropertyPanel(ctx context.Context, loader *Loader, id string) Result[*models.PropertyPanel] {
	return fetchWithFallback(ctx, loader, "property_panel",
		func(ctx context.Context) (*models.PropertyPanel, error) {
			record, err := loader.repo.GetParcel(ctx, id)
			if err != nil {
				return nil, err
			}
			detail, err := normalize.ParcelDetail(record)
			if err != nil {
				return nil, err
			}
			return &models.PropertyPanel{
				ParcelID:       detail.ID,
				Address:        detail.Address,
				Owner:          detail.Owner,
				EstimatedValue: detail.EstimatedValue,
			}, nil
		},
		func() *models.PropertyPanel { return fallback.PropertyPanel(id) },
	)
}
