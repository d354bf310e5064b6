package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stwalsh4118/atlas/portal/internal/fallback"
	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/normalize"
)

// pendingTransferStatus is the registry filter for the admin review queue.
const pendingTransferStatus = "pending"

// AdminView is the rendered state of the admin dashboard. Each section
// loads and falls back on its own.
type AdminView struct {
	Stats            Result[*models.DashboardStats]  `json:"stats"`
	PendingTransfers Result[[]models.TransferRecord] `json:"pending_transfers"`
	FraudAlerts      Result[[]models.FraudAlert]     `json:"fraud_alerts"`
}

// AdminPage loads dashboard stats, the pending queue and open fraud alerts.
type AdminPage struct {
	loader *Loader

	mu   sync.Mutex
	view AdminView
}

// NewAdminPage creates an admin dashboard controller.
func NewAdminPage(loader *Loader) *AdminPage {
	return &AdminPage{
		loader: loader,
		view: AdminView{
			Stats:            Result[*models.DashboardStats]{State: StateIdle},
			PendingTransfers: Result[[]models.TransferRecord]{State: StateIdle, Value: []models.TransferRecord{}},
			FraudAlerts:      Result[[]models.FraudAlert]{State: StateIdle, Value: []models.FraudAlert{}},
		},
	}
}

// Load runs the three reads concurrently. A failure in one section does
// not affect the others.
func (p *AdminPage) Load(ctx context.Context) AdminView {
	p.mu.Lock()
	p.view.Stats.State = StateLoading
	p.view.PendingTransfers.State = StateLoading
	p.view.FraudAlerts.State = StateLoading
	p.mu.Unlock()

	var view AdminView
	repo := p.loader.repo

	// Sections never return errors, so the group only joins them.
	var g errgroup.Group
	g.Go(func() error {
		view.Stats = fetchWithFallback(ctx, p.loader, "dashboard_stats",
			func(ctx context.Context) (*models.DashboardStats, error) {
				record, err := repo.GetDashboardStats(ctx)
				if err != nil {
					return nil, err
				}
				return normalize.DashboardStats(record)
			},
			fallback.DashboardStats,
		)
		return nil
	})
	g.Go(func() error {
		view.PendingTransfers = fetchWithFallback(ctx, p.loader, "pending_transfers",
			func(ctx context.Context) ([]models.TransferRecord, error) {
				records, err := repo.ListTransfers(ctx, pendingTransferStatus)
				if err != nil {
					return nil, err
				}
				return normalize.Transfers(records)
			},
			fallback.PendingTransfers,
		)
		return nil
	})
	g.Go(func() error {
		view.FraudAlerts = fetchWithFallback(ctx, p.loader, "fraud_alerts",
			func(ctx context.Context) ([]models.FraudAlert, error) {
				records, err := repo.ListFraudAlerts(ctx, false)
				if err != nil {
					return nil, err
				}
				return normalize.FraudAlerts(records)
			},
			fallback.FraudAlerts,
		)
		return nil
	})
	_ = g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = view
	return view
}
