package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stwalsh4118/atlas/portal/internal/logger"
	"github.com/stwalsh4118/atlas/portal/internal/repository"
)

// MockRegistryRepository is a mock implementation of RegistryRepository for testing
type MockRegistryRepository struct {
	mock.Mock
}

func (m *MockRegistryRepository) ListParcels(ctx context.Context) ([]repository.ParcelRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]repository.ParcelRecord)
	return records, args.Error(1)
}

func (m *MockRegistryRepository) GetParcel(ctx context.Context, id string) (*repository.ParcelDetailRecord, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*repository.ParcelDetailRecord)
	return record, args.Error(1)
}

func (m *MockRegistryRepository) ListTransfers(ctx context.Context, status string) ([]repository.TransferRecord, error) {
	args := m.Called(ctx, status)
	records, _ := args.Get(0).([]repository.TransferRecord)
	return records, args.Error(1)
}

func (m *MockRegistryRepository) ListFraudAlerts(ctx context.Context, resolved bool) ([]repository.FraudAlertRecord, error) {
	args := m.Called(ctx, resolved)
	records, _ := args.Get(0).([]repository.FraudAlertRecord)
	return records, args.Error(1)
}

func (m *MockRegistryRepository) GetDashboardStats(ctx context.Context) (*repository.DashboardStatsRecord, error) {
	args := m.Called(ctx)
	record, _ := args.Get(0).(*repository.DashboardStatsRecord)
	return record, args.Error(1)
}

func (m *MockRegistryRepository) CreateTransfer(ctx context.Context, sub repository.TransferSubmission) (*repository.SubmissionReceiptRecord, error) {
	args := m.Called(ctx, sub)
	receipt, _ := args.Get(0).(*repository.SubmissionReceiptRecord)
	return receipt, args.Error(1)
}

func (m *MockRegistryRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newTestLoader(repo repository.RegistryRepository) *Loader {
	return NewLoader(repo, logger.Nop(), nil)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }
