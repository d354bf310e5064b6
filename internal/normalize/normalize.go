package normalize

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/repository"
)

// ErrInvalidRecord is returned when a registry record cannot become a
// well-formed view-model.
var ErrInvalidRecord = errors.New("invalid registry record")

var validate = validator.New()

// check runs the view-model struct tags and wraps any failure.
func check(kind, id string, v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidRecord, kind, id, err)
	}
	return nil
}

// ParcelSummaries maps a /parcels response. One bad element fails the list.
func ParcelSummaries(records []repository.ParcelRecord) ([]models.ParcelSummary, error) {
	out := make([]models.ParcelSummary, 0, len(records))
	for i := range records {
		summary, err := ParcelSummary(records[i])
		if err != nil {
			return nil, fmt.Errorf("parcel %d: %w", i, err)
		}
		out = append(out, summary)
	}
	return out, nil
}

// ParcelSummary maps one search row.
func ParcelSummary(r repository.ParcelRecord) (models.ParcelSummary, error) {
	status, err := models.ParseParcelStatus(r.Status)
	if err != nil {
		return models.ParcelSummary{}, err
	}
	risk, err := models.ParseFraudRisk(r.FraudRisk)
	if err != nil {
		return models.ParcelSummary{}, err
	}

	summary := models.ParcelSummary{
		ID:             r.ID,
		Address:        Text(r.Address),
		Owner:          Text(r.OwnerName),
		Area:           Text(r.AreaDisplay),
		Status:         status,
		BlockchainHash: Text(r.BlockchainHash),
		LastUpdated:    OptionalDate(r.LastUpdated),
		FraudRisk:      risk,
		EstimatedValue: Text(r.EstimatedValue),
	}
	if err := check("parcel", r.ID, summary); err != nil {
		return models.ParcelSummary{}, err
	}
	return summary, nil
}

// ParcelDetail maps a /parcel/{id} response.
func ParcelDetail(r *repository.ParcelDetailRecord) (*models.ParcelDetail, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: empty parcel detail", ErrInvalidRecord)
	}

	status, err := models.ParseParcelStatus(r.Status)
	if err != nil {
		return nil, err
	}
	analysis, err := aiAnalysis(r.AIAnalysis)
	if err != nil {
		return nil, err
	}

	coords := models.Coordinates{Lat: Float(r.CoordinatesLat), Lng: Float(r.CoordinatesLng)}
	if err := coords.Validate(); err != nil {
		return nil, fmt.Errorf("%w: parcel %q: %v", ErrInvalidRecord, r.ID, err)
	}

	estimated := Placeholder
	if r.AIAnalysis != nil {
		estimated = analysis.MarketValue
	}

	owner := ownerInfo(r.Owner)
	detail := &models.ParcelDetail{
		ParcelSummary: models.ParcelSummary{
			ID:             r.ID,
			Address:        Text(r.Address),
			Owner:          owner.Name,
			Area:           Area(r.AreaDisplay, r.AreaSqft),
			Status:         status,
			BlockchainHash: Text(r.BlockchainHash),
			LastUpdated:    OptionalDate(r.UpdatedAt),
			FraudRisk:      analysis.FraudRisk,
			EstimatedValue: estimated,
		},
		OwnerInfo:    owner,
		Coordinates:  coords,
		Zoning:       Text(r.Zoning),
		Transactions: transactions(r.Transactions),
		AIAnalysis:   analysis,
		Encumbrances: encumbrances(r.Encumbrances),
		Documents:    documents(r.Documents),
	}
	if err := check("parcel", r.ID, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func ownerInfo(u *repository.UserRecord) models.OwnerInfo {
	if u == nil {
		return models.OwnerInfo{Name: Placeholder, IDNumber: Placeholder, Contact: Placeholder, Since: Placeholder}
	}
	return models.OwnerInfo{
		Name:     Text(u.Name),
		IDNumber: Text(u.IDNumber),
		Contact:  Text(u.Email),
		Since:    OptionalDate(u.CreatedAt),
	}
}

// aiAnalysis maps the valuation block. A missing block becomes a low-risk
// zero-confidence placeholder.
func aiAnalysis(a *repository.AIAnalysisRecord) (models.AIAnalysis, error) {
	if a == nil {
		return models.AIAnalysis{
			FraudRisk:     models.FraudRiskLow,
			MarketValue:   UnknownMarketValue,
			LastValuation: Placeholder,
			PriceHistory:  []models.PricePoint{},
		}, nil
	}

	risk, err := models.ParseFraudRisk(a.FraudRisk)
	if err != nil {
		return models.AIAnalysis{}, err
	}

	history := make([]models.PricePoint, 0, len(a.PriceHistory))
	for _, p := range a.PriceHistory {
		history = append(history, models.PricePoint{Date: TextOr(p.Date), Value: p.Value})
	}

	return models.AIAnalysis{
		FraudRisk:     risk,
		RiskScore:     a.RiskScore,
		MarketValue:   Currency(a.MarketValue),
		Confidence:    a.Confidence,
		LastValuation: OptionalDate(a.LastValuation),
		PriceHistory:  history,
	}, nil
}

func transactions(records []repository.LedgerEntryRecord) []models.TransactionRecord {
	out := make([]models.TransactionRecord, 0, len(records))
	for _, tx := range records {
		out = append(out, models.TransactionRecord{
			Date: OptionalDate(tx.TransactionDate),
			Type: TextOr(tx.Type),
			From: Text(tx.FromEntity),
			To:   Text(tx.ToEntity),
			Hash: Text(tx.BlockchainHash),
		})
	}
	return out
}

func encumbrances(records []repository.EncumbranceRecord) []models.Encumbrance {
	out := make([]models.Encumbrance, 0, len(records))
	for _, e := range records {
		out = append(out, models.Encumbrance{
			Type:        TextOr(e.Type),
			Description: Text(e.Description),
			Amount:      OptionalCurrency(e.Amount),
			IsActive:    e.IsActive != nil && *e.IsActive,
		})
	}
	return out
}

func documents(records []repository.DocumentRecord) []models.DocumentRef {
	out := make([]models.DocumentRef, 0, len(records))
	for _, d := range records {
		out = append(out, models.DocumentRef{
			Name: TextOr(d.Name),
			Type: DocumentType(d.Type),
			Size: FileSize(d.FileSize),
			Hash: Text(d.FileHash),
		})
	}
	return out
}

// Transfers maps a /transfers response.
func Transfers(records []repository.TransferRecord) ([]models.TransferRecord, error) {
	out := make([]models.TransferRecord, 0, len(records))
	for _, r := range records {
		status, err := models.ParseTransferStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("transfer %q: %w", r.ID, err)
		}

		transfer := models.TransferRecord{
			ID:             r.ID,
			ParcelID:       Placeholder,
			Property:       Placeholder,
			From:           userName(r.FromUser),
			To:             userName(r.ToUser),
			Amount:         OptionalCurrency(r.Amount),
			Date:           OptionalDate(r.CreatedAt),
			Status:         status,
			BlockchainHash: Text(r.BlockchainHash),
		}
		if r.Parcel != nil {
			transfer.ParcelID = Text(r.Parcel.ID)
			transfer.Property = Text(r.Parcel.Address)
		}
		if err := check("transfer", r.ID, transfer); err != nil {
			return nil, err
		}
		out = append(out, transfer)
	}
	return out, nil
}

// FraudAlerts maps a /fraud-alerts response.
func FraudAlerts(records []repository.FraudAlertRecord) ([]models.FraudAlert, error) {
	out := make([]models.FraudAlert, 0, len(records))
	for _, r := range records {
		risk, err := models.ParseFraudRisk(r.RiskLevel)
		if err != nil {
			return nil, fmt.Errorf("fraud alert %q: %w", r.ID, err)
		}

		alert := models.FraudAlert{
			ID:       r.ID,
			Property: Placeholder,
			Owner:    Placeholder,
			Risk:     risk,
			Reason:   Text(r.Reason),
			Date:     OptionalDate(r.CreatedAt),
		}
		if r.Parcel != nil {
			alert.Property = Text(r.Parcel.Address)
			alert.Owner = userName(r.Parcel.Owner)
		}
		if err := check("fraud alert", r.ID, alert); err != nil {
			return nil, err
		}
		out = append(out, alert)
	}
	return out, nil
}

// DashboardStats maps a /dashboard/stats response.
func DashboardStats(r *repository.DashboardStatsRecord) (*models.DashboardStats, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: empty dashboard stats", ErrInvalidRecord)
	}
	stats := &models.DashboardStats{
		TotalProperties:    Int(r.TotalProperties),
		PendingTransfers:   Int(r.PendingTransfers),
		FraudAlerts:        Int(r.FraudAlerts),
		ActiveUsers:        Int(r.ActiveUsers),
		MonthlyTransfers:   Int(r.MonthlyTransfers),
		TotalTransferValue: OptionalCurrency(r.TotalTransferValue),
	}
	if err := check("dashboard stats", "", stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func userName(u *repository.UserRecord) string {
	if u == nil {
		return Placeholder
	}
	return Text(u.Name)
}
