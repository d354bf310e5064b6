// Package fallback holds the fixed sample records shown when the registry
// cannot be reached or answers with something unusable.
//
// Every function returns a fresh copy so callers may keep or mutate the
// result without affecting later calls.
package fallback

import "github.com/stwalsh4118/atlas/portal/internal/models"

// DetailHash is the blockchain hash carried by the fallback parcel detail.
const DetailHash = "0x1a2b3c4d5e6f7890abcdef123456789012345678"

// Parcels returns the sample search results.
func Parcels() []models.ParcelSummary {
	return []models.ParcelSummary{
		{
			ID:             "PLT-2024-001",
			Address:        "123 Oak Street, Springfield",
			Owner:          "John Smith",
			Area:           "0.25 acres",
			Status:         models.ParcelStatusVerified,
			BlockchainHash: "0x1a2b3c4d5e6f7890abcdef123456789",
			LastUpdated:    "2024-01-15",
			FraudRisk:      models.FraudRiskLow,
			EstimatedValue: "$485,000",
		},
		{
			ID:             "PLT-2024-002",
			Address:        "456 Pine Avenue, Springfield",
			Owner:          "Sarah Johnson",
			Area:           "0.18 acres",
			Status:         models.ParcelStatusPending,
			BlockchainHash: "0x9876543210fedcba0987654321",
			LastUpdated:    "2024-01-20",
			FraudRisk:      models.FraudRiskLow,
			EstimatedValue: "$392,000",
		},
		{
			ID:             "PLT-2024-003",
			Address:        "789 Maple Drive, Springfield",
			Owner:          "Mike Wilson",
			Area:           "0.33 acres",
			Status:         models.ParcelStatusDisputed,
			BlockchainHash: "0xabcdef123456789012345678",
			LastUpdated:    "2024-01-10",
			FraudRisk:      models.FraudRiskMedium,
			EstimatedValue: "$527,000",
		},
	}
}

// ParcelDetail returns the sample detail record for id.
func ParcelDetail(id string) *models.ParcelDetail {
	return &models.ParcelDetail{
		ParcelSummary: models.ParcelSummary{
			ID:             id,
			Address:        "123 Oak Street, Springfield, County, State 12345",
			Owner:          "John Smith",
			Area:           "0.25 acres (10,890 sq ft)",
			Status:         models.ParcelStatusVerified,
			BlockchainHash: DetailHash,
			LastUpdated:    "2024-01-15",
			FraudRisk:      models.FraudRiskLow,
			EstimatedValue: "$485,000",
		},
		OwnerInfo: models.OwnerInfo{
			Name:     "John Smith",
			IDNumber: "SSN: XXX-XX-1234",
			Contact:  "john.smith@email.com",
			Since:    "2019-03-15",
		},
		Coordinates: models.Coordinates{Lat: 40.7128, Lng: -74.0060},
		Zoning:      "Residential R-1",
		Transactions: []models.TransactionRecord{
			{Date: "2024-01-15", Type: "Verification Update", From: "System", To: "Verified Status", Hash: "0x1a2b3c4d..."},
			{Date: "2019-03-15", Type: "Ownership Transfer", From: "Jane Doe", To: "John Smith", Hash: "0x9876543a..."},
		},
		AIAnalysis: models.AIAnalysis{
			FraudRisk:     models.FraudRiskLow,
			RiskScore:     0.15,
			MarketValue:   "$485,000",
			Confidence:    0.92,
			LastValuation: "2024-01-10",
			PriceHistory: []models.PricePoint{
				{Date: "2024-01", Value: 485000},
				{Date: "2023-07", Value: 472000},
				{Date: "2023-01", Value: 445000},
			},
		},
		Encumbrances: []models.Encumbrance{},
		Documents: []models.DocumentRef{
			{Name: "Title Deed", Type: "PDF", Size: "2.1 MB", Hash: "0xabc123..."},
			{Name: "Survey Report", Type: "PDF", Size: "5.3 MB", Hash: "0xdef456..."},
			{Name: "Tax Assessment", Type: "PDF", Size: "1.8 MB", Hash: "0x789ghi..."},
		},
	}
}

// Transfers returns the sample transfer history.
func Transfers() []models.TransferRecord {
	return []models.TransferRecord{
		{
			ID:             "TXN-2024-001",
			ParcelID:       "PLT-2024-001",
			Property:       "123 Oak Street, Springfield",
			From:           "John Smith",
			To:             "Alice Johnson",
			Amount:         "$485,000",
			Date:           "2024-01-20",
			Status:         models.TransferStatusCompleted,
			BlockchainHash: "0x1a2b3c4d5e6f7890abcdef",
		},
		{
			ID:             "TXN-2024-002",
			ParcelID:       "PLT-2024-002",
			Property:       "456 Pine Avenue, Springfield",
			From:           "Sarah Davis",
			To:             "Bob Wilson",
			Amount:         "$392,000",
			Date:           "2024-01-19",
			Status:         models.TransferStatusPending,
			BlockchainHash: "N/A",
		},
		{
			ID:             "TXN-2024-003",
			ParcelID:       "PLT-2024-003",
			Property:       "789 Maple Drive, Springfield",
			From:           "Mike Johnson",
			To:             "Carol Brown",
			Amount:         "$527,000",
			Date:           "2024-01-18",
			Status:         models.TransferStatusRejected,
			BlockchainHash: "N/A",
		},
	}
}

// PendingTransfers returns the sample admin review queue.
func PendingTransfers() []models.TransferRecord {
	return []models.TransferRecord{
		{
			ID:             "TXN-001",
			ParcelID:       "N/A",
			Property:       "123 Oak Street",
			From:           "John Smith",
			To:             "Alice Johnson",
			Amount:         "$485,000",
			Date:           "2024-01-20",
			Status:         models.TransferStatusPendingApproval,
			BlockchainHash: "N/A",
		},
		{
			ID:             "TXN-002",
			ParcelID:       "N/A",
			Property:       "456 Pine Avenue",
			From:           "Sarah Davis",
			To:             "Bob Wilson",
			Amount:         "$392,000",
			Date:           "2024-01-19",
			Status:         models.TransferStatusDocumentReview,
			BlockchainHash: "N/A",
		},
	}
}

// FraudAlerts returns the sample unresolved alerts.
func FraudAlerts() []models.FraudAlert {
	return []models.FraudAlert{
		{
			ID:       "FRA-001",
			Property: "789 Elm Street",
			Owner:    "Mike Johnson",
			Risk:     models.FraudRiskHigh,
			Reason:   "Multiple ownership claims detected",
			Date:     "2024-01-18",
		},
		{
			ID:       "FRA-002",
			Property: "321 Birch Road",
			Owner:    "Lisa Brown",
			Risk:     models.FraudRiskMedium,
			Reason:   "Unusual transfer pattern",
			Date:     "2024-01-17",
		},
	}
}

// DashboardStats returns the sample admin counters.
func DashboardStats() *models.DashboardStats {
	return &models.DashboardStats{
		TotalProperties:    1247,
		PendingTransfers:   23,
		FraudAlerts:        4,
		ActiveUsers:        89,
		MonthlyTransfers:   156,
		TotalTransferValue: "$127,400,000",
	}
}

// MapMarkers returns the parcels pinned on the map page.
func MapMarkers() []models.MapMarker {
	return []models.MapMarker{
		{
			ID:          "PLT-2024-001",
			Name:        "123 Oak Street",
			Coordinates: models.Coordinates{Lat: 40.7128, Lng: -74.0060},
			Status:      models.ParcelStatusVerified,
			Owner:       "John Smith",
		},
		{
			ID:          "PLT-2024-002",
			Name:        "456 Pine Avenue",
			Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
			Status:      models.ParcelStatusPending,
			Owner:       "Sarah Johnson",
		},
		{
			ID:          "PLT-2024-003",
			Name:        "789 Maple Drive",
			Coordinates: models.Coordinates{Lat: 40.7505, Lng: -73.9934},
			Status:      models.ParcelStatusDisputed,
			Owner:       "Mike Wilson",
		},
	}
}

// DefaultParcelID is the parcel shown by the transfer wizard when none is given.
const DefaultParcelID = "PLT-2024-001"

// ReceiptTransactionID is the confirmation id shown when the registry
// answers a submission without one.
const ReceiptTransactionID = "0x1a2b3c4d5e6f7890abcdef"

// ProcessingEstimate is the processing time shown on the confirmation step.
const ProcessingEstimate = "3-5 business days"

// PropertyPanel returns the sample wizard property panel for id.
func PropertyPanel(id string) *models.PropertyPanel {
	if id == "" {
		id = DefaultParcelID
	}
	return &models.PropertyPanel{
		ParcelID:       id,
		Address:        "123 Oak Street, Springfield",
		Owner:          "John Smith",
		EstimatedValue: "$485,000",
	}
}
