package repository

// Wire records mirror the registry's JSON. Nullable or optional server
// fields are pointers so normalization can tell "absent" from a value.

// ParcelRecord is one element of GET /parcels.
type ParcelRecord struct {
	BlockchainHash *string `json:"blockchain_hash"`
	OwnerName      *string `json:"owner_name"`
	AreaDisplay    *string `json:"area_display"`
	LastUpdated    *string `json:"last_updated"`
	EstimatedValue *string `json:"estimated_value"`
	Address        *string `json:"address"`
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	FraudRisk      string  `json:"fraud_risk"`
}

// UserRecord is a registry user as nested in parcels and transfers.
type UserRecord struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	IDNumber  *string `json:"id_number"`
	CreatedAt *string `json:"created_at"`
}

// PricePointRecord is one valuation sample.
type PricePointRecord struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// AIAnalysisRecord is the valuation/risk block of a parcel.
type AIAnalysisRecord struct {
	LastValuation *string            `json:"last_valuation"`
	FraudRisk     string             `json:"fraud_risk"`
	PriceHistory  []PricePointRecord `json:"price_history"`
	RiskScore     float64            `json:"risk_score"`
	MarketValue   float64            `json:"market_value"`
	Confidence    float64            `json:"confidence"`
}

// LedgerEntryRecord is a parcel transaction history entry.
type LedgerEntryRecord struct {
	FromEntity      *string `json:"from_entity"`
	ToEntity        *string `json:"to_entity"`
	BlockchainHash  *string `json:"blockchain_hash"`
	TransactionDate *string `json:"transaction_date"`
	Type            string  `json:"type"`
}

// EncumbranceRecord is a charge registered against a parcel.
type EncumbranceRecord struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	IsActive    *bool    `json:"is_active"`
	Type        string   `json:"type"`
}

// DocumentRecord is a document attached to a parcel.
type DocumentRecord struct {
	FileSize *int64  `json:"file_size"`
	FileHash *string `json:"file_hash"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
}

// ParcelDetailRecord is the body of GET /parcel/{id}.
type ParcelDetailRecord struct {
	Owner          *UserRecord         `json:"owner"`
	AIAnalysis     *AIAnalysisRecord   `json:"ai_analysis"`
	CoordinatesLat *float64            `json:"coordinates_lat"`
	CoordinatesLng *float64            `json:"coordinates_lng"`
	AreaSqft       *float64            `json:"area_sqft"`
	AreaDisplay    *string             `json:"area_display"`
	Zoning         *string             `json:"zoning"`
	BlockchainHash *string             `json:"blockchain_hash"`
	Address        *string             `json:"address"`
	UpdatedAt      *string             `json:"updated_at"`
	ID             string              `json:"id"`
	Status         string              `json:"status"`
	Transactions   []LedgerEntryRecord `json:"transactions"`
	Encumbrances   []EncumbranceRecord `json:"encumbrances"`
	Documents      []DocumentRecord    `json:"documents"`
}

// ParcelRefRecord is the abbreviated parcel nested in transfers and alerts.
type ParcelRefRecord struct {
	ID      *string     `json:"id"`
	Address *string     `json:"address"`
	Owner   *UserRecord `json:"owner"`
}

// TransferRecord is one element of GET /transfers.
type TransferRecord struct {
	Parcel         *ParcelRefRecord `json:"parcel"`
	FromUser       *UserRecord      `json:"from_user"`
	ToUser         *UserRecord      `json:"to_user"`
	Amount         *float64         `json:"amount"`
	CreatedAt      *string          `json:"created_at"`
	BlockchainHash *string          `json:"blockchain_hash"`
	ID             string           `json:"id"`
	Status         string           `json:"status"`
}

// FraudAlertRecord is one element of GET /fraud-alerts.
type FraudAlertRecord struct {
	Parcel    *ParcelRefRecord `json:"parcel"`
	Reason    *string          `json:"reason"`
	CreatedAt *string          `json:"created_at"`
	ID        string           `json:"id"`
	RiskLevel string           `json:"risk_level"`
}

// DashboardStatsRecord is the body of GET /dashboard/stats.
type DashboardStatsRecord struct {
	TotalProperties    *int     `json:"total_properties"`
	PendingTransfers   *int     `json:"pending_transfers"`
	FraudAlerts        *int     `json:"fraud_alerts"`
	ActiveUsers        *int     `json:"active_users"`
	MonthlyTransfers   *int     `json:"monthly_transfers"`
	TotalTransferValue *float64 `json:"total_transfer_value"`
}

// SubmissionDocument is attachment metadata sent with a transfer request.
type SubmissionDocument struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// TransferSubmission is the write-intent body of POST /transfers.
type TransferSubmission struct {
	ParcelID      string               `json:"parcel_id"`
	BuyerName     string               `json:"buyer_name"`
	BuyerIDNumber string               `json:"buyer_id_number"`
	BuyerEmail    string               `json:"buyer_email"`
	BuyerPhone    string               `json:"buyer_phone"`
	Amount        string               `json:"amount"`
	TransferDate  string               `json:"transfer_date"`
	Notes         string               `json:"notes"`
	Documents     []SubmissionDocument `json:"documents"`
}

// SubmissionReceiptRecord is the optional body answered to POST /transfers.
type SubmissionReceiptRecord struct {
	ID             *string `json:"id"`
	Status         *string `json:"status"`
	BlockchainHash *string `json:"blockchain_hash"`
	// DecodeErr is set when a 2xx body was present but did not fully decode.
	// Fields that did decode are kept.
	DecodeErr error `json:"-"`
}
