package models

// TransferRecord is a server-owned transfer as listed on the transfers and
// admin pages. The portal only reads it.
type TransferRecord struct {
	ID             string         `json:"id" validate:"required"`
	ParcelID       string         `json:"parcel_id"`
	Property       string         `json:"property"`
	From           string         `json:"from"`
	To             string         `json:"to"`
	Amount         string         `json:"amount"`
	Date           string         `json:"date"`
	Status         TransferStatus `json:"status" validate:"oneof=pending_approval document_review completed pending rejected"`
	BlockchainHash string         `json:"blockchain_hash"`
}

// FraudAlert is an unresolved fraud flag shown to administrators.
type FraudAlert struct {
	ID       string    `json:"id" validate:"required"`
	Property string    `json:"property"`
	Owner    string    `json:"owner"`
	Risk     FraudRisk `json:"risk" validate:"oneof=low medium high"`
	Reason   string    `json:"reason"`
	Date     string    `json:"date"`
}

// DashboardStats is the aggregate counter block on the admin overview.
type DashboardStats struct {
	TotalProperties    int    `json:"total_properties" validate:"gte=0"`
	PendingTransfers   int    `json:"pending_transfers" validate:"gte=0"`
	FraudAlerts        int    `json:"fraud_alerts" validate:"gte=0"`
	ActiveUsers        int    `json:"active_users" validate:"gte=0"`
	MonthlyTransfers   int    `json:"monthly_transfers" validate:"gte=0"`
	TotalTransferValue string `json:"total_transfer_value"`
}

// Attachment is a file reference added to a transfer draft.
// Contents stay in the browser; only metadata travels with the request.
type Attachment struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// TransferDraft is the buyer-entered form owned by a single wizard.
// Price and ProposedDate are free text and are never parsed.
type TransferDraft struct {
	BuyerName     string       `json:"buyer_name" validate:"required"`
	BuyerIDNumber string       `json:"buyer_id_number"`
	BuyerEmail    string       `json:"buyer_email" validate:"required"`
	BuyerPhone    string       `json:"buyer_phone"`
	Price         string       `json:"price" validate:"required"`
	ProposedDate  string       `json:"proposed_date" validate:"required"`
	Notes         string       `json:"notes"`
	Documents     []Attachment `json:"documents"`
}

// PropertyPanel is the parcel summary shown beside the transfer wizard.
type PropertyPanel struct {
	ParcelID       string `json:"parcel_id"`
	Address        string `json:"address"`
	Owner          string `json:"owner"`
	EstimatedValue string `json:"estimated_value"`
}
