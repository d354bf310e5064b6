package models

// ParcelSummary is the row shown on the search page.
// Every field is always populated; absent server values carry placeholders.
type ParcelSummary struct {
	ID             string       `json:"id" validate:"required"`
	Address        string       `json:"address"`
	Owner          string       `json:"owner"`
	Area           string       `json:"area"`
	Status         ParcelStatus `json:"status" validate:"oneof=verified pending disputed"`
	BlockchainHash string       `json:"blockchain_hash"`
	LastUpdated    string       `json:"last_updated"`
	FraudRisk      FraudRisk    `json:"fraud_risk" validate:"oneof=low medium high"`
	EstimatedValue string       `json:"estimated_value"`
}

// ParcelDetail is the full record shown on the parcel page.
// It is built fresh for every visit and never cached.
type ParcelDetail struct {
	ParcelSummary
	OwnerInfo    OwnerInfo           `json:"owner_info"`
	Coordinates  Coordinates         `json:"coordinates"`
	Zoning       string              `json:"zoning"`
	Transactions []TransactionRecord `json:"transactions"`
	AIAnalysis   AIAnalysis          `json:"ai_analysis"`
	Encumbrances []Encumbrance       `json:"encumbrances"`
	Documents    []DocumentRef       `json:"documents"`
}

// OwnerInfo holds the contact block of the current owner.
type OwnerInfo struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
	Contact  string `json:"contact"`
	Since    string `json:"since"`
}

// TransactionRecord is one ledger entry in a parcel's history.
type TransactionRecord struct {
	Date string `json:"date"`
	Type string `json:"type"`
	From string `json:"from"`
	To   string `json:"to"`
	Hash string `json:"hash"`
}

// AIAnalysis is the valuation and risk block for a parcel.
type AIAnalysis struct {
	FraudRisk     FraudRisk    `json:"fraud_risk" validate:"oneof=low medium high"`
	RiskScore     float64      `json:"risk_score" validate:"gte=0,lte=1"`
	MarketValue   string       `json:"market_value"`
	Confidence    float64      `json:"confidence" validate:"gte=0,lte=1"`
	LastValuation string       `json:"last_valuation"`
	PriceHistory  []PricePoint `json:"price_history"`
}

// PricePoint is a single sample of the valuation series.
type PricePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Encumbrance is a lien, easement or similar charge on a parcel.
type Encumbrance struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	IsActive    bool   `json:"is_active"`
}

// DocumentRef is a registry document attached to a parcel.
type DocumentRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
	Hash string `json:"hash"`
}

// MapMarker is a parcel pin on the map page.
type MapMarker struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Coordinates Coordinates  `json:"coordinates"`
	Status      ParcelStatus `json:"status"`
	Owner       string       `json:"owner"`
}
