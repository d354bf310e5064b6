package normalize

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/repository"
)

// assertNoGaps walks v and fails on any empty string or nil slice.
func assertNoGaps(t *testing.T, v interface{}) {
	t.Helper()
	walkNoGaps(t, reflect.ValueOf(v), reflect.TypeOf(v).String())
}

func walkNoGaps(t *testing.T, v reflect.Value, path string) {
	t.Helper()
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			t.Errorf("%s is nil", path)
			return
		}
		walkNoGaps(t, v.Elem(), path)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			walkNoGaps(t, v.Field(i), path+"."+v.Type().Field(i).Name)
		}
	case reflect.Slice:
		if v.IsNil() {
			t.Errorf("%s is a nil slice", path)
			return
		}
		for i := 0; i < v.Len(); i++ {
			walkNoGaps(t, v.Index(i), path)
		}
	case reflect.String:
		if v.Len() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func decodeRecord(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out))
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 485000, want: "$485,000"},
		{amount: 127400000, want: "$127,400,000"},
		{amount: 0, want: "$0"},
		{amount: 999, want: "$999"},
		{amount: 2500.5, want: "$2,500.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.amount))
	}
}

func TestTruncateDate(t *testing.T) {
	assert.Equal(t, "2024-01-15", TruncateDate("2024-01-15T10:30:00Z"))
	assert.Equal(t, "2024-01-15", TruncateDate("2024-01-15"))
	assert.Equal(t, "", TruncateDate(""))

	blank := "  "
	assert.Equal(t, Placeholder, OptionalDate(nil))
	assert.Equal(t, Placeholder, OptionalDate(&blank))
}

func TestAreaAndDocumentFormatting(t *testing.T) {
	display := "0.25 acres"
	sqft := 10890.0
	assert.Equal(t, "0.25 acres", Area(&display, &sqft))
	assert.Equal(t, "10,890 sq ft", Area(nil, &sqft))
	assert.Equal(t, Placeholder, Area(nil, nil))

	assert.Equal(t, "TITLE DEED", DocumentType("title_deed"))
	assert.Equal(t, "SURVEY REPORT COPY", DocumentType("survey_report_copy"))
	assert.Equal(t, Placeholder, DocumentType(""))

	size := int64(2202009)
	assert.Equal(t, "2.1 MB", FileSize(&size))
	assert.Equal(t, Placeholder, FileSize(nil))
}

func TestParcelSummaries_NullFieldsBecomePlaceholders(t *testing.T) {
	var records []repository.ParcelRecord
	decodeRecord(t, `[{"id":"PLT-9","address":null,"owner_name":null,"area_display":null,
		"status":"pending","blockchain_hash":null,"last_updated":null,"fraud_risk":"medium","estimated_value":null}]`, &records)

	parcels, err := ParcelSummaries(records)
	require.NoError(t, err)
	require.Len(t, parcels, 1)

	assertNoGaps(t, parcels[0])
	assert.Equal(t, Placeholder, parcels[0].BlockchainHash)
	assert.Equal(t, models.ParcelStatusPending, parcels[0].Status)
	assert.Equal(t, models.FraudRiskMedium, parcels[0].FraudRisk)
}

func TestParcelSummaries_EmptyList(t *testing.T) {
	parcels, err := ParcelSummaries([]repository.ParcelRecord{})
	require.NoError(t, err)
	assert.NotNil(t, parcels)
	assert.Empty(t, parcels)
}

func TestParcelSummaries_UnknownEnumFailsWholeList(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown status", body: `[{"id":"A","status":"verified","fraud_risk":"low"},{"id":"B","status":"archived","fraud_risk":"low"}]`},
		{name: "unknown risk", body: `[{"id":"A","status":"verified","fraud_risk":"critical"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []repository.ParcelRecord
			decodeRecord(t, tt.body, &records)

			parcels, err := ParcelSummaries(records)
			assert.Nil(t, parcels)
			assert.True(t, errors.Is(err, models.ErrUnknownEnum))
		})
	}
}

func TestParcelSummary_MissingIDIsInvalid(t *testing.T) {
	_, err := ParcelSummary(repository.ParcelRecord{Status: "verified", FraudRisk: "low"})
	assert.True(t, errors.Is(err, ErrInvalidRecord))
}

func TestParcelDetail_FullRecord(t *testing.T) {
	var record repository.ParcelDetailRecord
	decodeRecord(t, `{
		"id": "PLT-2024-001",
		"address": "123 Oak Street",
		"coordinates_lat": 40.7128,
		"coordinates_lng": -74.006,
		"owner": {"name": "John Smith", "id_number": "SSN: XXX-XX-1234", "email": "john@example.com", "created_at": "2019-03-15T08:00:00Z"},
		"area_display": null,
		"area_sqft": 10890,
		"zoning": "Residential R-1",
		"status": "verified",
		"blockchain_hash": "0xabc",
		"updated_at": "2024-01-15T12:00:00Z",
		"transactions": [
			{"transaction_date": "2024-01-15T00:00:00Z", "type": "Verification Update", "from_entity": "System", "to_entity": null, "blockchain_hash": "0x1"},
			{"transaction_date": "2019-03-15T00:00:00Z", "type": "Ownership Transfer", "from_entity": "Jane Doe", "to_entity": "John Smith", "blockchain_hash": null}
		],
		"ai_analysis": {"fraud_risk": "low", "risk_score": 0.15, "market_value": 485000, "confidence": 0.92,
			"last_valuation": "2024-01-10T00:00:00Z", "price_history": [{"date": "2024-01", "value": 485000}]},
		"encumbrances": [{"type": "Lien", "description": null, "amount": 12000, "is_active": true}],
		"documents": [{"name": "Deed", "type": "title_deed", "file_size": null, "file_hash": "0xdoc"}]
	}`, &record)

	detail, err := ParcelDetail(&record)
	require.NoError(t, err)
	assertNoGaps(t, detail)

	assert.Equal(t, "John Smith", detail.Owner)
	assert.Equal(t, "2019-03-15", detail.OwnerInfo.Since)
	assert.Equal(t, "10,890 sq ft", detail.Area)
	assert.Equal(t, "2024-01-15", detail.LastUpdated)
	assert.Equal(t, "$485,000", detail.AIAnalysis.MarketValue)
	assert.Equal(t, "$485,000", detail.EstimatedValue)
	assert.Equal(t, "2024-01-10", detail.AIAnalysis.LastValuation)

	require.Len(t, detail.Transactions, 2)
	assert.Equal(t, "Verification Update", detail.Transactions[0].Type)
	assert.Equal(t, Placeholder, detail.Transactions[0].To)
	assert.Equal(t, Placeholder, detail.Transactions[1].Hash)

	require.Len(t, detail.Encumbrances, 1)
	assert.Equal(t, "$12,000", detail.Encumbrances[0].Amount)
	assert.Equal(t, Placeholder, detail.Encumbrances[0].Description)
	assert.True(t, detail.Encumbrances[0].IsActive)

	require.Len(t, detail.Documents, 1)
	assert.Equal(t, "TITLE DEED", detail.Documents[0].Type)
	assert.Equal(t, Placeholder, detail.Documents[0].Size)
}

func TestParcelDetail_SparseRecord(t *testing.T) {
	var record repository.ParcelDetailRecord
	decodeRecord(t, `{"id":"PLT-7","status":"disputed"}`, &record)

	detail, err := ParcelDetail(&record)
	require.NoError(t, err)
	assertNoGaps(t, detail)

	assert.Equal(t, models.FraudRiskLow, detail.AIAnalysis.FraudRisk)
	assert.Equal(t, UnknownMarketValue, detail.AIAnalysis.MarketValue)
	assert.Equal(t, 0.0, detail.AIAnalysis.Confidence)
	assert.Empty(t, detail.AIAnalysis.PriceHistory)
	assert.Empty(t, detail.Transactions)
	assert.Equal(t, models.Coordinates{}, detail.Coordinates)
	assert.Equal(t, Placeholder, detail.OwnerInfo.Contact)
}

func TestParcelDetail_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "risk score above one", body: `{"id":"P","status":"verified","ai_analysis":{"fraud_risk":"low","risk_score":1.5,"market_value":1,"confidence":0.5}}`},
		{name: "negative confidence", body: `{"id":"P","status":"verified","ai_analysis":{"fraud_risk":"low","risk_score":0.1,"market_value":1,"confidence":-0.1}}`},
		{name: "unknown analysis risk", body: `{"id":"P","status":"verified","ai_analysis":{"fraud_risk":"severe"}}`},
		{name: "latitude out of range", body: `{"id":"P","status":"verified","coordinates_lat":91,"coordinates_lng":0}`},
		{name: "unknown status", body: `{"id":"P","status":"sold"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record repository.ParcelDetailRecord
			decodeRecord(t, tt.body, &record)

			detail, err := ParcelDetail(&record)
			assert.Nil(t, detail)
			assert.Error(t, err)
		})
	}

	_, err := ParcelDetail(nil)
	assert.True(t, errors.Is(err, ErrInvalidRecord))
}

func TestTransfers(t *testing.T) {
	var records []repository.TransferRecord
	decodeRecord(t, `[
		{"id":"TXN-1","parcel":{"id":"PLT-1","address":"1 Main"},"from_user":{"name":"A"},"to_user":{"name":"B"},
		 "amount":392000,"created_at":"2024-01-19T09:00:00Z","status":"document_review","blockchain_hash":null},
		{"id":"TXN-2","parcel":null,"from_user":null,"to_user":null,"amount":null,"created_at":null,"status":"completed"}
	]`, &records)

	transfers, err := Transfers(records)
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assertNoGaps(t, transfers)

	assert.Equal(t, "1 Main", transfers[0].Property)
	assert.Equal(t, "PLT-1", transfers[0].ParcelID)
	assert.Equal(t, "$392,000", transfers[0].Amount)
	assert.Equal(t, "2024-01-19", transfers[0].Date)
	assert.Equal(t, models.TransferStatusDocumentReview, transfers[0].Status)
	assert.Equal(t, Placeholder, transfers[0].BlockchainHash)

	assert.Equal(t, Placeholder, transfers[1].From)
	assert.Equal(t, Placeholder, transfers[1].Amount)

	_, err = Transfers([]repository.TransferRecord{{ID: "X", Status: "cancelled"}})
	assert.True(t, errors.Is(err, models.ErrUnknownEnum))
}

func TestFraudAlerts(t *testing.T) {
	var records []repository.FraudAlertRecord
	decodeRecord(t, `[{"id":"FRA-1","parcel":{"address":"789 Elm","owner":{"name":"Mike"}},"risk_level":"high",
		"reason":"Multiple ownership claims detected","created_at":"2024-01-18T00:00:00Z"}]`, &records)

	alerts, err := FraudAlerts(records)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assertNoGaps(t, alerts)
	assert.Equal(t, models.FraudAlert{
		ID: "FRA-1", Property: "789 Elm", Owner: "Mike", Risk: models.FraudRiskHigh,
		Reason: "Multiple ownership claims detected", Date: "2024-01-18",
	}, alerts[0])

	_, err = FraudAlerts([]repository.FraudAlertRecord{{ID: "X", RiskLevel: ""}})
	assert.True(t, errors.Is(err, models.ErrUnknownEnum))
}

func TestDashboardStats(t *testing.T) {
	var record repository.DashboardStatsRecord
	decodeRecord(t, `{"total_properties":1247,"pending_transfers":null,"fraud_alerts":4,"total_transfer_value":127400000}`, &record)

	stats, err := DashboardStats(&record)
	require.NoError(t, err)
	assert.Equal(t, 1247, stats.TotalProperties)
	assert.Equal(t, 0, stats.PendingTransfers)
	assert.Equal(t, "$127,400,000", stats.TotalTransferValue)

	negative := -1
	_, err = DashboardStats(&repository.DashboardStatsRecord{ActiveUsers: &negative})
	assert.True(t, errors.Is(err, ErrInvalidRecord))
}

func TestNormalizationIsIdempotent(t *testing.T) {
	body := `[{"id":"PLT-1","address":"1 Main","owner_name":"Ann","status":"verified","fraud_risk":"low","last_updated":"2024-02-02T00:00:00Z"}]`

	var first, second []repository.ParcelRecord
	decodeRecord(t, body, &first)
	decodeRecord(t, body, &second)

	a, err := ParcelSummaries(first)
	require.NoError(t, err)
	b, err := ParcelSummaries(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
