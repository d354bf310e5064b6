package models

import (
	"errors"
	"fmt"
)

// ErrUnknownEnum is returned when a server value falls outside a closed vocabulary.
var ErrUnknownEnum = errors.New("unknown enum value")

// ParcelStatus is the registry verification state of a parcel.
type ParcelStatus string

const (
	ParcelStatusVerified ParcelStatus = "verified"
	ParcelStatusPending  ParcelStatus = "pending"
	ParcelStatusDisputed ParcelStatus = "disputed"
)

// ParseParcelStatus validates a raw status string.
func ParseParcelStatus(raw string) (ParcelStatus, error) {
	switch s := ParcelStatus(raw); s {
	case ParcelStatusVerified, ParcelStatusPending, ParcelStatusDisputed:
		return s, nil
	}
	return "", fmt.Errorf("%w: parcel status %q", ErrUnknownEnum, raw)
}

// FraudRisk is the coarse fraud-risk level attached to parcels and alerts.
type FraudRisk string

const (
	FraudRiskLow    FraudRisk = "low"
	FraudRiskMedium FraudRisk = "medium"
	FraudRiskHigh   FraudRisk = "high"
)

// ParseFraudRisk validates a raw risk string.
func ParseFraudRisk(raw string) (FraudRisk, error) {
	switch r := FraudRisk(raw); r {
	case FraudRiskLow, FraudRiskMedium, FraudRiskHigh:
		return r, nil
	}
	return "", fmt.Errorf("%w: fraud risk %q", ErrUnknownEnum, raw)
}

// TransferStatus is the union of the transfer states shown on the admin
// dashboard (pending_approval, document_review) and the transfers page
// (pending, completed, rejected).
type TransferStatus string

const (
	TransferStatusPendingApproval TransferStatus = "pending_approval"
	TransferStatusDocumentReview  TransferStatus = "document_review"
	TransferStatusCompleted       TransferStatus = "completed"
	TransferStatusPending         TransferStatus = "pending"
	TransferStatusRejected        TransferStatus = "rejected"
)

// ParseTransferStatus validates a raw transfer status string.
func ParseTransferStatus(raw string) (TransferStatus, error) {
	switch s := TransferStatus(raw); s {
	case TransferStatusPendingApproval, TransferStatusDocumentReview,
		TransferStatusCompleted, TransferStatusPending, TransferStatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("%w: transfer status %q", ErrUnknownEnum, raw)
}
