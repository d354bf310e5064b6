package wizard

import (
	"context"
	"time"

	"github.com/stwalsh4118/atlas/portal/internal/fallback"
	"github.com/stwalsh4118/atlas/portal/internal/logger"
	"github.com/stwalsh4118/atlas/portal/internal/metrics"
	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/normalize"
	"github.com/stwalsh4118/atlas/portal/internal/repository"
)

// Submission outcomes recorded in metrics.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Receipt confirms an accepted transfer request.
type Receipt struct {
	TransactionID      string    `json:"transaction_id"`
	Status             string    `json:"status"`
	BlockchainHash     string    `json:"blockchain_hash"`
	ProcessingEstimate string    `json:"processing_estimate"`
	SubmittedAt        time.Time `json:"submitted_at"`
	Summary            Review    `json:"summary"`
}

// RegistrySubmitter posts drafts to the registry's transfers endpoint.
type RegistrySubmitter struct {
	repo    repository.RegistryRepository
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRegistrySubmitter creates a Submitter backed by repo. m may be nil.
func NewRegistrySubmitter(repo repository.RegistryRepository, log *logger.Logger, m *metrics.Metrics) *RegistrySubmitter {
	return &RegistrySubmitter{
		repo:    repo,
		log:     log.Component("wizard"),
		metrics: m,
		now:     time.Now,
	}
}

// Submit performs exactly one POST. Any upstream error is returned as-is.
func (s *RegistrySubmitter) Submit(ctx context.Context, property models.PropertyPanel, draft models.TransferDraft) (Receipt, error) {
	docs := make([]repository.SubmissionDocument, 0, len(draft.Documents))
	for _, d := range draft.Documents {
		docs = append(docs, repository.SubmissionDocument{Name: d.Name, ContentType: d.ContentType, Size: d.Size})
	}

	record, err := s.repo.CreateTransfer(ctx, repository.TransferSubmission{
		ParcelID:      property.ParcelID,
		BuyerName:     draft.BuyerName,
		BuyerIDNumber: draft.BuyerIDNumber,
		BuyerEmail:    draft.BuyerEmail,
		BuyerPhone:    draft.BuyerPhone,
		Amount:        draft.Price,
		TransferDate:  draft.ProposedDate,
		Notes:         draft.Notes,
		Documents:     docs,
	})
	if err != nil {
		s.metrics.ObserveSubmission(outcomeFailure)
		s.log.Error("Transfer request submission failed", err, map[string]interface{}{
			"parcel_id": property.ParcelID,
			"category":  string(repository.CategoryOf(err)),
			"documents": len(docs),
		})
		return Receipt{}, err
	}

	receipt := Receipt{
		TransactionID:      fallback.ReceiptTransactionID,
		Status:             string(models.TransferStatusPendingApproval),
		BlockchainHash:     normalize.Placeholder,
		ProcessingEstimate: fallback.ProcessingEstimate,
		SubmittedAt:        s.now().UTC(),
	}
	if record != nil {
		s.applyRecord(&receipt, record, property.ParcelID)
	}

	s.metrics.ObserveSubmission(outcomeSuccess)
	s.log.Info("Transfer request submitted", map[string]interface{}{
		"parcel_id":      property.ParcelID,
		"transaction_id": receipt.TransactionID,
		"documents":      len(docs),
	})
	return receipt, nil
}

// applyRecord overlays the registry's answer on the default receipt. A body
// that failed to decode never shows the sample transaction id, and statuses
// outside the transfer vocabulary keep the default.
func (s *RegistrySubmitter) applyRecord(receipt *Receipt, record *repository.SubmissionReceiptRecord, parcelID string) {
	if record.DecodeErr != nil {
		receipt.TransactionID = normalize.Placeholder
		s.log.Warn("Transfer receipt could not be decoded", map[string]interface{}{
			"parcel_id": parcelID,
			"error":     record.DecodeErr.Error(),
		})
	}
	if record.ID != nil && *record.ID != "" {
		receipt.TransactionID = *record.ID
	}
	if record.Status != nil && *record.Status != "" {
		status, err := models.ParseTransferStatus(*record.Status)
		if err != nil {
			s.log.Warn("Ignoring unknown transfer status in receipt", map[string]interface{}{
				"parcel_id": parcelID,
				"status":    *record.Status,
			})
		} else {
			receipt.Status = string(status)
		}
	}
	receipt.BlockchainHash = normalize.Text(record.BlockchainHash)
}
