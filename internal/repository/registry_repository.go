package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stwalsh4118/atlas/portal/internal/config"
)

// Registry resource paths.
const (
	pathParcels        = "/parcels"
	pathParcel         = "/parcel/"
	pathTransfers      = "/transfers"
	pathFraudAlerts    = "/fraud-alerts"
	pathDashboardStats = "/dashboard/stats"
)

// maxBodyBytes caps how much of a registry response is read.
const maxBodyBytes = 4 << 20

// RegistryRepository defines read and write-intent access to the
// property-registry service. Every method performs exactly one HTTP call
// bound to ctx; there are no retries.
// Any transport failure, non-2xx status or undecodable body is returned
// as an *UpstreamError.
type RegistryRepository interface {
	// ListParcels fetches GET /parcels.
	ListParcels(ctx context.Context) ([]ParcelRecord, error)

	// GetParcel fetches GET /parcel/{id}.
	GetParcel(ctx context.Context, id string) (*ParcelDetailRecord, error)

	// ListTransfers fetches GET /transfers, filtered by status when non-empty.
	ListTransfers(ctx context.Context, status string) ([]TransferRecord, error)

	// ListFraudAlerts fetches GET /fraud-alerts?resolved=<resolved>.
	ListFraudAlerts(ctx context.Context, resolved bool) ([]FraudAlertRecord, error)

	// GetDashboardStats fetches GET /dashboard/stats.
	GetDashboardStats(ctx context.Context) (*DashboardStatsRecord, error)

	// CreateTransfer posts the write-intent transfer request.
	// A 2xx answer with an empty or unparseable body yields an empty receipt.
	CreateTransfer(ctx context.Context, sub TransferSubmission) (*SubmissionReceiptRecord, error)

	// Ping reports whether the registry answers HTTP without a server error.
	// Client-error statuses still count as reachable.
	Ping(ctx context.Context) error
}

// registryRepository is the HTTP implementation of RegistryRepository.
type registryRepository struct {
	baseURL string
	http    *http.Client
}

// NewRegistryRepository creates a RegistryRepository for the configured
// base URL. A zero Timeout leaves the client without its own deadline so
// only the caller's context bounds a request.
func NewRegistryRepository(cfg config.RegistryConfig) RegistryRepository {
	return NewRegistryRepositoryWithClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
}

// NewRegistryRepositoryWithClient creates a RegistryRepository using the
// given HTTP client.
func NewRegistryRepositoryWithClient(baseURL string, client *http.Client) RegistryRepository {
	return &registryRepository{
		baseURL: baseURL,
		http:    client,
	}
}

func (r *registryRepository) ListParcels(ctx context.Context) ([]ParcelRecord, error) {
	var out []ParcelRecord
	if err := r.getJSON(ctx, pathParcels, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *registryRepository) GetParcel(ctx context.Context, id string) (*ParcelDetailRecord, error) {
	var out ParcelDetailRecord
	if err := r.getJSON(ctx, pathParcel+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *registryRepository) ListTransfers(ctx context.Context, status string) ([]TransferRecord, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{status}}
	}

	var out []TransferRecord
	if err := r.getJSON(ctx, pathTransfers, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *registryRepository) ListFraudAlerts(ctx context.Context, resolved bool) ([]FraudAlertRecord, error) {
	query := url.Values{"resolved": []string{strconv.FormatBool(resolved)}}

	var out []FraudAlertRecord
	if err := r.getJSON(ctx, pathFraudAlerts, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *registryRepository) GetDashboardStats(ctx context.Context) (*DashboardStatsRecord, error) {
	var out DashboardStatsRecord
	if err := r.getJSON(ctx, pathDashboardStats, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *registryRepository) CreateTransfer(ctx context.Context, sub TransferSubmission) (*SubmissionReceiptRecord, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transfer submission: %w", err)
	}

	body, err := r.do(ctx, http.MethodPost, pathTransfers, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	receipt := &SubmissionReceiptRecord{}
	if len(bytes.TrimSpace(body)) > 0 {
		// The registry has no documented response for this call. The write
		// already succeeded, so a bad body is reported on the receipt
		// rather than as an error.
		if err := json.Unmarshal(body, receipt); err != nil {
			receipt.DecodeErr = &UpstreamError{Category: ErrorDecode, Method: http.MethodPost, Path: pathTransfers, Underlying: err}
		}
	}
	return receipt, nil
}

func (r *registryRepository) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/", nil)
	if err != nil {
		return &UpstreamError{Category: ErrorTransport, Method: http.MethodGet, Path: "/", Underlying: err}
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return &UpstreamError{Category: ErrorTransport, Method: http.MethodGet, Path: "/", Underlying: err}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &UpstreamError{Category: ErrorStatus, Method: http.MethodGet, Path: "/", StatusCode: resp.StatusCode}
	}
	return nil
}

// getJSON performs a GET and decodes the body into out.
func (r *registryRepository) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := r.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &UpstreamError{
			Category:   ErrorDecode,
			Method:     http.MethodGet,
			Path:       path,
			Underlying: fmt.Errorf("empty response body"),
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &UpstreamError{Category: ErrorDecode, Method: http.MethodGet, Path: path, Underlying: err}
	}
	return nil
}

// do sends one request and returns the body of a 2xx response.
func (r *registryRepository) do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &UpstreamError{Category: ErrorTransport, Method: method, Path: path, Underlying: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Category: ErrorTransport, Method: method, Path: path, Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies have no contract; drain and drop them.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &UpstreamError{Category: ErrorStatus, Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{Category: ErrorTransport, Method: method, Path: path, Underlying: err}
	}
	return data, nil
}
