package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	apierrors "github.com/stwalsh4118/atlas/portal/internal/errors"
	"github.com/stwalsh4118/atlas/portal/internal/logger"
	"github.com/stwalsh4118/atlas/portal/internal/middleware"
	"github.com/stwalsh4118/atlas/portal/internal/repository"
	"github.com/stwalsh4118/atlas/portal/internal/services"
	"github.com/stwalsh4118/atlas/portal/internal/wizard"
)

const parcelsJSON = `[
	{"id":"PLT-9-001","address":"12 Birch Lane","owner_name":"Maria Garcia","area_display":"0.40 acres",
	 "status":"verified","blockchain_hash":"0xaaa","last_updated":"2024-03-01T10:00:00Z","fraud_risk":"low","estimated_value":"$510,000"},
	{"id":"PLT-9-002","address":"7 Harbor Road","owner_name":null,"area_display":null,
	 "status":"pending","blockchain_hash":null,"last_updated":null,"fraud_risk":"medium","estimated_value":null}
]`

const parcelDetailJSON = `{
	"id":"PLT-9-001","address":"12 Birch Lane","status":"verified","area_sqft":17424,
	"owner":{"name":"Maria Garcia","email":"maria@example.com","id_number":"G-77","created_at":"2019-06-01T00:00:00Z"},
	"ai_analysis":{"fraud_risk":"low","risk_score":0.1,"market_value":510000,"confidence":0.9,"price_history":[]},
	"coordinates_lat":40.1,"coordinates_lng":-74.2,"transactions":[],"encumbrances":[],"documents":[]
}`

// fakeRegistry is a stand-in for the upstream registry. Routes answer
// with fixed bodies unless failing is set.
type fakeRegistry struct {
	mu          sync.Mutex
	failing     bool
	parcels     string
	submitCode  int
	submissions []repository.TransferSubmission
}

func newFakeRegistry(t *testing.T) (*fakeRegistry, *httptest.Server) {
	t.Helper()
	f := &fakeRegistry{parcels: parcelsJSON, submitCode: http.StatusCreated}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /parcels", func(w http.ResponseWriter, r *http.Request) {
		f.write(w, http.StatusOK, f.parcelBody())
	})
	mux.HandleFunc("GET /parcel/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.write(w, http.StatusOK, parcelDetailJSON)
	})
	mux.HandleFunc("GET /transfers", func(w http.ResponseWriter, r *http.Request) {
		f.write(w, http.StatusOK, `[{"id":"TX-1","status":"completed","amount":1000,"created_at":"2024-01-02T00:00:00Z"},
			{"id":"TX-2","status":"pending","amount":null}]`)
	})
	mux.HandleFunc("GET /fraud-alerts", func(w http.ResponseWriter, r *http.Request) {
		f.write(w, http.StatusOK, `[{"id":"FA-1","risk_level":"high","reason":"Duplicate deed"}]`)
	})
	mux.HandleFunc("GET /dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		f.write(w, http.StatusOK, `{"total_properties":12,"pending_transfers":2,"fraud_alerts":1,"active_users":40,"monthly_transfers":5,"total_transfer_value":1250000}`)
	})
	mux.HandleFunc("POST /transfers", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var sub repository.TransferSubmission
		_ = json.Unmarshal(body, &sub)

		f.mu.Lock()
		f.submissions = append(f.submissions, sub)
		code := f.submitCode
		f.mu.Unlock()

		if code >= 300 {
			w.WriteHeader(code)
			return
		}
		f.write(w, code, `{"id":"TXN-9","status":"pending_approval","blockchain_hash":"0xfeed"}`)
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		f.write(w, http.StatusOK, "")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeRegistry) write(w http.ResponseWriter, code int, body string) {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func (f *fakeRegistry) parcelBody() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.parcels
}

func (f *fakeRegistry) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *fakeRegistry) setSubmitCode(code int) {
	f.mu.Lock()
	f.submitCode = code
	f.mu.Unlock()
}

func (f *fakeRegistry) submitted() []repository.TransferSubmission {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.TransferSubmission, len(f.submissions))
	copy(out, f.submissions)
	return out
}

// setupPortalRouter wires the full API against a registry at baseURL.
func setupPortalRouter(baseURL string, limit gin.HandlerFunc) (*gin.Engine, *wizard.Store) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()

	repo := repository.NewRegistryRepositoryWithClient(baseURL, &http.Client{Timeout: 2 * time.Second})
	loader := services.NewLoader(repo, log, nil)
	pages := services.NewPages(loader, 0)
	store := wizard.NewStore(time.Hour, log, nil)
	submitter := wizard.NewRegistrySubmitter(repo, log, nil)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	RegisterRoutes(router,
		NewHealthHandler(repo, "test"),
		NewPageHandler(pages),
		NewWizardHandler(store, loader, submitter),
		limit,
	)
	return router, store
}

func perform(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorResponse {
	t.Helper()
	return decode[apierrors.ErrorResponse](t, w)
}
