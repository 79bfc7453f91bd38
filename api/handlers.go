/*
handlers.go - HTTP handlers for the dashboard backend

PURPOSE:
  Maps HTTP requests onto the concession catalog and the fine calculator, and
  maps the engine's error taxonomy onto status codes.

ERROR MAPPING:
  FeedUnavailable            -> 503 (dashboard renders "data unavailable")
  unknown concession         -> 404 (dashboard renders the selection prompt)
  AnchorNotFound / zero base -> 500, flagged as a registry configuration bug
  bad input                  -> 400

Handlers log nothing themselves; request logging is middleware's job and the
engine is silent by design.

SEE ALSO:
  - server.go: route definitions
  - dto.go: request/response shapes
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dafi-icmbio/price-updater/fine"
	"github.com/dafi-icmbio/price-updater/indexation"
	"github.com/dafi-icmbio/price-updater/park"
)

// Handler holds the request-scoped collaborators. No shared mutable state:
// every request fetches and computes independently.
type Handler struct {
	Catalog *park.Catalog
	Fine    *fine.Calculator

	// now is the wall clock; swapped in tests to pin time-banded prices.
	now func() time.Time
}

func NewHandler(catalog *park.Catalog, calc *fine.Calculator) *Handler {
	return &Handler{Catalog: catalog, Fine: calc, now: time.Now}
}

// =============================================================================
// CONCESSION HANDLERS
// =============================================================================

// ListConcessions returns the registry, in display order.
// GET /api/concessions
func (h *Handler) ListConcessions(w http.ResponseWriter, r *http.Request) {
	names := h.Catalog.Names()
	dtos := make([]ConcessionDTO, 0, len(names))
	for _, name := range names {
		cfg, _ := h.Catalog.Lookup(name)
		dtos = append(dtos, ConcessionDTO{
			Name:      cfg.Name,
			Index:     string(cfg.Index),
			BaseDate:  cfg.BaseDate.Format("2006-01-02"),
			LagMonths: cfg.LagMonths,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPrices returns the authorized fee table of one concession.
// GET /api/concessions/{name}/prices
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	p, ok := h.createPark(w, r)
	if !ok {
		return
	}

	snapshot, err := p.CurrentPrices(h.now())
	if err != nil {
		writePriceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PriceTableDTO{
		Concession:     p.Name,
		ReferenceMonth: referenceMonth(h.now()),
		Fees:           toFeeDTOs(snapshot),
	})
}

// GetTrajectory returns the reconstructed price history for charting.
// GET /api/concessions/{name}/trajectory
func (h *Handler) GetTrajectory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.createPark(w, r)
	if !ok {
		return
	}

	points, err := p.Trajectory()
	if err != nil {
		writePriceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTrajectoryDTOs(points))
}

// createPark resolves the {name} path parameter into a Park, writing the
// error response itself when it cannot.
func (h *Handler) createPark(w http.ResponseWriter, r *http.Request) (*park.Park, bool) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	p, err := h.Catalog.Create(r.Context(), name)
	if err != nil {
		writePriceError(w, err)
		return nil, false
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Unknown concession", nil)
		return nil, false
	}
	return p, true
}

// =============================================================================
// FINE HANDLER
// =============================================================================

// CalculateFine computes penalty + interest for a late payment.
// POST /api/fine
func (h *Handler) CalculateFine(w http.ResponseWriter, r *http.Request) {
	var req FineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid due_date format (use YYYY-MM-DD)", err)
		return
	}
	payment, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment_date format (use YYYY-MM-DD)", err)
		return
	}

	result, err := h.Fine.Calculate(r.Context(), amount, due, payment)
	if err != nil {
		switch {
		case errors.Is(err, indexation.ErrPaymentBeforeDue):
			writeError(w, http.StatusBadRequest, "Payment date precedes due date", err)
		case errors.Is(err, indexation.ErrFeedUnavailable):
			writeError(w, http.StatusServiceUnavailable, "Rate data unavailable", err)
		default:
			writeError(w, http.StatusInternalServerError, "Fine calculation failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toFineDTO(result))
}

// =============================================================================
// HELPERS
// =============================================================================

func writePriceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, indexation.ErrFeedUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Index data unavailable", err)
	case indexation.IsConfigError(err):
		// The static registry disagrees with the feed. Worth surfacing
		// distinctly: this is a stale-registry bug, not a transient failure.
		writeError(w, http.StatusInternalServerError, "Concession registry is stale", err)
	default:
		writeError(w, http.StatusInternalServerError, "Price computation failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
