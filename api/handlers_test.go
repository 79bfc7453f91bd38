package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafi-icmbio/price-updater/fine"
	"github.com/dafi-icmbio/price-updater/indexation"
	"github.com/dafi-icmbio/price-updater/ipea"
	"github.com/dafi-icmbio/price-updater/park"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type stubFeed struct {
	series map[ipea.Index]indexation.Series
	err    error
}

func (s *stubFeed) Fetch(ctx context.Context, index ipea.Index) (indexation.Series, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series[index], nil
}

// testFeed grows one unit per month from 100 starting January 2021; the
// SELIC series ends at 12.0 so the monthly reference rate is exactly 1%.
func testFeed() *stubFeed {
	var series indexation.Series
	value := decimal.NewFromInt(100)
	for d := indexation.Day(2021, time.January, 1); !d.After(indexation.Day(2025, time.August, 1)); d = d.AddDate(0, 1, 0) {
		series = append(series, indexation.Observation{Date: d, Value: value})
		value = value.Add(decimal.NewFromInt(1))
	}
	return &stubFeed{series: map[ipea.Index]indexation.Series{
		ipea.IPCA: series,
		ipea.IGPM: series,
		ipea.SELIC: {
			{Date: indexation.Day(2024, time.June, 1), Value: decimal.RequireFromString("12.0")},
		},
	}}
}

func newTestRouter(feed ipea.Fetcher) http.Handler {
	handler := NewHandler(park.NewCatalog(feed), fine.NewCalculator(feed))
	handler.now = func() time.Time { return indexation.Day(2024, time.August, 15) }
	return NewRouter(handler, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// =============================================================================
// CONCESSION ENDPOINTS
// =============================================================================

func TestListConcessions(t *testing.T) {
	router := newTestRouter(testFeed())

	rec := doRequest(t, router, http.MethodGet, "/api/concessions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var dtos []ConcessionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dtos); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(dtos) != 8 {
		t.Fatalf("expected 8 concessions, got %d", len(dtos))
	}
	if dtos[0].Name != "Chapada dos Veadeiros" {
		t.Errorf("expected display order, got %q first", dtos[0].Name)
	}
}

func TestGetPrices(t *testing.T) {
	router := newTestRouter(testFeed())

	rec := doRequest(t, router, http.MethodGet, "/api/concessions/Chapada%20dos%20Veadeiros/prices", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var table PriceTableDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &table); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if table.Concession != "Chapada dos Veadeiros" {
		t.Errorf("unexpected concession: %q", table.Concession)
	}
	if table.ReferenceMonth != "Agosto de 2024" {
		t.Errorf("expected translated reference month, got %q", table.ReferenceMonth)
	}

	labels := make(map[string]string, len(table.Fees))
	for _, fee := range table.Fees {
		labels[fee.Label] = fee.Price
	}
	for _, want := range []string{"Entrada", "Meia Entrada", "Entorno", "Acampamento"} {
		if _, ok := labels[want]; !ok {
			t.Errorf("missing fee %q in %v", want, labels)
		}
	}
}

func TestGetTrajectory(t *testing.T) {
	router := newTestRouter(testFeed())

	rec := doRequest(t, router, http.MethodGet, "/api/concessions/Itatiaia/trajectory", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var points []TrajectoryPointDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("expected a non-empty trajectory")
	}
	// Itatiaia anchors January 2022 with a 2 month lag: first effective date
	// is March 2022.
	if points[0].EffectiveDate != "2022-03-01" {
		t.Errorf("expected lag-shifted first date 2022-03-01, got %s", points[0].EffectiveDate)
	}
}

func TestGetPrices_UnknownConcession(t *testing.T) {
	router := newTestRouter(testFeed())

	rec := doRequest(t, router, http.MethodGet, "/api/concessions/Pantanal/prices", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown concession, got %d", rec.Code)
	}
}

func TestGetPrices_FeedUnavailable(t *testing.T) {
	router := newTestRouter(&stubFeed{err: indexation.ErrFeedUnavailable})

	rec := doRequest(t, router, http.MethodGet, "/api/concessions/Itatiaia/prices", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the feed is down, got %d", rec.Code)
	}
}

// =============================================================================
// FINE ENDPOINT
// =============================================================================

func TestCalculateFine(t *testing.T) {
	router := newTestRouter(testFeed())

	body := []byte(`{"amount":"1000","due_date":"2024-01-10","payment_date":"2024-08-01"}`)
	rec := doRequest(t, router, http.MethodPost, "/api/fine", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var dto FineDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dto.Interest != "200.00" {
		t.Errorf("expected capped interest 200.00, got %s", dto.Interest)
	}
	if dto.Fine != "280.00" {
		t.Errorf("expected fine 280.00, got %s", dto.Fine)
	}
	if dto.AmountDue != "1280.00" {
		t.Errorf("expected amount due 1280.00, got %s", dto.AmountDue)
	}
}

func TestCalculateFine_PaymentBeforeDue(t *testing.T) {
	router := newTestRouter(testFeed())

	body := []byte(`{"amount":"1000","due_date":"2024-01-10","payment_date":"2024-01-02"}`)
	rec := doRequest(t, router, http.MethodPost, "/api/fine", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-order dates, got %d", rec.Code)
	}
}

func TestCalculateFine_BadInput(t *testing.T) {
	router := newTestRouter(testFeed())

	cases := []string{
		`{"amount":"abc","due_date":"2024-01-10","payment_date":"2024-01-20"}`,
		`{"amount":"1000","due_date":"10/01/2024","payment_date":"2024-01-20"}`,
		`not json`,
	}
	for _, body := range cases {
		rec := doRequest(t, router, http.MethodPost, "/api/fine", []byte(body))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}
