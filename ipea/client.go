/*
Package ipea fetches monthly economic index series from the IPEA odata4 API
(Instituto de Pesquisa Econômica Aplicada) and normalizes them into
indexation.Series.

RECOGNIZED INDICES:
  IPCA   - consumer price index        (PRECOS12_IPCA12)
  IGP-M  - general market price index  (IGP12_IGPM12)
  SELIC  - base interest rate          (GM366_TJOVER366)

BEHAVIOR:
  One GET per Fetch for the entire history of the series; bounded timeout, no
  retry, no caching. Observation dates are floored to timezone-naive calendar
  days; rows without a value are skipped. Any transport, status, or decoding
  failure wraps indexation.ErrFeedUnavailable.
*/
package ipea

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafi-icmbio/price-updater/indexation"
)

// Index names one of the recognized series. The set is closed: concession
// contracts only ever reference these three.
type Index string

const (
	IPCA  Index = "IPCA"
	IGPM  Index = "IGP-M"
	SELIC Index = "SELIC"
)

var seriesCodes = map[Index]string{
	IPCA:  "PRECOS12_IPCA12",
	IGPM:  "IGP12_IGPM12",
	SELIC: "GM366_TJOVER366",
}

// DefaultBaseURL is the production IPEA odata4 root.
const DefaultBaseURL = "http://www.ipeadata.gov.br/api/odata4/Metadados"

// DefaultTimeout bounds the single round trip; there is no retry.
const DefaultTimeout = 30 * time.Second

// Fetcher is the seam between the engine and the network. The production
// implementation is *Client; tests substitute synthetic series.
type Fetcher interface {
	Fetch(ctx context.Context, index Index) (indexation.Series, error)
}

// Client fetches series over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client. Empty baseURL and zero timeout select the
// production endpoint and the default timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// valoresPayload is the shape of the odata4 Valores response.
type valoresPayload struct {
	Value []struct {
		Date  string   `json:"VALDATA"`
		Value *float64 `json:"VALVALOR"`
	} `json:"value"`
}

// Fetch retrieves the full history of the named index.
func (c *Client) Fetch(ctx context.Context, index Index) (indexation.Series, error) {
	code, ok := seriesCodes[index]
	if !ok {
		return nil, fmt.Errorf("ipea: unrecognized index %q", index)
	}

	url := fmt.Sprintf("%s('%s')/Valores", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ipea %s: %w: %v", index, indexation.ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ipea %s: %w: %v", index, indexation.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ipea %s: %w: reading body: %v", index, indexation.ErrFeedUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ipea %s: %w: status %d", index, indexation.ErrFeedUnavailable, resp.StatusCode)
	}

	var payload valoresPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("ipea %s: %w: decoding: %v", index, indexation.ErrFeedUnavailable, err)
	}

	series := make(indexation.Series, 0, len(payload.Value))
	for _, row := range payload.Value {
		if row.Value == nil {
			continue // periods awaiting publication come back null
		}
		t, err := time.Parse(time.RFC3339, row.Date)
		if err != nil {
			return nil, fmt.Errorf("ipea %s: %w: bad VALDATA %q", index, indexation.ErrFeedUnavailable, row.Date)
		}
		// Floor to the day boundary and drop the UTC offset.
		series = append(series, indexation.Observation{
			Date:  indexation.Day(t.Year(), t.Month(), t.Day()),
			Value: decimal.NewFromFloat(*row.Value),
		})
	}
	return series, nil
}
