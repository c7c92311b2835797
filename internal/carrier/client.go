// Package carrier resolves the carrier behind each reported number
// through a numverify-compatible lookup API. The lookup is strictly an
// annotation: it never changes which records are reported.
package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/export"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/util"
)

// sleepFunc is the sleep used between retries (injectable for tests)
var sleepFunc = time.Sleep

// Client looks up carriers with client-side rate limiting, retry with
// exponential backoff, and a hard cap on how many numbers may fail
// outright before the whole annotation aborts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter

	maxRetries       int
	backoffBase      time.Duration
	backoffFactor    int
	maxFailedNumbers int
	verbose          bool
}

// NewClient creates a lookup client from configuration.
func NewClient(cfg model.CarrierConfig, verbose bool) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		baseURL:          cfg.BaseURL,
		apiKey:           cfg.APIKey,
		limiter:          rate.NewLimiter(rate.Limit(rps), burst),
		maxRetries:       maxRetries,
		backoffBase:      cfg.BackoffBase,
		backoffFactor:    cfg.BackoffFactor,
		maxFailedNumbers: cfg.MaxFailedNumbers,
		verbose:          verbose,
	}
}

type lookupResponse struct {
	Valid   bool   `json:"valid"`
	Carrier string `json:"carrier"`
}

// Annotate fills the Carrier field of every record, looking each distinct
// number up once. A number that exhausts its retries is annotated "Null"
// and counted; too many such failures abort with an error since the API
// is likely down or the key invalid.
func (c *Client) Annotate(ctx context.Context, records []model.CallRecord) error {
	carriers := make(map[string]string)
	totalFails := 0

	for i := range records {
		num := export.NormalizeNumber(records[i].Number)
		carrier, seen := carriers[num]
		if !seen {
			if totalFails >= c.maxFailedNumbers && c.maxFailedNumbers > 0 {
				return fmt.Errorf("aborting carrier lookup after %d failed numbers: check the API key and service status", totalFails)
			}
			var err error
			carrier, err = c.lookup(ctx, num)
			if err != nil {
				totalFails++
				carrier = "Null"
				if c.verbose {
					fmt.Fprintf(os.Stderr, "carrier lookup failed for %s: %v\n", num, err)
				}
			}
			carriers[num] = carrier
		}
		records[i].Carrier = carrier
	}
	return nil
}

// lookup resolves one number, retrying with exponential backoff.
func (c *Client) lookup(ctx context.Context, number string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase
			for i := 0; i < attempt; i++ {
				backoff *= time.Duration(c.backoffFactor)
			}
			sleepFunc(backoff)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		carrier, err := c.fetch(ctx, number)
		if err == nil {
			return carrier, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("lookup %s: %w", number, lastErr)
}

func (c *Client) fetch(ctx context.Context, number string) (string, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	// The bill prints numbers without the country code; the API wants it.
	q.Set("number", "1"+number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if parsed.Carrier == "" {
		return "Null", nil
	}
	return parsed.Carrier, nil
}
