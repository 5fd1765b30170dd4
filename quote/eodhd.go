package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/holdings"
	"github.com/etnz/holdings/logging"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultEODHDURL is the base address of the EODHD API.
const DefaultEODHDURL = "https://eodhd.com/api"

// ErrNoPrice is returned when a quote has no usable current price.
var ErrNoPrice = errors.New("no price")

// EODHD fetches real-time quotes from eodhd.com. Get an API key at
// https://eodhd.com/.
//
// EODHD quotes carry no currency, they are labelled with Currency.
type EODHD struct {
	BaseURL  string
	APIKey   string
	Currency string
	Client   *http.Client
	log      zerolog.Logger
}

// NewEODHD returns an EODHD provider using client, or http.DefaultClient if nil.
func NewEODHD(baseURL, apiKey, currency string, client *http.Client, logger zerolog.Logger) *EODHD {
	if baseURL == "" {
		baseURL = DefaultEODHDURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &EODHD{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		APIKey:   apiKey,
		Currency: currency,
		Client:   client,
		log:      logging.Component(logger, "eodhd"),
	}
}

// Quote fetches the real-time quote of ticker, e.g. "AAPL.US".
//
//	{"code":"AAPL.US","timestamp":1757016000,"open":238.45,"close":239.69,"previousClose":238.47,"change":1.22,...}
//
// EODHD reports "NA" for unknown values, a missing previous close is tolerated.
func (e *EODHD) Quote(ctx context.Context, ticker string) (Quote, error) {
	addr := fmt.Sprintf("%s/real-time/%s?fmt=json&api_token=%s", e.BaseURL, url.PathEscape(ticker), url.QueryEscape(e.APIKey))

	var jobj any
	if err := jwget(ctx, e.Client, addr, &jobj); err != nil {
		return Quote{}, err
	}

	current, err := number(jobj, "$.close")
	if err != nil {
		return Quote{}, fmt.Errorf("reading close of %s: %w", ticker, err)
	}
	if !current.IsPositive() {
		return Quote{}, fmt.Errorf("%w for %s", ErrNoPrice, ticker)
	}
	previous, err := number(jobj, "$.previousClose")
	if err != nil {
		e.log.Debug().Err(err).Str("ticker", ticker).Msg("previous close ignored")
		previous = decimal.Zero
	}

	return Quote{
		Ticker:        ticker,
		Current:       holdings.M(current, e.Currency),
		PreviousClose: holdings.M(previous, e.Currency),
	}, nil
}

// number extracts a number at path. "NA" and missing values read as zero.
func number(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		// jsonpath fails on unknown keys
		return decimal.Zero, nil
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		if v == "" || v == "NA" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	default:
		return decimal.Zero, fmt.Errorf("%s is not a number: %v", path, jval)
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
// Numbers are kept as json.Number to preserve their decimals.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	return dec.Decode(data)
}
