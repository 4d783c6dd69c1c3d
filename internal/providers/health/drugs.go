package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/pkg/retry"
)

const openFDAEndpoint = "https://api.fda.gov/drug/label.json"

type DrugInfo struct {
	BrandName           string `json:"brand_name"`
	GenericName         string `json:"generic_name"`
	Purpose             string `json:"purpose"`
	IndicationsAndUsage string `json:"indications_and_usage"`
}

// DrugLookup fetches drug label information from the OpenFDA API.
type DrugLookup struct {
	client   *http.Client
	endpoint string
	retrier  *retry.Retrier
}

func NewDrugLookup() *DrugLookup {
	return &DrugLookup{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: openFDAEndpoint,
		retrier:  retry.NewDefaultRetrier(),
	}
}

// NewDrugLookupWithEndpoint points the lookup at a non-default endpoint.
func NewDrugLookupWithEndpoint(endpoint string) *DrugLookup {
	l := NewDrugLookup()
	l.endpoint = endpoint
	return l
}

// Search looks up a drug by brand name. A drug with no label on file returns
// (nil, nil) rather than an error.
func (l *DrugLookup) Search(ctx context.Context, drugName string) (*DrugInfo, error) {
	if drugName == "" {
		return nil, core.NewValidationError("name")
	}

	params := url.Values{}
	params.Set("search", fmt.Sprintf("openfda.brand_name:%q", drugName))
	params.Set("limit", "1")

	var body []byte
	err := l.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", core.CareBotUserAgent)

		resp, err := l.client.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		// OpenFDA answers 404 for unknown drugs; that is a result, not a
		// transport failure, so it must not be retried.
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
			return fmt.Errorf("openfda http %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("openfda lookup failed: %w", err)
	}

	var result struct {
		Results []struct {
			OpenFDA struct {
				BrandName   []string `json:"brand_name"`
				GenericName []string `json:"generic_name"`
			} `json:"openfda"`
			Purpose             []string `json:"purpose"`
			IndicationsAndUsage []string `json:"indications_and_usage"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode openfda response: %w", err)
	}
	if len(result.Results) == 0 {
		return nil, nil
	}

	r := result.Results[0]
	return &DrugInfo{
		BrandName:           first(r.OpenFDA.BrandName),
		GenericName:         first(r.OpenFDA.GenericName),
		Purpose:             first(r.Purpose),
		IndicationsAndUsage: first(r.IndicationsAndUsage),
	}, nil
}

func first(s []string) string {
	if len(s) == 0 {
		return "N/A"
	}
	return s[0]
}
