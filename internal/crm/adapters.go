package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Adapter delivers one formatted payload to a CRM. The credential is the
// value the user stored in account settings: an API token for Podio/Notion,
// a webhook or endpoint URL for GoHighLevel and REI Reply.
type Adapter interface {
	Push(ctx context.Context, payload map[string]any, credential string) error
}

func newRetryClient() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	return rc
}

// httpAdapter posts JSON to a CRM endpoint. With endpoint == "" the
// credential itself is the target URL (webhook-style CRMs).
type httpAdapter struct {
	name     string
	endpoint string
	bearer   bool
	headers  map[string]string
	http     *retryablehttp.Client
}

func (a *httpAdapter) Push(ctx context.Context, payload map[string]any, credential string) error {
	target := a.endpoint
	if target == "" {
		target = credential
	}
	if target == "" {
		return fmt.Errorf("%s: no endpoint configured", a.name)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.bearer {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	for k, v := range a.headers {
		req.Header.Set(k, v)
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var detail map[string]any
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&detail)
		return fmt.Errorf("%s API error %d: %v", a.name, resp.StatusCode, detail)
	}
	return nil
}

func defaultAdapters() map[string]Adapter {
	rc := newRetryClient()
	return map[string]Adapter{
		GoHighLevel: &httpAdapter{name: GoHighLevel, http: rc},
		REIReply:    &httpAdapter{name: REIReply, http: rc},
		Podio: &httpAdapter{
			name:     Podio,
			endpoint: "https://api.podio.com/item/app",
			bearer:   true,
			http:     rc,
		},
		Notion: &httpAdapter{
			name:     Notion,
			endpoint: "https://api.notion.com/v1/pages",
			bearer:   true,
			headers:  map[string]string{"Notion-Version": "2022-06-28"},
			http:     rc,
		},
	}
}
