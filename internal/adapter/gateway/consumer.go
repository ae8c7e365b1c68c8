package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"campaign-optimizer/internal/core/port"
)

// ConsumerAPI reads consumer-behaviour snapshots from a JSON endpoint
// taking industry and geography query parameters.
type ConsumerAPI struct {
	endpoint string
	http     HTTPDoer
}

// NewConsumerAPI returns a source that always reports
// port.ErrUpstreamUnavailable when endpoint is empty.
func NewConsumerAPI(endpoint string, doer HTTPDoer) *ConsumerAPI {
	return &ConsumerAPI{endpoint: endpoint, http: doer}
}

func (c *ConsumerAPI) Fetch(ctx context.Context, industry, geography string) (*port.ConsumerSnapshot, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%w: consumer endpoint not configured", port.ErrUpstreamUnavailable)
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("industry", industry)
	q.Set("geography", geography)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: consumer: %v", port.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: consumer: status %d", port.ErrUpstreamUnavailable, resp.StatusCode)
	}
	var snap port.ConsumerSnapshot
	if err = json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: consumer: decode: %v", port.ErrUpstreamUnavailable, err)
	}
	return &snap, nil
}
