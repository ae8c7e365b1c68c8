package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

// BankOfCanada reads series from the Valet API.
type BankOfCanada struct {
	baseURL string
	http    HTTPDoer
}

func NewBankOfCanada(baseURL string, doer HTTPDoer) *BankOfCanada {
	return &BankOfCanada{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

type valetResponse struct {
	Observations []map[string]json.RawMessage `json:"observations"`
}

type valetValue struct {
	V string `json:"v"`
}

// FetchObservations implements port.CentralBankGateway. Observations are
// returned oldest first.
func (b *BankOfCanada) FetchObservations(ctx context.Context, series string, periods int) ([]domain.Observation, error) {
	u := fmt.Sprintf("%s/observations/%s/json?recent=%d", b.baseURL, url.PathEscape(series), periods)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: valet: %v", port.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: valet: status %d", port.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var decoded valetResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: valet: decode: %v", port.ErrUpstreamUnavailable, err)
	}

	out := make([]domain.Observation, 0, len(decoded.Observations))
	for _, o := range decoded.Observations {
		var date string
		if err := json.Unmarshal(o["d"], &date); err != nil {
			continue
		}
		var v valetValue
		if err := json.Unmarshal(o[series], &v); err != nil {
			continue
		}
		value, err := strconv.ParseFloat(v.V, 64)
		if err != nil {
			continue
		}
		period, err := parsePeriod(date)
		if err != nil {
			continue
		}
		out = append(out, domain.Observation{SeriesID: series, Period: period, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out, nil
}
