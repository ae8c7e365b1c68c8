package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

const statCanLatestPath = "/getDataFromVectorsAndLatestNPeriods"

// StatCan reads vectors from the Statistics Canada Web Data Service.
type StatCan struct {
	baseURL string
	http    HTTPDoer
	logger  *slog.Logger
}

func NewStatCan(baseURL string, doer HTTPDoer, logger *slog.Logger) *StatCan {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatCan{baseURL: strings.TrimRight(baseURL, "/"), http: doer, logger: logger}
}

type wdsRequest struct {
	VectorID int64 `json:"vectorId"`
	LatestN  int   `json:"latestN"`
}

// wdsResponse carries the vector on success and an error string otherwise.
type wdsResponse struct {
	Status string          `json:"status"`
	Object json.RawMessage `json:"object"`
}

type wdsVector struct {
	VectorID   int64 `json:"vectorId"`
	DataPoints []struct {
		RefPer string   `json:"refPer"`
		Value  *float64 `json:"value"`
	} `json:"vectorDataPoint"`
}

// FetchSeries implements port.StatisticsGateway. Entries with a non-success
// status and points without a value are skipped.
func (s *StatCan) FetchSeries(ctx context.Context, reqs []port.SeriesRequest) ([]domain.Series, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	body := make([]wdsRequest, 0, len(reqs))
	for _, r := range reqs {
		body = append(body, wdsRequest{VectorID: r.Vector, LatestN: r.Periods})
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+statCanLatestPath, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: statcan: %v", port.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: statcan: status %d", port.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var decoded []wdsResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: statcan: decode: %v", port.ErrUpstreamUnavailable, err)
	}

	out := make([]domain.Series, 0, len(decoded))
	for _, d := range decoded {
		var v wdsVector
		if d.Status != "SUCCESS" || json.Unmarshal(d.Object, &v) != nil {
			s.logger.Debug("statcan vector skipped", slog.String("status", d.Status), slog.String("object", string(d.Object)))
			continue
		}
		id := strconv.FormatInt(v.VectorID, 10)
		series := domain.Series{ID: id}
		for _, p := range v.DataPoints {
			if p.Value == nil {
				continue
			}
			period, err := parsePeriod(p.RefPer)
			if err != nil {
				continue
			}
			series.Observations = append(series.Observations, domain.Observation{SeriesID: id, Period: period, Value: *p.Value})
		}
		out = append(out, series)
	}
	return out, nil
}

// parsePeriod reads reference periods written as YYYY-MM-DD or YYYY-MM.
func parsePeriod(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01", s)
}
