// Package metricsource reads request counter series from the Prometheus HTTP API.
package metricsource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

const queryPath = "/api/v1/query"

const (
	labelApplication = "application"
	labelURI         = "uri"
	labelMethod      = "method"
)

type queryResponse struct {
	Status    string `json:"status"`
	ErrorType string `json:"errorType,omitempty"`
	Error     string `json:"error,omitempty"`
	Data      struct {
		ResultType string `json:"resultType"`
		Result     []struct {
			Metric map[string]string `json:"metric"`
		} `json:"result"`
	} `json:"data"`
}

// PrometheusClient implements coverage.MetricSource with an instant query.
type PrometheusClient struct {
	client  *resty.Client
	baseURL string
	timeout time.Duration
}

var _ coverage.MetricSource = (*PrometheusClient)(nil)

func NewPrometheusClient(client *resty.Client, baseURL string, timeout time.Duration) *PrometheusClient {
	return &PrometheusClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

func (c *PrometheusClient) Query(ctx context.Context, promql string) ([]coverage.MetricSample, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body queryResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("query", promql).
		SetResult(&body).
		Get(c.baseURL + queryPath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeTimeout,
				"metrics backend timed out", err, "metricsource-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"metrics backend unreachable", err, "metricsource-002")
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("metrics backend returned status %d", resp.StatusCode()), nil, "metricsource-003")
	}
	if body.Status != "success" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("metrics query failed: %s %s", body.ErrorType, body.Error), nil, "metricsource-004")
	}

	samples := make([]coverage.MetricSample, 0, len(body.Data.Result))
	for _, series := range body.Data.Result {
		samples = append(samples, coverage.MetricSample{
			Application: series.Metric[labelApplication],
			URI:         series.Metric[labelURI],
			Method:      series.Metric[labelMethod],
			Labels:      series.Metric,
		})
	}
	return samples, nil
}
