package chart

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/infopoison/alchemist-workbench/engine/core"
	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

// Client talks to the external ephemeris provider and runs every response
// through Normalize before anyone else sees it.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	host := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("X-RapidAPI-Host", host).
		SetHeader("X-RapidAPI-Key", apiKey).
		SetHeader("Content-Type", "application/json")
	return &Client{http: http}
}

// NatalChart casts a chart for the given birth data.
func (c *Client) NatalChart(ctx context.Context, req *Request) (*Chart, error) {
	payload, err := buildSubjectPayload(req)
	if err != nil {
		return nil, core.NewError(core.CodeInvalidBirthData, err.Error(), err)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/v4/birth-chart")
	if err != nil {
		return nil, core.NewError(core.CodeUpstreamUnavailable,
			"network error contacting the chart provider", err)
	}
	if resp.StatusCode() == 422 {
		return nil, core.NewErrorf(core.CodeInvalidBirthData,
			"chart provider rejected the birth data: %s", resp.String())
	}
	if !resp.IsSuccess() {
		logger.FromContext(ctx).Error("chart provider returned an error",
			"status", resp.StatusCode(), "body", resp.String())
		return nil, core.NewErrorf(core.CodeUpstreamUnavailable,
			"chart provider returned status %d", resp.StatusCode())
	}
	return Normalize(ctx, resp.Body(), req)
}

// buildSubjectPayload splits the request's date and time strings into the
// numeric fields the provider wants.
func buildSubjectPayload(req *Request) (map[string]any, error) {
	dateParts := strings.Split(req.Date, "-")
	timeParts := strings.Split(req.Time, ":")
	if len(dateParts) != 3 || len(timeParts) < 2 {
		return nil, fmt.Errorf("birth date must be YYYY-MM-DD and time HH:MM:SS")
	}
	nums := make([]int, 0, 5)
	for _, part := range append(dateParts, timeParts[0], timeParts[1]) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("birth date/time contains a non-numeric part %q", part)
		}
		nums = append(nums, n)
	}
	return map[string]any{
		"subject": map[string]any{
			"name":      req.Name,
			"city":      req.City,
			"year":      nums[0],
			"month":     nums[1],
			"day":       nums[2],
			"hour":      nums[3],
			"minute":    nums[4],
			"latitude":  req.Latitude,
			"longitude": req.Longitude,
			"timezone":  req.Timezone,
		},
	}, nil
}

// ServiceClient is the collaborator client the interpretation engine uses to
// reach the chart route, wherever it is deployed.
type ServiceClient struct {
	http *resty.Client
}

func NewServiceClient(baseURL string, timeout time.Duration) *ServiceClient {
	return &ServiceClient{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// NatalChart requests a normalized chart. A 422 means the caller's birth data
// is bad; anything else that is not a success is a transient upstream
// failure. No retry here: ephemeris computation is slow and chart failures
// are terminal for the request.
func (c *ServiceClient) NatalChart(ctx context.Context, req *Request) (*Chart, error) {
	out := &Chart{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(out).
		Post("/chart")
	if err != nil {
		return nil, core.NewError(core.CodeUpstreamUnavailable,
			"network error contacting the chart service", err)
	}
	if resp.StatusCode() == 422 {
		return nil, core.NewErrorf(core.CodeInvalidBirthData,
			"invalid birth data: %s", resp.String())
	}
	if !resp.IsSuccess() {
		return nil, core.NewErrorf(core.CodeUpstreamUnavailable,
			"chart service returned status %d", resp.StatusCode())
	}
	return out, nil
}
