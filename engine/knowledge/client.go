package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/infopoison/alchemist-workbench/engine/core"
	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

// pluralTypes maps a component type to its route segment.
var pluralTypes = map[core.ComponentType]string{
	core.ComponentPlanet:     "planets",
	core.ComponentZodiacSign: "zodiac_signs",
	core.ComponentHouse:      "houses",
	core.ComponentNode:       "nodes",
	core.ComponentDynamic:    "dynamics",
	core.ComponentAngle:      "angles",
	core.ComponentAsteroid:   "asteroids",
}

// Pluralize returns the route segment for a component type. Unknown types
// pass through unchanged so the server can report them as not found.
func Pluralize(t core.ComponentType) string {
	if plural, ok := pluralTypes[t]; ok {
		return plural
	}
	return string(t)
}

// ClientConfig tunes the knowledge-base client. The timeout is short: these
// are interactive in-memory lookups on the other side.
type ClientConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

// Client fetches component records from the knowledge-base collaborator.
// Network-level failures are retried with a constant backoff; responses the
// server actually produced (404s, 5xx) are never retried, since retrying
// would not change the outcome.
type Client struct {
	http     *resty.Client
	attempts int
	backoff  time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Client{
		http:     resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(cfg.Timeout),
		attempts: attempts,
		backoff:  backoff,
	}
}

// GetComponent resolves one component reference. A 404 is fatal for the
// request: the caller asked for this component explicitly.
func (c *Client) GetComponent(ctx context.Context, component core.Component) (core.ComponentData, error) {
	log := logger.FromContext(ctx)
	url := "/components/" + Pluralize(component.Type) + "/" + component.ID

	var data core.ComponentData
	backoff := retry.WithMaxRetries(uint64(c.attempts-1), retry.NewConstant(c.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			log.Warn("network error contacting knowledge base, will retry", "url", url, "error", err)
			return retry.RetryableError(core.NewError(core.CodeUpstreamUnavailable,
				"network error contacting the knowledge base", err))
		}
		if resp.StatusCode() == http.StatusNotFound {
			return core.NewErrorf(core.CodeComponentNotFound,
				"the requested component '%s' of type '%s' does not exist",
				component.ID, component.Type)
		}
		if !resp.IsSuccess() {
			return core.NewErrorf(core.CodeUpstreamUnavailable,
				"knowledge base returned status %d", resp.StatusCode())
		}
		if err := json.Unmarshal(resp.Body(), &data); err != nil {
			return core.NewError(core.CodeUpstreamUnavailable,
				"knowledge base returned an unparsable body", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
