package llmadapter

import (
	"strings"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

var rateLimitPatterns = []string{
	"rate limit", "rate-limit", "ratelimit", "rate_limit_error",
	"too many requests", "throttled", "throttling",
	"quota exceeded", "quota_exceeded", "insufficient_quota",
	"requests per minute", "requests per second",
}

var contentPolicyPatterns = []string{
	"content policy", "content_policy", "content filter", "content_filter",
	"safety", "blocked by", "refused to", "flagged",
}

// ClassifyError maps a raw provider failure onto the closed error
// taxonomy. Rate limiting and content blocking carry distinct codes so
// callers can surface 429 vs 503; everything else is upstream trouble.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range rateLimitPatterns {
		if strings.Contains(msg, pattern) {
			return core.NewError(core.CodeSynthesisRateLimited, "generative model rate limited the request", err)
		}
	}
	for _, pattern := range contentPolicyPatterns {
		if strings.Contains(msg, pattern) {
			return core.NewError(core.CodeSynthesisContentBlocked, "generative model blocked the request content", err)
		}
	}
	return core.NewError(core.CodeUpstreamUnavailable, "generative model provider is unavailable", err)
}
