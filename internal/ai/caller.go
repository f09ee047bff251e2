package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// UsedModelKey tags a parsed response with the provider that produced it.
const UsedModelKey = "_used_model"

var (
	// ErrExhausted is returned after every provider has failed on every
	// outer attempt.
	ErrExhausted = errors.New("ai orchestration failed: all providers returned errors")

	// ErrAtCapacity wraps ErrExhausted when the failures included a
	// rate-limit/quota signal; handlers map it to a retry-later response.
	ErrAtCapacity = errors.New("ai at capacity")
)

const (
	maxAttempts    = 3
	initialBackoff = 5 * time.Second
	longTripDays   = 5
)

// Caller tries an ordered list of model providers with whole-pass retries and
// normalizes the chosen provider's output into a parsed JSON object.
type Caller struct {
	providers []Provider
	mockMode  bool

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

func NewCaller(providers []Provider, mockMode bool) *Caller {
	return &Caller{
		providers: providers,
		mockMode:  mockMode,
		sleep:     time.Sleep,
	}
}

// Generate runs the fallback state machine for one prompt and returns the
// parsed response tagged with the producing provider's name.
//
// Per outer attempt (up to 3): each provider is tried in order; an empty
// response, a quota signal, a parsed non-object payload, or any other failure
// moves to the next provider with no backoff. A response that fails to parse
// even after repair is fatal for the whole attempt. Between attempts the
// backoff doubles, starting at 5s.
func (c *Caller) Generate(ctx context.Context, prompt string, params TripParams, mock MockContext) (map[string]any, error) {
	if c.mockMode {
		return MockItinerary(params, mock), nil
	}

	providers := c.orderedProviders(params.Days)
	backoff := initialBackoff
	sawQuota := false

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		for _, p := range providers {
			log.Printf("ai: sending request to %s (attempt %d)", p.Name(), attempt)

			raw, err := p.Invoke(ctx, prompt)
			if err != nil {
				log.Printf("ai: model %s failed: %v", p.Name(), err)
				if isQuotaSignal(err) {
					sawQuota = true
				}
				continue
			}
			if strings.TrimSpace(raw) == "" {
				log.Printf("ai: model %s returned empty, trying next", p.Name())
				continue
			}

			text := stripCodeFences(raw)
			val, perr := parseJSON(text)
			if perr != nil {
				log.Printf("ai: JSON parsing failed, attempting repair")
				val, perr = parseJSON(RepairJSON(text))
				if perr != nil {
					// Unrecoverable output this pass; abort the provider
					// loop and retry the whole ladder after backoff.
					log.Printf("ai: repair failed for %s: %v", p.Name(), perr)
					break
				}
			}

			// Valid JSON that is not an object is a per-provider failure,
			// not a parse failure; the next provider still gets a shot.
			parsed, ok := val.(map[string]any)
			if !ok {
				log.Printf("ai: model %s returned non-object JSON, trying next", p.Name())
				continue
			}

			log.Printf("ai: JSON parsed successfully from %s", p.Name())
			parsed[UsedModelKey] = p.Name()
			return parsed, nil
		}

		if attempt < maxAttempts {
			log.Printf("ai: all models failed on attempt %d, waiting %s", attempt, backoff)
			c.sleep(backoff)
			backoff *= 2
		}
	}

	if sawQuota {
		return nil, fmt.Errorf("%w: %w", ErrAtCapacity, ErrExhausted)
	}
	return nil, ErrExhausted
}

// orderedProviders returns the provider ladder, moving the long-context model
// to the front for trips longer than five days.
func (c *Caller) orderedProviders(days int) []Provider {
	if days <= longTripDays {
		return c.providers
	}
	ordered := make([]Provider, 0, len(c.providers))
	for _, p := range c.providers {
		if p.Name() == GeminiModelName {
			ordered = append([]Provider{p}, ordered...)
		} else {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

func parseJSON(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// stripCodeFences removes markdown code-block wrapping if present
// (e.g. ```json ... ```), keeping only the fenced content.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "```") {
		return s
	}
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
	}
	if j := strings.Index(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}

func isQuotaSignal(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota")
}
