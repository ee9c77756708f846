package planner

import "errors"

var (
	// ErrProviderFormat means the generation service answered, but the
	// payload failed schema validation. Surfaced as a retry suggestion,
	// never retried automatically.
	ErrProviderFormat = errors.New("provider returned data in an unexpected format")

	// ErrProviderQuota maps rate-limit responses from the provider.
	ErrProviderQuota = errors.New("provider quota exceeded")

	// ErrTransport covers network and other non-quota provider failures.
	ErrTransport = errors.New("provider request failed")

	// ErrPlanFormatIncompatible is returned when a legacy string-format
	// plan reaches the structured-only adjustment path.
	ErrPlanFormatIncompatible = errors.New("legacy plan format cannot be adjusted")
)
