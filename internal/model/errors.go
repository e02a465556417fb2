package model

import "errors"

var (
	// ErrInvalidInput is returned when text is empty or whitespace-only
	ErrInvalidInput = errors.New("text is required")

	// ErrUpstreamUnavailable marks a failed paraphrase upstream call
	// It is always recovered by falling back to the rule-driven transformer
	ErrUpstreamUnavailable = errors.New("paraphrase upstream unavailable")

	// ErrInternalComputation is reserved for defects; zero-denominator guards keep it unreachable
	ErrInternalComputation = errors.New("internal computation error")
)
