// Package sources defines the per-tier representative data adapters. Each
// adapter owns its own request shaping against an independent registry but
// normalizes output into the shared Representative shape, tagged with its
// source tier, so the aggregator can treat all tiers identically.
package sources

import (
	"context"
	"errors"
	"fmt"

	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
)

// Source is the capability interface every tier adapter implements.
type Source interface {
	// Tier identifies which government tier this adapter serves.
	Tier() domain.Level

	// FetchByZip returns the normalized roster for a ZIP code. Failures are
	// returned as *SourceError so the aggregator can categorize them; an
	// adapter must never panic into the aggregation.
	FetchByZip(ctx context.Context, zip string, opts models.Options) ([]models.Representative, error)
}

// ErrorCategory is the normalized failure taxonomy for tier adapters.
type ErrorCategory string

const (
	// ErrorTimeout: the registry took too long to respond.
	ErrorTimeout ErrorCategory = "timeout"
	// ErrorOutage: the registry is unavailable.
	ErrorOutage ErrorCategory = "outage"
	// ErrorBadData: the registry returned malformed data.
	ErrorBadData ErrorCategory = "bad_data"
	// ErrorInternal: an unexpected adapter failure.
	ErrorInternal ErrorCategory = "internal"
)

// SourceError wraps a tier adapter failure with normalized categorization.
type SourceError struct {
	Category   ErrorCategory
	Tier       domain.Level
	Message    string
	Underlying error
	Retryable  bool // whether the aggregator's single retry is worthwhile
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("source %s [%s]: %s: %v", e.Tier, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("source %s [%s]: %s", e.Tier, e.Category, e.Message)
}

// Unwrap supports error unwrapping.
func (e *SourceError) Unwrap() error {
	return e.Underlying
}

// NewSourceError creates a normalized adapter error. Timeouts and outages are
// retryable; data faults are not.
func NewSourceError(category ErrorCategory, tier domain.Level, message string, underlying error) *SourceError {
	return &SourceError{
		Category:   category,
		Tier:       tier,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTimeout || category == ErrorOutage,
	}
}

// IsRetryable checks if an error is worth the single per-tier retry.
func IsRetryable(err error) bool {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// CategoryOf extracts the error category, defaulting to internal.
func CategoryOf(err error) ErrorCategory {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Category
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	return ErrorInternal
}
