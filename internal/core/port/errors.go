package port

import (
	"errors"
	"strings"
)

var (
	ErrCampaignNotFound       = errors.New("campaign not found or access denied")
	ErrOptimizationNotFound   = errors.New("optimization not found or access denied")
	ErrValidationFailed       = errors.New("questionnaire validation failed")
	ErrInvalidTransition      = errors.New("invalid optimization status transition")
	ErrOptimizationInProgress = errors.New("optimization already in progress for campaign")
	ErrNotCompleted           = errors.New("optimization not completed")
	ErrUpstreamUnavailable    = errors.New("upstream data source unavailable")
	ErrLockNotAcquired        = errors.New("lock not acquired")
)

// ValidationError carries the per-field messages of a rejected
// questionnaire submission. It matches ErrValidationFailed with errors.Is.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
