package planner

import "errors"

// ErrConfig marks fatal construction-time failures (missing or rejected API
// keys, bad model settings). Distinct from runtime errors so callers can fail
// fast at startup.
var ErrConfig = errors.New("planner configuration")

// ErrInvalidInput marks plan requests rejected before any network activity.
var ErrInvalidInput = errors.New("invalid plan request")

// ErrPlanFailed is the single uniform error for everything that goes wrong
// after validation. The original cause's message is carried in the wrap, so
// callers have one error type to handle.
var ErrPlanFailed = errors.New("plan generation failed")
