package service

import "errors"

// User-facing error conditions. Handlers map these to HTTP statuses; anything
// else is treated as an infrastructure failure.
var (
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrAlreadyUnlocked     = errors.New("candidate already unlocked")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrStageNotFound       = errors.New("pipeline stage not found")
	ErrStageExists         = errors.New("pipeline stage already exists")
	ErrStageConflict       = errors.New("candidate was moved concurrently")
	ErrJobNotFound         = errors.New("job posting not found")
	ErrJobClosed           = errors.New("job posting is closed")
	ErrAlreadyApplied      = errors.New("candidate already applied to this job")
)
