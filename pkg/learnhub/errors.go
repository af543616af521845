package learnhub

import "github.com/kailas-cloud/learnhub/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidScale = domain.ErrInvalidScale
	ErrInvalidInput = domain.ErrInvalidInput
)
