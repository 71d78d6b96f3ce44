package careercompass

import "github.com/kailas-cloud/careercompass/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrDataAccess             = domain.ErrDataAccess
	ErrInvalidSchema          = domain.ErrInvalidSchema
	ErrUnknownField           = domain.ErrUnknownField
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrPredictorDisabled      = domain.ErrPredictorDisabled
	ErrPredictorProviderError = domain.ErrPredictorProviderError
)
