package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"

	// ErrKeyInvalidField takes the offending field name.
	ErrKeyInvalidField        = "error.invalid_field"
	ErrKeyNoFeasibleSolution  = "error.no_feasible_solution"
	ErrKeyNonConvexResult     = "error.non_convex_result"
	ErrKeyHistoryUnavailable  = "error.history_unavailable"
	ErrKeyDemandFileRequired  = "error.demand_file_required"
	ErrKeyInvalidDemandCSV    = "error.invalid_demand_csv"
	ErrKeyInvalidHistoryQuery = "error.invalid_history_query"
)
