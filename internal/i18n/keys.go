package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest      = "error.invalid_request"
	ErrKeyInvalidRequestBody  = "error.invalid_request_body"
	ErrKeyValidation          = "error.validation"
	ErrKeyInvalidCatalog      = "error.invalid_catalog"
	ErrKeyInternalError       = "error.internal_error"
	ErrKeyInvariantViolation  = "error.invariant_violation"
	ErrKeyUnauthorized        = "error.unauthorized"
	ErrKeyAPIKeyRequired      = "error.api_key_required"
	ErrKeyInvalidAPIKey       = "error.invalid_api_key"
	ErrKeyTokenRequired       = "error.token_required"
	ErrKeyInvalidToken        = "error.invalid_token"
	ErrKeyForbidden           = "error.forbidden"
	ErrKeyNotFound            = "error.not_found"
	ErrKeyNoActiveCatalog     = "error.no_active_catalog"
	ErrKeyConflict            = "error.conflict"
	ErrKeyRateLimitExceeded   = "error.rate_limit_exceeded"
	ErrKeyTimeout             = "error.timeout"
	ErrKeyServiceUnavailable  = "error.service_unavailable"
	ErrKeyStorageNotAvailable = "error.storage_not_available"
)
