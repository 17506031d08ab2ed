package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrUnknownChart ErrCode = "UNKNOWN_CHART"

	// ─── Export ────────────────────────────────────────────────────────
	ErrExportFailed ErrCode = "EXPORT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrNotFound:
		return "Resource not found."
	case ErrUnknownChart:
		return "No chart builder is registered under that name."
	case ErrExportFailed:
		return "The report could not be generated."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
