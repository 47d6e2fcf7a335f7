package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrMajorNotFound ErrCode = "MAJOR_NOT_FOUND"

	// ─── Enrichment ────────────────────────────────────────────────────
	ErrGenerationFailed ErrCode = "GENERATION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the client-safe message for a given error code. No
// internal detail (SQL, stack traces, model output) ever reaches clients.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "请求参数校验失败。"
	case ErrInvalidPayload:
		return "请求格式不正确。"
	case ErrMajorNotFound:
		return "无法获取专业信息"
	case ErrGenerationFailed:
		return "获取专业信息失败"
	case ErrRateLimitExceeded:
		return "请求过于频繁，请稍后再试。"
	case ErrInternal:
		return "服务器内部错误"
	default:
		return "发生未知错误"
	}
}
