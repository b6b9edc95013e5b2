package constants

// HTTP Header Names
const (
	HeaderContentType       = "Content-Type"
	HeaderUserAgent         = "User-Agent"
	HeaderXRequestID        = "X-Request-ID"
	HeaderXForwardedFor     = "X-Forwarded-For"
	HeaderXForwardedProto   = "X-Forwarded-Proto"
	HeaderXRealIP           = "X-Real-IP"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized   = "Unauthorized access"
	MsgForbidden      = "Access forbidden"
	MsgNotFound       = "Resource not found"
	MsgInternalError  = "Internal server error"
	MsgTooManyRequest = "Rate limit exceeded"
)
