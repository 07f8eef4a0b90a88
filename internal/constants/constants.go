package constants

const (
	// ContextKeyUserID is the gin context key holding the verified subject id.
	ContextKeyUserID = "user_id"
	// ContextKeyUser holds the loaded *models.User, which may be nil.
	ContextKeyUser = "user"
	// ContextKeyRequestID holds the request id assigned by middleware.RequestID.
	ContextKeyRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"
	BearerPrefix    = "Bearer "

	MinPasswordLength = 6

	JoinCodeLength      = 6
	JoinCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	MaxJoinCodeAttempts = 10

	SummaryLength = 150
	SummarySuffix = "... (AI generated summary)"

	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Calendar colors used by the project event feed.
const (
	ColorProjectStart = "#17a2b8"
	ColorProjectEnd   = "#fd7e14"
	ColorTaskDue      = "#ffc107"
	ColorCustomEvent  = "#007bff"
)
