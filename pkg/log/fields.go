package log

// Field names shared by every log line. HTTP status and friendship status
// are kept apart so a query on one never matches the other.
const (
	FieldService = "service"

	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldClientIP   = "client_ip"
	FieldHTTPStatus = "http_status"
	FieldDuration   = "duration_ms"

	// FieldUserID is also the gin context key RequireAuth sets.
	FieldUserID    = "user_id"
	FieldSessionID = "session_id"

	FieldFriendshipID = "friendship_id"
	FieldTargetID     = "target_id"
	FieldEdgeStatus   = "edge_status"
	FieldStatusType   = "status_type"
	FieldHistoryLimit = "history_limit"
)
