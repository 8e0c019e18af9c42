package types

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrInternalError = "internal server error"
)

// Machine-readable error codes surfaced alongside messages.
const (
	CodeInvalidArgument = "invalid_argument"
	CodeConflict        = "conflict"
	CodeNotFound        = "not_found"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeInternal        = "internal"
)

// StatusForCode maps an error code to the HTTP status the API sends.
// Conflicts are reported as 400, matching the original backend.
func StatusForCode(code string) int {
	switch code {
	case CodeInvalidArgument, CodeConflict:
		return 400
	case CodeNotFound:
		return 404
	case CodeUnauthorized:
		return 401
	case CodeForbidden:
		return 403
	default:
		return 500
	}
}
