package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/user/ajar/internal/model"
)

// Error codes for structured error responses
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDuplicateKey       = "DUPLICATE_KEY"
	ErrCodeNotLoggedIn        = "NOT_LOGGED_IN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnknownPackage     = "UNKNOWN_PACKAGE"
	ErrCodeInvalidSQL         = "INVALID_SQL"
	ErrCodeHashMismatch       = "HASH_MISMATCH"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// JSONError represents a structured error response for --json output
type JSONError struct {
	Error   bool                   `json:"error"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ExitWithError outputs an error message and exits.
// If --json flag is set, outputs structured JSON error to stdout.
// Otherwise outputs plain text to stderr.
func ExitWithError(code int, errCode, message string, details map[string]interface{}) {
	if GetJSONOutput() {
		errResp := JSONError{
			Error:   true,
			Code:    errCode,
			Message: message,
			Details: details,
		}
		data, _ := json.Marshal(errResp)
		fmt.Fprintln(stdout, string(data))
	} else {
		fmt.Fprintln(stderr, "Error:", message)
	}
	Exit(code)
}

// HandleError maps an error to its exit code and structured response.
func HandleError(err error) {
	var (
		ve  *model.ValidationError
		dup *model.DuplicateKeyError
		nf  *model.NotFoundError
	)

	switch {
	case errors.As(err, &ve):
		ExitValidationError(err.Error(), map[string]interface{}{"field": ve.Field})
	case errors.As(err, &dup):
		ExitWithError(3, ErrCodeDuplicateKey, err.Error(), map[string]interface{}{"key": dup.Key})
	case errors.As(err, &nf):
		ExitNotFound(nf.Key)
	case errors.Is(err, model.ErrNotLoggedIn):
		ExitNotLoggedIn()
	case errors.Is(err, model.ErrInvalidCredentials):
		ExitWithError(4, ErrCodeInvalidCredentials, "email or password is incorrect", nil)
	case errors.Is(err, model.ErrUnknownPackage):
		ExitWithError(2, ErrCodeUnknownPackage, err.Error(), map[string]interface{}{"field": "paketKode"})
	case errors.Is(err, model.ErrHashMismatch):
		ExitWithError(5, ErrCodeHashMismatch, err.Error(), nil)
	case errors.Is(err, model.ErrInvalidSQL):
		ExitWithError(2, ErrCodeInvalidSQL, err.Error(), nil)
	default:
		ExitWithError(1, ErrCodeInternal, err.Error(), nil)
	}
}

// ExitNotFound outputs a record not found error
func ExitNotFound(key string) {
	ExitWithError(1, ErrCodeNotFound,
		fmt.Sprintf("record '%s' not found", key),
		map[string]interface{}{"key": key})
}

// ExitValidationError outputs a validation error
func ExitValidationError(message string, details map[string]interface{}) {
	ExitWithError(2, ErrCodeValidation, message, details)
}

// ExitNotLoggedIn outputs an error for commands that need a session
func ExitNotLoggedIn() {
	ExitWithError(4, ErrCodeNotLoggedIn,
		"not logged in (use 'ajar login <email>' first)",
		nil)
}

// ExitInvalidSQL outputs an error for invalid SQL
func ExitInvalidSQL(message string, query string) {
	ExitWithError(2, ErrCodeInvalidSQL, message,
		map[string]interface{}{"query": query})
}
