package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeAuth          ErrorType = "AUTH"
	TypeVCS           ErrorType = "VCS"
	TypeAI            ErrorType = "AI"
	TypeStorage       ErrorType = "STORAGE"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets sentinel AppErrors match wrapped copies produced by WithError and
// WithContext, so callers can use errors.Is against the package sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Auth errors
var (
	ErrAuthRequired = NewAppError(TypeAuth, "No active session", nil).
			WithSuggestion("Sign in first, then retry")

	ErrNotConnected = NewAppError(TypeAuth, "GitHub account is not connected", nil).
			WithSuggestion("Connect your GitHub account from the integrations page")

	ErrTokenExpired = NewAppError(TypeAuth, "GitHub token is invalid or expired", nil).
			WithSuggestion("Reconnect your GitHub account to issue a fresh token")
)

// VCS errors
var (
	ErrRateLimited = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
			WithSuggestion("Wait a few minutes and try again")

	ErrInvalidRepoName = NewAppError(TypeVCS, "Repository name must be in owner/repo form", nil).
				WithSuggestion("Pass the full name, e.g. acme/widgets")

	ErrUpstream = NewAppError(TypeVCS, "GitHub API request failed", nil).
			WithSuggestion("Check repository access and network connectivity")
)

// Storage errors
var (
	ErrTokenNotFound = NewAppError(TypeStorage, "No stored token for this user and provider", nil)

	ErrStorageUnavailable = NewAppError(TypeStorage, "Token store is unavailable", nil).
				WithSuggestion("Verify DATABASE_URL and that the database is reachable")
)

// Configuration errors
var (
	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
		WithSuggestion("Set CODULA_USER and DATABASE_URL in the environment")
)

// AI errors
var (
	ErrBackendNotConfigured = NewAppError(TypeAI, "AI backend credential is not set", nil)

	ErrInvalidAIOutput = NewAppError(TypeAI, "invalid AI output format", nil).
				WithSuggestion("This is likely a temporary issue, please try again")
)
