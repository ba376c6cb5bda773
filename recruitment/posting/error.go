package posting

import (
	"net/http"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
)

var postingRegistry = errx.NewRegistry("POSTING")

var (
	ErrPostingNotFoundCode = postingRegistry.Register(
		"NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Job posting not found",
	)

	ErrInvalidRequestCode = postingRegistry.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid posting request",
	)

	ErrRecruiterNotFoundCode = postingRegistry.Register(
		"RECRUITER_NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Recruiter not found",
	)

	ErrAuthenticationFailedCode = postingRegistry.Register(
		"AUTHENTICATION_FAILED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid credentials",
	)

	ErrRepositoryCode = postingRegistry.Register(
		"REPOSITORY_ERROR",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Posting storage operation failed",
	)
)

func ErrPostingNotFound() *errx.Error {
	return postingRegistry.New(ErrPostingNotFoundCode)
}

func ErrInvalidRequest(cause error) *errx.Error {
	if cause != nil {
		return postingRegistry.NewWithCause(ErrInvalidRequestCode, cause)
	}
	return postingRegistry.New(ErrInvalidRequestCode)
}

func ErrRecruiterNotFound() *errx.Error {
	return postingRegistry.New(ErrRecruiterNotFoundCode)
}

// ErrAuthenticationFailed is intentionally generic so callers cannot
// distinguish an unknown email from a wrong password.
func ErrAuthenticationFailed() *errx.Error {
	return postingRegistry.New(ErrAuthenticationFailedCode)
}

func ErrRepository(cause error) *errx.Error {
	return postingRegistry.NewWithCause(ErrRepositoryCode, cause)
}
