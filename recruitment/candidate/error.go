package candidate

import (
	"net/http"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
)

var candidateRegistry = errx.NewRegistry("CANDIDATE")

var (
	ErrCandidateNotFoundCode = candidateRegistry.Register(
		"NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Candidate not found",
	)

	ErrCandidateExistsCode = candidateRegistry.Register(
		"ALREADY_EXISTS",
		errx.TypeConflict,
		http.StatusConflict,
		"Candidate already registered for this position",
	)

	ErrInvalidRequestCode = candidateRegistry.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid candidate request",
	)

	ErrAuthenticationFailedCode = candidateRegistry.Register(
		"AUTHENTICATION_FAILED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid credentials",
	)

	ErrCVUnreadableCode = candidateRegistry.Register(
		"CV_UNREADABLE",
		errx.TypeValidation,
		http.StatusUnprocessableEntity,
		"Could not extract text from the uploaded CV",
	)

	ErrRepositoryCode = candidateRegistry.Register(
		"REPOSITORY_ERROR",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Candidate storage operation failed",
	)
)

func ErrCandidateNotFound() *errx.Error {
	return candidateRegistry.New(ErrCandidateNotFoundCode)
}

func ErrCandidateExists() *errx.Error {
	return candidateRegistry.New(ErrCandidateExistsCode)
}

func ErrInvalidRequest(cause error) *errx.Error {
	if cause != nil {
		return candidateRegistry.NewWithCause(ErrInvalidRequestCode, cause)
	}
	return candidateRegistry.New(ErrInvalidRequestCode)
}

// ErrAuthenticationFailed is intentionally generic so callers cannot
// distinguish an unknown email from a wrong password.
func ErrAuthenticationFailed() *errx.Error {
	return candidateRegistry.New(ErrAuthenticationFailedCode)
}

func ErrCVUnreadable(cause error) *errx.Error {
	return candidateRegistry.NewWithCause(ErrCVUnreadableCode, cause)
}

func ErrRepository(cause error) *errx.Error {
	return candidateRegistry.NewWithCause(ErrRepositoryCode, cause)
}
