package ranking

import (
	"net/http"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
)

var rankingRegistry = errx.NewRegistry("RANKING")

var (
	ErrRankingNotFoundCode = rankingRegistry.Register(
		"NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"No ranking for this position",
	)

	ErrInvalidRequestCode = rankingRegistry.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid ranking request",
	)

	ErrRepositoryCode = rankingRegistry.Register(
		"REPOSITORY_ERROR",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Ranking storage operation failed",
	)

	ErrQueueCode = rankingRegistry.Register(
		"QUEUE_ERROR",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Ranking rebuild queue operation failed",
	)
)

func ErrRankingNotFound() *errx.Error {
	return rankingRegistry.New(ErrRankingNotFoundCode)
}

func ErrInvalidRequest(cause error) *errx.Error {
	if cause != nil {
		return rankingRegistry.NewWithCause(ErrInvalidRequestCode, cause)
	}
	return rankingRegistry.New(ErrInvalidRequestCode)
}

func ErrRepository(cause error) *errx.Error {
	return rankingRegistry.NewWithCause(ErrRepositoryCode, cause)
}

func ErrQueue(cause error) *errx.Error {
	return rankingRegistry.NewWithCause(ErrQueueCode, cause)
}
