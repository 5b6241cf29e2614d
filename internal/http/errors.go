package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/meal-planner-service/internal/circuitbreaker"
	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/i18n"
	"github.com/guttosm/meal-planner-service/internal/optimizer"
	"github.com/guttosm/meal-planner-service/internal/repository"
	"github.com/guttosm/meal-planner-service/internal/service"
)

// failure is the HTTP rendering of an error.
type failure struct {
	status     int
	code       string
	messageKey string
	details    map[string]string
}

// classify maps service, optimizer and storage errors to responses.
func classify(err error) failure {
	var (
		validation *dto.ValidationError
		build      *optimizer.ModelBuildError
		violation  *optimizer.InvariantViolation
	)

	switch {
	case errors.As(err, &validation):
		return failure{
			status:     http.StatusBadRequest,
			code:       dto.ErrCodeInvalidRequest,
			messageKey: i18n.ErrKeyValidation,
			details:    map[string]string{"field": validation.Field, "reason": validation.Message},
		}
	case errors.As(err, &build):
		f := failure{
			status:     http.StatusBadRequest,
			code:       dto.ErrCodeInvalidRequest,
			messageKey: i18n.ErrKeyInvalidCatalog,
			details:    map[string]string{"reason": build.Message},
		}
		if build.Field != "" {
			f.details["field"] = build.Field
		}
		return f
	case errors.As(err, &violation):
		return failure{
			status:     http.StatusInternalServerError,
			code:       dto.ErrCodeInvariantViolation,
			messageKey: i18n.ErrKeyInvariantViolation,
			details:    map[string]string{"check": violation.Check},
		}
	case errors.Is(err, service.ErrNoActiveCatalog):
		return simple(http.StatusNotFound, i18n.ErrKeyNoActiveCatalog)
	case errors.Is(err, repository.ErrVersionConflict):
		return simple(http.StatusConflict, i18n.ErrKeyConflict)
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		return simple(http.StatusServiceUnavailable, i18n.ErrKeyStorageNotAvailable)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return simple(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return simple(http.StatusGatewayTimeout, i18n.ErrKeyTimeout)
	default:
		return simple(http.StatusInternalServerError, i18n.ErrKeyInternalError)
	}
}

func simple(status int, messageKey string) failure {
	return failure{status: status, code: dto.ErrCodeFromStatus(status), messageKey: messageKey}
}
