package api

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	domrepo "SwingSignal/internal/domain/repository"
	"SwingSignal/internal/usecase"
	xhttp "SwingSignal/pkg/http"
	applogger "SwingSignal/pkg/logger"
)

// errorResponse maps use case errors onto the response envelope.
func errorResponse(c echo.Context, log *applogger.Logger, op string, err error) error {
	var appErr *xhttp.AppError
	switch {
	case errors.As(err, &appErr):
	case usecase.IsPrecondition(err):
		appErr = xhttp.BadRequestError(err.Error())
	case errors.Is(err, domrepo.ErrNotFound):
		appErr = xhttp.NotFoundError(err.Error())
	case errors.Is(err, usecase.ErrQueueDisabled), errors.Is(err, usecase.ErrStoreDisabled):
		appErr = xhttp.ServiceUnavailableError(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		appErr = xhttp.ServiceUnavailableError("request timed out")
	default:
		log.Error(op+" failed", applogger.String("path", c.Path()), applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.AppErrorResponse(c, appErr.WithError(err))
}
