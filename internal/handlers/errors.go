package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pkowalski/codeplay/backend/internal/services"
	"github.com/pkowalski/codeplay/backend/pkg/response"
)

// handleServiceError maps the service error taxonomy onto the response
// envelope. Every failure surfaces as a non-blocking notification on the
// frontend; nothing propagates past the handler boundary.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var formatErr *services.FormatError
	var storageErr *services.StorageUnavailableError

	switch {
	case errors.Is(err, services.ErrConfirmReplace):
		response.Error(c, response.NewConflict(err.Error()))
	case errors.As(err, &validationErr):
		response.Error(c, response.NewBadRequest(validationErr.Msg))
	case errors.As(err, &notFoundErr):
		response.Error(c, response.NewNotFound(notFoundErr.Msg))
	case errors.As(err, &formatErr):
		response.Error(c, response.NewUnprocessable(formatErr.Msg))
	case errors.As(err, &storageErr):
		response.Error(c, response.NewUnavailable(storageErr.Error()))
	default:
		response.Error(c, err)
	}
}
