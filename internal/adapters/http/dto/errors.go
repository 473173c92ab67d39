package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, ErrorResponse) {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(err.Error())

	case domain.IsValidation(err):
		return http.StatusBadRequest, NewErrorResponse(err.Error())

	case domain.IsUnauthenticated(err):
		return http.StatusUnauthorized, NewErrorResponse(err.Error())

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(err.Error())

	case domain.IsConfiguration(err):
		// Configuration errors are surfaced verbatim: the operator must
		// see what is misconfigured.
		return http.StatusInternalServerError, NewErrorResponse(err.Error())

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse("an internal error occurred")
	}
}

// HandleError writes the mapped error response to the gin.Context.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	// Log internal errors with full details
	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error", "error", err.Error())
	}

	c.JSON(status, errResp)
}

// AbortError aborts the request chain and writes the mapped error response.
// Use this when further processing must stop, e.g. failed auth checks.
func AbortError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	c.AbortWithStatusJSON(status, errResp)
}
