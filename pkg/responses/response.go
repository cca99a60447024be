package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elite-fire/ledger/pkg/apperrors"
)

// ErrorResponse is the body of every non-2xx reply. The dashboard client
// reads only the message field, so that is the whole contract.
type ErrorResponse struct {
	Message string `json:"message"`
}

// AckResponse acknowledges a mutation that returns no entity.
type AckResponse struct {
	OK bool `json:"ok"`
}

// Entity sends a success response carrying the entity (or slice) as-is.
func Entity(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Ack sends a bare acknowledgement.
func Ack(c *gin.Context) {
	c.JSON(http.StatusOK, AckResponse{OK: true})
}

// Error maps a domain error onto its HTTP status and sends {message}.
func Error(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), ErrorResponse{Message: apperrors.MessageOf(err)})
}

// SendError sends {message} with an explicit status, for failures that
// originate in the HTTP layer itself (bad JSON, missing header).
func SendError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Message: message})
}

func statusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindAuth:
		return http.StatusUnauthorized
	case apperrors.KindAuthorization:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict, apperrors.KindState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
