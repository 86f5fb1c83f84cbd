package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/epq-service/internal/domain/dto"
	"github.com/guttosm/epq-service/internal/i18n"
	"github.com/guttosm/epq-service/internal/middleware"
)

// Validator is implemented by request bodies that check themselves after binding.
type Validator interface {
	Validate() error
}

// BindJSON decodes the JSON body into a T and validates it when T is a Validator.
func BindJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the API envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.NewSuccess(data, middleware.GetRequestID(b.c)))
}

// SuccessOK writes data with 200 OK.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// Error writes a localised ErrorResponse and records err for the request log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorResponse(statusCode, b.translate(messageKey), err)
}

// ErrorResponse writes an ErrorResponse with an already translated message.
func (b *ResponseBuilder) ErrorResponse(statusCode int, message string, err error) {
	resp := dto.NewError(dto.ErrCodeFromStatus(statusCode), message).WithRequestID(middleware.GetRequestID(b.c))
	if err != nil {
		// Recorded for RequestLogger; the body is already written here.
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp)
}

func (b *ResponseBuilder) translate(key string) string {
	return i18n.GetTranslator().Translate(key, i18n.GetLocale(b.c))
}
