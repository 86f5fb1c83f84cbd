package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/epq-service/internal/domain/dto"
	"github.com/guttosm/epq-service/internal/i18n"
	"github.com/guttosm/epq-service/internal/logger"
)

// ErrorMapper translates an error collected with c.Error into a status and
// envelope. It returns false for errors it does not recognise.
type ErrorMapper func(c *gin.Context, err error) (int, dto.ErrorResponse, bool)

// ErrorHandler logs the last collected error once the handler returns and,
// unless the handler already wrote a response, writes one. Mappers are
// tried in order; unmapped errors become a 500.
func ErrorHandler(mappers ...ErrorMapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		requestID := GetRequestID(c)

		written := c.Writer.Written()
		status := http.StatusInternalServerError
		var resp dto.ErrorResponse
		if written {
			status = c.Writer.Status()
		} else {
			resp = dto.NewError(dto.ErrCodeInternal, i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c)))
			for _, m := range mappers {
				if s, r, ok := m(c, err); ok {
					status, resp = s, r
					break
				}
			}
		}

		log := logger.Logger()
		var evt *zerolog.Event
		if status >= http.StatusInternalServerError {
			evt = log.Error()
		} else {
			evt = log.Warn()
		}
		evt.Str("request_id", requestID).
			Err(err).
			Int("status_code", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !written {
			c.JSON(status, resp.WithRequestID(requestID))
		}
	}
}
