package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/epq-service/internal/domain/model"
)

// AuditLog records a successful domain action, such as an optimisation run.
func AuditLog(al *AsyncLogger, c *gin.Context, action, message string, fields map[string]interface{}) {
	al.Log(auditEntry(c, "info", action, message, fields))
}

// AuditLogError records a failed domain action.
func AuditLogError(al *AsyncLogger, c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	entry := auditEntry(c, "error", action, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	al.Log(entry)
}

func auditEntry(c *gin.Context, level, action, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Subject:    GetSubject(c),
		ActionType: action,
		Fields:     fields,
	}
}
