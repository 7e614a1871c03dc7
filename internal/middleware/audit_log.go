package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/service"
)

// LoggingServiceKey is the gin context key holding the audit logging service.
const LoggingServiceKey = "logging_service"

// AuditRef names the order and line an audited action touched.
type AuditRef struct {
	OrderID string
	LineID  string
}

// WithLoggingService makes the logging service available to handlers.
func WithLoggingService(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if loggingService != nil {
			c.Set(LoggingServiceKey, loggingService)
		}
		c.Next()
	}
}

// LoggingServiceFrom returns the logging service stored on the context, or nil.
func LoggingServiceFrom(c *gin.Context) service.LoggingService {
	if v, exists := c.Get(LoggingServiceKey); exists {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}

// AuditLog records an order action for audit purposes.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, message string, ref AuditRef, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	store(loggingService, newAuditEntry(c, "info", actionType, message, ref, fields))
}

// AuditLogWarn records a refused order action.
func AuditLogWarn(loggingService service.LoggingService, c *gin.Context, actionType, message string, ref AuditRef, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, "warn", actionType, message, ref, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	store(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, actionType, message string, ref AuditRef, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		OrderID:    ref.OrderID,
		LineID:     ref.LineID,
		Fields:     fields,
	}
}
