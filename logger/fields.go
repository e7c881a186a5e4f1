package logger

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCacheKey   = "cache_key"
	FieldCacheHit   = "cache_hit"
	FieldPrincipal  = "principal"
	FieldAPY        = "apy"
	FieldTermMonths = "term_months"
)

// Components
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentSchedule  = "schedule"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
	ComponentConfig    = "config"
)

// Operations
const (
	OpCalculate = "calculate"
	OpExport    = "export"
	OpValidate  = "validate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
