package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldFile      = "file"
	FieldItems     = "items"
	FieldEntries   = "entries"
	FieldErrors    = "errors"
	FieldWarnings  = "warnings"
	FieldPeriod    = "period"
	FieldStep      = "step"
	FieldBuckets   = "buckets"
	FieldExchange  = "exchange"
	FieldMessageID = "message_id"
	FieldAttempt   = "attempt"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentLoader  = "loader"
	ComponentReport  = "report"
	ComponentLedger  = "ledger"
	ComponentAMQP    = "amqp"
	ComponentStorage = "storage"
)

// Operations defines standard operation names
const (
	OpLoad        = "load"
	OpImport      = "import"
	OpValidate    = "validate"
	OpInstantiate = "instantiate"
	OpReport      = "report"
	OpPublish     = "publish"
	OpArchive     = "archive"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithDiagnostics adds the error and warning counts of a record
func (f LogFields) WithDiagnostics(errors, warnings int) LogFields {
	f[FieldErrors] = errors
	f[FieldWarnings] = warnings
	return f
}

// ToSlice flattens the fields into slog key/value arguments
func (f LogFields) ToSlice() []any {
	out := make([]any, 0, 2*len(f))
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
