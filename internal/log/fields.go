package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldSuccess   = "success"
	FieldMode      = "mode"
	FieldDuration  = "duration_ms"
	FieldStatus    = "status_code"
	FieldCategory  = "category"
	FieldTxType    = "transaction_type"
	FieldGoalName  = "goal_name"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentSession = "session"
	ComponentGateway = "gateway"
	ComponentSync    = "sync"
	ComponentSubmit  = "submit"
	ComponentState   = "state"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpLogin    = "login"
	OpRegister = "register"
	OpLogout   = "logout"
	OpResolve  = "resolve_identity"
	OpLoadAll  = "load_all"
	OpCreate   = "create"
	OpRead     = "read"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
