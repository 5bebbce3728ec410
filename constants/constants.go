package constants

// Roles
const (
	ROLE_ADMIN   = "admin"
	ROLE_MANAGER = "manager"
	ROLE_CASHIER = "cashier"
	ROLE_WAITER  = "waiter"
	ROLE_CHEF    = "chef"
)

// Order statuses
const (
	ORDER_PENDING   = "pending"
	ORDER_PREPARING = "preparing"
	ORDER_READY     = "ready"
	ORDER_COMPLETED = "completed"
	ORDER_CANCELLED = "cancelled"
)

// Order item statuses
const (
	ITEM_PENDING   = "pending"
	ITEM_PREPARING = "preparing"
	ITEM_READY     = "ready"
	ITEM_SERVED    = "served"
)

// Payment
const (
	PAYMENT_PENDING = "pending"
	PAYMENT_PAID    = "paid"
)

// Table statuses
const (
	TABLE_AVAILABLE = "available"
	TABLE_OCCUPIED  = "occupied"
	TABLE_RESERVED  = "reserved"
)

// Pager statuses
const (
	PAGER_AVAILABLE = "available"
	PAGER_ASSIGNED  = "assigned"
	PAGER_ACTIVE    = "active"
)

// Purchase order statuses
const (
	PO_PENDING   = "pending"
	PO_ORDERED   = "ordered"
	PO_RECEIVED  = "received"
	PO_CANCELLED = "cancelled"
)

// User statuses
const (
	USER_ACTIVE    = "active"
	USER_INACTIVE  = "inactive"
	USER_SUSPENDED = "suspended"
)

// Response messages
const (
	ERROR_INPUT                = "Invalid input"
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read validated input"
	NOT_FOUND_RECORDS          = "Record not found"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
	MISSING_LOGIN_INPUT        = "Email and password are required"
	INVALID_CREDENTIALS        = "Invalid credentials"
	ACCOUNT_NOT_ACTIVE         = "Account is not active"
	CAN_NOT_HASH_PASSWORD      = "Cannot hash password"
	PERMISSION_DENIED          = "Permission denied"
)
