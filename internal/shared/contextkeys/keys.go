package contextkeys

// contextKey is an unexported type to prevent collisions with context keys
// defined in other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "synagogue-manager context key " + string(c)
}

// SynagogueIDKey is the key for the tenant (synagogue) ID in context.Context
const SynagogueIDKey = contextKey("synagogueID")

// UserIDKey is the key for the signed-in user's opaque ID in context.Context
const UserIDKey = contextKey("userID")

// UserEmailKey is the key for the signed-in user's email in context.Context
const UserEmailKey = contextKey("userEmail")

// UserRoleKey is the key for the signed-in user's role in context.Context
const UserRoleKey = contextKey("userRole")

// RequestIDKey is the key for the request ID in context.Context
const RequestIDKey = contextKey("requestID")

// ComponentKey is the key for the logging component in context.Context
const ComponentKey = contextKey("component")

// OperationKey is the key for the logging operation in context.Context
const OperationKey = contextKey("operation")
