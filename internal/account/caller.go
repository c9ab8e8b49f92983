package account

import "github.com/google/uuid"

// CallerKind identifies how a request was attributed.
type CallerKind string

const (
	CallerKindSystem CallerKind = "system"
	CallerKindUser   CallerKind = "user"
	CallerKindAPIKey CallerKind = "api_key"
)

// Caller is the identity on whose behalf an operation runs. Unauthenticated
// flows use the system caller explicitly instead of an implicit default.
type Caller struct {
	Kind     CallerKind
	UserID   uuid.UUID
	APIKeyID string
}

// SystemCaller attributes an operation to the platform itself.
func SystemCaller() Caller { return Caller{Kind: CallerKindSystem} }

// UserCaller attributes an operation to an authenticated user.
func UserCaller(userID uuid.UUID) Caller {
	return Caller{Kind: CallerKindUser, UserID: userID}
}
