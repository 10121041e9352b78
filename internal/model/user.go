package model

import "time"

// User represents an application account as stored in the `users`
// table.  The Role field carries one of the two principal roles:
// MEMBER (self-service, may only touch rows they own) or STAFF (full
// access plus user and room management).  The role travels in the JWT
// and is enforced once at the routing boundary.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  Email        – contact address (may be empty).
//  PasswordHash – bcrypt hashed password.
//  Role         – MEMBER or STAFF.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Principal roles stored in users.role and in the JWT "role" claim.
const (
	RoleMember = "MEMBER"
	RoleStaff  = "STAFF"
)

// RefreshToken models a row in the `refresh_tokens` table.  Only the
// SHA-256 hash of a refresh token is stored; the raw value is returned
// to the client once at issue time.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
