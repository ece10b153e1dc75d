package service

import "github.com/google/uuid"

// TokenService validates bearer tokens presented by card owners. Token
// issuance lives in the identity service; this API only verifies tokens and
// extracts the owner identity.
type TokenService interface {
	// ValidateAccessToken verifies the signature and expiry of an access
	// token and returns the owner's user ID from the subject claim.
	ValidateAccessToken(tokenString string) (uuid.UUID, error)
}
