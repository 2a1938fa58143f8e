package domain

import "time"

// Credentials groups the password digest and single-use token state embedded in
// every account type. Only the credential service mutates the token fields.
type Credentials struct {
	PasswordHash          string
	VerificationTokenHash *string
	VerificationExpiresAt *time.Time
	VerificationSentAt    *time.Time
	EmailVerifiedAt       *time.Time
	ResetTokenHash        *string
	ResetExpiresAt        *time.Time
	ResetSentAt           *time.Time
}

// CredentialHolder is implemented by account types that own verification and
// reset token state, so token issuance and redemption are shared across tables.
type CredentialHolder interface {
	AccountID() string
	AccountKind() PrincipalKind
	EmailAddress() string
	DisplayName() string
	Creds() *Credentials
}
