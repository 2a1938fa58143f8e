package domain

// PrincipalKind differentiates which account table a token subject belongs to.
type PrincipalKind string

const (
	PrincipalKindParticipant PrincipalKind = "PARTICIPANT"
	PrincipalKindMember      PrincipalKind = "MEMBER"
	PrincipalKindCommunity   PrincipalKind = "COMMUNITY"
)

// TokenPurpose distinguishes access from refresh tokens. A token is accepted
// only when both purpose and principal kind match the consuming endpoint.
type TokenPurpose string

const (
	TokenPurposeAccess  TokenPurpose = "access"
	TokenPurposeRefresh TokenPurpose = "refresh"
)
