package domain

import "time"

// Member models an organization member. Members run events, moderate the
// community hub, and may hold an admin policy document.
type Member struct {
	ID          string
	Username    string
	Name        string
	Email       string
	Designation string
	Active      bool
	Credentials Credentials
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m *Member) AccountID() string          { return m.ID }
func (m *Member) AccountKind() PrincipalKind { return PrincipalKindMember }
func (m *Member) EmailAddress() string       { return m.Email }
func (m *Member) DisplayName() string        { return m.Name }
func (m *Member) Creds() *Credentials        { return &m.Credentials }
