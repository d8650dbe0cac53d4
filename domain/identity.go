package domain

// Identity is the verified claim set bound to a connection or request.
// It is derived once from the credential and never re-verified mid-session.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}
