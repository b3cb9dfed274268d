package domain

// Principal captures the authenticated caller for a single request. It is
// resolved once by the auth middleware and passed explicitly to handlers;
// nothing below the interface layer reads identity from ambient state.
type Principal struct {
	UserID   uint
	Username string
	Email    string
}
