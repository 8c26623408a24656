// Package session abstracts the identity provider the companion runs under.
// Authentication itself happens elsewhere; this package only answers "who
// is the current user".
package session

// User is an authenticated identity.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Provider supplies the current session identity.
type Provider interface {
	// CurrentUser returns the signed-in user, nil when there is none.
	CurrentUser() *User

	// Valid reports whether the session is usable for persistence.
	Valid() bool
}

// StaticProvider is a Provider with a fixed identity, configured at
// startup. An empty user id means a signed-out session.
type StaticProvider struct {
	user *User
}

// NewStaticProvider creates a provider for a fixed user id. An empty id
// yields a signed-out provider.
func NewStaticProvider(id, displayName string) *StaticProvider {
	if id == "" {
		return &StaticProvider{}
	}
	return &StaticProvider{user: &User{ID: id, DisplayName: displayName}}
}

func (p *StaticProvider) CurrentUser() *User {
	return p.user
}

func (p *StaticProvider) Valid() bool {
	return p.user != nil
}
