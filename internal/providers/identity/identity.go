package identity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)

// Session holds the provider-issued tokens carried by the session cookie.
type Session struct {
	AccessToken  string `json:"a"`
	RefreshToken string `json:"r,omitempty"`
}

// Identity is what the provider vouches for. Only UserID is relied upon.
type Identity struct {
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Provider interface {
	AuthorizationURL(state string) string
	AuthenticateWithCode(ctx context.Context, code string) (*Session, *Identity, error)
	Authenticate(ctx context.Context, s Session) (*Identity, error)
	Refresh(ctx context.Context, s Session) (*Session, *Identity, error)
	LogoutURL(s Session) string
}

// EncodeSession packs the tokens into a cookie-safe value. The tokens are
// already signed by the provider, nothing is sealed here.
func EncodeSession(s Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeSession(v string) (Session, error) {
	var s Session
	b, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return s, ErrInvalidSession
	}
	if err := json.Unmarshal(b, &s); err != nil || s.AccessToken == "" {
		return Session{}, ErrInvalidSession
	}
	return s, nil
}
