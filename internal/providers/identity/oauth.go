package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

type Config struct {
	ClientID     string
	ClientSecret string
	AuthorizeURL string
	TokenURL     string
	RedirectURL  string
	LogoutURL    string
	ReturnTo     string
	JWTSecret    string
	Issuer       string // optional
	Leeway       time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
}

// OAuthProvider talks to an OAuth2 authorization server whose access tokens
// are HS256 JWTs.
type OAuthProvider struct {
	oauth     *oauth2.Config
	secret    []byte
	issuer    string
	leeway    time.Duration
	logoutURL string
	returnTo  string
}

func NewOAuthProvider(cfg Config) (*OAuthProvider, error) {
	if cfg.ClientID == "" || cfg.AuthorizeURL == "" || cfg.TokenURL == "" {
		return nil, errors.New("AUTH_CLIENT_ID, AUTH_AUTHORIZE_URL and AUTH_TOKEN_URL must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is not set")
	}
	return &OAuthProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email", "offline_access"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthorizeURL,
				TokenURL: cfg.TokenURL,
			},
		},
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		leeway:    cfg.Leeway,
		logoutURL: cfg.LogoutURL,
		returnTo:  cfg.ReturnTo,
	}, nil
}

func (p *OAuthProvider) AuthorizationURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

func (p *OAuthProvider) AuthenticateWithCode(ctx context.Context, code string) (*Session, *Identity, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("exchange code: %w", err)
	}
	return p.fromToken(tok)
}

func (p *OAuthProvider) Authenticate(_ context.Context, s Session) (*Identity, error) {
	return p.verify(s.AccessToken)
}

func (p *OAuthProvider) Refresh(ctx context.Context, s Session) (*Session, *Identity, error) {
	if s.RefreshToken == "" {
		return nil, nil, ErrInvalidSession
	}
	tok, err := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: s.RefreshToken}).Token()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return p.fromToken(tok)
}

func (p *OAuthProvider) LogoutURL(_ Session) string {
	if p.logoutURL == "" {
		return ""
	}
	u, err := url.Parse(p.logoutURL)
	if err != nil {
		return ""
	}
	if p.returnTo != "" {
		q := u.Query()
		q.Set("return_to", p.returnTo)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (p *OAuthProvider) fromToken(tok *oauth2.Token) (*Session, *Identity, error) {
	s := &Session{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}
	id, err := p.verify(s.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return s, id, nil
}

func (p *OAuthProvider) verify(raw string) (*Identity, error) {
	if raw == "" {
		return nil, ErrInvalidSession
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(p.leeway),
	}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	claims := &accessClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, opts...)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrSessionExpired
	}
	if err != nil || !tok.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	return &Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}
