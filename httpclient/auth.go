package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses a fixed Bearer token.
	AuthBearer
	// AuthBearerSource reads the Bearer token at request time.
	AuthBearerSource
	// AuthCustom uses a custom authentication function.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Source returns the current bearer token (AuthBearerSource). An empty
	// token leaves the request unauthenticated.
	Source func() string
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*http.Request)
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BearerSource creates an auth config that asks fn for the token on every
// request, so a session token obtained after sign-in is picked up.
func BearerSource(fn func() string) *AuthConfig {
	return &AuthConfig{Type: AuthBearerSource, Source: fn}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		if a.Token != "" {
			req.Header.Set("Authorization", "Bearer "+a.Token)
		}
	case AuthBearerSource:
		if a.Source == nil {
			return
		}
		if token := a.Source(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}
