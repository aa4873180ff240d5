// Package identitytest provides an in-process identity service for tests
// and local development.
//
// It speaks the same JSON endpoints as a better-auth deployment, stores
// bcrypt password hashes in memory and issues HS256 session tokens:
//
//	svc, srv := identitytest.NewServer()
//	defer srv.Close()
//	cfg := identity.Config{BaseURL: srv.URL + identitytest.BasePath}
//
// Failures can be injected per endpoint with FailNext.
package identitytest
