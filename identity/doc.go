// Package identity is the boundary to the identity service that owns
// accounts, password hashing and session issuance.
//
// Service is the interface the auth session client consumes. HTTPService
// implements it over JSON/HTTP against better-auth style endpoints:
//
//	POST {base}/sign-up/email   {name, email, password}
//	POST {base}/sign-in/email   {email, password}
//	POST {base}/sign-out
//	GET  {base}/get-session
//
// Session cookies are kept in the client's cookie jar and a returned session
// token is also sent as a bearer token on later calls.
package identity
