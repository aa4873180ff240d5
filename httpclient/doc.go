// Package httpclient provides the HTTP transport used to reach the identity
// service: base URL resolution, JSON bodies, a cookie jar for session
// cookies, per-request authentication, and typed error classification.
//
// The client never retries. A failed request surfaces once, immediately,
// because credential submissions are not idempotent.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://id.example.com/api/auth",
//	    Timeout: 10 * time.Second,
//	})
//
//	resp, err := httpclient.Post[Payload](ctx, client, "/sign-in/email", body)
package httpclient
