// Package authclient is the auth session client: the only writer of the
// shared session store.
//
// It calls the identity service for sign-up, sign-in and sign-out, writes
// the result into the session store and returns failures as
// *errors.AppError. It never retries.
package authclient
