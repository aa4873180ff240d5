// Package session holds the authenticated user's session as a
// process-wide observable cell.
//
// A Store has a single writer (the auth session client) and any number of
// readers. Readers take snapshots with Current or register for change
// notifications with Subscribe. A session whose expiry has passed reads as
// absent.
package session
