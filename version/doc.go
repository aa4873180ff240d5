// Package version reports the authfront build version.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/authfront/version.Version=1.0.0" ./cmd/authfront
package version
