// Package version exposes build-time version metadata.
package version

// ResponderVersion is the version string embedded at build time.
var ResponderVersion = "2.3-src"

// Set version at compile time with
// go build -ldflags "-X github.com/A-mIn3/eaphammer/pkg/version.ResponderVersion=2.3.1" -o responder
