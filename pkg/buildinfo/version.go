// Package buildinfo holds the version stamped into radialtext builds.
//
//	go build -ldflags "-X github.com/matzehuels/radialtext/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/radialtext/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/radialtext/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// Product is the name the HTTP service reports in its Server header.
const Product = "radialtext"

// ServerHeader returns the value of the HTTP Server header,
// e.g. "radialtext/v1.2.3".
func ServerHeader() string {
	return Product + "/" + Version
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
