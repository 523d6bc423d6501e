// Package version reports the predator-ignore build stamped in by the release
// pipeline, printed by the -version flag.
package version

// Set with -ldflags "-X predator/internal/app/version.buildVersion=...".
var (
	buildVersion = "dev"
	builtAt      = "unknown"
)

// Info identifies the binary that produced an ignore list.
type Info struct {
	BuildVersion string `json:"buildVersion"`
	BuiltAt      string `json:"builtAt"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		BuildVersion: buildVersion,
		BuiltAt:      builtAt,
	}
}
