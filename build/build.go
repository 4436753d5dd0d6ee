package build

import "runtime/debug"

var (
	tag      string
	revision string
)

func GetRevision() string {
	if revision != "" {
		return revision
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" {
			revision = setting.Value
			return revision
		}
	}

	return "unknown"
}

// GetTag returns the tag set with
// `-ldflags "-X github.com/breez/feereport/build.tag=v1.0.0"`, or the module
// version when installed with `go install`.
func GetTag() string {
	if tag != "" {
		return tag
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if ok && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		tag = buildInfo.Main.Version
		return tag
	}

	return "none"
}

func GetVersion() string {
	return GetTag() + " commit=" + GetRevision()
}
