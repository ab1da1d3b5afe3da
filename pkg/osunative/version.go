package osunative

import "github.com/osu-native/osu-native-go/pkg/osunative/internal/backend"

// Release metadata, overridable at link time, e.g.
//
//	-ldflags "-X github.com/osu-native/osu-native-go/pkg/osunative.Version=v0.2.0"
var (
	Version     = "v0.0.0-in-progress"
	UpstreamSHA = "unknown"
	UpstreamDir = "native"
)

// BuildInfo describes the wrapper and the native library it was built
// against.
type BuildInfo struct {
	Wrapper  string `json:"wrapper"`
	Upstream string `json:"upstream"`
	// NativeDir is where the cgo flags expect the shared library, relative
	// to the module root.
	NativeDir string `json:"native_dir"`
	// Linked is false when the binary was built without the osunative tag
	// or without cgo; Open then fails with ErrNotBuilt.
	Linked bool `json:"linked"`
}

// WrapperVersion returns the version set at build time via ldflags.
func WrapperVersion() string {
	return Version
}

// UpstreamVersion prefers the version the native library reports and falls
// back to the pinned upstream commit.
func UpstreamVersion() string {
	if v := backend.Version(); v != "" {
		return v
	}
	return UpstreamSHA
}

// Build returns the BuildInfo of the running binary.
func Build() BuildInfo {
	return BuildInfo{
		Wrapper:   WrapperVersion(),
		Upstream:  UpstreamVersion(),
		NativeDir: UpstreamDir,
		Linked:    backend.Linked,
	}
}
