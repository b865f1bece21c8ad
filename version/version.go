package version

import (
	"fmt"
	"strings"
)

// Semantic version of the lava toolset.
const (
	appMajor uint = 1
	appMinor uint = 3
	appPatch uint = 0
)

// appBuildCharacters are the only characters allowed in build metadata.
const appBuildCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

// appBuild carries optional build metadata. Release builds set it with
// '-ldflags "-X github.com/blockinator/lava/version.appBuild=release"'.
var appBuild string

var version string

// Version returns the version string, with build metadata appended when
// appBuild is set and well formed.
func Version() string {
	if version == "" {
		version = fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
		if build := sanitizeBuild(appBuild); build != "" {
			version = fmt.Sprintf("%s-%s", version, build)
		}
	}
	return version
}

// sanitizeBuild drops build metadata containing characters outside
// appBuildCharacters.
func sanitizeBuild(build string) string {
	for _, r := range build {
		if !strings.ContainsRune(appBuildCharacters, r) {
			return ""
		}
	}
	return build
}
