// Package lunarmanifest contains the typed launch manifest of a Lunar Client
// version. Values of this package are produced by the lunar API client and
// consumed by the artifact synchronizer and the launch command builder.
package lunarmanifest

import (
	"strings"
)

// VersionManifest describes everything needed to launch one
// (version, branch, module) combination
type VersionManifest struct {
	Version string
	Branch  string
	Module  string

	// MainClass is the launch entry point. Empty if the server did not declare one
	MainClass string
	// JVMExtraArgs are the JVM flags declared by the server (in order).
	// They may contain the natives placeholder, see NativesPlaceholder
	JVMExtraArgs []string
	// IchorEnabled toggles the additional ichor classpath arguments.
	// Defaults to true if the server does not declare it
	IchorEnabled bool
	// Artifacts in the order the server declared them. Names are unique
	Artifacts []Artifact

	// BaseURL is the base for texture downloads
	BaseURL string
	// TexturesIndexURL points to the texture index (may be empty)
	TexturesIndexURL string
}

// NativesPlaceholder is the value the server uses for the native library path
// in JVM flags. It has to be replaced with the local natives directory
const NativesPlaceholder = "natives"

// AssetIndexBasis returns the version with the last dot-delimited component
// removed ("1.8.9" -> "1.8"). Versions without a dot are returned unchanged
func (m *VersionManifest) AssetIndexBasis() string {
	return AssetIndexBasis(m.Version)
}

// AssetIndexBasis truncates the trailing patch component of version
func AssetIndexBasis(version string) string {
	idx := strings.LastIndex(version, ".")
	if idx == -1 {
		return version
	}
	return version[:idx]
}

// ArtifactsOfKind returns all artifacts of the given kind in manifest order
func (m *VersionManifest) ArtifactsOfKind(kind ArtifactKind) []Artifact {
	matching := make([]Artifact, 0, len(m.Artifacts))
	for _, artifact := range m.Artifacts {
		if artifact.Kind == kind {
			matching = append(matching, artifact)
		}
	}
	return matching
}

// Natives returns the natives archive artifact. The bool is false if the
// manifest does not declare one
func (m *VersionManifest) Natives() (Artifact, bool) {
	for _, artifact := range m.Artifacts {
		if artifact.Kind == KindNatives {
			return artifact, true
		}
	}
	return Artifact{}, false
}

// Table returns the artifacts keyed by name
func (m *VersionManifest) Table() ArtifactTable {
	table := make(ArtifactTable, len(m.Artifacts))
	for _, artifact := range m.Artifacts {
		table[artifact.Name] = artifact.Info()
	}
	return table
}

// Identifier returns a human readable "version/branch/module" string
func (m *VersionManifest) Identifier() string {
	return m.Version + "/" + m.Branch + "/" + m.Module
}
