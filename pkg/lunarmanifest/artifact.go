package lunarmanifest

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ArtifactKind tells how an artifact is used during launch
type ArtifactKind uint8

const (
	// KindClassPath artifacts are put on the java classpath
	KindClassPath ArtifactKind = iota + 1
	// KindExternalFile artifacts are passed to ichor as external files
	KindExternalFile
	// KindNatives is the archive containing the native libraries
	KindNatives
)

var kindNames = map[ArtifactKind]string{
	KindClassPath:    "CLASS_PATH",
	KindExternalFile: "EXTERNAL_FILE",
	KindNatives:      "NATIVES",
}

// ParseArtifactKind parses the wire name of an artifact kind (eg. "CLASS_PATH")
func ParseArtifactKind(s string) (ArtifactKind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown artifact type %q", s)
}

func (k ArtifactKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ArtifactKind(%d)", k)
}

// MarshalJSON encodes the kind as its wire name
func (k ArtifactKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Artifact is a single file the launch manifest requires
type Artifact struct {
	// Name is the file name relative to the installation directory
	Name string `json:"name"`
	URL  string `json:"url"`
	// Sha1 is the lower-case hex sha1 of the file
	Sha1 string       `json:"sha1"`
	Kind ArtifactKind `json:"type"`
}

// Info returns the artifact without its name
func (a Artifact) Info() ArtifactInfo {
	return ArtifactInfo{URL: a.URL, Sha1: a.Sha1, Kind: a.Kind}
}

// ArtifactInfo is the value part of an ArtifactTable
type ArtifactInfo struct {
	URL  string       `json:"url"`
	Sha1 string       `json:"sha1"`
	Kind ArtifactKind `json:"type"`
}

// ArtifactTable maps artifact names to their download information
type ArtifactTable map[string]ArtifactInfo

// Names returns all artifact names sorted alphabetically
func (t ArtifactTable) Names() []string {
	names := maps.Keys(t)
	slices.Sort(names)
	return names
}
