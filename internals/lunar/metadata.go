package lunar

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
)

// ErrUnknownVersion is returned if a version is not listed in the metadata
var ErrUnknownVersion = errors.New("version is not supported by lunar client")

// Metadata lists all supported versions, their subversions and modules
type Metadata struct {
	Versions []MetadataVersion `json:"versions"`
}

// MetadataVersion is a top level version (like "1.8") that may contain subversions
type MetadataVersion struct {
	ID          string       `json:"id"`
	Subversions []Subversion `json:"subversions,omitempty"`
}

// Subversion is a concrete game version (like "1.8.9") and its available modules
type Subversion struct {
	ID      string   `json:"id"`
	Modules []string `json:"modules"`
}

// FetchMetadata fetches the launcher metadata
func (c *Client) FetchMetadata(ctx context.Context) (*Metadata, error) {
	buf, err := c.get(ctx, c.MetadataURL)
	if err != nil {
		return nil, err
	}

	metadata, err := ParseMetadata(buf)
	if err != nil {
		if IsSchemaError(err) {
			return nil, err
		}
		return nil, &UpstreamError{URL: c.MetadataURL, Err: err}
	}
	return metadata, nil
}

// ParseMetadata parses the raw metadata response. The response is loosely typed
// (modules can be objects with an "id" or plain strings), so it is walked with gjson
func ParseMetadata(raw []byte) (*Metadata, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("metadata is not valid json")
	}

	versions := gjson.GetBytes(raw, "versions")
	if !versions.IsArray() {
		return nil, &SchemaError{Field: "versions", Reason: "is missing"}
	}

	metadata := &Metadata{}
	versions.ForEach(func(_, version gjson.Result) bool {
		v := MetadataVersion{ID: idOf(version)}
		version.Get("subversions").ForEach(func(_, sub gjson.Result) bool {
			s := Subversion{ID: idOf(sub), Modules: []string{}}
			sub.Get("modules").ForEach(func(_, module gjson.Result) bool {
				if id := idOf(module); id != "" {
					s.Modules = append(s.Modules, id)
				}
				return true
			})
			if s.ID != "" {
				v.Subversions = append(v.Subversions, s)
			}
			return true
		})
		if v.ID != "" {
			metadata.Versions = append(metadata.Versions, v)
		}
		return true
	})

	return metadata, nil
}

// idOf returns the "id" of an object or the value itself if it is a string
func idOf(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.Str
	}
	return r.Get("id").String()
}

// SupportedVersions returns all launchable version ids. Versions with subversions
// are replaced by their subversions
func (m *Metadata) SupportedVersions() []string {
	versions := make([]string, 0, len(m.Versions))
	for _, version := range m.Versions {
		if len(version.Subversions) == 0 {
			versions = append(versions, version.ID)
			continue
		}
		for _, sub := range version.Subversions {
			versions = append(versions, sub.ID)
		}
	}
	return versions
}

// SubVersion finds the subversion with the exact given id. Top level versions are
// matched by substring, so "1.8.9" is searched in the subversions of "1.8"
func (m *Metadata) SubVersion(id string) (*Subversion, bool) {
	for _, version := range m.Versions {
		if !strings.Contains(id, version.ID) {
			continue
		}
		for i := range version.Subversions {
			if version.Subversions[i].ID == id {
				return &version.Subversions[i], true
			}
		}
	}
	return nil, false
}

// SupportedModules returns the module ids available for the given subversion
func (m *Metadata) SupportedModules(id string) ([]string, error) {
	sub, ok := m.SubVersion(id)
	if !ok {
		return nil, ErrUnknownVersion
	}
	return sub.Modules, nil
}

// SortVersions sorts versions ascending by semver. Versions that can not be
// parsed keep their relative order and are moved to the end
func SortVersions(versions []string) []string {
	parsed := make(semver.Collection, 0, len(versions))
	invalid := make([]string, 0)
	for _, v := range versions {
		sv, err := semver.NewVersion(v)
		if err != nil {
			invalid = append(invalid, v)
			continue
		}
		parsed = append(parsed, sv)
	}
	sort.Sort(parsed)

	sorted := make([]string, 0, len(versions))
	for _, sv := range parsed {
		sorted = append(sorted, sv.Original())
	}
	return append(sorted, invalid...)
}
