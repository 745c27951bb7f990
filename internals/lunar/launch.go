package lunar

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/minepkg/lunarpkg/internals/checksum"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
	"github.com/pkg/errors"
)

type launchRequest struct {
	Identity
	LauncherVersion string `json:"launcher_version"`
	Version         string `json:"version"`
	Branch          string `json:"branch"`
	Module          string `json:"module"`
}

// launchResponse is the raw launch manifest. Pointers are used to tell
// missing fields apart from empty ones
type launchResponse struct {
	JRE *struct {
		ExtraArguments *[]string `json:"extraArguments"`
	} `json:"jre"`
	LaunchTypeData *struct {
		MainClass string         `json:"mainClass"`
		Ichor     *bool          `json:"ichor"`
		Artifacts *[]rawArtifact `json:"artifacts"`
	} `json:"launchTypeData"`
	BaseURL  string `json:"baseUrl"`
	Textures *struct {
		IndexURL string `json:"indexUrl"`
	} `json:"textures"`
}

type rawArtifact struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Sha1 string `json:"sha1"`
	Type string `json:"type"`
}

// FetchVersionManifest requests the launch manifest for the given version, branch & module
func (c *Client) FetchVersionManifest(ctx context.Context, version, branch, module string) (*lunarmanifest.VersionManifest, error) {
	payload := launchRequest{
		Identity:        c.Identity,
		LauncherVersion: LauncherVersion,
		Version:         version,
		Branch:          branch,
		Module:          module,
	}

	buf, err := c.postJSON(ctx, c.LaunchURL, payload)
	if err != nil {
		return nil, err
	}

	manifest, err := ParseLaunchManifest(buf, version, branch, module)
	if err != nil {
		if IsSchemaError(err) {
			return nil, err
		}
		return nil, &UpstreamError{URL: c.LaunchURL, Err: err}
	}

	return manifest, nil
}

// ResolveArtifactTable returns the artifacts of the launch manifest keyed by name
func (c *Client) ResolveArtifactTable(ctx context.Context, version, branch, module string) (lunarmanifest.ArtifactTable, error) {
	manifest, err := c.FetchVersionManifest(ctx, version, branch, module)
	if err != nil {
		return nil, err
	}
	return manifest.Table(), nil
}

// ParseLaunchManifest parses a raw launch manifest response. Json syntax errors are
// returned as is, missing or malformed required fields as SchemaError
func ParseLaunchManifest(raw []byte, version, branch, module string) (*lunarmanifest.VersionManifest, error) {
	var res launchResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(err, "decoding launch manifest")
	}

	if res.JRE == nil || res.JRE.ExtraArguments == nil {
		return nil, &SchemaError{Field: "jre.extraArguments", Reason: "is missing"}
	}
	if res.LaunchTypeData == nil || res.LaunchTypeData.Artifacts == nil {
		return nil, &SchemaError{Field: "launchTypeData.artifacts", Reason: "is missing"}
	}

	manifest := &lunarmanifest.VersionManifest{
		Version:      version,
		Branch:       branch,
		Module:       module,
		MainClass:    res.LaunchTypeData.MainClass,
		JVMExtraArgs: append([]string{}, *res.JRE.ExtraArguments...),
		IchorEnabled: true,
		BaseURL:      res.BaseURL,
	}

	if manifest.MainClass == "" {
		log.Println("[WARN] launch manifest does not declare a main class")
	}
	if res.LaunchTypeData.Ichor != nil {
		manifest.IchorEnabled = *res.LaunchTypeData.Ichor
	}
	if res.Textures != nil {
		manifest.TexturesIndexURL = res.Textures.IndexURL
	}

	rawArtifacts := *res.LaunchTypeData.Artifacts
	seen := make(map[string]struct{}, len(rawArtifacts))
	manifest.Artifacts = make([]lunarmanifest.Artifact, 0, len(rawArtifacts))

	for i, raw := range rawArtifacts {
		field := fmt.Sprintf("launchTypeData.artifacts[%d]", i)

		artifact, err := parseArtifact(raw, field)
		if err != nil {
			return nil, err
		}

		if _, ok := seen[artifact.Name]; ok {
			return nil, &SchemaError{Field: field + ".name", Reason: fmt.Sprintf("%q is declared more than once", artifact.Name)}
		}
		seen[artifact.Name] = struct{}{}

		manifest.Artifacts = append(manifest.Artifacts, artifact)
	}

	return manifest, nil
}

func parseArtifact(raw rawArtifact, field string) (lunarmanifest.Artifact, error) {
	if raw.Name == "" {
		return lunarmanifest.Artifact{}, &SchemaError{Field: field + ".name", Reason: "is missing"}
	}
	if raw.URL == "" {
		return lunarmanifest.Artifact{}, &SchemaError{Field: field + ".url", Reason: "is missing"}
	}

	kind, err := lunarmanifest.ParseArtifactKind(raw.Type)
	if err != nil {
		return lunarmanifest.Artifact{}, &SchemaError{Field: field + ".type", Reason: err.Error()}
	}

	sha := strings.ToLower(raw.Sha1)
	if !validSha1(sha) {
		return lunarmanifest.Artifact{}, &SchemaError{Field: field + ".sha1", Reason: fmt.Sprintf("%q is not a sha1 hex digest", raw.Sha1)}
	}

	return lunarmanifest.Artifact{
		Name: raw.Name,
		URL:  raw.URL,
		Sha1: sha,
		Kind: kind,
	}, nil
}

func validSha1(s string) bool {
	if len(s) != checksum.Sha1Length {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
