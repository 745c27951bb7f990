package lunar

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
)

// DefaultTexturesBaseURL is used if the launch manifest has no baseUrl
const DefaultTexturesBaseURL = "https://textures.lunarclientcdn.com/file/"

// FetchTexturesIndex downloads the texture index referenced by the manifest.
// Textures are returned as external file artifacts keyed by their relative path
func (c *Client) FetchTexturesIndex(ctx context.Context, manifest *lunarmanifest.VersionManifest) (lunarmanifest.ArtifactTable, error) {
	if manifest.TexturesIndexURL == "" {
		return nil, &SchemaError{Field: "textures.indexUrl", Reason: "is missing"}
	}

	buf, err := c.get(ctx, manifest.TexturesIndexURL)
	if err != nil {
		return nil, err
	}

	baseURL := manifest.BaseURL
	if baseURL == "" {
		baseURL = DefaultTexturesBaseURL
	}
	return ParseTexturesIndex(buf, baseURL)
}

// ParseTexturesIndex parses the "<path> <sha1>" lines of a texture index.
// A path listed twice keeps the last hash
func ParseTexturesIndex(raw []byte, baseURL string) (lunarmanifest.ArtifactTable, error) {
	table := make(lunarmanifest.ArtifactTable)

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		field := fmt.Sprintf("textures index line %d", line)
		if len(fields) < 2 {
			return nil, &SchemaError{Field: field, Reason: "has no hash"}
		}

		sha := strings.ToLower(fields[1])
		if !validSha1(sha) {
			return nil, &SchemaError{Field: field, Reason: fmt.Sprintf("%q is not a sha1 hex digest", fields[1])}
		}

		name := path.Clean(strings.TrimPrefix(fields[0], "/"))
		table[name] = lunarmanifest.ArtifactInfo{
			URL:  baseURL + fields[0],
			Sha1: sha,
			Kind: lunarmanifest.KindExternalFile,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return table, nil
}
