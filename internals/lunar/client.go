// Package lunar is a client for the Lunar Client launcher API. It fetches
// launch manifests and version metadata and turns them into lunarmanifest values.
package lunar

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const (
	// DefaultLaunchURL is the endpoint returning the launch manifest of a version
	DefaultLaunchURL = "https://api.lunarclientprod.com/launcher/launch"
	// DefaultMetadataURL is the endpoint listing all supported versions & modules
	DefaultMetadataURL = "https://api.lunarclientprod.com/launcher/metadata?launcher_version=" + LauncherVersion
	// LauncherVersion is the launcher version we claim to be
	LauncherVersion = "2.15.1"
)

// Identity is the fixed device & installation identity sent with every launch request
type Identity struct {
	HWID           string `json:"hwid"`
	HWIDPrivate    string `json:"hwid-private"`
	InstallationID string `json:"installation_id"`
	OS             string `json:"os"`
	Arch           string `json:"arch"`
	OSRelease      string `json:"os_release"`
	LaunchType     string `json:"launch_type"`
}

// DefaultIdentity is a public identity accepted by the API
var DefaultIdentity = Identity{
	HWID:           "HWID-PUBLIC",
	HWIDPrivate:    "HWID-PRIVATE",
	InstallationID: "INSTALL_ID",
	OS:             "win32",
	Arch:           "x64",
	OSRelease:      "19045.3086",
	LaunchType:     "lunar",
}

// Client talks to the launcher API
type Client struct {
	http *http.Client

	LaunchURL   string
	MetadataURL string
	Identity    Identity
}

// New returns a new Client. Passing nil uses http.DefaultClient
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		http:        httpClient,
		LaunchURL:   DefaultLaunchURL,
		MetadataURL: DefaultMetadataURL,
		Identity:    DefaultIdentity,
	}
}

// get is just a wrapper around http.Get() with context support
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// postJSON posts data as json and returns the raw response body
func (c *Client) postJSON(ctx context.Context, url string, data interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// do executes req and reads the whole body. Transport errors, non 2xx status codes
// and empty bodies are returned as UpstreamError
func (c *Client) do(req *http.Request) ([]byte, error) {
	url := req.URL.String()

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &UpstreamError{URL: url, StatusCode: res.StatusCode}
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &UpstreamError{URL: url, Err: err}
	}
	if len(bytes.TrimSpace(buf)) == 0 {
		return nil, &UpstreamError{URL: url, Err: ErrEmptyResponse}
	}

	return buf, nil
}
