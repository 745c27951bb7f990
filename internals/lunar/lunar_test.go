package lunar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
)

const (
	shaA = "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12"
	shaB = "de9f2c7fd25e1b3afad3e85a0bd17d9b100db4b3"
)

const launchResponseJSON = `{
	"success": true,
	"jre": {"extraArguments": ["-Xss2M", "-Djna.boot.library.path=natives"]},
	"launchTypeData": {
		"mainClass": "com.moonsworth.lunar.genesis.Genesis",
		"ichor": false,
		"artifacts": [
			{"name": "lunar.jar", "url": "https://cdn.example/lunar.jar", "sha1": "2FD4E1C67A2D28FCED849EE1BB76E7391B93EB12", "type": "CLASS_PATH"},
			{"name": "natives-linux.zip", "url": "https://cdn.example/natives.zip", "sha1": "de9f2c7fd25e1b3afad3e85a0bd17d9b100db4b3", "type": "NATIVES"}
		]
	},
	"baseUrl": "https://textures.example/file/",
	"textures": {"indexUrl": "https://textures.example/index.txt"}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(srv.Client())
	client.LaunchURL = srv.URL + "/launcher/launch"
	client.MetadataURL = srv.URL + "/launcher/metadata"
	return client
}

func TestFetchVersionManifest(t *testing.T) {
	var received map[string]string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Error(err)
		}
		w.Write([]byte(launchResponseJSON))
	})

	manifest, err := client.FetchVersionManifest(context.Background(), "1.8.9", "master", "lunar")
	if err != nil {
		t.Fatal(err)
	}

	for key, want := range map[string]string{
		"version":          "1.8.9",
		"branch":           "master",
		"module":           "lunar",
		"hwid":             "HWID-PUBLIC",
		"hwid-private":     "HWID-PRIVATE",
		"launcher_version": LauncherVersion,
		"launch_type":      "lunar",
	} {
		if received[key] != want {
			t.Errorf("request field %s: expected %q, got %q", key, want, received[key])
		}
	}

	want := &lunarmanifest.VersionManifest{
		Version:      "1.8.9",
		Branch:       "master",
		Module:       "lunar",
		MainClass:    "com.moonsworth.lunar.genesis.Genesis",
		JVMExtraArgs: []string{"-Xss2M", "-Djna.boot.library.path=natives"},
		IchorEnabled: false,
		Artifacts: []lunarmanifest.Artifact{
			{Name: "lunar.jar", URL: "https://cdn.example/lunar.jar", Sha1: shaA, Kind: lunarmanifest.KindClassPath},
			{Name: "natives-linux.zip", URL: "https://cdn.example/natives.zip", Sha1: shaB, Kind: lunarmanifest.KindNatives},
		},
		BaseURL:          "https://textures.example/file/",
		TexturesIndexURL: "https://textures.example/index.txt",
	}
	if diff := cmp.Diff(want, manifest); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchVersionManifestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr func(error) bool
	}{
		{"server error", 500, `{}`, IsUpstreamError},
		{"empty body", 200, ``, IsUpstreamError},
		{"garbage body", 200, `<html>`, IsUpstreamError},
		{"missing artifacts", 200, `{"jre": {"extraArguments": []}, "launchTypeData": {}}`, IsSchemaError},
		{"missing jre", 200, `{"launchTypeData": {"artifacts": []}}`, IsSchemaError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := client.FetchVersionManifest(context.Background(), "1.8.9", "master", "lunar")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantErr(err) {
				t.Fatalf("unexpected error type: %v", err)
			}
		})
	}
}

func TestParseLaunchManifest(t *testing.T) {
	artifact := func(name, sha, kind string) string {
		return `{"name": "` + name + `", "url": "https://cdn.example/` + name + `", "sha1": "` + sha + `", "type": "` + kind + `"}`
	}
	wrap := func(extra string, artifacts ...string) []byte {
		list := ""
		for i, a := range artifacts {
			if i > 0 {
				list += ","
			}
			list += a
		}
		return []byte(`{"jre": {"extraArguments": []}, "launchTypeData": {` + extra + `"artifacts": [` + list + `]}}`)
	}

	t.Run("fallbacks", func(t *testing.T) {
		m, err := ParseLaunchManifest(wrap(""), "1.12.2", "master", "lunar")
		if err != nil {
			t.Fatal(err)
		}
		if m.MainClass != "" {
			t.Fatalf("expected empty main class, got %s", m.MainClass)
		}
		if !m.IchorEnabled {
			t.Fatal("expected ichor to default to true")
		}
		if len(m.Artifacts) != 0 {
			t.Fatalf("expected no artifacts, got %d", len(m.Artifacts))
		}
	})

	t.Run("ichor explicitly enabled", func(t *testing.T) {
		m, err := ParseLaunchManifest(wrap(`"ichor": true,`), "1.12.2", "master", "lunar")
		if err != nil {
			t.Fatal(err)
		}
		if !m.IchorEnabled {
			t.Fatal("expected ichor to be enabled")
		}
	})

	schemaErrors := []struct {
		name string
		raw  []byte
	}{
		{"duplicate names", wrap("", artifact("a.jar", shaA, "CLASS_PATH"), artifact("a.jar", shaB, "CLASS_PATH"))},
		{"unknown type", wrap("", artifact("a.jar", shaA, "SOMETHING"))},
		{"short sha", wrap("", artifact("a.jar", "abc", "CLASS_PATH"))},
		{"missing name", wrap("", artifact("", shaA, "CLASS_PATH"))},
	}
	for _, tt := range schemaErrors {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLaunchManifest(tt.raw, "1.8.9", "master", "lunar")
			if !IsSchemaError(err) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
		})
	}
}

func TestResolveArtifactTable(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(launchResponseJSON))
	})

	table, err := client.ResolveArtifactTable(context.Background(), "1.8.9", "master", "lunar")
	if err != nil {
		t.Fatal(err)
	}
	want := lunarmanifest.ArtifactTable{
		"lunar.jar":         {URL: "https://cdn.example/lunar.jar", Sha1: shaA, Kind: lunarmanifest.KindClassPath},
		"natives-linux.zip": {URL: "https://cdn.example/natives.zip", Sha1: shaB, Kind: lunarmanifest.KindNatives},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

const metadataJSON = `{
	"versions": [
		{"id": "1.7", "subversions": [{"id": "1.7.10", "modules": [{"id": "lunar"}]}]},
		{"id": "1.8", "subversions": [{"id": "1.8.9", "modules": [{"id": "lunar"}, {"id": "forge"}]}]},
		{"id": "1.12", "subversions": [{"id": "1.12.2", "modules": ["lunar", "optifine"]}]},
		{"id": "1.20"}
	]
}`

func TestFetchMetadata(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(metadataJSON))
	})

	metadata, err := client.FetchMetadata(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"1.7.10", "1.8.9", "1.12.2", "1.20"}, metadata.SupportedVersions()); diff != "" {
		t.Fatalf("versions mismatch (-want +got):\n%s", diff)
	}

	modules, err := metadata.SupportedModules("1.8.9")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"lunar", "forge"}, modules); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}

	modules, err = metadata.SupportedModules("1.12.2")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"lunar", "optifine"}, modules); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}

	if _, ok := metadata.SubVersion("1.8"); ok {
		t.Fatal("a top level id must not match a subversion")
	}
	if _, err := metadata.SupportedModules("1.19.4"); err != ErrUnknownVersion {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
}

func TestFetchMetadataSchemaError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"launcher": {}}`))
	})
	_, err := client.FetchMetadata(context.Background())
	if !IsSchemaError(err) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestSortVersions(t *testing.T) {
	got := SortVersions([]string{"1.12.2", "snapshot", "1.8.9", "1.20", "1.7.10"})
	want := []string{"1.7.10", "1.8.9", "1.12.2", "1.20", "snapshot"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchTexturesIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("assets/a.png " + shaA + "\n\nb.png " + shaB + "\n" +
			"assets/a/icon.png " + shaA + "\nassets/b/icon.png " + shaB + "\n" +
			"b.png " + shaA + "\n"))
	}))
	defer srv.Close()

	client := New(srv.Client())
	manifest := &lunarmanifest.VersionManifest{
		BaseURL:          "https://textures.example/file/",
		TexturesIndexURL: srv.URL + "/index",
	}

	table, err := client.FetchTexturesIndex(context.Background(), manifest)
	if err != nil {
		t.Fatal(err)
	}
	want := lunarmanifest.ArtifactTable{
		"assets/a.png":      {URL: "https://textures.example/file/assets/a.png", Sha1: shaA, Kind: lunarmanifest.KindExternalFile},
		"assets/a/icon.png": {URL: "https://textures.example/file/assets/a/icon.png", Sha1: shaA, Kind: lunarmanifest.KindExternalFile},
		"assets/b/icon.png": {URL: "https://textures.example/file/assets/b/icon.png", Sha1: shaB, Kind: lunarmanifest.KindExternalFile},
		// listed twice, the last hash wins
		"b.png":             {URL: "https://textures.example/file/b.png", Sha1: shaA, Kind: lunarmanifest.KindExternalFile},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("textures mismatch (-want +got):\n%s", diff)
	}

	if _, err := client.FetchTexturesIndex(context.Background(), &lunarmanifest.VersionManifest{}); !IsSchemaError(err) {
		t.Fatalf("expected SchemaError without index url, got %v", err)
	}
}
