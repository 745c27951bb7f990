package lunarmanifest

import (
	"encoding/json"
	"testing"
)

func TestAssetIndexBasis(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.8.9", "1.8"},
		{"1.12.2", "1.12"},
		{"1.20", "1"},
		{"snapshot", "snapshot"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			m := &VersionManifest{Version: tt.version}
			if got := m.AssetIndexBasis(); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseArtifactKind(t *testing.T) {
	for _, name := range []string{"CLASS_PATH", "EXTERNAL_FILE", "NATIVES"} {
		kind, err := ParseArtifactKind(name)
		if err != nil {
			t.Fatal(err)
		}
		if kind.String() != name {
			t.Fatalf("expected %s, got %s", name, kind.String())
		}
	}

	if _, err := ParseArtifactKind("class_path"); err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}

func TestVersionManifestHelpers(t *testing.T) {
	m := &VersionManifest{
		Artifacts: []Artifact{
			{Name: "b.jar", Kind: KindClassPath},
			{Name: "natives-linux.zip", Kind: KindNatives},
			{Name: "a.jar", Kind: KindClassPath},
			{Name: "argon.dll", Kind: KindExternalFile},
		},
	}

	cp := m.ArtifactsOfKind(KindClassPath)
	if len(cp) != 2 || cp[0].Name != "b.jar" || cp[1].Name != "a.jar" {
		t.Fatalf("classpath artifacts not in manifest order: %+v", cp)
	}

	natives, ok := m.Natives()
	if !ok || natives.Name != "natives-linux.zip" {
		t.Fatalf("expected natives-linux.zip, got %+v", natives)
	}

	table := m.Table()
	if len(table) != 4 {
		t.Fatalf("expected 4 table entries, got %d", len(table))
	}
	names := table.Names()
	if names[0] != "a.jar" || names[3] != "natives-linux.zip" {
		t.Fatalf("names are not sorted: %v", names)
	}

	raw, err := json.Marshal(table["argon.dll"])
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"url":"","sha1":"","type":"EXTERNAL_FILE"}` {
		t.Fatalf("unexpected json: %s", raw)
	}
}
