package config

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"installDir", "installDir", false},
		{"install-dir", "installDir", false},
		{"install_dir", "installDir", false},
		{"download-rate-limit", "downloadRateLimit", false},
		{"java", "java", false},
		{"password", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			entry, err := lookup(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if entry.key != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, entry.key)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		in      string
		want    interface{}
		wantErr bool
	}{
		{"width", "1280", 1280, false},
		{"width", "wide", nil, true},
		{"nonInteractive", "yes", true, false},
		{"nonInteractive", "maybe", nil, true},
		{"downloadRateLimit", "2.5", 2.5, false},
		{"branch", "master", "master", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.in, func(t *testing.T) {
			entry, _ := lookup(tt.key)
			got, err := parseValue(entry, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
