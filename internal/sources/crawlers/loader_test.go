package crawlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader("")
	tokens, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tokens) != len(DefaultTokens) {
		t.Errorf("Load() returned %d tokens, want %d", len(tokens), len(DefaultTokens))
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "normalizes case and whitespace",
			content: "tokens:\n  - FacebookExternalHit\n  - \" twitterbot \"\n  - telegrambot\n",
			want:    []string{"facebookexternalhit", "twitterbot", "telegrambot"},
		},
		{
			name:    "empty list is an error",
			content: "tokens: []\n",
			wantErr: true,
		},
		{
			name:    "blank entries are dropped",
			content: "tokens:\n  - \"\"\n  - slackbot\n",
			want:    []string{"slackbot"},
		},
		{
			name:    "invalid yaml",
			content: "tokens: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "crawlers.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			tokens, err := NewLoader(path).Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("Load() = %v, want %v", tokens, tt.want)
			}
			for i := range tokens {
				if tokens[i] != tt.want[i] {
					t.Errorf("Load()[%d] = %q, want %q", i, tokens[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewLoader("/does/not/exist.yaml").Load(); err == nil {
		t.Error("Load() on missing file should fail")
	}
}
