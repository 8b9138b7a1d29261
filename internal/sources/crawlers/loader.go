// Package crawlers loads the social crawler token list used by request
// classification. The list is configuration, not code: deployments extend it
// by pointing CATALOG_CRAWLER_TOKENS_FILE at a yaml file.
package crawlers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTokens is the built-in crawler token set, matched case-insensitively
// against the User-Agent header.
var DefaultTokens = []string{
	"facebookexternalhit",
	"twitterbot",
	"whatsapp",
	"linkedinbot",
	"slackbot",
}

type tokensFile struct {
	Tokens []string `yaml:"tokens"`
}

// Loader reads a crawler token list from a yaml file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given file. An empty path means the
// built-in defaults.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load returns the configured token list, normalized to lowercase with
// blanks removed. Without a file it returns DefaultTokens.
func (l *Loader) Load() ([]string, error) {
	if l.filePath == "" {
		return DefaultTokens, nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read crawler tokens file: %w", err)
	}

	var file tokensFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse crawler tokens yaml: %w", err)
	}

	tokens := make([]string, 0, len(file.Tokens))
	for _, tok := range file.Tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("crawler tokens file %s defines no tokens", l.filePath)
	}

	return tokens, nil
}
