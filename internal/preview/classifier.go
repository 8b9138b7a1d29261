// Package preview implements the crawler-aware response pipeline: request
// classification, the transport (compression) policy, and server-rendered
// Open Graph previews for product detail URLs.
package preview

import (
	"regexp"
	"strings"
)

// productPathPattern matches product detail URLs: a product route segment,
// a slug segment, then a 24-character lowercase hex id terminating the path.
// The slug segment is informational only; lookups key on the id.
var productPathPattern = regexp.MustCompile(`/product/[^/]+/([a-f0-9]{24})$`)

// ClassifiedRequest is the per-request classification result. It is created
// fresh for each request and discarded once the response is sent.
type ClassifiedRequest struct {
	IsCrawler bool
	ProductID string // empty when the path is not a product detail URL
}

// Classifier decides whether a request comes from a social media crawler and
// whether it targets a product detail page. Classification is pure: no I/O,
// never fails.
type Classifier struct {
	tokens []string
}

// NewClassifier builds a classifier from a crawler token list. Tokens are
// normalized to lowercase; blanks are dropped.
func NewClassifier(tokens []string) *Classifier {
	normalized := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			normalized = append(normalized, tok)
		}
	}
	return &Classifier{
		tokens: normalized,
	}
}

// Classify inspects the User-Agent and the request path. The two checks are
// independent: a browser request for a product URL still reports the id.
func (c *Classifier) Classify(userAgent, path string) ClassifiedRequest {
	var cr ClassifiedRequest

	ua := strings.ToLower(userAgent)
	for _, tok := range c.tokens {
		if strings.Contains(ua, tok) {
			cr.IsCrawler = true
			break
		}
	}

	if m := productPathPattern.FindStringSubmatch(path); m != nil {
		cr.ProductID = m[1]
	}

	return cr
}
