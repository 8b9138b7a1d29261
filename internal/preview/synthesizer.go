package preview

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/veloria/catalog-api/internal/domain"
)

const (
	// maxDescriptionLen bounds the preview description, ellipsis included.
	maxDescriptionLen = 160
	ellipsis          = "..."

	// defaultDescription is used when a product carries no description.
	defaultDescription = "View product details, pricing and availability."

	// imageTransform requests a fixed output format and a 1200x630 crop so
	// every preview card renders with the same aspect ratio.
	imageTransform = "?w=1200&h=630&fit=crop&fm=webp"
)

var (
	markupTagPattern = regexp.MustCompile(`<[^>]*>`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	imageExtPattern  = regexp.MustCompile(`(?i)\.(jpe?g|png|webp|gif|avif)$`)
)

// ProductSource is the read side of the product store needed for previews.
type ProductSource interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

// RenderedPreview is the metadata derived from one product snapshot. It is
// recomputed per request and never cached.
type RenderedPreview struct {
	Title        string
	Description  string
	ImageURL     string
	CanonicalURL string
	Price        float64
	SiteName     string
}

// SynthesizerConfig carries the site identity used in rendered previews.
type SynthesizerConfig struct {
	SiteOrigin      string // ex: https://shop.example.com
	SiteName        string
	AssetOrigin     string // origin prefixed to relative image URLs
	DefaultImageURL string // fallback when a product has no images
}

// Synthesizer renders self-contained HTML preview documents for social
// crawlers. It performs exactly one store read per request and no writes.
type Synthesizer struct {
	products ProductSource
	cfg      SynthesizerConfig
}

// NewSynthesizer creates a Synthesizer over the given product source.
func NewSynthesizer(products ProductSource, cfg SynthesizerConfig) *Synthesizer {
	return &Synthesizer{
		products: products,
		cfg:      cfg,
	}
}

// Synthesize loads the product and derives its preview metadata. It returns
// domain.ErrNotFound when the product does not exist; callers treat that as
// a decline, not an error page.
func (s *Synthesizer) Synthesize(ctx context.Context, productID string) (*RenderedPreview, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &RenderedPreview{
		Title:        p.Name,
		Description:  summarize(p.Description),
		ImageURL:     s.imageURL(p),
		CanonicalURL: s.canonicalURL(p),
		Price:        p.Price,
		SiteName:     s.cfg.SiteName,
	}, nil
}

// Render writes the preview document. All product-derived values pass through
// html/template, which escapes them for the context they appear in.
func (s *Synthesizer) Render(w io.Writer, pv *RenderedPreview) error {
	if err := previewTemplate.Execute(w, pv); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return nil
}

// canonicalURL is always slug-then-id: the id is authoritative, the slug
// cosmetic, so stale links keep resolving.
func (s *Synthesizer) canonicalURL(p *domain.Product) string {
	slug := p.Slug
	if slug == "" {
		slug = domain.Slugify(p.Name)
	}
	return fmt.Sprintf("%s/product/%s/%s", s.cfg.SiteOrigin, slug, p.ID)
}

func (s *Synthesizer) imageURL(p *domain.Product) string {
	raw := p.MainImageURL()
	if raw == "" {
		raw = s.cfg.DefaultImageURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = s.cfg.AssetOrigin + "/" + strings.TrimPrefix(raw, "/")
	}
	if !imageExtPattern.MatchString(raw) {
		raw += ".webp"
	}
	return raw + imageTransform
}

// summarize strips markup, collapses whitespace and truncates to the preview
// length. The ellipsis is appended only when text was actually cut.
func summarize(description string) string {
	text := markupTagPattern.ReplaceAllString(description, " ")
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text == "" {
		return defaultDescription
	}

	runes := []rune(text)
	if len(runes) <= maxDescriptionLen {
		return text
	}
	cut := strings.TrimRight(string(runes[:maxDescriptionLen-len(ellipsis)]), " ")
	return cut + ellipsis
}
