package preview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/veloria/catalog-api/internal/domain"
)

type fakeSource struct {
	products map[string]*domain.Product
	err      error
}

func (f *fakeSource) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func testConfig() SynthesizerConfig {
	return SynthesizerConfig{
		SiteOrigin:      "https://shop.example.com",
		SiteName:        "Example Shop",
		AssetOrigin:     "https://cdn.example.com",
		DefaultImageURL: "https://cdn.example.com/assets/default-product.webp",
	}
}

const testID = "507f1f77bcf86cd799439011"

func TestSynthesizeStripsMarkupAndDefaultsImage(t *testing.T) {
	src := &fakeSource{products: map[string]*domain.Product{
		testID: {
			ID:          testID,
			Name:        "USB Cable",
			Slug:        "usb-cable",
			Description: "<b>Great</b> cable, 2m, USB-C",
			Price:       1500,
		},
	}}
	s := NewSynthesizer(src, testConfig())

	pv, err := s.Synthesize(context.Background(), testID)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if pv.Description != "Great cable, 2m, USB-C" {
		t.Errorf("Description = %q, want markup stripped", pv.Description)
	}
	if !strings.HasPrefix(pv.ImageURL, "https://cdn.example.com/assets/default-product.webp") {
		t.Errorf("ImageURL = %q, want default asset", pv.ImageURL)
	}
	if !strings.HasSuffix(pv.ImageURL, imageTransform) {
		t.Errorf("ImageURL = %q, want transform suffix", pv.ImageURL)
	}
	if pv.CanonicalURL != "https://shop.example.com/product/usb-cable/"+testID {
		t.Errorf("CanonicalURL = %q", pv.CanonicalURL)
	}
}

func TestSynthesizeDescriptionTruncation(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 30) // well over 160 chars
	src := &fakeSource{products: map[string]*domain.Product{
		testID: {ID: testID, Name: "X", Slug: "x", Description: long, Price: 1},
	}}
	s := NewSynthesizer(src, testConfig())

	pv, err := s.Synthesize(context.Background(), testID)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if n := len([]rune(pv.Description)); n > maxDescriptionLen {
		t.Errorf("Description length = %d, want <= %d", n, maxDescriptionLen)
	}
	if !strings.HasSuffix(pv.Description, ellipsis) {
		t.Errorf("Description %q should end with ellipsis after truncation", pv.Description)
	}
}

func TestSynthesizeShortDescriptionHasNoEllipsis(t *testing.T) {
	src := &fakeSource{products: map[string]*domain.Product{
		testID: {ID: testID, Name: "X", Slug: "x", Description: "short and sweet", Price: 1},
	}}
	s := NewSynthesizer(src, testConfig())

	pv, err := s.Synthesize(context.Background(), testID)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if pv.Description != "short and sweet" {
		t.Errorf("Description = %q, want untouched text without ellipsis", pv.Description)
	}
}

func TestSynthesizeEmptyDescriptionFallsBack(t *testing.T) {
	src := &fakeSource{products: map[string]*domain.Product{
		testID: {ID: testID, Name: "X", Slug: "x", Description: "<p>   </p>", Price: 1},
	}}
	s := NewSynthesizer(src, testConfig())

	pv, err := s.Synthesize(context.Background(), testID)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if pv.Description != defaultDescription {
		t.Errorf("Description = %q, want fallback", pv.Description)
	}
}

func TestSynthesizeImageURLNormalization(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{
			name:  "absolute url with extension",
			image: "https://images.example.com/cable.jpg",
			want:  "https://images.example.com/cable.jpg" + imageTransform,
		},
		{
			name:  "relative url gets asset origin",
			image: "/uploads/cable.png",
			want:  "https://cdn.example.com/uploads/cable.png" + imageTransform,
		},
		{
			name:  "relative url without leading slash",
			image: "uploads/cable.png",
			want:  "https://cdn.example.com/uploads/cable.png" + imageTransform,
		},
		{
			name:  "missing extension gets one appended",
			image: "https://images.example.com/raw/abc123",
			want:  "https://images.example.com/raw/abc123.webp" + imageTransform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{products: map[string]*domain.Product{
				testID: {
					ID: testID, Name: "X", Slug: "x", Price: 1,
					Images: []domain.Image{{StorageID: "s1", URL: tt.image}},
				},
			}}
			pv, err := NewSynthesizer(src, testConfig()).Synthesize(context.Background(), testID)
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if pv.ImageURL != tt.want {
				t.Errorf("ImageURL = %q, want %q", pv.ImageURL, tt.want)
			}
		})
	}
}

func TestSynthesizeMissingSlugDerivesFromName(t *testing.T) {
	src := &fakeSource{products: map[string]*domain.Product{
		testID: {ID: testID, Name: "USB Cable", Price: 1},
	}}
	pv, err := NewSynthesizer(src, testConfig()).Synthesize(context.Background(), testID)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if pv.CanonicalURL != "https://shop.example.com/product/usb-cable/"+testID {
		t.Errorf("CanonicalURL = %q, want slug derived from name", pv.CanonicalURL)
	}
}

func TestSynthesizeNotFound(t *testing.T) {
	s := NewSynthesizer(&fakeSource{}, testConfig())
	_, err := s.Synthesize(context.Background(), testID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Synthesize() error = %v, want ErrNotFound", err)
	}
}

func TestRenderEscapesProductText(t *testing.T) {
	s := NewSynthesizer(&fakeSource{}, testConfig())
	pv := &RenderedPreview{
		Title:        `<script>alert("x")</script>`,
		Description:  `"quoted" & <tagged>`,
		ImageURL:     "https://cdn.example.com/a.webp",
		CanonicalURL: "https://shop.example.com/product/x/" + testID,
		Price:        10,
		SiteName:     "Example Shop",
	}

	var sb strings.Builder
	if err := s.Render(&sb, pv); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := sb.String()

	if strings.Contains(out, "<script>") {
		t.Error("rendered document contains unescaped script tag")
	}
	if !strings.Contains(out, "og:title") || !strings.Contains(out, "twitter:card") {
		t.Error("rendered document is missing preview meta tags")
	}
	if !strings.Contains(out, `rel="canonical"`) {
		t.Error("rendered document is missing the canonical link")
	}
}
