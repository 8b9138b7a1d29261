package domain

import "testing"

func TestProductValidate(t *testing.T) {
	valid := Product{
		Name:     "USB Cable",
		Price:    1,
		Category: "Accessories",
		Brand:    "Generic",
	}

	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr bool
	}{
		{"valid product", func(p *Product) {}, false},
		{"missing name", func(p *Product) { p.Name = "" }, true},
		{"price below one", func(p *Product) { p.Price = 0.99 }, true},
		{"missing category", func(p *Product) { p.Category = "" }, true},
		{"missing brand", func(p *Product) { p.Brand = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMainImageURL(t *testing.T) {
	p := Product{}
	if got := p.MainImageURL(); got != "" {
		t.Errorf("MainImageURL() on empty images = %q, want empty", got)
	}

	p.Images = []Image{
		{StorageID: "a1", URL: "https://cdn.example.com/a1.jpg"},
		{StorageID: "a2", URL: "https://cdn.example.com/a2.jpg"},
	}
	if got := p.MainImageURL(); got != "https://cdn.example.com/a1.jpg" {
		t.Errorf("MainImageURL() = %q, want first image", got)
	}
}
