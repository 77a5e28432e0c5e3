package catalog

import (
	"testing"

	"shopctl/internal/imaging"
)

func TestSetToggleAndJoin(t *testing.T) {
	var s Set
	s.Toggle("S")
	s.Toggle("M")
	s.Toggle("S")
	s.Toggle("L")

	if s.Has("S") {
		t.Error("Expected S to be toggled off")
	}
	if got := s.Join(); got != "M,L" {
		t.Errorf("Expected join %q, got %q", "M,L", got)
	}

	s.Add("M")
	if s.Len() != 2 {
		t.Errorf("Expected duplicate add to be ignored, len=%d", s.Len())
	}
}

func TestDraftReset(t *testing.T) {
	d := validProductDraft()
	d.PreviewURL = "data:image/jpeg;base64,xyz"

	d.Reset()

	if d.Name != "" || d.Price != "" || d.Stock != "" {
		t.Errorf("Expected scalar fields cleared, got %+v", d)
	}
	if !d.Sizes.Empty() || !d.Colors.Empty() {
		t.Error("Expected sets cleared")
	}
	if d.Image != nil || d.PreviewURL != "" {
		t.Error("Expected image and preview cleared")
	}
	if d.Schema.Kind != KindProduct {
		t.Error("Expected schema to survive the reset")
	}
}

func TestDraftFromEntity(t *testing.T) {
	e := Entity{
		ID:       "p1",
		Name:     "Slim jeans",
		Price:    120,
		Category: "pants",
		Stock:    7,
		Sizes:    []string{"S", "M"},
		Colors:   []string{"black"},
		Image:    "/uploads/jeans.jpg",
	}

	d := DraftFromEntity(ProductSchema, e, "http://localhost:4000")

	if d.Name != "Slim jeans" || d.Price != "120" || d.Stock != "7" {
		t.Errorf("Expected prefilled scalars, got %+v", d)
	}
	if !d.Sizes.Has("M") || !d.Colors.Has("black") {
		t.Error("Expected prefilled sets")
	}
	if d.PreviewURL != "http://localhost:4000/uploads/jeans.jpg" {
		t.Errorf("Expected stored image preview URL, got %q", d.PreviewURL)
	}
	if d.Image != nil {
		t.Error("Expected no fresh asset on a prefilled draft")
	}
}

func TestDraftSetImageClearsPreview(t *testing.T) {
	d := DraftFromEntity(ProductSchema, Entity{Name: "x", Image: "/uploads/x.jpg"}, "http://localhost:4000")
	if d.PreviewURL == "" {
		t.Fatal("Expected a stored preview URL")
	}

	d.SetImage(&imaging.Asset{RawBytes: []byte("img"), Filename: "new.jpg"})
	if d.PreviewURL != "" {
		t.Error("Expected a fresh selection to supersede the stored preview")
	}

	d.ClearImage()
	if d.Image != nil || d.PreviewURL != "" {
		t.Error("Expected ClearImage to remove both asset and preview")
	}
}

func TestDraftCloneIsIndependent(t *testing.T) {
	d := validProductDraft()
	c := d.Clone()

	// Edits and set toggles on the original never show through the copy.
	d.Name = "Changed"
	d.Sizes.Toggle("L")
	d.Colors.Toggle("black")

	if c.Name != "Slim jeans" {
		t.Errorf("Expected clone to keep its name, got %q", c.Name)
	}
	if c.Sizes.Has("L") {
		t.Error("Expected clone sizes to be unaffected")
	}
	if !c.Colors.Has("black") {
		t.Error("Expected clone colors to be unaffected")
	}

	// Resetting the copy leaves the original intact.
	c.Reset()
	if d.Name != "Changed" || d.Sizes.Empty() {
		t.Error("Expected the original to survive the clone's reset")
	}
}

func TestDraftSubmitDefaults(t *testing.T) {
	tests := []struct {
		name         string
		draft        *Draft
		wantCategory string
		wantStock    string
	}{
		{
			name:         "product defaults fill empty fields",
			draft:        NewDraft(ProductSchema),
			wantCategory: "pants",
			wantStock:    "10",
		},
		{
			name: "explicit product values win",
			draft: func() *Draft {
				d := NewDraft(ProductSchema)
				d.Category = "hoodies"
				d.Stock = "3"
				return d
			}(),
			wantCategory: "hoodies",
			wantStock:    "3",
		},
		{
			name: "offer category is forced",
			draft: func() *Draft {
				d := NewDraft(OfferSchema)
				d.Category = "pants"
				return d
			}(),
			wantCategory: "offers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.categoryValue(); got != tt.wantCategory {
				t.Errorf("Expected category %q, got %q", tt.wantCategory, got)
			}
			if tt.wantStock != "" {
				if got := tt.draft.stockValue(); got != tt.wantStock {
					t.Errorf("Expected stock %q, got %q", tt.wantStock, got)
				}
			}
		})
	}
}

func TestDraftDescriptionFallsBackToName(t *testing.T) {
	d := NewDraft(OfferSchema)
	d.Name = "Summer sale"
	if got := d.descriptionValue(); got != "Summer sale" {
		t.Errorf("Expected description to fall back to name, got %q", got)
	}

	d.Description = "Limited time"
	if got := d.descriptionValue(); got != "Limited time" {
		t.Errorf("Expected explicit description, got %q", got)
	}
}
