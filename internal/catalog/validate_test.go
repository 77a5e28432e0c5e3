package catalog

import (
	"testing"

	"shopctl/internal/imaging"
)

func validProductDraft() *Draft {
	d := NewDraft(ProductSchema)
	d.Name = "Slim jeans"
	d.Price = "120"
	d.Sizes = NewSet("S", "M")
	d.Colors = NewSet("black")
	d.Image = &imaging.Asset{RawBytes: []byte("img"), Filename: "jeans.jpg"}
	return d
}

func validOfferDraft() *Draft {
	d := NewDraft(OfferSchema)
	d.Name = "Summer sale hoodie"
	d.OldPrice = "800"
	d.NewPrice = "450"
	d.Sizes = NewSet("M", "L")
	d.Colors = NewSet("navy")
	d.Image = &imaging.Asset{RawBytes: []byte("img"), Filename: "hoodie.jpg"}
	return d
}

func TestValidateCollectsAllErrors(t *testing.T) {
	// An entirely empty draft reports every violation in one pass.
	r := Validate(NewDraft(ProductSchema))
	if r.IsValid() {
		t.Fatal("Expected empty draft to be invalid")
	}
	for _, f := range []Field{FieldName, FieldPrice, FieldSizes, FieldColors, FieldImage} {
		if r.Error(f) == "" {
			t.Errorf("Expected error for field %q", f)
		}
	}
}

func TestValidatePriceRelationship(t *testing.T) {
	tests := []struct {
		name         string
		oldPrice     string
		newPrice     string
		wantOldError bool
		wantNewError bool
	}{
		{name: "valid discount", oldPrice: "800", newPrice: "450"},
		{name: "new price equals old", oldPrice: "500", newPrice: "500", wantNewError: true},
		{name: "new price above old", oldPrice: "400", newPrice: "500", wantNewError: true},
		{name: "old price not a number", oldPrice: "abc", newPrice: "450", wantOldError: true},
		{name: "new price zero", oldPrice: "800", newPrice: "0", wantNewError: true},
		{name: "both invalid", oldPrice: "", newPrice: "-1", wantOldError: true, wantNewError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validOfferDraft()
			d.OldPrice = tt.oldPrice
			d.NewPrice = tt.newPrice

			r := Validate(d)
			if got := r.Error(FieldOldPrice) != ""; got != tt.wantOldError {
				t.Errorf("oldPrice error = %v, want %v (%q)", got, tt.wantOldError, r.Error(FieldOldPrice))
			}
			if got := r.Error(FieldNewPrice) != ""; got != tt.wantNewError {
				t.Errorf("newPrice error = %v, want %v (%q)", got, tt.wantNewError, r.Error(FieldNewPrice))
			}
		})
	}
}

func TestValidateCrossFieldErrorOnNewPriceOnly(t *testing.T) {
	d := validOfferDraft()
	d.OldPrice = "400"
	d.NewPrice = "500"

	r := Validate(d)
	if r.Error(FieldOldPrice) != "" {
		t.Errorf("Expected no oldPrice error, got %q", r.Error(FieldOldPrice))
	}
	if r.Error(FieldNewPrice) == "" {
		t.Error("Expected newPrice error for inverted prices")
	}
}

func TestValidateStoredImageSatisfiesRequirement(t *testing.T) {
	// Editing an existing entity: no fresh asset, but the stored image's
	// preview URL is present.
	d := validProductDraft()
	d.Image = nil
	d.PreviewURL = "http://localhost:4000/uploads/jeans.jpg"

	if r := Validate(d); !r.IsValid() {
		t.Errorf("Expected draft with stored image to validate, got %v", r.FieldErrors)
	}
}

func TestResultClear(t *testing.T) {
	r := Validate(NewDraft(ProductSchema))
	before := len(r.FieldErrors)
	if before < 2 {
		t.Fatalf("Expected multiple errors, got %d", before)
	}

	r.Clear(FieldName)
	if r.Error(FieldName) != "" {
		t.Error("Expected name error to be cleared")
	}
	if len(r.FieldErrors) != before-1 {
		t.Errorf("Expected %d remaining errors, got %d", before-1, len(r.FieldErrors))
	}
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		oldPrice float64
		newPrice float64
		want     int
		wantOK   bool
	}{
		{name: "800 to 450", oldPrice: 800, newPrice: 450, want: 44, wantOK: true},
		{name: "100 to 50", oldPrice: 100, newPrice: 50, want: 50, wantOK: true},
		{name: "rounds to nearest", oldPrice: 300, newPrice: 200, want: 33, wantOK: true},
		{name: "equal prices undefined", oldPrice: 100, newPrice: 100},
		{name: "inverted undefined", oldPrice: 50, newPrice: 100},
		{name: "zero old undefined", oldPrice: 0, newPrice: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Discount(tt.oldPrice, tt.newPrice)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Expected discount %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDraftDiscount(t *testing.T) {
	d := validOfferDraft()
	if got, ok := DraftDiscount(d); !ok || got != 44 {
		t.Errorf("Expected 44, true; got %d, %v", got, ok)
	}

	d.NewPrice = "not-a-number"
	if _, ok := DraftDiscount(d); ok {
		t.Error("Expected discount to be undefined for unparsable input")
	}
}
