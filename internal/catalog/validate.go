package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Result is a field-keyed error map produced by one validation pass. It is
// recomputed on every submit attempt and never persisted.
type Result struct {
	FieldErrors map[Field]string
}

// IsValid reports whether the draft may be dispatched.
func (r Result) IsValid() bool { return len(r.FieldErrors) == 0 }

// Error returns the message for a field, or "".
func (r Result) Error(f Field) string { return r.FieldErrors[f] }

// Clear drops a single field's error. A corrective edit to a field clears
// that field's error and nothing else; the rest of the map is untouched
// until the next full pass.
func (r *Result) Clear(f Field) { delete(r.FieldErrors, f) }

func (r *Result) add(f Field, msg string) {
	if r.FieldErrors == nil {
		r.FieldErrors = map[Field]string{}
	}
	r.FieldErrors[f] = msg
}

// Validate runs every rule the schema declares and accumulates all
// violations. It never stops at the first failure: the user gets every
// problem in one pass.
func Validate(d *Draft) Result {
	var r Result

	if d.Schema.Has(FieldName) && strings.TrimSpace(d.Name) == "" {
		r.add(FieldName, "name is required")
	}

	if d.Schema.Has(FieldPrice) {
		if _, ok := parsePositive(d.Price); !ok {
			r.add(FieldPrice, "enter a valid price")
		}
	}

	if d.Schema.Has(FieldOldPrice) || d.Schema.Has(FieldNewPrice) {
		oldPrice, oldOK := parsePositive(d.OldPrice)
		newPrice, newOK := parsePositive(d.NewPrice)
		if !oldOK {
			r.add(FieldOldPrice, "enter a valid old price")
		}
		if !newOK {
			r.add(FieldNewPrice, "enter a valid new price")
		} else if oldOK && newPrice >= oldPrice {
			// Cross-field rule: the violation belongs to the new
			// price, not to both fields.
			r.add(FieldNewPrice, "new price must be less than the old price")
		}
	}

	if d.Schema.Has(FieldSizes) && d.Sizes.Empty() {
		r.add(FieldSizes, "choose at least one size")
	}
	if d.Schema.Has(FieldColors) && d.Colors.Empty() {
		r.add(FieldColors, "choose at least one color")
	}
	// When editing, the stored server-side image (PreviewURL) satisfies
	// the image requirement until a new file is selected.
	if d.Schema.Has(FieldImage) && d.Image == nil && d.PreviewURL == "" {
		r.add(FieldImage, "add an image")
	}

	return r
}

// Discount computes the displayed discount percentage. It is defined only
// when both prices are valid and the new price undercuts the old one;
// otherwise ok is false and nothing is shown.
func Discount(oldPrice, newPrice float64) (int, bool) {
	if oldPrice <= 0 || newPrice <= 0 || newPrice >= oldPrice {
		return 0, false
	}
	return int(math.Round((oldPrice - newPrice) / oldPrice * 100)), true
}

// DraftDiscount computes the discount from the draft's string inputs.
func DraftDiscount(d *Draft) (int, bool) {
	oldPrice, oldOK := parsePositive(d.OldPrice)
	newPrice, newOK := parsePositive(d.NewPrice)
	if !oldOK || !newOK {
		return 0, false
	}
	return Discount(oldPrice, newPrice)
}

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
