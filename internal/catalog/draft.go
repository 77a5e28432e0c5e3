package catalog

import (
	"strconv"
	"strings"

	"shopctl/internal/imaging"
)

// Set is an unordered unique-membership collection for sizes and colors.
// Insertion order is preserved so forms render stably.
type Set struct {
	items []string
}

// NewSet builds a set from values, dropping duplicates.
func NewSet(values ...string) Set {
	var s Set
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *Set) Has(v string) bool {
	for _, it := range s.items {
		if it == v {
			return true
		}
	}
	return false
}

func (s *Set) Add(v string) {
	if v == "" || s.Has(v) {
		return
	}
	s.items = append(s.items, v)
}

func (s *Set) Remove(v string) {
	for i, it := range s.items {
		if it == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Toggle flips membership, the way the form chips behave.
func (s *Set) Toggle(v string) {
	if s.Has(v) {
		s.Remove(v)
	} else {
		s.Add(v)
	}
}

func (s Set) Empty() bool      { return len(s.items) == 0 }
func (s Set) Len() int         { return len(s.items) }
func (s Set) Values() []string { return append([]string(nil), s.items...) }

// Join renders the set as the comma-joined string the multipart payload
// carries.
func (s Set) Join() string { return strings.Join(s.items, ",") }

// Clone returns a copy backed by its own slice.
func (s Set) Clone() Set { return Set{items: append([]string(nil), s.items...)} }

// Draft is the mutable in-progress representation of an entity being
// created or edited. Scalar inputs are kept as strings; they come from
// text fields and are only parsed at validation time. A draft is created
// empty on form mount (or pre-filled when editing) and reset to empty
// after a successful create.
type Draft struct {
	Schema Schema

	Name        string
	Price       string
	OldPrice    string
	NewPrice    string
	Category    string
	Description string
	Stock       string

	Sizes  Set
	Colors Set

	Image *imaging.Asset
	// PreviewURL is the reconstructed remote image URL when editing an
	// existing entity that has no freshly selected asset.
	PreviewURL string
}

// NewDraft returns the empty draft for a schema.
func NewDraft(schema Schema) *Draft {
	return &Draft{Schema: schema}
}

// DraftFromEntity pre-fills a draft from a fetched list entry for editing.
// The preview points at the stored server-side image until a new file is
// selected.
func DraftFromEntity(schema Schema, e Entity, baseURL string) *Draft {
	d := NewDraft(schema)
	d.Name = e.Name
	if e.Price != 0 {
		d.Price = strconv.FormatFloat(e.Price, 'f', -1, 64)
	}
	if e.OldPrice != 0 {
		d.OldPrice = strconv.FormatFloat(e.OldPrice, 'f', -1, 64)
	}
	if e.NewPrice != 0 {
		d.NewPrice = strconv.FormatFloat(e.NewPrice, 'f', -1, 64)
	}
	d.Category = e.Category
	d.Description = e.Description
	if e.Stock != 0 {
		d.Stock = strconv.Itoa(e.Stock)
	}
	d.Sizes = NewSet(e.Sizes...)
	d.Colors = NewSet(e.Colors...)
	d.PreviewURL = e.ImageURL(baseURL)
	return d
}

// Clone returns an independent copy for handing to another goroutine
// while the original keeps being edited. Sets get their own backing
// slices; the image asset is shared because assets are replaced
// wholesale, never mutated in place.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Sizes = d.Sizes.Clone()
	c.Colors = d.Colors.Clone()
	return &c
}

// Reset returns the draft to its initial empty value: all scalar fields
// empty, both sets empty, no image, no preview.
func (d *Draft) Reset() {
	*d = *NewDraft(d.Schema)
}

// SetImage replaces the draft's asset wholesale.
func (d *Draft) SetImage(a *imaging.Asset) {
	d.Image = a
	d.PreviewURL = ""
}

// ClearImage removes the asset and any preview.
func (d *Draft) ClearImage() {
	d.Image = nil
	d.PreviewURL = ""
}

// categoryValue resolves the category actually submitted: a forced
// category wins, then the drafted value, then the schema default.
func (d *Draft) categoryValue() string {
	if d.Schema.ForcedCategory != "" {
		return d.Schema.ForcedCategory
	}
	if d.Category != "" {
		return d.Category
	}
	return d.Schema.DefaultCategory
}

// stockValue resolves the stock actually submitted.
func (d *Draft) stockValue() string {
	if d.Stock != "" {
		return d.Stock
	}
	return d.Schema.DefaultStock
}

// descriptionValue falls back to the name, matching how offers have always
// been submitted.
func (d *Draft) descriptionValue() string {
	if d.Description != "" {
		return d.Description
	}
	return d.Name
}
