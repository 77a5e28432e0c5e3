// Package catalog implements the client side of the store API: entity
// schemas, drafts, validation, the submission pipeline, and the list
// controllers backing the products and offers screens.
package catalog

import "fmt"

// Kind tags the two entity families the console manages.
type Kind string

const (
	KindProduct Kind = "product"
	KindOffer   Kind = "offer"
)

// Field names a draft field. Validation errors are keyed by Field.
type Field string

const (
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldOldPrice    Field = "oldPrice"
	FieldNewPrice    Field = "newPrice"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
	FieldStock       Field = "stock"
	FieldSizes       Field = "sizes"
	FieldColors      Field = "colors"
	FieldImage       Field = "image"
)

// Encoding selects the request body format for a mutating operation.
type Encoding int

const (
	EncodingMultipart Encoding = iota
	EncodingJSON
)

// AuthMode says whether an operation needs the session token. Optional
// operations attach the token when one is present but never fail locally
// without it.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthOptional
	AuthRequired
)

// ListShape describes the response of the list endpoint. The product list
// returns a wrapper object with a "products" array, the offer list a bare
// array; both are normalized to []Entity behind the client.
type ListShape int

const (
	ListBareArray ListShape = iota
	ListWrapped
)

// Schema declares, once per entity kind, the field set, endpoints, auth
// requirements and encodings: everything submission needs to know that
// used to be re-stated at each call site.
type Schema struct {
	Kind       Kind
	ListPath   string
	CreatePath string

	CreateAuth AuthMode
	UpdateAuth AuthMode
	DeleteAuth AuthMode

	// Create is always multipart (it carries the image); update encoding
	// differs per kind.
	UpdateEncoding Encoding

	ListShape ListShape
	// WrapperField is the array field of a wrapped list response.
	WrapperField string

	Fields []Field

	// DefaultCategory fills an empty category on submit. ForcedCategory,
	// when set, overrides whatever the draft holds.
	DefaultCategory string
	ForcedCategory  string
	// DefaultStock fills an empty stock on submit.
	DefaultStock string
}

// ItemPath returns the endpoint for a single entity.
func (s Schema) ItemPath(id string) string {
	return fmt.Sprintf("%s/%s", s.CreatePath, id)
}

// Has reports whether the schema declares a field.
func (s Schema) Has(f Field) bool {
	for _, sf := range s.Fields {
		if sf == f {
			return true
		}
	}
	return false
}

// ProductSchema describes the products family: authenticated mutations,
// JSON updates, wrapped list responses.
var ProductSchema = Schema{
	Kind:            KindProduct,
	ListPath:        "/api/products",
	CreatePath:      "/api/products",
	CreateAuth:      AuthRequired,
	UpdateAuth:      AuthRequired,
	DeleteAuth:      AuthRequired,
	UpdateEncoding:  EncodingJSON,
	ListShape:       ListWrapped,
	WrapperField:    "products",
	Fields:          []Field{FieldName, FieldPrice, FieldCategory, FieldStock, FieldSizes, FieldColors, FieldImage},
	DefaultCategory: "pants",
	DefaultStock:    "10",
}

// OfferSchema describes the offers family: token attached when present but
// never required, multipart updates, bare-array list responses. The
// category is pinned server-side semantics: every offer lives in "offers".
var OfferSchema = Schema{
	Kind:           KindOffer,
	ListPath:       "/api/offers",
	CreatePath:     "/api/offers",
	CreateAuth:     AuthOptional,
	UpdateAuth:     AuthNone,
	DeleteAuth:     AuthNone,
	UpdateEncoding: EncodingMultipart,
	ListShape:      ListBareArray,
	Fields:         []Field{FieldName, FieldOldPrice, FieldNewPrice, FieldDescription, FieldSizes, FieldColors, FieldImage},
	ForcedCategory: "offers",
}

// SchemaFor returns the schema for a kind.
func SchemaFor(kind Kind) (Schema, error) {
	switch kind {
	case KindProduct:
		return ProductSchema, nil
	case KindOffer:
		return OfferSchema, nil
	default:
		return Schema{}, fmt.Errorf("unknown entity kind: %s", kind)
	}
}

// AvailableSizes are the size choices offered by the console forms.
var AvailableSizes = []string{"S", "M", "L", "XL", "XXL", "3XL", "4XL", "5XL"}

// AvailableColors are the color choices offered by the console forms.
var AvailableColors = []string{"black", "white", "red", "blue", "green", "yellow", "gray", "brown", "navy", "beige"}

// Categories are the product category choices.
var Categories = []string{"pants", "shirts", "hoodies", "boxers", "undershirt", "underwear"}
