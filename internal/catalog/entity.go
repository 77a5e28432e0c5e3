package catalog

// Entity is the normalized record both list endpoints are mapped onto.
// Products use Price/Stock/IsActive, offers use OldPrice/NewPrice and
// Description; the zero values of the unused fields are simply omitted
// when re-encoding.
type Entity struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price,omitempty"`
	OldPrice    float64  `json:"oldPrice,omitempty"`
	NewPrice    float64  `json:"newPrice,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Stock       int      `json:"stock,omitempty"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	// Image is the server-side relative path of the stored image
	// (e.g. "/uploads/abc.jpg"); join it with the API base address to
	// get a fetchable URL.
	Image    string `json:"image,omitempty"`
	IsActive bool   `json:"isActive,omitempty"`
}

// ImageURL reconstructs the absolute preview URL for a stored entity.
func (e Entity) ImageURL(baseURL string) string {
	if e.Image == "" {
		return ""
	}
	return baseURL + e.Image
}
