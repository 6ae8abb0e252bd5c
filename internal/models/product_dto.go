package models

// ProductListResponse represents the response structure for listing the
// product catalog
type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
