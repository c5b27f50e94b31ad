package models

import "database/sql"

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type Product struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price" validate:"gte=0"`
	Stock           int64    `json:"stock"`
	CategoryID      string   `json:"categoryId"`
	CategoryName    string   `json:"categoryName"`
	SubCategoryName string   `json:"subCategoryName"`
	Images          []string `json:"images"`
	VideoURL        *string  `json:"videoUrl"`
}

// PrimaryImage is the image shown in lists, the cart and the add-to-cart animation.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductRow is a product as read from the store, before defaults are applied.
// Price and Stock are kept untyped because the column may not hold a number.
type ProductRow struct {
	ID              sql.NullInt64
	Name            sql.NullString
	Description     sql.NullString
	Price           any
	Stock           any
	CategoryID      sql.NullInt64
	VideoURL        sql.NullString
	PhotoURL        sql.NullString
	CategoryName    sql.NullString
	SubcategoryName sql.NullString
}

type ProductImageRow struct {
	ProductID int64
	URL       sql.NullString
}

type CategoryRow struct {
	ID   int64
	Name sql.NullString
}
