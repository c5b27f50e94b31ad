package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
)

const (
	DefaultProductName  = "Sin Nombre"
	DefaultCategoryName = "Sin nombre"
	DefaultAppName      = "Safari Web"
	PlaceholderImage    = "https://via.placeholder.com/300?text=No+Image"
)

// Defaults are the substitutions applied while shaping store rows.
type Defaults struct {
	AppName          string
	PlaceholderImage string
	CategoryImage    string
}

func (d Defaults) withFallbacks() Defaults {
	if d.AppName == "" {
		d.AppName = DefaultAppName
	}
	if d.PlaceholderImage == "" {
		d.PlaceholderImage = PlaceholderImage
	}
	return d
}

// numericOrZero returns the value when the column held a number and 0 otherwise.
// lib/pq hands NUMERIC columns over as text, so numeric text counts as a number.
func numericOrZero(v any) float64 {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case int:
		f = float64(n)
	case []byte:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// stockOrZero counts whole units: fractions are dropped, negatives become 0 and
// values past the int64 range are capped.
func stockOrZero(v any) int64 {
	f := math.Floor(numericOrZero(v))

	switch {
	case f <= 0:
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	}

	return int64(f)
}

// resolveImages picks the gallery, then the primary photo, then the placeholder.
func resolveImages(gallery []string, photo, placeholder string) []string {
	images := make([]string, 0, len(gallery))
	for _, url := range gallery {
		if url != "" {
			images = append(images, url)
		}
	}

	if len(images) > 0 {
		return images
	}

	if photo != "" {
		return []string{photo}
	}

	return []string{placeholder}
}

func idString(id int64, valid bool) string {
	if !valid {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func toProduct(row models.ProductRow, gallery []string, d Defaults) models.Product {

	name := row.Name.String
	if name == "" {
		name = DefaultProductName
	}

	var video *string
	if row.VideoURL.String != "" {
		v := row.VideoURL.String
		video = &v
	}

	return models.Product{
		ID:              idString(row.ID.Int64, row.ID.Valid),
		Name:            name,
		Description:     row.Description.String,
		Price:           numericOrZero(row.Price),
		Stock:           stockOrZero(row.Stock),
		CategoryID:      idString(row.CategoryID.Int64, row.CategoryID.Valid),
		CategoryName:    row.CategoryName.String,
		SubCategoryName: row.SubcategoryName.String,
		Images:          resolveImages(gallery, row.PhotoURL.String, d.PlaceholderImage),
		VideoURL:        video,
	}
}

// toProducts joins product rows with their gallery rows, keeping gallery order.
func toProducts(rows []models.ProductRow, images []models.ProductImageRow, d Defaults) []models.Product {

	gallery := make(map[int64][]string)
	for _, img := range images {
		gallery[img.ProductID] = append(gallery[img.ProductID], img.URL.String)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		var g []string
		if row.ID.Valid {
			g = gallery[row.ID.Int64]
		}
		products = append(products, toProduct(row, g, d))
	}

	return products
}

func toCategories(rows []models.CategoryRow, d Defaults) []models.Category {
	categories := make([]models.Category, 0, len(rows))

	for _, row := range rows {
		name := row.Name.String
		if name == "" {
			name = DefaultCategoryName
		}

		categories = append(categories, models.Category{
			ID:    strconv.FormatInt(row.ID, 10),
			Name:  name,
			Image: d.CategoryImage,
		})
	}

	return categories
}

func toStoreConfig(row *models.ConfigRow, d Defaults) models.StoreConfig {
	if row == nil {
		return models.StoreConfig{AppName: d.AppName, WhatsappNumber: ""}
	}

	appName := row.TradeName.String
	if appName == "" {
		appName = d.AppName
	}

	return models.StoreConfig{
		AppName:        appName,
		WhatsappNumber: utils.DigitsOnly(row.Phone.String),
	}
}
