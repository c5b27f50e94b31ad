package storefront

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// Query narrows the product list. Zero values mean "no filter".
type Query struct {
	Search     string
	CategoryID string
	Sort       SortOrder
}

// Grouped reports whether a listing should be shown per category.
// Searching or filtering shows a flat list.
func (q Query) Grouped() bool {
	return q.Search == "" && q.CategoryID == ""
}

// Filter applies search, category and sort. The input is not modified.
func Filter(products []models.Product, q Query) []models.Product {
	search := strings.TrimSpace(q.Search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !utils.ContainsFold(p.Name, search) && !utils.ContainsFold(p.Description, search) {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		out = append(out, p)
	}

	sortByPrice(out, q.Sort)

	return out
}

func sortByPrice(products []models.Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) })
	}
}

// CategoriesWithProducts keeps the categories that at least one product points to.
func CategoriesWithProducts(categories []models.Category, products []models.Product) []models.Category {
	used := make(map[string]struct{}, len(products))
	for _, p := range products {
		used[p.CategoryID] = struct{}{}
	}

	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if _, ok := used[c.ID]; ok {
			out = append(out, c)
		}
	}

	return out
}

// Group is one category section of the home listing.
type Group struct {
	Category models.Category
	Products []models.Product
}

// GroupByCategory sorts categories by name (Spanish collation) and lists each
// one's products, matched by category name, in the requested order. Categories
// without products are left out.
func GroupByCategory(categories []models.Category, products []models.Product, order SortOrder) []Group {
	sorted := slices.Clone(categories)
	coll := collate.New(language.Spanish)
	slices.SortStableFunc(sorted, func(a, b models.Category) int { return coll.CompareString(a.Name, b.Name) })

	var groups []Group
	for _, c := range sorted {
		var items []models.Product
		for _, p := range products {
			if p.CategoryName == c.Name {
				items = append(items, p)
			}
		}

		if len(items) == 0 {
			continue
		}

		sortByPrice(items, order)
		groups = append(groups, Group{Category: c, Products: items})
	}

	return groups
}

// FormatPrice renders an amount as US dollars.
func FormatPrice(amount float64) string {
	return utils.FormatPrice(amount)
}
