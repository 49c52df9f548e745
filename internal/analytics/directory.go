package analytics

import (
	"sort"
	"strings"

	"radarcli/pkg/contracts/domain"
)

// Directory provides bidirectional lookup between a product's display
// description and its stable identifier. It is built once per session
// from the venue's negotiable-ticker listing and is read-only afterward,
// so it is safe for concurrent use.
type Directory struct {
	byID          map[int64]domain.Product
	byDescription map[string]domain.Product
}

// NewDirectory builds a directory from the product listing. Description
// lookup is case-insensitive; identifier lookup is exact.
func NewDirectory(products []domain.Product) *Directory {
	d := &Directory{
		byID:          make(map[int64]domain.Product, len(products)),
		byDescription: make(map[string]domain.Product, len(products)),
	}
	for _, p := range products {
		d.byID[p.ID] = p
		d.byDescription[strings.ToLower(p.Description)] = p
	}
	return d
}

// ResolveID maps a description to a product identifier. The second
// return value is false when no product matches; callers should surface
// that as an unknown-product condition, not a fault.
func (d *Directory) ResolveID(description string) (int64, bool) {
	p, ok := d.byDescription[strings.ToLower(description)]
	if !ok {
		return 0, false
	}
	return p.ID, true
}

// ResolveDescription maps a product identifier back to its description.
func (d *Directory) ResolveDescription(id int64) (string, bool) {
	p, ok := d.byID[id]
	if !ok {
		return "", false
	}
	return p.Description, true
}

// Len returns the number of products in the directory.
func (d *Directory) Len() int {
	return len(d.byID)
}

// Selectable returns the products offered on selection surfaces, with
// the excluded descriptions removed and the rest sorted by description.
// Excluded products still resolve through ResolveID when addressed
// explicitly; exclusion only hides them from listings.
func (d *Directory) Selectable(exclusions []string) []domain.Product {
	excluded := make(map[string]bool, len(exclusions))
	for _, e := range exclusions {
		excluded[e] = true
	}

	products := make([]domain.Product, 0, len(d.byID))
	for _, p := range d.byID {
		if excluded[p.Description] {
			continue
		}
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Description < products[j].Description
	})
	return products
}
