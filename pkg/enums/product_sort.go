package enums

// ProductSort names the supported catalog orderings.
type ProductSort string

const (
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortNewest    ProductSort = "newest"
)

func (s ProductSort) IsValid() bool {
	switch s {
	case ProductSortPriceAsc, ProductSortPriceDesc, ProductSortNewest:
		return true
	}
	return false
}

// ParseProductSort maps a query value to a sort order, defaulting to newest
// for empty or unrecognized input.
func ParseProductSort(raw string) ProductSort {
	s := ProductSort(raw)
	if s.IsValid() {
		return s
	}
	return ProductSortNewest
}
