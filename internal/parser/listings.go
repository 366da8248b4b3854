package parser

import (
	"strings"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

// Column positions for the listings export.
const (
	listingColTitle       = 0
	listingColDescription = 1
	listingColPrice       = 2
	listingColQuantity    = 3
	listingColTags        = 4
	listingColMaterials   = 5
	listingColImageFirst  = 6
	listingColImageLast   = 15
	listingColSKU         = 16
)

// ParseListings maps a listings export into typed listing records.
func ParseListings(text string) ([]domain.Listing, int) {
	records := SplitRecords(text)
	if len(records) <= 1 {
		return nil, 0
	}

	out := make([]domain.Listing, 0, len(records)-1)
	parseErrors := 0
	for _, rec := range records[1:] {
		listing, ok := mapListing(row{DecodeFields(rec)})
		if !ok {
			parseErrors++
			continue
		}
		out = append(out, listing)
	}

	return out, parseErrors
}

func mapListing(r row) (domain.Listing, bool) {
	title := r.get(listingColTitle)
	if title == "" {
		return domain.Listing{}, false
	}

	listing := domain.Listing{
		Title:       title,
		Description: r.get(listingColDescription),
		Price:       r.float(listingColPrice),
		Quantity:    r.int(listingColQuantity),
		Tags:        splitTags(r.get(listingColTags)),
		Materials:   r.get(listingColMaterials),
		SKU:         r.get(listingColSKU),
	}

	for idx := listingColImageFirst; idx <= listingColImageLast; idx++ {
		if url := r.get(idx); url != "" {
			listing.ImageURLs = append(listing.ImageURLs, url)
		}
	}

	return listing, true
}

// splitTags splits the comma-joined tag list, dropping blanks.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
