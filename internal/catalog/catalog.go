// Package catalog filters and sorts the in-memory service list shown to
// customers.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"servicehub/internal/data/entity"

	"github.com/shopspring/decimal"
)

type PriceRange string

const (
	PriceAny      PriceRange = ""
	PriceUnder100 PriceRange = "under-100"
	Price100To300 PriceRange = "100-300"
	PriceOver300  PriceRange = "over-300"
)

type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortDuration  SortBy = "duration"
)

var (
	hundred      = decimal.NewFromInt(100)
	threeHundred = decimal.NewFromInt(300)
)

type Filter struct {
	Search     string
	CategoryID string
	PriceRange PriceRange
	Sort       SortBy
}

// Apply runs the catalog pipeline in its fixed order: active status, text
// search, category, price bucket, sort. The input slice is not modified.
func Apply(services []entity.Service, f Filter) []entity.Service {
	out := filter(services, func(s entity.Service) bool {
		return s.Status == entity.ServiceStatusActive
	})

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		out = filter(out, func(s entity.Service) bool { return matches(s, q) })
	}

	if f.CategoryID != "" {
		out = filter(out, func(s entity.Service) bool { return s.CategoryID == f.CategoryID })
	}

	if f.PriceRange != PriceAny {
		out = filter(out, func(s entity.Service) bool { return InRange(s.Price, f.PriceRange) })
	}

	Sort(out, f.Sort)
	return out
}

// InRange reports whether price falls in the bucket. Bucket bounds are
// inclusive on the 100-300 side.
func InRange(price decimal.Decimal, r PriceRange) bool {
	switch r {
	case PriceUnder100:
		return price.LessThan(hundred)
	case Price100To300:
		return price.GreaterThanOrEqual(hundred) && price.LessThanOrEqual(threeHundred)
	case PriceOver300:
		return price.GreaterThan(threeHundred)
	default:
		return true
	}
}

// Sort orders services in place. Unknown or empty keys sort newest first.
// Ties keep their input order.
func Sort(services []entity.Service, by SortBy) {
	var less func(a, b entity.Service) bool
	switch by {
	case SortPriceLow:
		less = func(a, b entity.Service) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b entity.Service) bool { return a.Price.GreaterThan(b.Price) }
	case SortDuration:
		less = func(a, b entity.Service) bool { return DurationMinutes(a.Duration) < DurationMinutes(b.Duration) }
	default:
		less = func(a, b entity.Service) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(services, func(i, j int) bool { return less(services[i], services[j]) })
}

// DurationMinutes reads the leading integer of a duration label such as
// "90 minutes". Labels without a numeric prefix count as 0.
func DurationMinutes(label string) int {
	label = strings.TrimSpace(label)
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(label[:end])
	if err != nil {
		return 0
	}
	return n
}

func matches(s entity.Service, q string) bool {
	if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Description), q) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func filter(services []entity.Service, keep func(entity.Service) bool) []entity.Service {
	out := make([]entity.Service, 0, len(services))
	for _, s := range services {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
