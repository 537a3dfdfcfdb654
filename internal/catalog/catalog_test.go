package catalog

import (
	"math"
	"testing"
	"time"

	"servicehub/internal/data/entity"

	"github.com/shopspring/decimal"
)

func svc(id string, price int64, mods ...func(*entity.Service)) entity.Service {
	s := entity.Service{
		ID:     id,
		Name:   "Service " + id,
		Price:  decimal.NewFromInt(price),
		Status: entity.ServiceStatusActive,
	}
	for _, m := range mods {
		m(&s)
	}
	return s
}

func ids(services []entity.Service) []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = s.ID
	}
	return out
}

func sameIDs(t *testing.T, got []entity.Service, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestPriceBuckets(t *testing.T) {
	services := []entity.Service{svc("a", 50), svc("b", 150), svc("c", 500)}

	tests := []struct {
		bucket PriceRange
		want   []string
	}{
		{bucket: Price100To300, want: []string{"b"}},
		{bucket: PriceUnder100, want: []string{"a"}},
		{bucket: PriceOver300, want: []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got := Apply(services, Filter{PriceRange: tt.bucket, Sort: SortPriceLow})
			sameIDs(t, got, tt.want...)
		})
	}
}

func TestBucketBoundaries(t *testing.T) {
	if !InRange(decimal.NewFromInt(100), Price100To300) || InRange(decimal.NewFromInt(100), PriceUnder100) {
		t.Fatal("100 belongs to 100-300 only")
	}
	if !InRange(decimal.NewFromInt(300), Price100To300) || InRange(decimal.NewFromInt(300), PriceOver300) {
		t.Fatal("300 belongs to 100-300 only")
	}
	if !InRange(decimal.RequireFromString("99.99"), PriceUnder100) {
		t.Fatal("99.99 is under 100")
	}
}

func TestInactiveServicesAreDropped(t *testing.T) {
	services := []entity.Service{
		svc("a", 10),
		svc("b", 10, func(s *entity.Service) { s.Status = entity.ServiceStatusInactive }),
	}
	sameIDs(t, Apply(services, Filter{}), "a")
}

func TestSearchMatchesNameDescriptionAndTags(t *testing.T) {
	services := []entity.Service{
		svc("name", 10, func(s *entity.Service) { s.Name = "Deep Cleaning" }),
		svc("desc", 10, func(s *entity.Service) { s.Description = "We CLEAN windows" }),
		svc("tag", 10, func(s *entity.Service) { s.Tags = []string{"home", "cleaning"} }),
		svc("none", 10, func(s *entity.Service) { s.Name = "Plumbing" }),
	}

	got := Apply(services, Filter{Search: "  Clean ", Sort: SortPriceLow})
	sameIDs(t, got, "name", "desc", "tag")
}

func TestCategoryFilter(t *testing.T) {
	services := []entity.Service{
		svc("a", 10, func(s *entity.Service) { s.CategoryID = "home" }),
		svc("b", 10, func(s *entity.Service) { s.CategoryID = "beauty" }),
	}
	sameIDs(t, Apply(services, Filter{CategoryID: "beauty"}), "b")
}

func TestSortOrders(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	services := []entity.Service{
		svc("old", 200, func(s *entity.Service) { s.CreatedAt = base; s.Duration = "90 minutes" }),
		svc("new", 100, func(s *entity.Service) { s.CreatedAt = base.Add(48 * time.Hour); s.Duration = "30 min" }),
		svc("mid", 300, func(s *entity.Service) { s.CreatedAt = base.Add(24 * time.Hour); s.Duration = "60" }),
	}

	tests := []struct {
		by   SortBy
		want []string
	}{
		{by: SortNewest, want: []string{"new", "mid", "old"}},
		{by: "", want: []string{"new", "mid", "old"}},
		{by: SortPriceLow, want: []string{"new", "old", "mid"}},
		{by: SortPriceHigh, want: []string{"mid", "old", "new"}},
		{by: SortDuration, want: []string{"new", "mid", "old"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.by), func(t *testing.T) {
			sameIDs(t, Apply(services, Filter{Sort: tt.by}), tt.want...)
		})
	}
}

func TestSortIsStable(t *testing.T) {
	services := []entity.Service{svc("a", 100), svc("b", 100), svc("c", 100)}
	sameIDs(t, Apply(services, Filter{Sort: SortPriceLow}), "a", "b", "c")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	services := []entity.Service{svc("a", 300), svc("b", 100)}
	Apply(services, Filter{Sort: SortPriceLow})
	sameIDs(t, services, "a", "b")
}

func TestDurationMinutes(t *testing.T) {
	cases := map[string]int{
		"60 minutes": 60,
		" 90min":     90,
		"2 hours":    2,
		"flexible":   0,
		"":           0,
	}
	for in, want := range cases {
		if got := DurationMinutes(in); got != want {
			t.Errorf("DurationMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, total := Paginate(items, 2, 2)
	if total != 5 || len(page) != 2 || page[0] != 3 {
		t.Fatalf("Paginate(2,2) = %v, %d", page, total)
	}

	page, _ = Paginate(items, 3, 2)
	if len(page) != 1 || page[0] != 5 {
		t.Fatalf("Paginate(3,2) = %v", page)
	}

	page, _ = Paginate(items, 9, 2)
	if len(page) != 0 {
		t.Fatalf("Paginate(9,2) = %v", page)
	}
}

func TestPaginateOutOfRangePages(t *testing.T) {
	three := []int{1, 2, 3}

	tests := []struct {
		name    string
		items   []int
		page    int
		perPage int
		want    int
	}{
		{name: "huge page", items: three, page: 1_000_000_000_000_000_000, perPage: 12, want: 0},
		{name: "max int page", items: three, page: math.MaxInt, perPage: 100, want: 0},
		{name: "huge per page", items: three, page: 1, perPage: math.MaxInt, want: 3},
		{name: "last partial page", items: three, page: 2, perPage: 2, want: 1},
		{name: "empty input", page: 1, perPage: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := Paginate(tt.items, tt.page, tt.perPage)
			if len(got) != tt.want {
				t.Fatalf("Paginate(%d, %d) = %v, want %d items", tt.page, tt.perPage, got, tt.want)
			}
			if total != int64(len(tt.items)) {
				t.Fatalf("total = %d, want %d", total, len(tt.items))
			}
		})
	}
}
