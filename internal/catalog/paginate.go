package catalog

// Paginate returns the page-th slice of perPage items (1-based) and the total
// item count. Out-of-range pages yield an empty slice.
func Paginate[T any](items []T, page, perPage int) ([]T, int64) {
	total := int64(len(items))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	// Compare page indexes before multiplying so a huge page cannot overflow.
	if len(items) == 0 || page-1 > (len(items)-1)/perPage {
		return []T{}, total
	}
	start := (page - 1) * perPage
	end := start + min(perPage, len(items)-start)
	return items[start:end], total
}
