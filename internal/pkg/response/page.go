package response

// PageResponse is the standard wrapper for paginated list endpoints.
type PageResponse[T any] struct {
	Success  bool `json:"success"`
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	Pages    int  `json:"pages"`
}

// NewPageResponse is a helper to quickly create a response
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	return PageResponse[T]{
		Success:  true,
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    pages,
	}
}
