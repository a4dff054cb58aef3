package model

// Page is one page of a paginated list response.
type Page[T any] struct {
	// Count is the total number of items across all pages.
	Count *int `json:"count,omitempty"`

	// NextPageURI is empty on the last page.
	NextPageURI string `json:"next,omitempty"`

	// PreviousPageURI is empty on the first page.
	PreviousPageURI string `json:"previous,omitempty"`

	// Results holds the items of this page in API order.
	Results []T `json:"results"`
}

// HasNextPage reports whether the API advertised a following page.
func (p Page[T]) HasNextPage() bool {
	return p.NextPageURI != ""
}

// HasPreviousPage reports whether the API advertised a preceding page.
func (p Page[T]) HasPreviousPage() bool {
	return p.PreviousPageURI != ""
}
