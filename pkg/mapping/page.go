package mapping

import "github.com/me/freesound/pkg/model"

// PageMapper maps a paginated list response ({count, next, previous,
// results}) using Item for each entry of results.
type PageMapper[I any] struct {
	Item Mapper[Object, I]
}

// NewPageMapper returns a PageMapper for items mapped by item.
func NewPageMapper[I any](item Mapper[Object, I]) PageMapper[I] {
	return PageMapper[I]{Item: item}
}

// Map implements Mapper.
func (m PageMapper[I]) Map(source Object) model.Page[I] {
	results, _ := Field[Array](source, "results")

	return model.Page[I]{
		Count:           Ptr[int](source, "count"),
		NextPageURI:     String(source, "next"),
		PreviousPageURI: String(source, "previous"),
		Results:         Items(results, m.Item),
	}
}
