package collections

// DefaultSearchLimit caps search results when no limit is supplied.
const DefaultSearchLimit = 20

// SearchOpts controls search result size and hydration.
type SearchOpts struct {
	Limit          int
	IncludeContent bool
}

// SearchCollections finds the owner's collections whose name or description
// contains the query, case-insensitively.
func (e *Engine) SearchCollections(ownerID, query string, opts SearchOpts) ([]*CollectionView, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}

	found, err := e.collections.Search(ownerID, query, opts.Limit)
	if err != nil {
		e.metrics.RecordOperation("search", err)
		return nil, err
	}

	views := make([]*CollectionView, 0, len(found))
	for _, c := range found {
		view := toView(c)
		if opts.IncludeContent {
			content, err := e.content(c.ID())
			if err != nil {
				e.metrics.RecordOperation("search", err)
				return nil, err
			}
			view.Content = content
		}
		views = append(views, view)
	}

	e.metrics.RecordOperation("search", nil)
	return views, nil
}
