package freesound

import (
	"context"
	"iter"

	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
	"github.com/me/freesound/pkg/response"
)

// NextPage advances q to the following page and executes it. It returns
// ErrNoNextPage when the last response of q advertised no following page,
// including when q has not been executed yet.
func NextPage[I any](ctx context.Context, c *Client, q query.PagedQuery[I]) (*response.Response[model.Page[I]], error) {
	if !q.HasNextPage() {
		return nil, ErrNoNextPage
	}
	return executePage(ctx, c, q, q.Page()+1)
}

// PreviousPage moves q back one page and executes it. It returns
// ErrNoPreviousPage when the last response of q advertised no preceding page.
func PreviousPage[I any](ctx context.Context, c *Client, q query.PagedQuery[I]) (*response.Response[model.Page[I]], error) {
	if !q.HasPreviousPage() {
		return nil, ErrNoPreviousPage
	}
	return executePage(ctx, c, q, q.Page()-1)
}

// executePage executes q for page. When no response is obtained q is left on
// its previous page, so navigation can be retried.
func executePage[I any](ctx context.Context, c *Client, q query.PagedQuery[I], page int) (*response.Response[model.Page[I]], error) {
	prev := q.Page()
	if err := q.SetPage(page); err != nil {
		return nil, err
	}
	resp, err := Execute[model.Page[I]](ctx, c, q)
	if err != nil {
		q.SetPage(prev)
		return nil, err
	}
	return resp, nil
}

// All executes q from its current page onwards and yields every item of every
// page. Iteration stops at the first failure, which is yielded as the error;
// an error response is yielded as *APIError.
func All[I any](ctx context.Context, c *Client, q query.PagedQuery[I]) iter.Seq2[I, error] {
	return func(yield func(I, error) bool) {
		var zero I
		resp, err := Execute[model.Page[I]](ctx, c, q)
		for {
			if err == nil {
				err = CheckResponse(resp)
			}
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range resp.Results().Results {
				if !yield(item, nil) {
					return
				}
			}
			if !q.HasNextPage() {
				return
			}
			resp, err = NextPage(ctx, c, q)
		}
	}
}
