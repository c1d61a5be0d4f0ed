package geminikit

import (
	"context"
	"fmt"
	"iter"
)

// pageFetcher retrieves one page for the given request params and returns
// the raw response record.
type pageFetcher func(ctx context.Context, params map[string]any) (map[string]any, error)

// Pager iterates a paginated list endpoint page by page. It is not safe for
// concurrent use; calling Next from multiple goroutines is a caller error.
type Pager[T any] struct {
	items     []*T
	itemsKind string
	fetch     pageFetcher
	params    map[string]any
	nextToken string
}

func newPager[T any](itemsKind string, fetch pageFetcher, resp map[string]any, params map[string]any) (*Pager[T], error) {
	p := &Pager[T]{
		itemsKind: itemsKind,
		fetch:     fetch,
		params:    params,
	}
	if err := p.consume(resp); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pager[T]) consume(resp map[string]any) error {
	p.items = p.items[:0]
	if raw, ok := resp[p.itemsKind].([]any); ok {
		for _, item := range raw {
			decoded, err := fromRecord[T](item)
			if err != nil {
				return fmt.Errorf("failed to decode %s item: %w", p.itemsKind, err)
			}
			p.items = append(p.items, decoded)
		}
	}
	p.nextToken, _ = resp["nextPageToken"].(string)
	return nil
}

// Items returns the current page. The slice is reused across Next calls.
func (p *Pager[T]) Items() []*T {
	return p.items
}

// HasMore reports whether another page can be fetched. A page with zero
// items but a continuation token still has more.
func (p *Pager[T]) HasMore() bool {
	return p.nextToken != ""
}

// Next fetches the following page, or ErrPagerExhausted when no
// continuation token remains.
func (p *Pager[T]) Next(ctx context.Context) ([]*T, error) {
	if p.nextToken == "" {
		return nil, ErrPagerExhausted
	}

	params := make(map[string]any, len(p.params)+1)
	for k, v := range p.params {
		params[k] = v
	}
	params["pageToken"] = p.nextToken

	resp, err := p.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := p.consume(resp); err != nil {
		return nil, err
	}
	return p.items, nil
}

// All iterates every item across all remaining pages, fetching lazily as
// the current page drains.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for {
			for _, item := range p.items {
				if !yield(item, nil) {
					return
				}
			}
			if !p.HasMore() {
				return
			}
			if _, err := p.Next(ctx); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}
