package geminikit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagerItem struct {
	ID string `json:"id"`
}

func pageResponse(token string, ids ...string) map[string]any {
	items := make([]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{"id": id})
	}
	resp := map[string]any{"things": items}
	if token != "" {
		resp["nextPageToken"] = token
	}
	return resp
}

func TestPager_SinglePage(t *testing.T) {
	fetch := func(ctx context.Context, params map[string]any) (map[string]any, error) {
		t.Fatal("fetch should not run without a continuation token")
		return nil, nil
	}

	pager, err := newPager[pagerItem]("things", fetch, pageResponse("", "a", "b"), map[string]any{})
	require.NoError(t, err)

	assert.Len(t, pager.Items(), 2)
	assert.False(t, pager.HasMore())

	_, err = pager.Next(context.Background())
	assert.ErrorIs(t, err, ErrPagerExhausted)
}

func TestPager_Progression(t *testing.T) {
	fetch := func(ctx context.Context, params map[string]any) (map[string]any, error) {
		assert.Equal(t, "tok-a", params["pageToken"])
		return pageResponse("", "3"), nil
	}

	pager, err := newPager[pagerItem]("things", fetch, pageResponse("tok-a", "1", "2"), map[string]any{})
	require.NoError(t, err)
	require.True(t, pager.HasMore())

	var ids []string
	for item, err := range pager.All(context.Background()) {
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.False(t, pager.HasMore())
}

func TestPager_EmptyPageWithTokenIsNotExhausted(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, params map[string]any) (map[string]any, error) {
		calls++
		return pageResponse("", "only"), nil
	}

	pager, err := newPager[pagerItem]("things", fetch, pageResponse("more"), map[string]any{})
	require.NoError(t, err)

	assert.Empty(t, pager.Items())
	assert.True(t, pager.HasMore(), "zero items with a token still has more")

	items, err := pager.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "only", items[0].ID)
	assert.Equal(t, 1, calls)
}

func TestPager_MissingItemsTag(t *testing.T) {
	pager, err := newPager[pagerItem]("things", nil, map[string]any{"other": []any{}}, map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, pager.Items())
	assert.False(t, pager.HasMore())
}

func TestPager_FetchError(t *testing.T) {
	boom := errors.New("backend down")
	fetch := func(ctx context.Context, params map[string]any) (map[string]any, error) {
		return nil, boom
	}

	pager, err := newPager[pagerItem]("things", fetch, pageResponse("tok", "1"), map[string]any{})
	require.NoError(t, err)

	var got error
	for _, err := range pager.All(context.Background()) {
		if err != nil {
			got = err
		}
	}
	assert.ErrorIs(t, got, boom)
}
