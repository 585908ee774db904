//go:build unit

package queries_test

import (
	"context"
	"testing"

	"gin-booking-engine/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogStoreStub struct {
	popularLimit int
}

func (s *catalogStoreStub) ListServices(context.Context, queries.ServiceFilters) ([]*queries.ServiceView, error) {
	return nil, nil
}

func (s *catalogStoreStub) PopularServices(_ context.Context, limit int) ([]*queries.PopularService, error) {
	s.popularLimit = limit
	return []*queries.PopularService{}, nil
}

func (s *catalogStoreStub) ListResources(context.Context, bool) ([]*queries.ResourceView, error) {
	return nil, nil
}

func TestPopularServices_Limit(t *testing.T) {
	testCases := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "success: zero falls back to the default", limit: 0, want: queries.DefaultPopularLimit},
		{name: "success: negative falls back to the default", limit: -3, want: 5},
		{name: "success: explicit limit is kept", limit: 12, want: 12},
		{name: "success: capped at the list maximum", limit: 10_000, want: queries.MaxListLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &catalogStoreStub{}
			q := queries.NewCatalogQueries(store)

			_, err := q.PopularServices(context.Background(), tc.limit)
			require.NoError(t, err)
			assert.Equal(t, tc.want, store.popularLimit)
		})
	}
}
