package mongo_test

import (
	"context"
	"testing"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/mongo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The service's query gate and filter matching are testable without a
// running deployment; document round-trips are covered by integration
// runs against a real mongod.

func TestCatalogService_Query(t *testing.T) {
	t.Parallel()

	s := mongo.NewCatalogService(nil)

	t.Run("rejects non-select statements", func(t *testing.T) {
		t.Parallel()
		for _, stmt := range []string{
			"DELETE FROM catalogs",
			"drop table catalogs",
			"UPDATE catalogs SET parts = '[]'",
		} {
			_, err := s.Query(context.Background(), stmt)
			require.Error(t, err, stmt)
			assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
		}
	})

	t.Run("rejects select statements without reaching a backend", func(t *testing.T) {
		t.Parallel()
		// A nil collection would panic if the gate let anything through.
		_, err := s.Query(context.Background(), "SELECT * FROM catalogs")
		require.Error(t, err)
		assert.Equal(t, partscat.EINVALID, partscat.ErrorCode(err))
	})
}
