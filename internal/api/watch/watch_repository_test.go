package watch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oselz/watch-catalog-api/app/observability/metrics"
	"github.com/oselz/watch-catalog-api/internal/types"
)

func init() {
	metrics.InitAppMetrics()
}

func watchColumns() []string {
	return []string{
		"id", "name", "reference_number", "retail_price", "release_date",
		"brand_id", "brand_name",
		"currency_id", "currency_name",
		"country_id", "country_name",
		"created_at", "updated_at",
	}
}

func sampleWatchRow(id uuid.UUID, name string) []any {
	brandID := uuid.New()
	brandName := "Cartier"
	now := time.Now()
	return []any{
		id, name, "WSSA0018", int64(6550), now,
		&brandID, &brandName,
		(*uuid.UUID)(nil), (*string)(nil),
		(*uuid.UUID)(nil), (*string)(nil),
		now, now,
	}
}

func TestSearchWatches_ReturnsMatches(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresWatchRepo(mockPool, testLogger())

	id := uuid.New()
	rows := pgxmock.NewRows(watchColumns()).AddRow(sampleWatchRow(id, "Santos de Cartier")...)
	mockPool.ExpectQuery("SELECT w.id, w.name").
		WithArgs("%santos%").
		WillReturnRows(rows)

	result, err := repo.SearchWatches(context.Background(), "santos")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, id, result[0].ID)
	assert.Equal(t, "Santos de Cartier", result[0].Name)
	require.NotNil(t, result[0].BrandName)
	assert.Equal(t, "Cartier", *result[0].BrandName)

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGetWatchByID_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresWatchRepo(mockPool, testLogger())

	id := uuid.New()
	mockPool.ExpectQuery("SELECT w.id, w.name").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(watchColumns()))

	result, err := repo.GetWatchByID(context.Background(), id)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGetWatches_AppliesFilterAndPagination(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresWatchRepo(mockPool, testLogger())

	mockPool.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs("%Santos%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	id := uuid.New()
	mockPool.ExpectQuery("SELECT w.id, w.name").
		WithArgs("%Santos%", 10, 0).
		WillReturnRows(pgxmock.NewRows(watchColumns()).AddRow(sampleWatchRow(id, "Santos de Cartier")...))

	result, total, err := repo.GetWatches(context.Background(), types.WatchFilter{
		Name:  "Santos",
		Page:  1,
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, result, 1)
	assert.Equal(t, id, result[0].ID)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUpdateWatch_EmptyPatch(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresWatchRepo(mockPool, testLogger())

	err = repo.UpdateWatch(context.Background(), uuid.New(), types.UpdateWatchParams{}, nil)
	assert.ErrorIs(t, err, types.ErrBadRequest)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUpdateWatch_NoRowMatched(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresWatchRepo(mockPool, testLogger())

	id := uuid.New()
	name := "Tank Must"
	mockPool.ExpectExec("UPDATE watch SET").
		WithArgs(name, pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateWatch(context.Background(), id, types.UpdateWatchParams{Name: &name}, nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
