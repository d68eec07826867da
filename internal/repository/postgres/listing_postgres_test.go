package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

var listingCols = []string{"id", "realtor_id", "title", "address", "city", "state", "zipcode", "description", "price",
	"bedrooms", "bathrooms", "garage", "sqft", "lot_size", "is_published", "list_date"}

func TestListingPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingPostgres(db)
	now := time.Now().UTC()
	l := &model.Listing{
		RealtorID: 3, Title: "Lake House", Address: "1 Shore Rd", City: "Austin", State: "TX", Zipcode: "78701",
		Price: 450000, Bedrooms: 3, Bathrooms: 2.5, Garage: 1, Sqft: 1800, LotSize: 0.25, IsPublished: true,
	}

	mock.ExpectQuery("INSERT INTO listings").
		WithArgs(l.RealtorID, l.Title, l.Address, l.City, l.State, l.Zipcode, l.Description, l.Price,
			l.Bedrooms, l.Bathrooms, l.Garage, l.Sqft, l.LotSize, l.IsPublished).
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow(42, l.RealtorID, l.Title, l.Address, l.City, l.State, l.Zipcode, "", l.Price,
				l.Bedrooms, l.Bathrooms, l.Garage, l.Sqft, l.LotSize, true, now))

	got, err := repo.Create(context.Background(), l)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, now, got.ListDate)
	assert.Equal(t, int64(3), got.RealtorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingPostgres_CreateUnknownRealtor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO listings").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "listings_realtor_id_fkey"})

	got, err := NewListingPostgres(db).Create(context.Background(), &model.Listing{RealtorID: 99, Title: "Orphan"})

	assert.ErrorIs(t, err, repository.ErrUnknownRealtor)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = ?").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(listingCols).
				AddRow(7, 1, "Loft", "", "", "", "", "", 1, 1, 1.0, 0, 500, 0.0, true, time.Now()))

		l, err := repo.FindByID(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, "Loft", l.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = ?").
			WithArgs(int64(8)).
			WillReturnError(sql.ErrNoRows)

		l, err := repo.FindByID(ctx, 8)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, l)
	})
}

func TestListingPostgres_ListPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingPostgres(db)
	ctx := context.Background()

	t.Run("no filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM listings WHERE is_published = TRUE ORDER BY list_date DESC`).
			WillReturnRows(sqlmock.NewRows(listingCols).
				AddRow(1, 1, "A", "", "", "", "", "", 1, 1, 1.0, 0, 1, 0.0, true, time.Now()))

		items, err := repo.ListPublished(ctx, model.ListingFilter{})
		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("all filters", func(t *testing.T) {
		mock.ExpectQuery(`WHERE is_published = TRUE AND title ILIKE \$1 AND city ILIKE \$2 AND bedrooms >= \$3 AND price <= \$4`).
			WithArgs("%lake%", "%austin%", 3, 500000).
			WillReturnRows(sqlmock.NewRows(listingCols))

		items, err := repo.ListPublished(ctx, model.ListingFilter{
			Keyword: "lake", City: "austin", MinBedrooms: 3, MaxPrice: 500000,
		})
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		mock.ExpectQuery(`WHERE is_published = TRUE AND title ILIKE \$1`).
			WithArgs(`%50\% off\_now\\%`).
			WillReturnRows(sqlmock.NewRows(listingCols))

		_, err := repo.ListPublished(ctx, model.ListingFilter{Keyword: `50% off_now\`})
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingPostgres_ListByRealtor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	mock.ExpectQuery(`SELECT (.+) FROM listings WHERE realtor_id = \$1 ORDER BY list_date DESC`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow(9, 3, "Draft", "", "", "", "", "", 1, 1, 1.0, 0, 1, 0.0, false, newer).
			AddRow(4, 3, "Cabin", "", "", "", "", "", 1, 1, 1.0, 0, 1, 0.0, true, older))

	items, err := NewListingPostgres(db).ListByRealtor(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(9), items[0].ID)
	assert.False(t, items[0].IsPublished)
	assert.Equal(t, int64(3), items[1].RealtorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
