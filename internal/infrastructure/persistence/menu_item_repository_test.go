package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/catalog"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockMenuItemRepository creates a GormMenuItemRepository with a mocked SQL connection
func newMockMenuItemRepository(t *testing.T) (*GormMenuItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormMenuItemRepository(gormDB), mock, mockDB
}

func menuItemColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"name", "display_name", "description", "category_id",
		"price", "image_url", "spice_level", "is_popular",
		"ingredients", "allergens", "available",
	}
}

func TestGormMenuItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing menu item", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		rows := sqlmock.NewRows(menuItemColumns()).
			AddRow(itemID, time.Now(), time.Now(), 1,
				"ต้มยำกุ้ง", "Tom Yum Goong", "Hot and sour shrimp soup", "soups",
				decimal.NewFromInt(180), "", 4, true,
				"{lemongrass,shrimp}", "{shellfish}", true)

		mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), itemID)

		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, "Tom Yum Goong", item.DisplayName)
		assert.Equal(t, []string{"shellfish"}, item.Allergens)
		assert.True(t, item.Price.Equal(decimal.NewFromInt(180)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing item", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMenuItemRepository_FindAvailable(t *testing.T) {
	repo, mock, mockDB := newMockMenuItemRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows(menuItemColumns()).
		AddRow(uuid.New(), time.Now(), time.Now(), 1,
			"ผัดไทย", "Pad Thai", "", "mains",
			decimal.NewFromInt(120), "", 1, true,
			"{rice noodles,peanuts}", "{peanuts}", true)

	mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE available = \$1 ORDER BY category_id ASC, name ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	items, err := repo.FindAvailable(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pad Thai", items[0].DisplayName)
	assert.True(t, items[0].Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMenuItemRepository_FindAll(t *testing.T) {
	t.Run("filters by category", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows(menuItemColumns()).
			AddRow(uuid.New(), time.Now(), time.Now(), 1,
				"ต้มยำกุ้ง", "Tom Yum Goong", "", "soups",
				decimal.NewFromInt(180), "", 4, true,
				"{}", "{shellfish}", true)

		mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE category_id = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs("soups", 20).
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.Filters["category_id"] = "soups"

		items, err := repo.FindAll(context.Background(), filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "soups", items[0].CategoryID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects non-whitelisted sort field", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "menu_items" ORDER BY created_at DESC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(sqlmock.NewRows(menuItemColumns()))

		filter := shared.DefaultFilter()
		filter.OrderBy = "price; DROP TABLE menu_items"

		_, err := repo.FindAll(context.Background(), filter)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMenuItemRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockMenuItemRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "menu_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMenuItemRepository_Save(t *testing.T) {
	repo, mock, mockDB := newMockMenuItemRepository(t)
	defer mockDB.Close()

	item, err := catalog.NewMenuItem("ผัดไทย", "Pad Thai", "mains", decimal.NewFromInt(120))
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "menu_items" .* ON CONFLICT \("id"\) DO UPDATE SET .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(context.Background(), item)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMenuItemRepository_Delete(t *testing.T) {
	t.Run("deletes existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectExec(`DELETE FROM "menu_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), itemID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectExec(`DELETE FROM "menu_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), itemID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
