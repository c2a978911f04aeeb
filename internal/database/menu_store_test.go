package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/catalog"
	"pizzeria/internal/logger"
	"pizzeria/internal/models"
)

const testMigrations = "../../migrations"

func openTestStore(t *testing.T) *SQLiteMenuStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunSQLiteMigrations(db, testMigrations, logger.NewNop()))
	return NewSQLiteMenuStore(db)
}

func TestSQLiteMenuStore_SeedAndLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	items, err := store.LoadMenu(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.UpsertMenu(ctx, catalog.BuiltinItems()))
	items, err = store.LoadMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.BuiltinItems(), items)
}

func TestSQLiteMenuStore_UpsertUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.UpsertMenu(ctx, catalog.BuiltinItems()))

	changed := catalog.BuiltinItems()
	changed[0].Price = 72
	require.NoError(t, store.UpsertMenu(ctx, changed))

	items, err := store.LoadMenu(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(changed))
	assert.Equal(t, "margherita", items[0].ID)
	assert.Equal(t, int64(72), items[0].Price)
}

func TestSQLiteMenuStore_FeedsCatalog(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.UpsertMenu(ctx, []models.MenuItem{
		{ID: "calzone", Name: "Calzone", Price: 74, Category: models.CategoryPizza},
		{ID: "espresso", Name: "Espresso", Price: 9, Category: models.CategoryDrink},
	}))

	cat, err := catalog.Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	item, ok := cat.Lookup("espresso")
	require.True(t, ok)
	assert.Equal(t, int64(9), item.Price)
}

func TestSQLiteMenuStore_RejectsUnknownCategory(t *testing.T) {
	store := openTestStore(t)
	err := store.UpsertMenu(context.Background(), []models.MenuItem{
		{ID: "grappa", Name: "Grappa", Price: 20, Category: "spirits"},
	})
	assert.Error(t, err)
}

func TestRunMigrations_ByURLIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	url := "sqlite3://" + path

	require.NoError(t, RunMigrations(url, testMigrations, logger.NewNop()))
	require.NoError(t, RunMigrations(url, testMigrations, logger.NewNop()))

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM menu_items`).Scan(&n))
	assert.Zero(t, n)
}
