package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (*store.Store, *gorm.DB) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	return store.New(db), db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestUpsertSets_KeepsCursors(t *testing.T) {
	s, db := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertSets(ctx, []models.Set{{ID: "base1", Name: "Base", TotalCards: 102}}))

	// Move the cursor, then refresh the set from the catalog
	require.NoError(t, db.Model(&models.Set{}).Where("id = ?", "base1").Update("price_sync_progress", 50).Error)
	require.NoError(t, s.UpsertSets(ctx, []models.Set{{ID: "base1", Name: "Base Set", TotalCards: 103}}))

	set, err := s.Set(ctx, "base1")
	require.NoError(t, err)
	assert.Equal(t, "Base Set", set.Name)
	assert.Equal(t, 103, set.TotalCards)
	assert.Equal(t, 50, set.PriceSyncProgress)
}

func TestUpsertCards_Idempotent(t *testing.T) {
	s, db := setupStore(t)
	ctx := context.Background()

	cards := []models.Card{
		{ID: "base1-4-unlimited", BaseCardID: "base1-4", SetID: "base1", Name: "Charizard", Edition: "Unlimited", Types: []string{"Fire"}},
		{ID: "base1-4-1st-edition", BaseCardID: "base1-4", SetID: "base1", Name: "Charizard", Edition: "1st Edition"},
	}
	prices := []models.Price{
		{CardID: "base1-4-unlimited", Market: 350, Low: 280, High: 525},
		{CardID: "base1-4-1st-edition", Market: 9000, Low: 7200, High: 13500},
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, s.UpsertCards(ctx, cards))
		require.NoError(t, s.UpsertPrices(ctx, prices))
	}

	var cardCount, priceCount int64
	db.Model(&models.Card{}).Count(&cardCount)
	db.Model(&models.Price{}).Count(&priceCount)
	assert.Equal(t, int64(2), cardCount)
	assert.Equal(t, int64(2), priceCount)

	// A later pass overwrites every column
	prices[0].Market = 400
	prices[0].Low = 0
	require.NoError(t, s.UpsertPrices(ctx, prices[:1]))

	var p models.Price
	require.NoError(t, db.First(&p, "card_id = ?", "base1-4-unlimited").Error)
	assert.Equal(t, 400.0, p.Market)
	assert.Equal(t, 0.0, p.Low)

	var c models.Card
	require.NoError(t, db.First(&c, "id = ?", "base1-4-unlimited").Error)
	assert.Equal(t, []string{"Fire"}, c.Types)
}

func TestUpsertCards_EmptyIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)
	s := store.New(db)

	assert.NoError(t, s.UpsertCards(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCards_Failure(t *testing.T) {
	db, mock := setupMockDB(t)
	s := store.New(db)

	mock.ExpectExec("INSERT INTO `cards`").WillReturnError(errors.New("connection reset"))

	err := s.UpsertCards(context.Background(), []models.Card{{ID: "x-unlimited", BaseCardID: "x", SetID: "s", Edition: "Unlimited"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSets_Empty(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Sets(context.Background())
	assert.ErrorIs(t, err, store.ErrNoSets)
}

func TestSet_NotFound(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Set(context.Background(), "missing")
	assert.True(t, store.IsNotFound(err))
}

func TestBaseCardIDs(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertCards(ctx, []models.Card{
		{ID: "s-1-unlimited", BaseCardID: "s-1", SetID: "s", Edition: "Unlimited"},
		{ID: "s-1-1st-edition", BaseCardID: "s-1", SetID: "s", Edition: "1st Edition"},
		{ID: "s-2-unlimited", BaseCardID: "s-2", SetID: "s", Edition: "Unlimited"},
		{ID: "s-3-unlimited", BaseCardID: "s-3", SetID: "s", Edition: "Unlimited"},
		{ID: "t-1-unlimited", BaseCardID: "t-1", SetID: "t", Edition: "Unlimited"},
	}))

	ids, err := s.BaseCardIDs(ctx, "s", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1", "s-2"}, ids)

	ids, err = s.BaseCardIDs(ctx, "s", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-3"}, ids)

	ids, err = s.BaseCardIDs(ctx, "s", 3, 2)
	require.NoError(t, err)
	assert.Empty(t, ids)

	cards, err := s.CardsByBaseID(ctx, []string{"s-1"})
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestStatus_RoundTrip(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveStatus(ctx, "prices", models.StatusSuccess, "done", &now))
	require.NoError(t, s.SaveStatus(ctx, "prices", models.StatusInProgress, "running", nil))

	rows, err := s.Statuses(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusInProgress, rows[0].Status)
	assert.Equal(t, "running", rows[0].Message)
	require.NotNil(t, rows[0].LastSync)
	assert.True(t, rows[0].LastSync.Equal(now))
}
