package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matiiroda/mg/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.CajaSession{}))
	return db
}

func archivedSession(open bool, openedAt time.Time) *model.CajaSession {
	s := &model.CajaSession{
		ID:             uuid.New(),
		IsOpen:         open,
		OpenedAt:       openedAt,
		OpenedBy:       "ana",
		OpeningBalance: decimal.NewFromInt(1000),
		NetSales:       decimal.Zero,
	}
	if !open {
		closedAt := openedAt.Add(8 * time.Hour)
		s.ClosedAt = &closedAt
	}
	return s
}

func TestFindOpenOnFreshDatabase(t *testing.T) {
	repo := NewCajaRepository(newTestDB(t))

	session, err := repo.FindOpen(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestFindOpenIgnoresClosedSessions(t *testing.T) {
	repo := NewCajaRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, archivedSession(false, time.Now().Add(-24*time.Hour))))

	session, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestFindOpenReturnsLatestOpenSession(t *testing.T) {
	repo := NewCajaRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, archivedSession(false, time.Now().Add(-48*time.Hour))))
	open := archivedSession(true, time.Now().Add(-time.Hour))
	require.NoError(t, repo.Save(ctx, open))

	session, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, open.ID, session.ID)
	assert.True(t, session.IsOpen)
}

func TestSaveUpsertsSameSession(t *testing.T) {
	repo := NewCajaRepository(newTestDB(t))
	ctx := context.Background()

	s := archivedSession(true, time.Now())
	require.NoError(t, repo.Save(ctx, s))

	s.NetSales = decimal.NewFromInt(2400)
	s.SaleCount = 1
	require.NoError(t, repo.Save(ctx, s))

	sessions, err := repo.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].SaleCount)
	assert.True(t, sessions[0].NetSales.Equal(decimal.NewFromInt(2400)))
}
