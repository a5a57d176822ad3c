package reclaim

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"barber-booking-backend/config"
	"barber-booking-backend/internal/model"
	"barber-booking-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Booking{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return store.NewGormStore(db)
}

func testConfig(tz string) *config.Config {
	return &config.Config{Reclaim: config.ReclaimConfig{Timezone: tz}}
}

func TestRunOnce_PrunesPastDates(t *testing.T) {
	s := newTestStore(t)
	svc := NewService(testConfig("UTC"), s, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1).Format(store.DateFormat)
	today := now.Format(store.DateFormat)
	tomorrow := now.AddDate(0, 0, 1).Format(store.DateFormat)
	lastWeek := now.AddDate(0, 0, -7).Format(store.DateFormat)

	for _, c := range []struct{ date, slot string }{
		{lastWeek, "09:00"},
		{yesterday, "10:00"},
		{today, "11:00"},
		{tomorrow, "12:00"},
	} {
		_, err := s.CreateBooking(ctx, c.date, c.slot, "Test", "555-0000")
		require.NoError(t, err)
	}

	svc.RunOnce(ctx)

	buckets, err := s.AllBookings(ctx)
	require.NoError(t, err)
	assert.NotContains(t, buckets, lastWeek)
	assert.NotContains(t, buckets, yesterday)
	assert.Contains(t, buckets, today)
	assert.Contains(t, buckets, tomorrow)
}

// A sweep changes what booking reads should return, so it has to invalidate
// the shared response cache every time it completes.
func TestRunOnce_FlushesResponseCache(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	flushed := 0
	svc := NewService(testConfig("UTC"), s, func() { flushed++ })

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(store.DateFormat)
	_, err := s.CreateBooking(ctx, yesterday, "09:00", "Test", "555-0000")
	require.NoError(t, err)

	svc.RunOnce(ctx)
	assert.Equal(t, 1, flushed)

	// A sweep that removes nothing still completed, so it still flushes.
	svc.RunOnce(ctx)
	assert.Equal(t, 2, flushed)
}

func TestUntilNextMidnight(t *testing.T) {
	svc := NewService(testConfig("UTC"), newTestStore(t), nil)

	now := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 30*time.Minute, svc.untilNextMidnight(now))

	// Exactly at midnight the next fire is a full day away.
	midnight := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24*time.Hour, svc.untilNextMidnight(midnight))
}

func TestNewService_BadTimezoneFallsBack(t *testing.T) {
	svc := NewService(testConfig("Not/AZone"), newTestStore(t), nil)
	assert.Equal(t, time.Local, svc.loc)
}

func TestRun_Disabled(t *testing.T) {
	cfg := testConfig("UTC")
	disabled := false
	cfg.Reclaim.Enabled = &disabled

	svc := NewService(cfg, newTestStore(t), nil)

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when the job is disabled")
	}
}
