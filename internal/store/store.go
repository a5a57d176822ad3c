package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"barber-booking-backend/internal/model"
)

// Sentinel errors surfaced to the API layer.
var (
	// ErrSlotTaken is returned when the requested (date, time) pair is
	// already booked.
	ErrSlotTaken = errors.New("time slot is already booked")

	// ErrDateNotFound is returned by DeleteBooking when no bookings exist
	// for the given date.
	ErrDateNotFound = errors.New("date not found")

	// ErrBookingNotFound is returned by DeleteBooking when the date has
	// bookings but none with the given id.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotificationNotFound is returned by MarkNotificationRead when no
	// notification has the given id.
	ErrNotificationNotFound = errors.New("notification not found")
)

// Store defines the persistence operations for bookings and notifications.
type Store interface {
	AvailableSlots(ctx context.Context, date string) []string
	CreateBooking(ctx context.Context, date, slot, customerName, phone string) (*model.Booking, error)
	AllBookings(ctx context.Context) (map[string][]model.Booking, error)
	BookingsForDate(ctx context.Context, date string) ([]model.Booking, error)
	DeleteBooking(ctx context.Context, date string, id int64) (*model.Booking, error)
	Reclaim(ctx context.Context, today string) (int64, error)

	RecordNotification(ctx context.Context, booking *model.Booking)
	ListNotifications(ctx context.Context) []model.Notification
	MarkNotificationRead(ctx context.Context, id int64) error

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB

	idMu   sync.Mutex
	lastID int64
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// nextID derives a booking id from the creation timestamp, bumped past the
// previous id so two bookings in the same millisecond never collide.
func (s *gormStore) nextID(now time.Time) int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// DB exposes the underlying connection for components that need raw access,
// such as the push subscription handlers and the notification worker pool.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// AvailableSlots returns the catalog minus the times already booked for the
// date, in catalog order. A query failure degrades to "nothing booked" rather
// than failing the caller.
func (s *gormStore) AvailableSlots(ctx context.Context, date string) []string {
	var bookedTimes []string
	err := s.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("date = ?", date).
		Pluck("time", &bookedTimes).Error
	if err != nil {
		log.Printf("Error loading booked times for %s: %v", date, err)
		bookedTimes = nil
	}

	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	available := make([]string, 0, len(AllTimeSlots))
	for _, slot := range AllTimeSlots {
		if !booked[slot] {
			available = append(available, slot)
		}
	}
	return available
}

// CreateBooking reserves a slot. The (date, time) unique index is the
// conflict check: two concurrent creates for the same slot cannot both
// succeed, the loser's constraint violation surfaces as ErrSlotTaken.
// Relies on the connection being opened with error translation enabled
// (db.Init does this) so the violation arrives as gorm.ErrDuplicatedKey.
func (s *gormStore) CreateBooking(ctx context.Context, date, slot, customerName, phone string) (*model.Booking, error) {
	now := time.Now()
	booking := model.Booking{
		ID:           s.nextID(now),
		CustomerName: customerName,
		Phone:        phone,
		Date:         date,
		Time:         slot,
		CreatedAt:    now,
	}

	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &booking, nil
}

// AllBookings returns the full date-to-bookings mapping, each bucket in
// creation order. Dates with no bookings do not appear as keys.
func (s *gormStore) AllBookings(ctx context.Context) (map[string][]model.Booking, error) {
	var bookings []model.Booking
	if err := s.db.WithContext(ctx).
		Order("date, id").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	buckets := make(map[string][]model.Booking)
	for _, b := range bookings {
		buckets[b.Date] = append(buckets[b.Date], b)
	}
	return buckets, nil
}

// BookingsForDate returns the bucket for one date in creation order. The
// result is never nil so callers serialize an empty array, not null.
func (s *gormStore) BookingsForDate(ctx context.Context, date string) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	if err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Order("id").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}
	return bookings, nil
}

// DeleteBooking removes one booking, distinguishing an unknown date from an
// unknown id within a known date. Empty buckets disappear implicitly since a
// bucket is just the set of rows sharing a date.
func (s *gormStore) DeleteBooking(ctx context.Context, date string, id int64) (*model.Booking, error) {
	var removed model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dateCount int64
		if err := tx.Model(&model.Booking{}).
			Where("date = ?", date).
			Count(&dateCount).Error; err != nil {
			return fmt.Errorf("failed to check date bucket: %w", err)
		}
		if dateCount == 0 {
			return ErrDateNotFound
		}

		if err := tx.Where("date = ? AND id = ?", date, id).
			First(&removed).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to look up booking %d: %w", id, err)
		}

		if err := tx.Delete(&model.Booking{}, removed.ID).Error; err != nil {
			return fmt.Errorf("failed to delete booking %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Reclaim discards all bookings dated strictly before today and returns how
// many were removed. Dates are zero-padded ISO strings, so the lexicographic
// comparison the query performs matches chronological order.
func (s *gormStore) Reclaim(ctx context.Context, today string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("date < ?", today).
		Delete(&model.Booking{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to reclaim past bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// RecordNotification appends a booking event to the owner feed. Failures are
// logged and swallowed: a missed feed entry must not fail the booking.
func (s *gormStore) RecordNotification(ctx context.Context, booking *model.Booking) {
	n := model.Notification{
		ID:           booking.ID,
		CustomerName: booking.CustomerName,
		Phone:        booking.Phone,
		Date:         booking.Date,
		Time:         booking.Time,
		CreatedAt:    booking.CreatedAt,
		Read:         false,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		log.Printf("Error recording notification for booking %d: %v", booking.ID, err)
	}
}

// ListNotifications returns the feed newest first, or an empty slice when the
// feed cannot be read.
func (s *gormStore) ListNotifications(ctx context.Context) []model.Notification {
	notifications := make([]model.Notification, 0)
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error; err != nil {
		log.Printf("Error loading notifications: %v", err)
		return []model.Notification{}
	}
	return notifications
}

// MarkNotificationRead flips the read flag on one feed entry.
func (s *gormStore) MarkNotificationRead(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
