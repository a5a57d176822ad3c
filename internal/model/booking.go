package model

import "time"

// Booking represents one reserved slot. IDs are assigned from the creation
// timestamp (UnixMilli), matching the public id format the clients expect.
type Booking struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"size:256;not null" json:"customerName"`
	Phone        string    `gorm:"size:64;not null" json:"phone"`
	Date         string    `gorm:"size:10;not null;index;uniqueIndex:idx_bookings_date_time" json:"date"`
	Time         string    `gorm:"size:5;not null;uniqueIndex:idx_bookings_date_time" json:"time"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}
