package model

import "time"

// Notification is a booking event kept for the owner dashboard feed. It shares
// the booking's id but is otherwise independent: deleting a booking does not
// remove its notification.
type Notification struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"size:256;not null" json:"customerName"`
	Phone        string    `gorm:"size:64;not null" json:"phone"`
	Date         string    `gorm:"size:10;not null" json:"date"`
	Time         string    `gorm:"size:5;not null" json:"time"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	Read         bool      `gorm:"not null;default:false" json:"read"`
}
