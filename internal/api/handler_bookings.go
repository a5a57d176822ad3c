package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"barber-booking-backend/internal/model"
	"barber-booking-backend/internal/store"
)

// GetAvailableSlots handles GET /api/available-slots?date=YYYY-MM-DD.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":           date,
		"availableSlots": h.store.AvailableSlots(c.Request.Context(), date),
	})
}

type bookRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// BookAppointment handles POST /api/book. Missing fields are a 400; a slot
// conflict is a 200 with success=false, which the booking page branches on.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.CustomerName == "" || req.Phone == "" || req.Date == "" || req.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	booking, err := h.store.CreateBooking(c.Request.Context(), req.Date, req.Time, req.CustomerName, req.Phone)
	switch {
	case err == store.ErrSlotTaken:
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "This time slot is no longer available"})
		return
	case err != nil:
		log.Printf("Error creating booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save booking"})
		return
	}

	h.notifyOwner(c, booking)
	h.flushCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking confirmed!", "booking": booking})
}

// notifyOwner records the booking in the owner feed, logs the console banner
// and queues a web push when one is configured.
func (h *Handler) notifyOwner(c *gin.Context, booking *model.Booking) {
	h.store.RecordNotification(c.Request.Context(), booking)

	log.Printf("NEW APPOINTMENT BOOKED: %s (%s) on %s at %s",
		booking.CustomerName, booking.Phone, booking.Date, booking.Time)

	if h.pool != nil {
		h.pool.Dispatch(booking.ID)
	}
}

// GetBookings handles GET /api/bookings: the full date-to-bookings mapping.
// A load failure degrades to an empty mapping.
func (h *Handler) GetBookings(c *gin.Context) {
	buckets, err := h.store.AllBookings(c.Request.Context())
	if err != nil {
		log.Printf("Error loading bookings: %v", err)
		buckets = map[string][]model.Booking{}
	}
	c.JSON(http.StatusOK, buckets)
}

// GetTodayBookings handles GET /api/bookings/today.
func (h *Handler) GetTodayBookings(c *gin.Context) {
	today := time.Now().Format(store.DateFormat)
	bookings, err := h.store.BookingsForDate(c.Request.Context(), today)
	if err != nil {
		log.Printf("Error loading today's bookings: %v", err)
		bookings = []model.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// DeleteBooking handles DELETE /api/bookings/:date/:id. An unknown date and an
// unknown id within a known date are distinct 404s.
func (h *Handler) DeleteBooking(c *gin.Context) {
	date := c.Param("date")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// An unparseable id can never match a booking; the store's date
		// check still decides which not-found message applies.
		id = -1
	}

	removed, err := h.store.DeleteBooking(c.Request.Context(), date, id)
	switch {
	case err == store.ErrDateNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Date not found"})
		return
	case err == store.ErrBookingNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	case err != nil:
		log.Printf("Error deleting booking %d on %s: %v", id, date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete booking"})
		return
	}

	log.Printf("APPOINTMENT REMOVED BY OWNER: %s on %s at %s",
		removed.CustomerName, removed.Date, removed.Time)
	h.flushCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking removed successfully"})
}
