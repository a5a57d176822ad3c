package store

// DateFormat is the calendar date layout used throughout the API ("YYYY-MM-DD").
const DateFormat = "2006-01-02"

// AllTimeSlots is the fixed catalog of bookable slots: sixteen hourly start
// times from 8 AM to 11 PM. The booking page carries an identical copy; the
// two lists must stay in sync.
var AllTimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00", "19:00", "20:00", "21:00", "22:00", "23:00",
}

// IsCatalogSlot reports whether t is one of the catalog start times.
func IsCatalogSlot(t string) bool {
	for _, slot := range AllTimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}
