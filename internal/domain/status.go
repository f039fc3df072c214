package domain

// ReservationStatus is the lifecycle state of a table booking.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Keys of auxiliary values kept next to the record tables.
const (
	ValueAdminPasswordHash = "admin_password_hash"
	ValueWhatsAppNumber    = "whatsapp_number"
)
