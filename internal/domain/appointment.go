package domain

import "time"

// AppointmentStatus enumerates lifecycle states for an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is one booked slot on the clinic calendar.
type Appointment struct {
	ID          string
	PatientName string
	DoctorName  string
	ScheduledAt time.Time
	Status      AppointmentStatus
}

// StartOfDay is local midnight of t's calendar day in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
