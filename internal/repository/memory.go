package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// MemoryStaffRepository serves a fixed staff list when no database is configured.
type MemoryStaffRepository struct {
	mu    sync.RWMutex
	staff []domain.StaffMember
	calls int
}

// NewMemoryStaffRepository copies staff into a new in-memory repository.
func NewMemoryStaffRepository(staff []domain.StaffMember) *MemoryStaffRepository {
	return &MemoryStaffRepository{staff: append([]domain.StaffMember(nil), staff...)}
}

func (r *MemoryStaffRepository) List(_ context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	out := make([]domain.StaffMember, 0, len(r.staff))
	for _, s := range r.staff {
		if filter.Role != nil && s.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && s.Active != *filter.Active {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })

	limit, offset := filter.page()
	return window(out, limit, offset), nil
}

// Calls reports how many times List ran.
func (r *MemoryStaffRepository) Calls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls
}

// MemoryAppointmentRepository serves a fixed calendar when no database is configured.
type MemoryAppointmentRepository struct {
	mu    sync.RWMutex
	appts []domain.Appointment
}

// NewMemoryAppointmentRepository copies appts into a new in-memory repository.
func NewMemoryAppointmentRepository(appts []domain.Appointment) *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{appts: append([]domain.Appointment(nil), appts...)}
}

func (r *MemoryAppointmentRepository) List(_ context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Appointment, 0, len(r.appts))
	for _, a := range r.appts {
		if filter.From != nil && a.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.ScheduledAt.Before(*filter.To) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	return window(out, limit, offset), nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// SeedStaff is the demo staff list used without a database.
func SeedStaff(now time.Time) []domain.StaffMember {
	yesterday := now.Add(-24 * time.Hour)
	return []domain.StaffMember{
		{ID: "1", Username: "admin", FullName: "Clinic Administrator", Email: "admin@clinic.local", Role: domain.RoleAdmin, Active: true, LastLogin: &yesterday, CreatedAt: now.AddDate(0, -6, 0)},
		{ID: "2", Username: "reception", FullName: "Front Desk", Email: "desk@clinic.local", Role: domain.RoleReceptionist, Active: true, CreatedAt: now.AddDate(0, -3, 0)},
		{ID: "3", Username: "drsmith", FullName: "Dr. Jane Smith", Email: "smith@clinic.local", Role: domain.RoleDoctor, Active: true, CreatedAt: now.AddDate(0, -2, 0)},
		{ID: "4", Username: "temp", FullName: "Former Temp", Email: "temp@clinic.local", Role: domain.RoleReceptionist, Active: false, CreatedAt: now.AddDate(-1, 0, 0)},
	}
}

// SeedAppointments is the demo calendar used without a database.
func SeedAppointments(now time.Time) []domain.Appointment {
	day := domain.StartOfDay(now)
	return []domain.Appointment{
		{ID: "a1", PatientName: "John Carter", DoctorName: "Dr. Jane Smith", ScheduledAt: day.Add(9 * time.Hour), Status: domain.AppointmentCompleted},
		{ID: "a2", PatientName: "Mia Wong", DoctorName: "Dr. Jane Smith", ScheduledAt: day.Add(10*time.Hour + 30*time.Minute), Status: domain.AppointmentScheduled},
		{ID: "a3", PatientName: "Ali Yilmaz", DoctorName: "Dr. Jane Smith", ScheduledAt: day.Add(14 * time.Hour), Status: domain.AppointmentCancelled},
	}
}
