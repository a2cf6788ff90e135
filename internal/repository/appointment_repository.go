package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// AppointmentRepository lists calendar entries for the appointments section.
type AppointmentRepository interface {
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
}

// AppointmentFilter narrows the listing to a time window and status.
type AppointmentFilter struct {
	From   *time.Time
	To     *time.Time
	Status *domain.AppointmentStatus
	Limit  int
	Offset int
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository returns a Postgres-backed implementation.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	query := `
        SELECT id, patient_name, doctor_name, scheduled_at, status
        FROM appointments`
	args := []any{}
	clauses := []string{}

	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("scheduled_at>=$%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("scheduled_at<$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY scheduled_at ASC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Appointment
	for rows.Next() {
		var (
			appt   domain.Appointment
			status string
		)
		if err := rows.Scan(
			&appt.ID,
			&appt.PatientName,
			&appt.DoctorName,
			&appt.ScheduledAt,
			&status,
		); err != nil {
			return nil, err
		}
		appt.Status = domain.AppointmentStatus(status)
		result = append(result, appt)
	}
	return result, rows.Err()
}
