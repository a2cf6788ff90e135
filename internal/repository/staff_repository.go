package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// StaffRepository lists portal accounts for the user management section.
type StaffRepository interface {
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Role   *domain.Role
	Active *bool
	Limit  int
	Offset int
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository returns a Postgres-backed implementation.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	query := `
        SELECT id, username, full_name, email, role, active_flag, last_login_at, created_at
        FROM staff_members`
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		clauses = append(clauses, fmt.Sprintf("lower(role)=lower($%d)", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active_flag=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	limit, offset := filter.page()
	query += fmt.Sprintf(" ORDER BY username ASC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		var (
			staff domain.StaffMember
			role  string
		)
		if err := rows.Scan(
			&staff.ID,
			&staff.Username,
			&staff.FullName,
			&staff.Email,
			&role,
			&staff.Active,
			&staff.LastLogin,
			&staff.CreatedAt,
		); err != nil {
			return nil, err
		}
		staff.Role = domain.ParseRole(role)
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (f StaffFilter) page() (int, int) {
	return pageBounds(f.Limit, f.Offset)
}

// MaxPageSize caps a single list query.
const MaxPageSize = 200

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxPageSize {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
