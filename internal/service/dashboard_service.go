package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/access"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/i18n"
	"github.com/spec-kit/clinic-portal/internal/repository"
)

// ErrUnknownSection is returned for a section name outside the menu table.
var ErrUnknownSection = errors.New("unknown dashboard section")

// Page is the content of one dashboard section. The concrete types below are the only implementations.
type Page interface {
	Section() domain.Section
	page()
}

// OverviewPage summarizes today's calendar.
type OverviewPage struct {
	Today     int
	Scheduled int
	Completed int
	Cancelled int
	Next      *domain.Appointment
}

// AppointmentsPage lists today's appointments.
type AppointmentsPage struct {
	Appointments []domain.Appointment
	Editable     bool
}

// PatientSummary is one patient seen on the calendar.
type PatientSummary struct {
	Name         string
	Appointments int
	LastVisit    time.Time
}

// PatientsPage lists patients known from the calendar.
type PatientsPage struct {
	Patients []PatientSummary
	Editable bool
}

// UsersPage lists portal staff accounts.
type UsersPage struct {
	Users    []domain.StaffMember
	Editable bool
}

// SettingsPage exposes portal preferences.
type SettingsPage struct {
	Languages []i18n.Language
	Editable  bool
}

// AccessDeniedPage replaces a section the role may not view.
type AccessDeniedPage struct {
	Requested domain.Section
}

func (OverviewPage) Section() domain.Section     { return domain.SectionOverview }
func (AppointmentsPage) Section() domain.Section { return domain.SectionAppointments }
func (PatientsPage) Section() domain.Section     { return domain.SectionPatients }
func (UsersPage) Section() domain.Section        { return domain.SectionUsers }
func (SettingsPage) Section() domain.Section     { return domain.SectionSettings }
func (p AccessDeniedPage) Section() domain.Section {
	return p.Requested
}

func (OverviewPage) page()     {}
func (AppointmentsPage) page() {}
func (PatientsPage) page()     {}
func (UsersPage) page()        {}
func (SettingsPage) page()     {}
func (AccessDeniedPage) page() {}

// DashboardService assembles dashboard pages for an authorized user.
type DashboardService struct {
	gate         *access.Gate
	staff        repository.StaffRepository
	appointments repository.AppointmentRepository
	logger       *zap.Logger
	now          func() time.Time
}

// DashboardDependencies encapsulates repo requirements for the dashboard.
type DashboardDependencies struct {
	Gate            *access.Gate
	StaffRepo       repository.StaffRepository
	AppointmentRepo repository.AppointmentRepository
	Logger          *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	gate := deps.Gate
	if gate == nil {
		gate = access.NewGate(access.DefaultItems())
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		gate:         gate,
		staff:        deps.StaffRepo,
		appointments: deps.AppointmentRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Menu returns the sections user may navigate to.
func (s *DashboardService) Menu(user domain.UserData) []access.Item {
	return s.gate.Visible(user.Role)
}

// Page builds the page for section. A section the role cannot view yields
// AccessDeniedPage and no directory query is made.
func (s *DashboardService) Page(ctx context.Context, user domain.UserData, section domain.Section) (Page, error) {
	if _, ok := domain.ParseSection(string(section)); !ok {
		return nil, ErrUnknownSection
	}
	if !s.gate.CanView(user.Role, section) {
		s.logger.Info("section access denied",
			zap.String("username", user.Username),
			zap.String("role", user.Role.String()),
			zap.String("section", string(section)))
		return AccessDeniedPage{Requested: section}, nil
	}

	editable := s.gate.CanEdit(user.Role, section)
	switch section {
	case domain.SectionOverview:
		return s.overview(ctx)
	case domain.SectionAppointments:
		appts, err := s.today(ctx)
		if err != nil {
			return nil, err
		}
		return AppointmentsPage{Appointments: appts, Editable: editable}, nil
	case domain.SectionPatients:
		return s.patients(ctx, editable)
	case domain.SectionUsers:
		users, err := s.staff.List(ctx, repository.StaffFilter{})
		if err != nil {
			return nil, err
		}
		return UsersPage{Users: users, Editable: editable}, nil
	case domain.SectionSettings:
		return SettingsPage{Languages: i18n.Languages, Editable: editable}, nil
	}
	return nil, ErrUnknownSection
}

func (s *DashboardService) today(ctx context.Context) ([]domain.Appointment, error) {
	from := domain.StartOfDay(s.now())
	to := from.AddDate(0, 0, 1)
	return s.appointments.List(ctx, repository.AppointmentFilter{From: &from, To: &to})
}

func (s *DashboardService) overview(ctx context.Context) (Page, error) {
	appts, err := s.today(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	page := OverviewPage{Today: len(appts)}
	for i, a := range appts {
		switch a.Status {
		case domain.AppointmentScheduled:
			page.Scheduled++
			if page.Next == nil && !a.ScheduledAt.Before(now) {
				page.Next = &appts[i]
			}
		case domain.AppointmentCompleted:
			page.Completed++
		case domain.AppointmentCancelled:
			page.Cancelled++
		}
	}
	return page, nil
}

func (s *DashboardService) patients(ctx context.Context, editable bool) (Page, error) {
	appts, err := s.appointments.List(ctx, repository.AppointmentFilter{Limit: repository.MaxPageSize})
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*PatientSummary)
	for _, a := range appts {
		p, ok := byName[a.PatientName]
		if !ok {
			p = &PatientSummary{Name: a.PatientName}
			byName[a.PatientName] = p
		}
		p.Appointments++
		if a.ScheduledAt.After(p.LastVisit) {
			p.LastVisit = a.ScheduledAt
		}
	}
	patients := make([]PatientSummary, 0, len(byName))
	for _, p := range byName {
		patients = append(patients, *p)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].Name < patients[j].Name })
	return PatientsPage{Patients: patients, Editable: editable}, nil
}
