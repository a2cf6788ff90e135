package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

func sections(items []Item) []domain.Section {
	out := make([]domain.Section, 0, len(items))
	for _, it := range items {
		out = append(out, it.Section)
	}
	return out
}

func TestVisibleByRole(t *testing.T) {
	g := NewGate(DefaultItems())

	assert.Equal(t, []domain.Section{
		domain.SectionOverview,
		domain.SectionAppointments,
		domain.SectionPatients,
		domain.SectionUsers,
		domain.SectionSettings,
	}, sections(g.Visible(domain.RoleAdmin)))

	assert.Equal(t, []domain.Section{
		domain.SectionOverview,
		domain.SectionAppointments,
		domain.SectionPatients,
	}, sections(g.Visible(domain.RoleReceptionist)))

	assert.Empty(t, g.Visible(domain.RoleUnknown))
}

func TestEditGate(t *testing.T) {
	g := NewGate(DefaultItems())

	assert.True(t, g.CanEdit(domain.RoleAdmin, domain.SectionAppointments))
	assert.False(t, g.CanEdit(domain.RoleReceptionist, domain.SectionAppointments))
	assert.True(t, g.CanView(domain.RoleReceptionist, domain.SectionAppointments))
	assert.False(t, g.CanView(domain.RoleReceptionist, domain.SectionUsers))
	assert.False(t, g.CanEdit(domain.RoleAdmin, domain.SectionOverview))
	assert.False(t, g.CanView(domain.RoleAdmin, domain.Section("billing")))
}

func TestGateIsPure(t *testing.T) {
	g := NewGate(DefaultItems())
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleReceptionist, domain.RoleDoctor, domain.RoleUnknown} {
		first := g.Visible(role)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, g.Visible(role), "role=%s", role)
		}
	}
}

func TestGateIgnoresUnknownRoleInTable(t *testing.T) {
	g := NewGate([]Item{{Section: domain.SectionOverview, ViewRoles: []domain.Role{domain.RoleUnknown}}})
	assert.False(t, g.CanView(domain.RoleUnknown, domain.SectionOverview))
}

func TestGateCopiesTable(t *testing.T) {
	items := DefaultItems()
	g := NewGate(items)
	items[0].Section = domain.Section("mutated")

	assert.Equal(t, domain.SectionOverview, g.Visible(domain.RoleAdmin)[0].Section)
}
