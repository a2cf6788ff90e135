package access

import (
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/i18n"
)

// Item is one navigable dashboard section and who may see or change it.
type Item struct {
	Section   domain.Section
	Label     i18n.Key
	Path      string
	ViewRoles []domain.Role
	EditRoles []domain.Role
}

// Gate decides the visible and editable dashboard surface for a role.
// It never performs I/O and always answers the same for the same role.
type Gate struct {
	items []Item
	view  map[domain.Section]map[domain.Role]struct{}
	edit  map[domain.Section]map[domain.Role]struct{}
}

// DefaultItems is the clinic menu table.
func DefaultItems() []Item {
	all := []domain.Role{domain.RoleAdmin, domain.RoleReceptionist, domain.RoleDoctor}
	admin := []domain.Role{domain.RoleAdmin}

	return []Item{
		{Section: domain.SectionOverview, Label: i18n.MenuOverview, Path: "/dashboard", ViewRoles: all},
		{Section: domain.SectionAppointments, Label: i18n.MenuAppointments, Path: "/dashboard/appointments", ViewRoles: all, EditRoles: admin},
		{Section: domain.SectionPatients, Label: i18n.MenuPatients, Path: "/dashboard/patients", ViewRoles: all, EditRoles: admin},
		{Section: domain.SectionUsers, Label: i18n.MenuUsers, Path: "/dashboard/users", ViewRoles: admin, EditRoles: admin},
		{Section: domain.SectionSettings, Label: i18n.MenuSettings, Path: "/dashboard/settings", ViewRoles: admin, EditRoles: admin},
	}
}

// NewGate indexes items. The slice is copied so later edits by the caller do not leak in.
func NewGate(items []Item) *Gate {
	g := &Gate{
		items: append([]Item(nil), items...),
		view:  make(map[domain.Section]map[domain.Role]struct{}, len(items)),
		edit:  make(map[domain.Section]map[domain.Role]struct{}, len(items)),
	}
	for _, item := range g.items {
		g.view[item.Section] = roleSet(item.ViewRoles)
		g.edit[item.Section] = roleSet(item.EditRoles)
	}
	return g
}

func roleSet(roles []domain.Role) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		if r.Known() {
			set[r] = struct{}{}
		}
	}
	return set
}

// Visible returns the items role may see, in table order.
func (g *Gate) Visible(role domain.Role) []Item {
	visible := make([]Item, 0, len(g.items))
	for _, item := range g.items {
		if g.CanView(role, item.Section) {
			visible = append(visible, item)
		}
	}
	return visible
}

// CanView reports whether role ∈ ViewRoles of section.
func (g *Gate) CanView(role domain.Role, section domain.Section) bool {
	_, ok := g.view[section][role]
	return ok
}

// CanEdit reports whether role ∈ EditRoles of section.
func (g *Gate) CanEdit(role domain.Role, section domain.Section) bool {
	_, ok := g.edit[section][role]
	return ok
}
