package domain

// Section identifies a navigable part of the dashboard.
type Section string

const (
	SectionOverview     Section = "overview"
	SectionAppointments Section = "appointments"
	SectionPatients     Section = "patients"
	SectionUsers        Section = "users"
	SectionSettings     Section = "settings"
)

var sections = map[Section]struct{}{
	SectionOverview:     {},
	SectionAppointments: {},
	SectionPatients:     {},
	SectionUsers:        {},
	SectionSettings:     {},
}

// ParseSection returns the section for a path segment and whether it exists.
func ParseSection(raw string) (Section, bool) {
	s := Section(raw)
	_, ok := sections[s]
	return s, ok
}
