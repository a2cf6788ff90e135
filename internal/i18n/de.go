package i18n

var de = map[Key]string{
	TitleApp:            "Klinikverwaltung",
	Subtitle:            "Termin- und Patientenverwaltung",
	Welcome:             "Willkommen zurück",
	Username:            "Benutzername",
	UsernamePlaceholder: "Benutzernamen eingeben",
	Password:            "Passwort",
	PasswordPlaceholder: "Passwort eingeben",
	SignIn:              "Anmelden",
	SignOut:             "Abmelden",

	MsgSuccessLogin: "Anmeldung erfolgreich! Weiterleitung…",
	MsgAccessDenied: "Zugriff verweigert. Sie haben keine Berechtigung für diesen Bereich.",

	ErrEmptyFields:        "Bitte füllen Sie alle Felder aus",
	ErrInvalidCredentials: "Ungültiger Benutzername oder ungültiges Passwort",
	ErrServiceDown:        "Authentifizierungsdienst nicht erreichbar, bitte erneut versuchen",

	MenuOverview:     "Übersicht",
	MenuAppointments: "Termine",
	MenuPatients:     "Patienten",
	MenuUsers:        "Benutzerverwaltung",
	MenuSettings:     "Einstellungen",

	ActionEdit:   "Bearbeiten",
	ActionDelete: "Löschen",

	ColName:      "Name",
	ColEmail:     "E-Mail",
	ColRole:      "Rolle",
	ColStatus:    "Status",
	ColLastLogin: "Letzte Anmeldung",
	ColPatient:   "Patient",
	ColDoctor:    "Arzt",
	ColTime:      "Uhrzeit",
	ColVisits:    "Besuche",
	ColLastVisit: "Letzter Besuch",

	StatToday:     "Termine heute",
	StatScheduled: "Geplant",
	StatCompleted: "Abgeschlossen",
	StatCancelled: "Abgesagt",
	StatNext:      "Nächster Termin",

	SettingsLanguage: "Sprache",
}
