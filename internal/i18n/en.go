package i18n

var en = map[Key]string{
	TitleApp:            "Clinic Management System",
	Subtitle:            "Appointment and patient administration",
	Welcome:             "Welcome back",
	Username:            "Username",
	UsernamePlaceholder: "Enter your username",
	Password:            "Password",
	PasswordPlaceholder: "Enter your password",
	SignIn:              "Sign In",
	SignOut:             "Sign Out",

	MsgSuccessLogin: "Login successful! Redirecting…",
	MsgAccessDenied: "Access denied. You do not have permission to view this section.",
	MsgReadOnly:     "Read-only view",

	ErrEmptyFields:        "Please fill in all fields",
	ErrInvalidCredentials: "Invalid username or password",
	ErrServiceDown:        "Authentication service unavailable, please try again",

	MenuOverview:     "Dashboard",
	MenuAppointments: "Appointments",
	MenuPatients:     "Patients",
	MenuUsers:        "User Management",
	MenuSettings:     "Settings",

	ActionEdit:   "Edit",
	ActionDelete: "Delete",

	ColName:      "Name",
	ColEmail:     "Email",
	ColRole:      "Role",
	ColStatus:    "Status",
	ColLastLogin: "Last login",
	ColPatient:   "Patient",
	ColDoctor:    "Doctor",
	ColTime:      "Time",
	ColVisits:    "Visits",
	ColLastVisit: "Last visit",

	StatToday:     "Appointments today",
	StatScheduled: "Scheduled",
	StatCompleted: "Completed",
	StatCancelled: "Cancelled",
	StatNext:      "Next appointment",

	SettingsLanguage: "Language",
}
