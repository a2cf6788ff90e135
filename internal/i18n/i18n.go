package i18n

import "strings"

// Key names a translatable UI string.
type Key string

const (
	// login view
	TitleApp            Key = "title.app"
	Subtitle            Key = "title.subtitle"
	Welcome             Key = "login.welcome"
	Username            Key = "login.username"
	UsernamePlaceholder Key = "login.username_placeholder"
	Password            Key = "login.password"
	PasswordPlaceholder Key = "login.password_placeholder"
	SignIn              Key = "login.sign_in"
	SignOut             Key = "login.sign_out"

	// messages
	MsgSuccessLogin Key = "msg.success_login"
	MsgAccessDenied Key = "msg.access_denied"
	MsgReadOnly     Key = "msg.read_only"

	// errors
	ErrEmptyFields        Key = "error.empty_fields"
	ErrInvalidCredentials Key = "error.invalid_credentials"
	ErrServiceDown        Key = "error.service_down"

	// dashboard menu
	MenuOverview     Key = "menu.overview"
	MenuAppointments Key = "menu.appointments"
	MenuPatients     Key = "menu.patients"
	MenuUsers        Key = "menu.users"
	MenuSettings     Key = "menu.settings"

	// dashboard actions
	ActionEdit   Key = "action.edit"
	ActionDelete Key = "action.delete"

	// dashboard content
	ColName      Key = "col.name"
	ColEmail     Key = "col.email"
	ColRole      Key = "col.role"
	ColStatus    Key = "col.status"
	ColLastLogin Key = "col.last_login"
	ColPatient   Key = "col.patient"
	ColDoctor    Key = "col.doctor"
	ColTime      Key = "col.time"
	ColVisits    Key = "col.visits"
	ColLastVisit Key = "col.last_visit"

	StatToday     Key = "stat.today"
	StatScheduled Key = "stat.scheduled"
	StatCompleted Key = "stat.completed"
	StatCancelled Key = "stat.cancelled"
	StatNext      Key = "stat.next"

	SettingsLanguage Key = "settings.language"
)

// Lang is a supported UI language code.
type Lang string

const (
	EN Lang = "en"
	TR Lang = "tr"
	DE Lang = "de"
)

// Language describes an entry of the language picker.
type Language struct {
	Code Lang
	Name string
	Flag string
}

// Languages lists the picker entries in display order.
var Languages = []Language{
	{Code: EN, Name: "English", Flag: "🇬🇧"},
	{Code: TR, Name: "Türkçe", Flag: "🇹🇷"},
	{Code: DE, Name: "Deutsch", Flag: "🇩🇪"},
}

var catalogs = map[Lang]map[Key]string{
	EN: en,
	TR: tr,
	DE: de,
}

// Normalize maps a raw language code (e.g. "tr-TR", "DE") to a supported Lang, defaulting to English.
func Normalize(code string) Lang {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if _, ok := catalogs[Lang(code)]; ok {
		return Lang(code)
	}
	return EN
}

// T translates key into lang, falling back to English and then to the key itself.
func T(lang Lang, key Key) string {
	if cat, ok := catalogs[lang]; ok {
		if v, ok := cat[key]; ok {
			return v
		}
	}
	if v, ok := en[key]; ok {
		return v
	}
	return string(key)
}

// Translator binds a language so views can call t.T(key).
type Translator struct {
	Lang Lang
}

// T translates key in the bound language.
func (t Translator) T(key Key) string {
	return T(t.Lang, key)
}

// Flag returns the picker flag of the bound language.
func (t Translator) Flag() string {
	for _, l := range Languages {
		if l.Code == t.Lang {
			return l.Flag
		}
	}
	return ""
}
