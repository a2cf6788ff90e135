package i18n

var tr = map[Key]string{
	TitleApp:            "Klinik Yönetim Sistemi",
	Subtitle:            "Randevu ve hasta yönetimi",
	Welcome:             "Tekrar hoş geldiniz",
	Username:            "Kullanıcı Adı",
	UsernamePlaceholder: "Kullanıcı adınızı girin",
	Password:            "Şifre",
	PasswordPlaceholder: "Şifrenizi girin",
	SignIn:              "Giriş Yap",
	SignOut:             "Çıkış Yap",

	MsgSuccessLogin: "Giriş başarılı! Yönlendiriliyorsunuz…",
	MsgAccessDenied: "Erişim reddedildi. Bu bölümü görüntüleme yetkiniz yok.",
	MsgReadOnly:     "Salt okunur görünüm",

	ErrEmptyFields:        "Lütfen tüm alanları doldurun",
	ErrInvalidCredentials: "Geçersiz kullanıcı adı veya şifre",
	ErrServiceDown:        "Kimlik doğrulama servisine ulaşılamıyor, lütfen tekrar deneyin",

	MenuOverview:     "Panel",
	MenuAppointments: "Randevular",
	MenuPatients:     "Hastalar",
	MenuUsers:        "Kullanıcı Yönetimi",
	MenuSettings:     "Ayarlar",

	ActionEdit:   "Düzenle",
	ActionDelete: "Sil",

	ColName:      "Ad",
	ColEmail:     "E-posta",
	ColRole:      "Rol",
	ColStatus:    "Durum",
	ColLastLogin: "Son giriş",
	ColPatient:   "Hasta",
	ColDoctor:    "Doktor",
	ColTime:      "Saat",
	ColVisits:    "Ziyaret",
	ColLastVisit: "Son ziyaret",

	StatToday:     "Bugünkü randevular",
	StatScheduled: "Planlandı",
	StatCompleted: "Tamamlandı",
	StatCancelled: "İptal edildi",
	StatNext:      "Sıradaki randevu",

	SettingsLanguage: "Dil",
}
