package views

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/i18n"
)

const (
	langCookie = "lang"
	langKey    = "ui_lang"
)

// Language picks the UI language: ?lang= first (remembered in a cookie), then the cookie, then fallback.
func Language(fallback i18n.Lang) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := fallback
		if q := c.Query("lang"); q != "" {
			lang = i18n.Normalize(q)
			c.Cookie(&fiber.Cookie{
				Name:     langCookie,
				Value:    string(lang),
				Path:     "/",
				Expires:  time.Now().AddDate(1, 0, 0),
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		} else if v := c.Cookies(langCookie); v != "" {
			lang = i18n.Normalize(v)
		}
		c.Locals(langKey, lang)
		return c.Next()
	}
}

// Translator returns the translator for the request language.
func Translator(c *fiber.Ctx) i18n.Translator {
	lang, ok := c.Locals(langKey).(i18n.Lang)
	if !ok {
		lang = i18n.EN
	}
	return i18n.Translator{Lang: lang}
}
