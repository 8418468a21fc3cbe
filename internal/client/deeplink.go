package client

import (
	"net/url"
	"strings"
)

// WhatsAppURL builds a wa.me link. Everything but ASCII digits is dropped
// from phone and the text parameter is omitted when empty.
func WhatsAppURL(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	u := "https://wa.me/" + digits
	if text != "" {
		u += "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	}
	return u
}

// TelURL builds a tel: link for phone as entered.
func TelURL(phone string) string {
	return "tel:" + phone
}

// Greeting is the default WhatsApp opening message for an artisan.
func Greeting(name string) string {
	return "Bonjour " + name + ", j'ai trouvé votre profil sur ArtisanConnect. J'aimerais discuter d'un projet."
}
