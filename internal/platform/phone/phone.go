// Package phone normaliza teléfonos móviles egipcios y arma links click-to-chat.
package phone

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	nonDigits     = regexp.MustCompile(`\D`)
	egyptMobileRe = regexp.MustCompile(`^(20)?0?1[0-9]{9}$`)
)

// Digits elimina todo lo que no sea dígito.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// IsEgyptianMobile acepta 01xxxxxxxxx, 1xxxxxxxxx, +201xxxxxxxxx y variantes con espacios/guiones.
func IsEgyptianMobile(s string) bool {
	return egyptMobileRe.MatchString(Digits(s))
}

// FormatE164 asume Egipto (+20) cuando el número no trae código de país.
func FormatE164(s string) string {
	d := Digits(s)
	switch {
	case d == "":
		return ""
	case strings.HasPrefix(d, "20"):
		return "+" + d
	case strings.HasPrefix(d, "0"):
		return "+20" + d[1:]
	default:
		return "+20" + d
	}
}

// ClickToChatLink arma https://wa.me/<digits>?text=<mensaje>.
func ClickToChatLink(phoneNumber, message string) string {
	return "https://wa.me/" + Digits(phoneNumber) + "?text=" + url.QueryEscape(message)
}
