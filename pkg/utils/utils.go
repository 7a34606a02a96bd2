package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	FormatDisplayPhone(rawID string) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// FormatDisplayPhone turns a raw WhatsApp identifier ("5511987654321@s.whatsapp.net")
// into a display name when the contact has no push name. Brazilian numbers
// (country code 55) render as "(DD) NNNNN-NNNN"; anything else is masked to
// its last four digits.
func (u *utils) FormatDisplayPhone(rawID string) string {
	cleaned := rawID
	if i := strings.IndexByte(cleaned, '@'); i >= 0 {
		cleaned = cleaned[:i]
	}
	if i := strings.IndexByte(cleaned, ':'); i >= 0 {
		cleaned = cleaned[:i]
	}

	if cleaned == "" || !isDigits(cleaned) {
		return "Usuário"
	}

	if strings.HasPrefix(cleaned, "55") && len(cleaned) >= 12 {
		ddd := cleaned[2:4]
		number := cleaned[4:]
		return "(" + ddd + ") " + number[:len(number)-4] + "-" + number[len(number)-4:]
	}

	if len(cleaned) < 4 {
		return "Usuário *" + cleaned
	}
	return "Usuário *" + cleaned[len(cleaned)-4:]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
