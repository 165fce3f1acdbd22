package merge

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
)

// DateFormatter renders calendar dates as letter text, e.g. "15 de marzo de 2024".
type DateFormatter struct {
	tr locales.Translator
}

// NewDateFormatter picks month names for locale. Anything other than an
// English tag falls back to Spanish.
func NewDateFormatter(locale string) *DateFormatter {
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return &DateFormatter{tr: en.New()}
	}
	return &DateFormatter{tr: es.New()}
}

func (f *DateFormatter) Text(t time.Time) string {
	month := f.tr.MonthWide(t.Month())
	if strings.HasPrefix(f.tr.Locale(), "en") {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
}
