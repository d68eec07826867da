// Package report renders inquiry records into the realtor contacts PDF.
package report

import (
	"strings"
	"time"
)

const (
	// MaxRows caps the number of inquiries in one report.
	MaxRows = 200
	// ContentType of a rendered report.
	ContentType = "application/pdf"
	// Filename suggested to clients downloading the report.
	Filename = "contacts_report.pdf"

	maxMessageRunes = 200
	ellipsis        = "..."
	dateLayout      = "2006-01-02 15:04"
)

// TruncateMessage shortens messages longer than 200 characters to 197 characters plus "...".
func TruncateMessage(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageRunes {
		return s
	}
	return string(r[:maxMessageRunes-len(ellipsis)]) + ellipsis
}

// FormatMessage normalizes line endings to "\n" and truncates the message.
func FormatMessage(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return TruncateMessage(s)
}

// FormatDate renders t as "YYYY-MM-DD HH:MM" in t's own location. nil renders empty.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
