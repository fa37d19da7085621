// Package render assembles letter content: placeholder substitution, merge
// context construction and the printable HTML page shell. It is pure string
// work with no I/O, so the document pipeline stays testable without engines.
package render

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// placeholderPattern matches {{field}} markers, tolerating inner whitespace.
// Templates use fixed variable interpolation, not a template language, so
// unknown fields simply render empty instead of failing the letter.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// dateLayouts are the accepted spellings for candidate start/end dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// letterDateFormat is how dates appear inside generated letters.
const letterDateFormat = "January 2, 2006"

// FormatDate normalizes a free-form date string to the letter format.
// Unparseable or empty input renders as an empty string.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(letterDateFormat)
		}
	}
	return ""
}

// Context builds the merge map for one candidate: the candidate's fields,
// the generation date and the current year.
func Context(c *domain.Candidate) map[string]string {
	now := time.Now()
	return map[string]string{
		"name":         c.Name,
		"email":        c.Email,
		"role":         c.Role,
		"start_date":   FormatDate(c.StartDate),
		"end_date":     FormatDate(c.EndDate),
		"date":         now.Format(letterDateFormat),
		"current_year": strconv.Itoa(now.Year()),
	}
}

// Merge substitutes every {{field}} in content from fields. Fields absent
// from the map become empty strings.
func Merge(content string, fields map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(m string) string {
		key := placeholderPattern.FindStringSubmatch(m)[1]
		return fields[key]
	})
}

// Page wraps a merged letter body in the printable HTML shell: inlined
// stylesheet plus the letterhead logo as a data URI.
func Page(body, css, logoB64 string) string {
	var b strings.Builder
	b.WriteString("<html>\n")
	b.WriteString("<head><style>")
	b.WriteString(css)
	b.WriteString("</style></head>\n")
	b.WriteString("<body>\n")
	b.WriteString(`<img src="data:image/png;base64,`)
	b.WriteString(logoB64)
	b.WriteString(`" alt="Logo" style="max-height:60px;"><br><br>` + "\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n")
	b.WriteString("</html>\n")
	return b.String()
}
