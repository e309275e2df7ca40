// Package core provides the template helpers shared by every portal page.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

// Deps holds the dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	SectionPath        func(string) string
}

// Funcs returns the template.FuncMap used by the portal templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"screenTmpl":   deps.ContentTemplateFor,
		"sectionPath":  deps.SectionPath,
		"add":          func(a, b int) int { return a + b },
		"formatNumber": FormatNumber,
		"one":          FormatOne,
		"pct":          FormatPercent,
		"money":        FormatMoney,
		"initials":     Initials,
		"roleLabel":    func(r school.Role) string { return viewrouter.RoleLabel(r) },
		"statusLabel":  StatusLabel,
		"gradeClass":   GradeClass,
		"monthName":    MonthName,
		"months":       func() []int { return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12} },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	// screen is a string or any string-kinded screen identifier.
	funcs["renderScreen"] = func(screen any, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(fmt.Sprint(screen)), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// FormatNumber formats an int with comma thousands separators.
func FormatNumber(n int) string {
	neg := n < 0
	s := strconv.FormatInt(int64(n), 10)
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		prefix := len(s) % 3
		if prefix == 0 {
			prefix = 3
		}
		b.WriteString(s[:prefix])
		for i := prefix; i < len(s); i += 3 {
			b.WriteByte(',')
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatOne renders v with one decimal.
func FormatOne(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

// FormatPercent renders a 0-100 rate as "95.5%".
func FormatPercent(v float64) string { return FormatOne(v) + "%" }

// FormatMoney renders a euro amount with two decimals and grouped thousands.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	cents := int(math.Round(v * 100))
	return fmt.Sprintf("%s€%s.%02d", sign, FormatNumber(cents/100), cents%100)
}

// Initials returns the upper-cased first letters of the first two words of name.
func Initials(name string) string {
	out := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsLetter(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

var statusLabels = map[string]string{
	"active":    "Activo",
	"inactive":  "Inactivo",
	"present":   "Presente",
	"absent":    "Ausente",
	"late":      "Tardanza",
	"completed": "Completada",
	"overdue":   "Vencido",
	"paid":      "Pagado",
	"pending":   "Pendiente",
	"read":      "Leído",
	"unread":    "No leído",
	"sent":      "Enviado",
}

// StatusLabel returns the Spanish label of a record status; unknown values pass through.
func StatusLabel(status any) string {
	s := fmt.Sprint(status)
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s
}

// GradeClass buckets a 0-100 grade into a CSS class.
func GradeClass(grade float64) string {
	switch {
	case grade >= 90:
		return "grade-excellent"
	case grade >= 80:
		return "grade-good"
	case grade >= 70:
		return "grade-fair"
	default:
		return "grade-low"
	}
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name of month 1-12, or "" when out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}
