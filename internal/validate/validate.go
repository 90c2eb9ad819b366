package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bdc/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'.,\-]{1,60}$`)

	v = validator.New(validator.WithRequiredStructEnabled())
)

// fieldNames maps struct fields to the labels used on the dashboard forms.
var fieldNames = map[string]string{
	"Name":           "nombre",
	"Description":    "descripción",
	"ImageURL":       "imagen",
	"ImageURLMobile": "imagen móvil",
	"Price":          "precio",
	"Stock":          "stock",
	"Category":       "categoría",
	"Motor":          "motor",
	"Carga":          "carga",
	"Combustible":    "combustible",
	"Title":          "título",
	"Subtitle":       "subtítulo",
}

// Struct runs the validate tags on s. The error wraps domain.ErrInvalidInput and
// its text is safe to show to the admin.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fe := ves[0]
	label := fieldNames[fe.Field()]
	if label == "" {
		label = strings.ToLower(fe.Field())
	}
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "El campo " + label + " es obligatorio"
	case "max":
		msg = "El campo " + label + " es demasiado largo"
	case "gte":
		msg = "El campo " + label + " no puede ser negativo"
	default:
		msg = "El campo " + label + " no es válido"
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

// Message strips the sentinel prefix from an error produced by Struct.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 120 {
		return "", false
	}
	return strings.ToLower(s), reEmail.MatchString(s)
}

// Q validates a search query: trims, caps the length and enforces allowed characters.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 60 {
		s = string(r[:60])
	}
	return s, reQ.MatchString(s)
}

// ID validates a record id (always a UUID).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return s, true
}

// IDs validates every id of a list, e.g. a banner reorder.
func IDs(in []string) ([]string, bool) {
	out := make([]string, 0, len(in))
	for _, s := range in {
		id, ok := ID(s)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, len(out) > 0
}

// Category normalises a repuesto category filter.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len([]rune(s)) > 80 {
		return "", false
	}
	return s, reQ.MatchString(s)
}

// Price parses an optional price field. Empty means "no price".
// Accepts "1250000", "1.250.000", "1250000,50" and "99.5".
func Price(s string) (*float64, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return nil, true
	}
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ".") == 1 && len(s)-strings.Index(s, ".") == 4:
		// "35.000" is thousands, "99.5" is a decimal
		s = strings.ReplaceAll(s, ".", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return &f, true
}

// Stock parses a non-negative integer; empty is zero.
func Stock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Password enforces a length window for login checks. bcrypt ignores bytes past 72.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}

// StrongPassword is required for the bootstrap admin account.
func StrongPassword(s string) bool {
	if !Password(s) {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
