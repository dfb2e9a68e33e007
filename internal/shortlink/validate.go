package shortlink

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// DefaultValidityMinutes is applied when a create request omits validity.
const DefaultValidityMinutes = 30

// MaxValidityMinutes caps validity so the expiry offset always fits in a
// time.Duration. Anything above it would wrap the expiry before creation.
const MaxValidityMinutes = int(math.MaxInt64 / int64(time.Minute))

var (
	urlPattern  = regexp.MustCompile(`^https?://[^ "]+$`)
	codePattern = regexp.MustCompile(`^[a-zA-Z0-9]{4,20}$`)
)

// IsValidURL reports whether raw is an http or https URL with a non-empty
// remainder. No DNS or reachability check is performed.
func IsValidURL(raw string) bool {
	return urlPattern.MatchString(raw)
}

// IsValidCode reports whether code is alphanumeric and 4-20 characters long.
func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// Minutes is a validity duration that accepts either a JSON number or a
// numeric string. Parsing never fails on malformed values; Resolve reports
// them so the caller can map the failure to its own error taxonomy.
type Minutes struct {
	value int
	valid bool
	set   bool
}

// ValidityMinutes builds a Minutes carrying an explicit value. Intended for
// tests and programmatic construction.
func ValidityMinutes(v int) Minutes {
	return Minutes{value: v, valid: true, set: true}
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	m.set = true
	m.valid = false

	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		m.set = false

		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) ||
		f > float64(MaxValidityMinutes) || f < -float64(MaxValidityMinutes) {
		// Present but not a usable integer; Resolve reports it. The range
		// guard also keeps the int conversion below exact.
		return nil
	}

	m.value = int(f)
	m.valid = true

	return nil
}

// Resolve returns the validity in minutes, applying the default when the
// field was absent. A present but non-positive, non-integer, or
// over-the-cap value yields ErrInvalidValidity.
func (m Minutes) Resolve() (int, error) {
	if !m.set {
		return DefaultValidityMinutes, nil
	}

	if !m.valid || m.value <= 0 || m.value > MaxValidityMinutes {
		return 0, ErrInvalidValidity
	}

	return m.value, nil
}

// Schema implements huma.SchemaProvider so request bodies accept both the
// number and string encodings.
func (Minutes) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Validity in minutes as a positive integer; a numeric string is accepted",
		Examples:    []any{30, "30"},
	}
}
