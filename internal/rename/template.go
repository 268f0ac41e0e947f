package rename

import (
	"fmt"
	"slices"
	"strings"
)

// NamingMethod controls where the formatted date appears relative to the
// original filename stem.
type NamingMethod int

const (
	// DateOnly replaces the whole stem with the formatted date.
	DateOnly NamingMethod = iota
	// DateBeforeOriginal prefixes the original stem with the formatted date.
	DateBeforeOriginal
	// DateAfterOriginal appends the formatted date to the original stem.
	DateAfterOriginal
)

var namingMethodNames = map[NamingMethod]string{
	DateOnly:           "date-only",
	DateBeforeOriginal: "date-before-name",
	DateAfterOriginal:  "date-after-name",
}

func (m NamingMethod) String() string {
	if name, ok := namingMethodNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseNamingMethod maps the numeric settings value to a NamingMethod.
func ParseNamingMethod(v int) (NamingMethod, error) {
	m := NamingMethod(v)
	if _, ok := namingMethodNames[m]; !ok {
		return DateOnly, fmt.Errorf("unknown naming method: %d", v)
	}
	return m, nil
}

// DefaultDateFormat is the strftime format in effect until the user
// configures another one.
const DefaultDateFormat = "%Y-%m-%d_%H-%M-%S"

// NamingTemplate is the user-configurable shape of generated names.
type NamingTemplate struct {
	DateFormat string
	Method     NamingMethod
}

// DefaultTemplate returns the template used on first run.
func DefaultTemplate() NamingTemplate {
	return NamingTemplate{DateFormat: DefaultDateFormat, Method: DateOnly}
}

// Validate reports whether the template can produce legal, unambiguous
// filenames on every platform.
func (t NamingTemplate) Validate() error {
	if _, err := ParseNamingMethod(int(t.Method)); err != nil {
		return err
	}
	return ValidateDateFormat(t.DateFormat)
}

// invalidFilenameChars can never appear in a filename on the filesystems
// this tool targets.
const invalidFilenameChars = `<>:"/\|?*`

// allowedVerbs are the strftime specifiers whose rendering does not depend
// on locale. Everything else is rejected so a format behaves identically on
// every machine.
var allowedVerbs = map[byte]bool{
	'Y': true, 'y': true, 'm': true, 'd': true,
	'H': true, 'M': true, 'S': true, '%': true,
}

// TemplateError lists the tokens that made a date format unusable.
type TemplateError struct {
	Tokens []string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("date format contains unusable tokens: %s", strings.Join(e.Tokens, " "))
}

// ValidateDateFormat checks a user-supplied strftime format for
// filename-illegal characters and locale-dependent specifiers. The returned
// error is a *TemplateError naming each offending token once, in order of
// first appearance.
func ValidateDateFormat(format string) error {
	if strings.TrimSpace(format) == "" {
		return fmt.Errorf("date format is empty")
	}

	var tokens []string
	for i := 0; i < len(format); i++ {
		c := format[i]
		if strings.IndexByte(invalidFilenameChars, c) >= 0 {
			tokens = append(tokens, string(c))
			continue
		}
		if c != '%' {
			continue
		}
		if i+1 == len(format) {
			tokens = append(tokens, "%")
			break
		}
		i++
		if !allowedVerbs[format[i]] {
			tokens = append(tokens, "%"+string(format[i]))
		}
	}
	if len(tokens) > 0 {
		return &TemplateError{Tokens: dedupe(tokens)}
	}
	return nil
}

// invalidCharsIn returns the filename-illegal characters present in a name,
// deduplicated, in order of first appearance.
func invalidCharsIn(name string) []string {
	var chars []string
	for i := 0; i < len(name); i++ {
		if strings.IndexByte(invalidFilenameChars, name[i]) >= 0 {
			chars = append(chars, string(name[i]))
		}
	}
	return dedupe(chars)
}

func dedupe(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
