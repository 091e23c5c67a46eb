package vanilla

// ChromeClass is a typed identifier for semantic CSS classes.
type ChromeClass string

const (
	ClassForm         ChromeClass = "signup-form"
	ClassField        ChromeClass = "signup-field"
	ClassFieldError   ChromeClass = "signup-field--error"
	ClassFieldSuccess ChromeClass = "signup-field--success"
	ClassErrors       ChromeClass = "signup-errors"
	ClassActions      ChromeClass = "signup-actions"
	ClassConfirmation ChromeClass = "signup-confirmation"
)

// ChromeClasses overrides the class attribute of the form chrome. Empty
// values keep the defaults; custom classes are appended to the defaults so
// the stylesheet and browser runtime keep working.
type ChromeClasses struct {
	Form         string
	Field        string
	Errors       string
	Actions      string
	Confirmation string
}

func (c ChromeClasses) resolve() map[string]string {
	return map[string]string{
		"form":          withExtra(ClassForm, c.Form),
		"field":         withExtra(ClassField, c.Field),
		"field_error":   string(ClassFieldError),
		"field_success": string(ClassFieldSuccess),
		"errors":        withExtra(ClassErrors, c.Errors),
		"actions":       withExtra(ClassActions, c.Actions),
		"confirmation":  withExtra(ClassConfirmation, c.Confirmation),
	}
}

func withExtra(base ChromeClass, extra string) string {
	if extra = sanitizeClassList(extra); extra != "" {
		return string(base) + " " + extra
	}
	return string(base)
}
