package status

// Badge classes understood by the dashboard stylesheet
const (
	BadgeSuccess = "badge-success"
	BadgeWarning = "badge-warning"
	BadgeDanger  = "badge-danger"
)

// Accent colors, as theme variable references
const (
	ColorSuccess = "var(--color-success)"
	ColorWarning = "var(--color-warning)"
	ColorDanger  = "var(--color-danger)"
	ColorMuted   = "var(--color-muted)"
)

// Alert severities
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// AlertBadgeClass maps an alert severity to a badge class. Unknown levels
// are treated as danger.
func AlertBadgeClass(level string) string {
	switch level {
	case LevelSuccess:
		return BadgeSuccess
	case LevelWarning:
		return BadgeWarning
	default:
		return BadgeDanger
	}
}

// AlertColor maps an alert severity to an accent color, in parallel with
// AlertBadgeClass.
func AlertColor(level string) string {
	switch level {
	case LevelSuccess:
		return ColorSuccess
	case LevelWarning:
		return ColorWarning
	default:
		return ColorDanger
	}
}
