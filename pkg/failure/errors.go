package failure

type Severity int

// conversion pipeline control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is the error contract shared by every pipeline stage.
// Callers branch on Severity, never on concrete error types.
type ClassifiedError interface {
	error
	Severity() Severity
}
