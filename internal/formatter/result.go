package formatter

// CheckResult classifies the formatter's --check invocation.
type CheckResult int

const (
	// CheckClean means the file already matches the formatter's style.
	CheckClean CheckResult = iota
	// CheckNeedsWrite means the formatter reported differences (exit 1).
	CheckNeedsWrite
	// CheckFailed means the check itself broke: missing binary, crash,
	// syntax error (exit 2 and above).
	CheckFailed
)

func (c CheckResult) String() string {
	switch c {
	case CheckClean:
		return "clean"
	case CheckNeedsWrite:
		return "needs-write"
	case CheckFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the terminal state of one file.
type Status int

const (
	Skipped Status = iota
	Formatted
	Errored
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Formatted:
		return "formatted"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Outcome is everything that happened to one file.
type Outcome struct {
	Path   string
	Status Status
	Check  CheckResult

	// CheckErr is why the check failed when Check is CheckFailed.
	CheckErr error
	// Err is the write failure when Status is Errored.
	Err error
	// LintWarnings holds linter failures. They never change Status.
	LintWarnings []error
}
