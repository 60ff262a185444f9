package types

// StageName identifies one of the bootstrap stages
type StageName string

const (
	StagePreflight   StageName = "preflight"
	StageCredentials StageName = "credentials"
	StageProvision   StageName = "provision"
	StageMaterialize StageName = "materialize"
	StageDelegate    StageName = "delegate"
)

// StageSequence lists the stages in the order the driver runs them
var StageSequence = []StageName{
	StagePreflight,
	StageCredentials,
	StageProvision,
	StageMaterialize,
	StageDelegate,
}

// StageStatus classifies the outcome of a stage
type StageStatus int

const (
	// StatusOK means the stage completed and the sequence continues
	StatusOK StageStatus = iota

	// StatusWarn means the stage hit a non-essential failure; the sequence
	// continues and the warning is surfaced in the final summary
	StatusWarn

	// StatusFatal means the stage failed in a way that makes continuing
	// pointless; the driver stops and the process exits non-zero
	StatusFatal
)

// String returns the display name for the status
func (s StageStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// StageResult is the tagged outcome of a single stage. Stages never call
// os.Exit or print directly; they return one of these and the driver decides
// what happens next.
type StageResult struct {
	// Stage is the stage that produced this result
	Stage StageName

	// Status classifies the outcome
	Status StageStatus

	// Message is a one-line, user-facing summary of the outcome
	Message string

	// Notices are additional user-facing lines (hints, remediation steps)
	Notices []string

	// Err carries the underlying error for fatal and warn outcomes
	Err error
}

// Ok builds a successful result
func Ok(stage StageName, message string) StageResult {
	return StageResult{Stage: stage, Status: StatusOK, Message: message}
}

// Warn builds a non-fatal failure result
func Warn(stage StageName, message string, err error) StageResult {
	return StageResult{Stage: stage, Status: StatusWarn, Message: message, Err: err}
}

// Fatal builds a terminal failure result
func Fatal(stage StageName, message string, err error) StageResult {
	return StageResult{Stage: stage, Status: StatusFatal, Message: message, Err: err}
}

// WithNotices appends user-facing notice lines to the result
func (r StageResult) WithNotices(notices ...string) StageResult {
	r.Notices = append(r.Notices, notices...)
	return r
}

// IsFatal reports whether the result should stop the sequence
func (r StageResult) IsFatal() bool {
	return r.Status == StatusFatal
}
