package flow

// Phase is a step of the submission state machine.
type Phase int

const (
	Idle Phase = iota
	Validating
	Submitting
	Success
	Failed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
