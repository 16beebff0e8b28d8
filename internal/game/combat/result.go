package combat

// Outcome describes how an attack or heal was resolved.
type Outcome int

const (
	// OutcomeUnknown is the zero value; it marks a Result returned with an error.
	OutcomeUnknown Outcome = iota
	// Applied means the action passed every gate and reached the target.
	Applied
	// SelfTarget means a character tried to attack itself.
	SelfTarget
	// FriendlyFire means attacker and target share a faction.
	FriendlyFire
	// OutOfRange means the target was beyond the attacker's weapon range.
	OutOfRange
	// NotAlly means healer and target share no faction.
	NotAlly
	// TargetDead means the target was already dead.
	TargetDead
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case SelfTarget:
		return "self target"
	case FriendlyFire:
		return "friendly fire"
	case OutOfRange:
		return "out of range"
	case NotAlly:
		return "not an ally"
	case TargetDead:
		return "target dead"
	default:
		return "unknown"
	}
}

// Result holds the resolution of a single attack or heal.
type Result struct {
	// Outcome tells whether the action took effect and, if not, which gate stopped it.
	Outcome Outcome
	// Amount is the scaled damage applied or the health actually restored;
	// 0 unless Outcome is Applied.
	Amount int
	// Distance is the attacker-to-target distance measured by the range gate.
	// Zero for heals and for actions rejected before the range gate.
	Distance float64
}

// Effective reports whether the action passed every gate.
func (r Result) Effective() bool {
	return r.Outcome == Applied
}
