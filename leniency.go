package almanac

// Leniency controls how boundary-ambiguous or out-of-range input is
// treated when composing dates from fields or resolving eras.
type Leniency int

const (
	// Smart silently substitutes the computed value when the caller's
	// input disagrees at a transition boundary. This is the default and
	// the recommended mode.
	Smart Leniency = iota
	// Strict rejects any input that does not exactly match the computed
	// value.
	Strict
	// Lax keeps the caller's input verbatim without validation.
	Lax
)

func (l Leniency) String() string {
	switch l {
	case Strict:
		return "strict"
	case Lax:
		return "lax"
	default:
		return "smart"
	}
}
