package listx

// State is the macro-state of a List. Every operation either stays in its
// current state or moves between the two.
type State int

const (
	Empty State = iota
	NonEmpty
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case NonEmpty:
		return "nonEmpty"
	default:
		return "unknown"
	}
}
