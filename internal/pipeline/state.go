package pipeline

// State is a stage of a report run.
type State int

const (
	Idle State = iota
	Fetching
	Analyzing
	Exporting
	Done
	Failed
)

var stateNames = [...]string{
	Idle:      "Idle",
	Fetching:  "Fetching",
	Analyzing: "Analyzing",
	Exporting: "Exporting",
	Done:      "Done",
	Failed:    "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
