package history

import "time"

const SchemaVersion = 1

// Run is the persisted summary of one analysis pass.
type Run struct {
	ID         string
	Project    string
	StartedAt  time.Time
	Duration   time.Duration
	Units      int
	Candidates int
	Unused     int
	Unknown    int
	Lines      int
	Files      []FileTotal
}

type FileTotal struct {
	Path    string
	Symbols int
	Lines   int
}

// Delta is the change between a run and the run before it.
type Delta struct {
	Previous *Run
	Unused   int
	Unknown  int
	Lines    int
}

// Compare returns current minus previous. A nil previous yields a zero delta.
func Compare(current Run, previous *Run) Delta {
	if previous == nil {
		return Delta{}
	}
	return Delta{
		Previous: previous,
		Unused:   current.Unused - previous.Unused,
		Unknown:  current.Unknown - previous.Unknown,
		Lines:    current.Lines - previous.Lines,
	}
}
