package resolve

import "fmt"

// Status is the result of resolving one item.
type Status string

const (
	StatusLoaded      Status = "loaded"
	StatusSubstituted Status = "substituted"
	StatusLocal       Status = "local"
	StatusSkipped     Status = "skipped"
	StatusFailed      Status = "failed"
)

// Outcome records how one font, component or style was resolved.
type Outcome struct {
	Subject string
	Status  Status
	Detail  string
	Err     error
}

func (o Outcome) String() string {
	s := fmt.Sprintf("%s: %s", o.Subject, o.Status)
	if o.Detail != "" {
		s += " (" + o.Detail + ")"
	}
	if o.Err != nil {
		s += ": " + o.Err.Error()
	}
	return s
}

// Report collects the outcomes of one batch in a deterministic order.
type Report struct {
	Outcomes []Outcome
}

// Count returns the number of outcomes with the given status.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the failed outcomes.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// OK reports whether nothing failed.
func (r Report) OK() bool { return r.Count(StatusFailed) == 0 }
