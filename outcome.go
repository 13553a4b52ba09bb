package stmtmock

import "fmt"

// OutcomeKind tells which payload an Outcome carries.
type OutcomeKind int

const (
	KindResultSet OutcomeKind = iota
	KindResultSets
	KindUpdateCount
	KindUpdateCounts
	KindError
)

func (k OutcomeKind) String() string {
	switch k {
	case KindResultSet:
		return "result set"
	case KindResultSets:
		return "result sets"
	case KindUpdateCount:
		return "update count"
	case KindUpdateCounts:
		return "update counts"
	case KindError:
		return "error"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome pairs the expected parameters of a prepared statement with the
// response to give when it matches. It is never modified after creation.
type Outcome struct {
	kind         OutcomeKind
	params       Params
	resultSets   []*Rows
	updateCounts []int
	err          error
}

func newResultSetOutcome(rs *Rows, params Params) *Outcome {
	return &Outcome{kind: KindResultSet, params: params.Clone(), resultSets: []*Rows{rs}}
}

func newResultSetsOutcome(rs []*Rows, params Params) *Outcome {
	sets := make([]*Rows, len(rs))
	copy(sets, rs)
	return &Outcome{kind: KindResultSets, params: params.Clone(), resultSets: sets}
}

func newUpdateCountOutcome(n int, params Params) *Outcome {
	return &Outcome{kind: KindUpdateCount, params: params.Clone(), updateCounts: []int{n}}
}

func newUpdateCountsOutcome(ns []int, params Params) *Outcome {
	counts := make([]int, len(ns))
	copy(counts, ns)
	return &Outcome{kind: KindUpdateCounts, params: params.Clone(), updateCounts: counts}
}

func newErrorOutcome(err error, params Params) *Outcome {
	return &Outcome{kind: KindError, params: params.Clone(), err: err}
}

// Kind returns the payload variant.
func (o *Outcome) Kind() OutcomeKind { return o.kind }

// Params returns a copy of the expected parameters.
func (o *Outcome) Params() Params { return o.params.Clone() }

// Multiple reports whether the outcome was prepared as a sequence,
// regardless of the sequence length.
func (o *Outcome) Multiple() bool {
	return o.kind == KindResultSets || o.kind == KindUpdateCounts
}

// ResultSets returns the prepared result sets, a single element
// slice for KindResultSet and nil for other kinds.
func (o *Outcome) ResultSets() []*Rows {
	if o.resultSets == nil {
		return nil
	}
	sets := make([]*Rows, len(o.resultSets))
	copy(sets, o.resultSets)
	return sets
}

// UpdateCounts returns the prepared update counts, a single element
// slice for KindUpdateCount and nil for other kinds.
func (o *Outcome) UpdateCounts() []int {
	if o.updateCounts == nil {
		return nil
	}
	counts := make([]int, len(o.updateCounts))
	copy(counts, o.updateCounts)
	return counts
}

// Err returns the prepared error of a KindError outcome.
func (o *Outcome) Err() error { return o.err }

func (o *Outcome) String() string {
	var payload string
	switch o.kind {
	case KindResultSet, KindResultSets:
		payload = fmt.Sprintf("%d result set(s)", len(o.resultSets))
	case KindUpdateCount, KindUpdateCounts:
		payload = fmt.Sprintf("update counts %v", o.updateCounts)
	case KindError:
		payload = fmt.Sprintf("error %q", o.err)
	}
	return fmt.Sprintf("%s outcome with %s for params %s", o.kind, payload, o.params)
}
