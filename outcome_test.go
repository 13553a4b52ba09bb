package stmtmock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeKinds(t *testing.T) {
	rows := NewRows([]string{"a"})
	boom := errors.New("boom")

	cases := []struct {
		outcome  *Outcome
		kind     OutcomeKind
		multiple bool
		sets     int
		counts   []int
		err      error
	}{
		{newResultSetOutcome(rows, nil), KindResultSet, false, 1, nil, nil},
		{newResultSetsOutcome([]*Rows{rows, rows}, nil), KindResultSets, true, 2, nil, nil},
		{newUpdateCountOutcome(4, nil), KindUpdateCount, false, 0, []int{4}, nil},
		{newUpdateCountsOutcome([]int{1, 2}, nil), KindUpdateCounts, true, 0, []int{1, 2}, nil},
		{newErrorOutcome(boom, nil), KindError, false, 0, nil, boom},
	}

	for _, c := range cases {
		t.Run(c.kind.String(), func(t *testing.T) {
			assert.Equal(t, c.kind, c.outcome.Kind())
			assert.Equal(t, c.multiple, c.outcome.Multiple())
			assert.Len(t, c.outcome.ResultSets(), c.sets)
			assert.Equal(t, c.counts, c.outcome.UpdateCounts())
			assert.Equal(t, c.err, c.outcome.Err())
		})
	}
}

func TestOutcomeParamsAreCopied(t *testing.T) {
	params := Args("a")
	o := newUpdateCountOutcome(1, params)

	params[Pos(1)] = "b"
	assert.Equal(t, Args("a"), o.Params())

	got := o.Params()
	got[Pos(1)] = "c"
	assert.Equal(t, Args("a"), o.Params())
}

func TestOutcomeString(t *testing.T) {
	o := newUpdateCountsOutcome([]int{1, 2}, Args("a"))
	assert.Equal(t, "update counts outcome with update counts [1 2] for params {$1=a}", o.String())

	o = newErrorOutcome(errors.New("boom"), nil)
	assert.Equal(t, `error outcome with error "boom" for params {}`, o.String())

	assert.Equal(t, "OutcomeKind(9)", OutcomeKind(9).String())
}
