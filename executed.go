package stmtmock

// ParameterSets holds the parameters a statement was executed with,
// in execution order.
type ParameterSets struct {
	SQL  string
	sets []Params
}

// Len returns the number of recorded executions.
func (p *ParameterSets) Len() int {
	if p == nil {
		return 0
	}
	return len(p.sets)
}

// At returns a copy of the parameters of execution i, or nil when
// there is no such execution.
func (p *ParameterSets) At(i int) Params {
	if p == nil || i < 0 || i >= len(p.sets) {
		return nil
	}
	return p.sets[i].Clone()
}

// All returns copies of all recorded parameter sets.
func (p *ParameterSets) All() []Params {
	if p == nil {
		return nil
	}
	all := make([]Params, len(p.sets))
	for i, params := range p.sets {
		all[i] = params.Clone()
	}
	return all
}

type executedStatements struct {
	sets map[string]*ParameterSets
}

func newExecutedStatements() *executedStatements {
	return &executedStatements{sets: make(map[string]*ParameterSets)}
}

func (e *executedStatements) add(sql string, params Params) {
	sets, ok := e.sets[sql]
	if !ok {
		sets = &ParameterSets{SQL: sql}
		e.sets[sql] = sets
	}
	sets.sets = append(sets.sets, params.Clone())
}
