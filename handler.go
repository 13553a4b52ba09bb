package stmtmock

import "regexp"

// ParamHandler stores the outcomes prepared for parameterized statements
// and finds the one to answer a statement with. Result sets, update counts
// and errors are kept in independent registries.
//
// Lookups scan the statements matching the SQL text and return the first
// outcome, in preparation order, whose parameters match. A miss is never
// an error, it yields the zero value.
//
// A ParamHandler is not safe for concurrent use.
type ParamHandler struct {
	cfg      MatchConfig
	log      Logger
	patterns map[string]*regexp.Regexp

	resultSets   *registry
	updateCounts *registry
	errors       *registry

	executed *executedStatements
}

// NewParamHandler creates an empty handler matching with cfg.
func NewParamHandler(cfg MatchConfig) *ParamHandler {
	return &ParamHandler{
		cfg:          cfg,
		log:          DefaultLogger,
		patterns:     make(map[string]*regexp.Regexp),
		resultSets:   newRegistry(),
		updateCounts: newRegistry(),
		errors:       newRegistry(),
		executed:     newExecutedStatements(),
	}
}

// Config returns the current match configuration.
func (h *ParamHandler) Config() MatchConfig { return h.cfg }

// SetConfig replaces the match configuration used by subsequent lookups.
func (h *ParamHandler) SetConfig(cfg MatchConfig) { h.cfg = cfg }

// SetCaseSensitive sets if SQL text is compared with case.
func (h *ParamHandler) SetCaseSensitive(caseSensitive bool) { h.cfg.CaseSensitive = caseSensitive }

// SetExactMatch sets if SQL text must be equal instead of contained.
func (h *ParamHandler) SetExactMatch(exactMatch bool) { h.cfg.ExactMatch = exactMatch }

// SetUseRegularExpressions sets if prepared SQL is a regular expression.
func (h *ParamHandler) SetUseRegularExpressions(useRegularExpressions bool) {
	h.cfg.UseRegularExpressions = useRegularExpressions
}

// SetUseWildcards sets if prepared SQL is a glob pattern.
func (h *ParamHandler) SetUseWildcards(useWildcards bool) { h.cfg.UseWildcards = useWildcards }

// SetExactMatchParameter sets if the specified parameters must match exactly
// in number. Defaults to false, i.e. the prepared parameters must be present
// in the actual parameters, but there may be more actual parameters.
func (h *ParamHandler) SetExactMatchParameter(exactMatchParameter bool) {
	h.cfg.ExactMatchParameter = exactMatchParameter
}

// SetLogger replaces the logger, DefaultLogger unless set.
func (h *ParamHandler) SetLogger(logger Logger) { h.log = logger }

// PrepareResultSet prepares a result set for the SQL string and parameters.
func (h *ParamHandler) PrepareResultSet(sql string, rs *Rows, params Params) {
	h.prepare(h.resultSets, sql, newResultSetOutcome(rs, params))
}

// PrepareResultSets prepares several result sets returned together
// for the SQL string and parameters. Every matching query gets the whole
// sequence as multiple result sets of that one call, the first one
// current and the others reached with (*sql.Rows).NextResultSet. It is
// not consumed across calls like an update count sequence.
func (h *ParamHandler) PrepareResultSets(sql string, rs []*Rows, params Params) {
	h.prepare(h.resultSets, sql, newResultSetsOutcome(rs, params))
}

// PrepareUpdateCount prepares the update count for the SQL string and
// parameters. It is returned by every matching call.
func (h *ParamHandler) PrepareUpdateCount(sql string, updateCount int, params Params) {
	h.prepare(h.updateCounts, sql, newUpdateCountOutcome(updateCount, params))
}

// PrepareUpdateCounts prepares a sequence of update counts for the SQL
// string and parameters.
func (h *ParamHandler) PrepareUpdateCounts(sql string, updateCounts []int, params Params) {
	h.prepare(h.updateCounts, sql, newUpdateCountsOutcome(updateCounts, params))
}

// PrepareError prepares that the SQL string with the parameters
// fails with err. This can be used to simulate database failures.
func (h *ParamHandler) PrepareError(sql string, err error, params Params) {
	h.prepare(h.errors, sql, newErrorOutcome(err, params))
}

// PrepareGenericError is PrepareError with a *StatementError.
func (h *ParamHandler) PrepareGenericError(sql string, params Params) {
	h.PrepareError(sql, &StatementError{SQL: sql}, params)
}

func (h *ParamHandler) prepare(r *registry, sql string, o *Outcome) {
	r.add(sql, o)
	h.log.Infof("prepared %s for statement %q", o, sql)
}

// FindResultSet returns the first result set outcome matching sql and params.
func (h *ParamHandler) FindResultSet(sql string, params Params) (*Outcome, bool) {
	return h.find(h.resultSets, sql, params)
}

// FindUpdateCount returns the first update count outcome matching sql and params.
func (h *ParamHandler) FindUpdateCount(sql string, params Params) (*Outcome, bool) {
	return h.find(h.updateCounts, sql, params)
}

// FindError returns the first error outcome matching sql and params.
func (h *ParamHandler) FindError(sql string, params Params) (*Outcome, bool) {
	return h.find(h.errors, sql, params)
}

func (h *ParamHandler) find(r *registry, sql string, params Params) (*Outcome, bool) {
	cfg := h.cfg
	matcher := &StatementMatcher{cfg: cfg, log: h.log, patterns: h.patterns}
	for _, o := range matcher.matchingOutcomes(r, sql, true, true) {
		if ParamsMatch(o.params, params, cfg.ExactMatchParameter) {
			return o, true
		}
	}
	h.log.Infof("no prepared outcome matches statement %q with params %s", sql, params)
	return nil, false
}

// ResultSet returns the first result set prepared for sql and params,
// or nil if there is none.
func (h *ParamHandler) ResultSet(sql string, params Params) *Rows {
	sets := h.ResultSets(sql, params)
	if len(sets) > 0 {
		return sets[0]
	}
	return nil
}

// ResultSets returns the result sets prepared for sql and params.
func (h *ParamHandler) ResultSets(sql string, params Params) []*Rows {
	o, ok := h.FindResultSet(sql, params)
	if !ok {
		return nil
	}
	return o.ResultSets()
}

// HasMultipleResultSets reports whether the matching result set outcome was
// prepared with PrepareResultSets.
func (h *ParamHandler) HasMultipleResultSets(sql string, params Params) bool {
	o, ok := h.FindResultSet(sql, params)
	return ok && o.Multiple()
}

// UpdateCount returns the first update count prepared for sql and params.
func (h *ParamHandler) UpdateCount(sql string, params Params) (int, bool) {
	counts := h.UpdateCounts(sql, params)
	if len(counts) > 0 {
		return counts[0], true
	}
	return 0, false
}

// UpdateCounts returns the update counts prepared for sql and params.
func (h *ParamHandler) UpdateCounts(sql string, params Params) []int {
	o, ok := h.FindUpdateCount(sql, params)
	if !ok {
		return nil
	}
	return o.UpdateCounts()
}

// HasMultipleUpdateCounts reports whether the matching update count outcome
// was prepared with PrepareUpdateCounts.
func (h *ParamHandler) HasMultipleUpdateCounts(sql string, params Params) bool {
	o, ok := h.FindUpdateCount(sql, params)
	return ok && o.Multiple()
}

// Error returns the error prepared for sql and params, or nil.
func (h *ParamHandler) Error(sql string, params Params) error {
	o, ok := h.FindError(sql, params)
	if !ok {
		return nil
	}
	return o.Err()
}

// ThrowsError reports whether sql with params was prepared to fail.
func (h *ParamHandler) ThrowsError(sql string, params Params) bool {
	return h.Error(sql, params) != nil
}

// ClearResultSets removes all prepared result sets.
func (h *ParamHandler) ClearResultSets() { h.resultSets.clear() }

// ClearUpdateCounts removes all prepared update counts.
func (h *ParamHandler) ClearUpdateCounts() { h.updateCounts.clear() }

// ClearErrors removes all prepared errors.
func (h *ParamHandler) ClearErrors() { h.errors.clear() }

// AddExecutedParams records that sql was executed with params.
// Nothing is recorded when params is nil.
func (h *ParamHandler) AddExecutedParams(sql string, params Params) {
	if params == nil {
		h.log.Infof("skipping executed statement %q without parameters", sql)
		return
	}
	h.executed.add(sql, params)
}

// ExecutedParams returns the parameter sets sql was executed with,
// or nil if it was never executed.
func (h *ParamHandler) ExecutedParams(sql string) *ParameterSets {
	return h.executed.sets[sql]
}

// ExecutedStatements returns every executed SQL string with its parameter sets.
func (h *ParamHandler) ExecutedStatements() map[string]*ParameterSets {
	result := make(map[string]*ParameterSets, len(h.executed.sets))
	for sql, sets := range h.executed.sets {
		result[sql] = sets
	}
	return result
}

// ClearExecuted forgets the executed statements.
func (h *ParamHandler) ClearExecuted() { h.executed = newExecutedStatements() }
