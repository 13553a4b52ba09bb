package stmtmock

import (
	"regexp"
	"strings"

	"github.com/tidwall/match"
)

// StatementMatcher decides whether prepared SQL text matches a query
// according to a MatchConfig.
type StatementMatcher struct {
	cfg      MatchConfig
	log      Logger
	patterns map[string]*regexp.Regexp
}

// NewStatementMatcher creates a matcher for the given configuration.
func NewStatementMatcher(cfg MatchConfig) *StatementMatcher {
	return &StatementMatcher{
		cfg:      cfg,
		log:      DefaultLogger,
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Matches reports whether the prepared key matches the query.
//
// An empty key matches a non empty query only if matchKeyIfQueryEmpty is set,
// and an empty query matches a non empty key only if
// matchEmptyKeyIfQueryNotEmpty is set.
func (m *StatementMatcher) Matches(key, query string, matchKeyIfQueryEmpty, matchEmptyKeyIfQueryNotEmpty bool) bool {
	switch {
	case key == "" && query != "":
		return matchKeyIfQueryEmpty
	case query == "" && key != "":
		return matchEmptyKeyIfQueryNotEmpty
	}

	if m.cfg.UseRegularExpressions {
		return m.matchRegexp(key, query)
	}
	if m.cfg.UseWildcards {
		return m.matchWildcard(key, query)
	}
	return DoesStringMatch(key, query, m.cfg.CaseSensitive, m.cfg.ExactMatch)
}

// matchingOutcomes collects the outcomes of every matching key,
// keys in registry order and outcomes in preparation order.
func (m *StatementMatcher) matchingOutcomes(r *registry, query string, matchKeyIfQueryEmpty, matchEmptyKeyIfQueryNotEmpty bool) []*Outcome {
	var result []*Outcome
	for _, key := range r.keys {
		if m.Matches(key, query, matchKeyIfQueryEmpty, matchEmptyKeyIfQueryNotEmpty) {
			result = append(result, r.entries[key]...)
		}
	}
	return result
}

func (m *StatementMatcher) matchRegexp(pattern, query string) bool {
	expr := pattern
	if m.cfg.ExactMatch {
		expr = "^(?:" + expr + ")$"
	}
	if !m.cfg.CaseSensitive {
		expr = "(?i)" + expr
	}

	re, seen := m.patterns[expr]
	if !seen {
		var err error
		re, err = regexp.Compile(expr)
		if err != nil {
			m.log.Warningf("prepared statement %q is not a valid regular expression: %s", pattern, err)
		}
		m.patterns[expr] = re
	}
	if re == nil {
		return false
	}
	return re.MatchString(query)
}

func (m *StatementMatcher) matchWildcard(pattern, query string) bool {
	if !m.cfg.CaseSensitive {
		pattern = strings.ToLower(pattern)
		query = strings.ToLower(query)
	}
	if !m.cfg.ExactMatch {
		pattern = "*" + pattern + "*"
	}
	return match.Match(query, pattern)
}

// DoesStringMatch compares source with query. If caseSensitive is false
// the case is ignored. With exactMatch the strings must be equal,
// otherwise source has to contain query.
func DoesStringMatch(source, query string, caseSensitive, exactMatch bool) bool {
	if !caseSensitive {
		source = strings.ToLower(source)
		query = strings.ToLower(query)
	}
	if exactMatch {
		return source == query
	}
	return strings.Contains(source, query)
}
