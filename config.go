package stmtmock

// MatchConfig controls how statements and parameters are matched
// against prepared expectations. The zero value is not the default,
// use DefaultMatchConfig.
type MatchConfig struct {
	// CaseSensitive compares SQL text with case. Defaults to true.
	CaseSensitive bool
	// ExactMatch requires the SQL text to equal the prepared one.
	// When false the query only has to be a substring of it.
	ExactMatch bool
	// UseRegularExpressions treats prepared SQL as a regular expression
	// which is tested against the query.
	UseRegularExpressions bool
	// UseWildcards treats prepared SQL as a glob pattern with
	// '*' and '?' wildcards. Ignored when UseRegularExpressions is set.
	UseWildcards bool
	// ExactMatchParameter requires actual parameters to equal the prepared
	// ones. When false actual parameters may be a superset.
	ExactMatchParameter bool
}

// DefaultMatchConfig returns case sensitive substring matching
// with subset parameter matching.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{CaseSensitive: true}
}
