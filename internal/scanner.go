package internal

// Scanner locates prompt records inside arbitrarily nested structures by
// their content signature rather than a schema path: the producing service
// reshuffles its positional layout between revisions, but the marker token
// riding at the end of each record survives.

// Match is one signature hit. Parent is the sequence immediately enclosing
// the record, nil when the record sat at the top level; the extractor reads
// sibling cells from it.
type Match struct {
	Record []any
	Parent []any
}

// Scanner holds the signature parameters for a recovery run.
type Scanner struct {
	marker   string
	maxDepth int
}

// NewScanner creates a Scanner for the given marker token. maxDepth bounds
// the descent; parse trees are acyclic so the bound only matters for
// pathological nesting.
func NewScanner(marker string, maxDepth int) *Scanner {
	return &Scanner{marker: marker, maxDepth: maxDepth}
}

// Scan walks v depth-first and collects every sequence matching the record
// signature, wherever it is nested. Traversal order is deterministic, so
// repeated runs over the same value yield matches in the same order.
func (s *Scanner) Scan(v any) []Match {
	var matches []Match
	s.walk(v, nil, 0, &matches)
	return matches
}

func (s *Scanner) walk(v any, parent []any, depth int, out *[]Match) {
	if depth > s.maxDepth {
		Log().Debug().Int("depth", depth).Msg("scan depth limit reached")
		return
	}
	switch node := v.(type) {
	case []any:
		if s.matchesSignature(node) {
			*out = append(*out, Match{Record: node, Parent: parent})
		}
		for _, el := range node {
			s.walk(el, node, depth+1, out)
		}
	case map[string]any:
		for _, k := range sortedKeys(node) {
			s.walk(node[k], nil, depth+1, out)
		}
	}
}

// matchesSignature reports whether seq looks like a prompt record: the
// marker token as its final element, a literal true somewhere before it,
// and at least one other string to serve as the prompt.
func (s *Scanner) matchesSignature(seq []any) bool {
	if len(seq) < 3 {
		return false
	}
	last, ok := asString(seq[len(seq)-1])
	if !ok || last != s.marker {
		return false
	}
	var hasTrue, hasPrompt bool
	for _, el := range seq[:len(seq)-1] {
		if b, ok := asBool(el); ok && b {
			hasTrue = true
		}
		if str, ok := asString(el); ok && str != s.marker {
			hasPrompt = true
		}
		if hasTrue && hasPrompt {
			return true
		}
	}
	return false
}
