package internal

// Plausible epoch-microsecond window, used to validate timestamp cells and
// to recognize one when the documented offset has drifted.
const (
	minEpochMicros = int64(100_000_000_000_000)     // 1973-03-03
	maxEpochMicros = int64(100_000_000_000_000_000) // 5138-11-16
)

// RenderFunc turns a raw response fragment into display text.
type RenderFunc func(string) string

// Extractor pulls the record fields out of a signature match. The prompt
// lives inside the matched sequence; timestamp and response are sibling
// cells of the enclosing sequence, addressed by configured offsets.
type Extractor struct {
	marker         string
	timestampIndex int
	responseIndex  int
	render         RenderFunc
}

// NewExtractor creates an Extractor. render may be nil, in which case
// response fragments pass through unrendered.
func NewExtractor(marker string, timestampIndex, responseIndex int, render RenderFunc) *Extractor {
	if render == nil {
		render = func(s string) string { return s }
	}
	return &Extractor{
		marker:         marker,
		timestampIndex: timestampIndex,
		responseIndex:  responseIndex,
		render:         render,
	}
}

// Extract builds a RawRecord from one scanner match. The prompt is
// required; timestamp and response are best-effort and a record missing
// them is still returned.
func (e *Extractor) Extract(m Match, sourceURL string) (RawRecord, bool) {
	prompt, ok := e.promptText(m.Record)
	if !ok {
		return RawRecord{}, false
	}
	rec := RawRecord{Prompt: prompt, SourceURL: sourceURL}
	if ts, ok := e.timestamp(m.Parent); ok {
		rec.TimestampMicros = ts
	}
	if frag, ok := e.responseFragment(m.Parent); ok {
		rec.Response = e.render(frag)
	}
	return rec, true
}

// promptText finds the prompt inside the record: the string immediately
// before the literal true, falling back to the first non-marker string when
// the layout has shifted.
func (e *Extractor) promptText(record []any) (string, bool) {
	for i, el := range record {
		b, ok := asBool(el)
		if !ok || !b || i == 0 {
			continue
		}
		if s, ok := asString(record[i-1]); ok && s != e.marker {
			return s, true
		}
	}
	for _, el := range record[:len(record)-1] {
		if s, ok := asString(el); ok && s != e.marker {
			return s, true
		}
	}
	return "", false
}

// timestamp reads the timestamp cell from the enclosing sequence. When the
// documented offset does not hold an epoch-plausible integer, the whole
// sequence is scanned for one; failing that the record goes out without a
// timestamp rather than being dropped.
func (e *Extractor) timestamp(parent []any) (int64, bool) {
	if parent == nil {
		return 0, false
	}
	if e.timestampIndex < len(parent) {
		if us, ok := asMicros(parent[e.timestampIndex]); ok && plausibleMicros(us) {
			return us, true
		}
	}
	for _, el := range parent {
		if us, ok := asMicros(el); ok && plausibleMicros(us) {
			return us, true
		}
	}
	return 0, false
}

// responseFragment reads the response cell and drills down to its innermost
// string payload.
func (e *Extractor) responseFragment(parent []any) (string, bool) {
	if parent == nil || e.responseIndex >= len(parent) {
		return "", false
	}
	return firstString(parent[e.responseIndex])
}

func plausibleMicros(us int64) bool {
	return us >= minEpochMicros && us < maxEpochMicros
}
