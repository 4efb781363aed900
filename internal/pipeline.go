package internal

import "strings"

// Pipeline wires the recovery stages together: normalize, unwrap, scan,
// extract, deduplicate, cluster. Stages are stateless; the pipeline owns
// the accumulating collections, and exchanges are processed one at a time
// so only a single parsed tree is live at once.
type Pipeline struct {
	cfg        Config
	normalizer *Normalizer
	scanner    *Scanner
	extractor  *Extractor
	dedup      *Deduplicator
	clusterer  *Clusterer
}

// NewPipeline builds a Pipeline from the given configuration.
func NewPipeline(cfg Config) *Pipeline {
	renderer := NewRenderer()
	return &Pipeline{
		cfg:        cfg,
		normalizer: NewNormalizer(cfg.GuardPrefix),
		scanner:    NewScanner(cfg.Marker, cfg.MaxScanDepth),
		extractor:  NewExtractor(cfg.Marker, cfg.TimestampIndex, cfg.ResponseIndex, renderer.Render),
		dedup:      NewDeduplicator(),
		clusterer:  NewClusterer(cfg.SessionGap()),
	}
}

// Result carries everything one run recovered.
type Result struct {
	Sessions    []*Session        // chronological clustered sessions
	Unclustered []RawRecord       // unique records without a timestamp
	Records     []RawRecord       // all unique records, canonical order
	Reports     []IntegrityReport // per-exchange count comparisons
	Stats       Stats
}

// Run processes every exchange in the archive. Failures stay contained to
// the exchange, value or chunk they occur in; the run itself never aborts.
func (p *Pipeline) Run(archive *Archive) *Result {
	res := &Result{}
	var collected []RawRecord

	for i, ex := range archive.Exchanges {
		res.Stats.Exchanges++
		records, report := p.processExchange(ex, &res.Stats)
		collected = append(collected, records...)
		if report != nil {
			res.Reports = append(res.Reports, *report)
			if !report.Match {
				res.Stats.Mismatches++
			}
		}
		if (i+1)%100 == 0 {
			Log().Debug().
				Int("processed", i+1).
				Int("total", len(archive.Exchanges)).
				Int("records", len(collected)).
				Msg("recovery progress")
		}
	}

	res.Stats.Extracted = len(collected)
	res.Records = p.dedup.Deduplicate(collected)
	res.Stats.Duplicates = res.Stats.Extracted - len(res.Records)

	res.Sessions, res.Unclustered = p.clusterer.Cluster(res.Records)
	res.Stats.NoTimestamp = len(res.Unclustered)

	Log().Debug().
		Int("records", len(res.Records)).
		Int("sessions", len(res.Sessions)).
		Int("unclustered", len(res.Unclustered)).
		Msg("recovery finished")
	return res
}

// processExchange runs one exchange through normalize, unwrap, scan and
// extract. It returns the records found plus an integrity report when the
// exchange declared a count or yielded records.
func (p *Pipeline) processExchange(ex CapturedExchange, stats *Stats) ([]RawRecord, *IntegrityReport) {
	if strings.TrimSpace(ex.Body) == "" {
		return nil, nil
	}
	if !p.cfg.MatchesURL(ex.URL) {
		return nil, nil
	}

	body, err := p.normalizer.DecodeBody(ex)
	if err != nil {
		stats.DecodeFailures++
		Log().Warn().Str("url", ex.URL).Err(err).Msg("skipping exchange, body would not decode")
		return nil, nil
	}

	var values []any
	if isHTML(ex.MimeType) {
		for _, script := range ExtractScriptPayloads(body) {
			values = append(values, p.normalizer.SplitValues(script)...)
		}
	} else {
		values = p.normalizer.SplitValues(body)
	}
	stats.Values += len(values)

	var records []RawRecord
	var expected *int64
	for _, v := range values {
		payloads, wasEnvelope := UnwrapEnvelope(v, p.cfg.EnvelopeTag)
		if wasEnvelope {
			stats.Envelopes++
		}
		for _, payload := range payloads {
			if expected == nil {
				if c, ok := DeclaredCount(payload); ok {
					expected = &c
				}
			}
			for _, m := range p.scanner.Scan(payload) {
				stats.Matches++
				rec, ok := p.extractor.Extract(m, ex.URL)
				if !ok {
					continue
				}
				records = append(records, rec)
			}
		}
	}

	if expected == nil && len(records) == 0 {
		return nil, nil
	}
	rep := CheckIntegrity(ex.URL, expected, len(records))
	return records, &rep
}

// TriageEntry summarizes what one exchange contributes, for diagnostics.
type TriageEntry struct {
	URL       string
	MimeType  string
	Encoding  string
	BodyBytes int
	Values    int
	Records   int
}

// Triage runs every exchange through the extraction stages individually and
// reports what each one yielded. Used by the inspect command to show which
// URLs actually carry records.
func (p *Pipeline) Triage(archive *Archive) []TriageEntry {
	entries := make([]TriageEntry, 0, len(archive.Exchanges))
	for _, ex := range archive.Exchanges {
		var st Stats
		records, _ := p.processExchange(ex, &st)
		entries = append(entries, TriageEntry{
			URL:       ex.URL,
			MimeType:  ex.MimeType,
			Encoding:  ex.Encoding,
			BodyBytes: len(ex.Body),
			Values:    st.Values,
			Records:   len(records),
		})
	}
	return entries
}

func isHTML(mimeType string) bool {
	return strings.Contains(strings.ToLower(mimeType), "html")
}
