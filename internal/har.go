package internal

import (
	"encoding/json"
	"os"
)

// Archive is a loaded browser capture with the exchanges the pipeline
// consumes. Only the fields the recovery needs are kept; everything else in
// the HAR document is ignored.
type Archive struct {
	Path      string
	Exchanges []CapturedExchange
}

// harFile mirrors the HAR 1.2 layout down to response content.
type harFile struct {
	Log struct {
		Entries []harEntry `json:"entries"`
	} `json:"log"`
}

type harEntry struct {
	Request struct {
		URL string `json:"url"`
	} `json:"request"`
	Response struct {
		Content struct {
			MimeType string `json:"mimeType"`
			Text     string `json:"text"`
			Encoding string `json:"encoding"`
		} `json:"content"`
	} `json:"response"`
}

// LoadArchive reads a HAR capture and lifts out one CapturedExchange per
// entry. Entries without a body are kept so run statistics stay honest; the
// pipeline skips them cheaply.
func LoadArchive(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Op: "open", Err: err}
	}

	var hf harFile
	if err := json.Unmarshal(data, &hf); err != nil {
		return nil, &ArchiveError{Path: path, Op: "parse", Err: err}
	}

	exchanges := make([]CapturedExchange, 0, len(hf.Log.Entries))
	for _, e := range hf.Log.Entries {
		exchanges = append(exchanges, CapturedExchange{
			URL:      e.Request.URL,
			MimeType: e.Response.Content.MimeType,
			Encoding: e.Response.Content.Encoding,
			Body:     e.Response.Content.Text,
		})
	}

	Log().Debug().Str("path", path).Int("entries", len(exchanges)).Msg("archive loaded")
	return &Archive{Path: path, Exchanges: exchanges}, nil
}
