package internal

import "fmt"

// ArchiveError represents errors accessing or parsing the capture archive
type ArchiveError struct {
	Path string
	Op   string // "open", "read", "parse"
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// DecodeError represents errors decoding a single exchange body. Always
// contained: the exchange is skipped and the run continues.
type DecodeError struct {
	URL   string
	Stage string // "base64", "json"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s] %s: %v", e.Stage, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ExportError represents errors writing recovered artifacts
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
