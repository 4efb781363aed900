package internal

import (
	"strings"
	"testing"
)

func TestExtractScriptPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "single json script",
			body: `<html><body><script type="application/json">[1,2,3]</script></body></html>`,
			want: []string{"[1,2,3]"},
		},
		{
			name: "multiple json scripts in document order",
			body: `<html><head><script type="application/json">["head"]</script></head>` +
				`<body><script type="application/json">["body"]</script></body></html>`,
			want: []string{`["head"]`, `["body"]`},
		},
		{
			name: "javascript blocks are ignored",
			body: `<html><body><script type="text/javascript">var x = [1];</script>` +
				`<script>init();</script></body></html>`,
			want: nil,
		},
		{
			name: "type attribute is case insensitive",
			body: `<html><body><script type="Application/JSON">[7]</script></body></html>`,
			want: []string{"[7]"},
		},
		{
			name: "empty json script is skipped",
			body: `<html><body><script type="application/json">   </script></body></html>`,
			want: nil,
		},
		{
			name: "no scripts at all",
			body: `<html><body><p>hello</p></body></html>`,
			want: nil,
		},
		{
			name: "fragment without html skeleton",
			body: `<script type="application/json">{"a":1}</script>`,
			want: []string{`{"a":1}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractScriptPayloads(tt.body)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractScriptPayloads() returned %d payloads, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractScriptPayloads()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractScriptPayloadsGuardedContent(t *testing.T) {
	// Inlined payloads keep their XSSI guard; the normalizer strips it
	// downstream, the scanner must hand it over untouched.
	body := `<html><body><script type="application/json">)]}'
[[1]]</script></body></html>`

	got := ExtractScriptPayloads(body)
	if len(got) != 1 {
		t.Fatalf("ExtractScriptPayloads() returned %d payloads, want 1", len(got))
	}
	if !strings.HasPrefix(got[0], ")]}'") {
		t.Errorf("ExtractScriptPayloads() = %q, want guard preserved", got[0])
	}

	n := NewNormalizer(")]}'")
	values := n.SplitValues(got[0])
	if len(values) != 1 {
		t.Errorf("SplitValues() on script payload returned %d values, want 1", len(values))
	}
}
