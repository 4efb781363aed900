package internal

import "testing"

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantPayloads int
		wantWrapped  bool
	}{
		{
			name:         "single chunk",
			input:        `[["wrb.fr","rpc1","[\"inner\"]"]]`,
			wantPayloads: 1,
			wantWrapped:  true,
		},
		{
			name:         "two chunks",
			input:        `[["wrb.fr","rpc1","[1]"],["wrb.fr","rpc2","[2]"]]`,
			wantPayloads: 2,
			wantWrapped:  true,
		},
		{
			name:         "chunk with trailing metadata elements",
			input:        `[["wrb.fr","rpc1","[1]",null,null,"generic"]]`,
			wantPayloads: 1,
			wantWrapped:  true,
		},
		{
			name:         "malformed inner json skipped",
			input:        `[["wrb.fr","rpc1","{broken"],["wrb.fr","rpc2","[2]"]]`,
			wantPayloads: 1,
			wantWrapped:  true,
		},
		{
			name:         "mixed tags keep only matching chunks",
			input:        `[["wrb.fr","rpc1","[1]"],["di",42]]`,
			wantPayloads: 1,
			wantWrapped:  true,
		},
		{
			name:         "plain array is passed through",
			input:        `[1,2,3]`,
			wantPayloads: 1,
			wantWrapped:  false,
		},
		{
			name:         "object is passed through",
			input:        `{"a":1}`,
			wantPayloads: 1,
			wantWrapped:  false,
		},
		{
			name:         "inner payload not a string is not an envelope",
			input:        `[["wrb.fr","rpc1",[1,2]]]`,
			wantPayloads: 1,
			wantWrapped:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseValue(tt.input)
			if err != nil {
				t.Fatalf("parseValue(%q) error = %v", tt.input, err)
			}
			payloads, wrapped := UnwrapEnvelope(v, "wrb.fr")
			if wrapped != tt.wantWrapped {
				t.Errorf("UnwrapEnvelope() wrapped = %v, want %v", wrapped, tt.wantWrapped)
			}
			if len(payloads) != tt.wantPayloads {
				t.Errorf("UnwrapEnvelope() returned %d payloads, want %d", len(payloads), tt.wantPayloads)
			}
		})
	}
}

func TestUnwrapEnvelopeDoubleParse(t *testing.T) {
	// The chunk payload is a JSON string that itself contains JSON.
	// Unwrapping must parse it again so the structure is walkable.
	input := `[["wrb.fr","rpc1","[[null,\"hello\",true]]"]]`
	v, err := parseValue(input)
	if err != nil {
		t.Fatalf("parseValue() error = %v", err)
	}

	payloads, wrapped := UnwrapEnvelope(v, "wrb.fr")
	if !wrapped {
		t.Fatal("UnwrapEnvelope() wrapped = false, want true")
	}
	if len(payloads) != 1 {
		t.Fatalf("UnwrapEnvelope() returned %d payloads, want 1", len(payloads))
	}

	outer, ok := asSequence(payloads[0])
	if !ok {
		t.Fatalf("payload is %T, want []any", payloads[0])
	}
	inner, ok := asSequence(outer[0])
	if !ok {
		t.Fatalf("payload[0] is %T, want []any", outer[0])
	}
	if s, ok := asString(inner[1]); !ok || s != "hello" {
		t.Errorf("payload[0][1] = %v, want \"hello\"", inner[1])
	}
}

func TestUnwrapEnvelopeNonSequence(t *testing.T) {
	payloads, wrapped := UnwrapEnvelope("just a string", "wrb.fr")
	if wrapped {
		t.Error("UnwrapEnvelope() wrapped = true for scalar, want false")
	}
	if len(payloads) != 1 {
		t.Errorf("UnwrapEnvelope() returned %d payloads, want 1", len(payloads))
	}
}
