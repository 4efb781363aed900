package internal

// Batched-RPC responses arrive as an outer sequence of chunks shaped
// [tag, id, "<json>", ...]: the payload of interest rides inside the string
// element and needs a second parse. Values without that shape are passed
// through untouched, since some relevant structures are not wrapped at all.

// UnwrapEnvelope returns the payload values hidden inside an RPC envelope,
// plus whether v looked like an envelope in the first place. Chunks whose
// inner string does not parse are skipped individually.
func UnwrapEnvelope(v any, tag string) ([]any, bool) {
	outer, ok := asSequence(v)
	if !ok || len(outer) == 0 {
		return []any{v}, false
	}
	first, ok := asSequence(outer[0])
	if !ok || !envelopeChunk(first, tag) {
		return []any{v}, false
	}

	var payloads []any
	for _, el := range outer {
		chunk, ok := asSequence(el)
		if !ok || !envelopeChunk(chunk, tag) {
			continue
		}
		inner, _ := asString(chunk[2])
		payload, err := parseValue(inner)
		if err != nil {
			Log().Debug().Str("tag", tag).Err(err).Msg("skipping envelope chunk")
			continue
		}
		payloads = append(payloads, payload)
	}
	return payloads, true
}

// envelopeChunk reports whether seq is [tag, <id>, "<string>", ...].
func envelopeChunk(seq []any, tag string) bool {
	if len(seq) < 3 {
		return false
	}
	t, ok := asString(seq[0])
	if !ok || t != tag {
		return false
	}
	_, ok = asString(seq[2])
	return ok
}
