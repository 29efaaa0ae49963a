package assemble

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jonathan/resume-processor/internal/normalize"
)

// record is a decoded resume record with its top-level key order preserved
// when the input was raw JSON.
type record struct {
	fields map[string]any
	keys   []string
}

// toRecord coerces the render input into a record. Raw JSON ([]byte,
// json.RawMessage, or a string holding JSON) is decoded with key order
// preserved; an already-decoded map is accepted with its keys sorted, since
// Go maps do not retain document order. ok is false when the value cannot be
// treated as a mapping at all; reason then names what was received.
func toRecord(v any) (rec record, ok bool, reason string) {
	switch t := v.(type) {
	case json.RawMessage:
		return decodeRecord([]byte(t))
	case []byte:
		return decodeRecord(t)
	case string:
		return decodeRecord([]byte(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return record{fields: t, keys: keys}, true, ""
	case nil:
		return record{}, false, "null"
	default:
		return record{}, false, normalize.KindName(v)
	}
}

// decodeRecord decodes a JSON object while recording the order its keys
// appear in the document. Non-object JSON (null, a bare string, an array)
// fails with the shape name rather than an error.
func decodeRecord(raw []byte) (record, bool, string) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return record{}, false, "unparseable text"
	}
	delim, isDelim := tok.(json.Delim)
	if !isDelim || delim != '{' {
		return record{}, false, tokenShape(tok)
	}

	rec := record{fields: make(map[string]any)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return record{}, false, "unparseable text"
		}
		key, isString := keyTok.(string)
		if !isString {
			return record{}, false, "unparseable text"
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return record{}, false, "unparseable text"
		}

		if _, seen := rec.fields[key]; !seen {
			rec.keys = append(rec.keys, key)
		}
		rec.fields[key] = value
	}

	return rec, true, ""
}

func tokenShape(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		if t == '[' {
			return "list"
		}
		return fmt.Sprintf("%v", t)
	default:
		return normalize.KindName(tok)
	}
}
