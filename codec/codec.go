// Package codec converts encoded fields between the flat JSON text the API
// stores and the lists and maps the rest of the code works with.
//
// Decoding never fails: malformed text decodes to an empty list or map.
// Encoding always yields valid JSON text.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const (
	EmptyList = "[]"
	EmptyMap  = "{}"
)

var errNotString = errors.New("codec: value is not a string")

// DecodeList parses a JSON array of strings.
func DecodeList(s string) []string {
	out, err := decodeList(s)
	if err != nil {
		return []string{}
	}
	return out
}

// EncodeList marshals items as they are. A nil slice encodes as [].
func EncodeList(items []string) string {
	if items == nil {
		return EmptyList
	}
	return marshal(items)
}

// Compact drops blank and whitespace-only entries, the way the edit forms
// discard rows left empty.
func Compact(items []string) []string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// EditableList decodes s for an edit form. An empty list comes back as a
// single blank row so there is always one input to type into.
func EditableList(s string) []string {
	items := DecodeList(s)
	if len(items) == 0 {
		return []string{""}
	}
	return items
}

// ValidList reports whether s is a JSON array of strings.
func ValidList(s string) bool {
	_, err := decodeList(s)
	return err == nil
}

// decodeList rejects null entries, which encoding/json would otherwise turn
// into empty strings.
func decodeList(s string) ([]string, error) {
	var raw []*string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errNotString
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		if item == nil {
			return nil, errNotString
		}
		out[i] = *item
	}
	return out, nil
}

// DecodeMap parses a JSON object with string values.
func DecodeMap(s string) map[string]string {
	pairs, err := decodePairs(s)
	if err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		out[pair.Key] = pair.Value
	}
	return out
}

// EncodeMap marshals m, dropping entries with an empty key or value.
func EncodeMap(m map[string]string) string {
	kept := make(map[string]string, len(m))
	for k, v := range m {
		if k == "" || v == "" {
			continue
		}
		kept[k] = v
	}
	return marshal(kept)
}

// ValidMap reports whether s is a JSON object with string values.
func ValidMap(s string) bool {
	_, err := decodePairs(s)
	return err == nil
}

// Pair is one specification row as entered in a form.
type Pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Pairs keeps specification rows in the order the user entered them.
type Pairs []Pair

// DecodePairs reads a JSON object into pairs in document order.
func DecodePairs(s string) Pairs {
	pairs, err := decodePairs(s)
	if err != nil {
		return Pairs{}
	}
	return pairs
}

// Map flattens the pairs. Rows with an empty key or value are skipped and a
// repeated key keeps the last value.
func (p Pairs) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, pair := range p {
		if pair.Key == "" || pair.Value == "" {
			continue
		}
		m[pair.Key] = pair.Value
	}
	return m
}

// EncodePairs flattens the pairs like Map and writes them as a JSON object.
// Keys appear in the position of their first occurrence.
func EncodePairs(p Pairs) string {
	var order []string
	values := make(map[string]string, len(p))
	for _, pair := range p {
		if pair.Key == "" || pair.Value == "" {
			continue
		}
		if _, seen := values[pair.Key]; !seen {
			order = append(order, pair.Key)
		}
		values[pair.Key] = pair.Value
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(marshal(key))
		buf.WriteByte(':')
		buf.WriteString(marshal(values[key]))
	}
	buf.WriteByte('}')
	return buf.String()
}

var errNotObject = errors.New("codec: not a JSON object")

func decodePairs(s string) (Pairs, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	pairs := Pairs{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		var value *string
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errNotString
		}
		pairs = append(pairs, Pair{Key: key, Value: *value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errNotObject
	}
	return pairs, nil
}

// marshal encodes v without HTML escaping so stored text matches what a
// browser's JSON.stringify would have produced.
func marshal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return EmptyList
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
