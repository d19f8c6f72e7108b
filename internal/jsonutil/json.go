// Package jsonutil provides a swappable JSON encoding/decoding layer and the
// canonical-rendering helper used at every tool-surface boundary.
//
// It defaults to encoding/json but can be swapped for a faster codec; both
// cmd/catalogd and cmd/catalog-mcp do this for github.com/bytedance/sonic:
//
//	jsonutil.SetConfig(jsonutil.Config{
//		Marshal:   sonic.Marshal,
//		Unmarshal: sonic.Unmarshal,
//		NewEncoder: func(w io.Writer) jsonutil.Encoder { return encoder.NewStreamEncoder(w) },
//		NewDecoder: func(r io.Reader) jsonutil.Decoder { return decoder.NewStreamDecoder(r) },
//	})
package jsonutil

import (
	stdjson "encoding/json"
	"io"
	"sort"
)

// Encoder streams JSON-encoded values to a writer.
type Encoder interface {
	Encode(v any) error
}

// Decoder streams JSON-encoded values from a reader.
type Decoder interface {
	Decode(v any) error
}

// Config holds the active JSON encode/decode functions.
type Config struct {
	Marshal    func(v any) ([]byte, error)
	Unmarshal  func(data []byte, v any) error
	NewEncoder func(w io.Writer) Encoder
	NewDecoder func(r io.Reader) Decoder
}

func defaultConfig() Config {
	return Config{
		Marshal:   stdjson.Marshal,
		Unmarshal: stdjson.Unmarshal,
		NewEncoder: func(w io.Writer) Encoder {
			return stdjson.NewEncoder(w)
		},
		NewDecoder: func(r io.Reader) Decoder {
			return stdjson.NewDecoder(r)
		},
	}
}

var config = defaultConfig()

// SetConfig installs a replacement JSON codec. Call once at process startup.
func SetConfig(c Config) { config = c }

// Marshal returns the JSON encoding of v using the active codec.
func Marshal(v any) ([]byte, error) { return config.Marshal(v) }

// Unmarshal parses JSON-encoded data into v using the active codec.
func Unmarshal(data []byte, v any) error { return config.Unmarshal(data, v) }

// NewEncoder returns a streaming encoder using the active codec.
func NewEncoder(w io.Writer) Encoder { return config.NewEncoder(w) }

// NewDecoder returns a streaming decoder using the active codec.
func NewDecoder(r io.Reader) Decoder { return config.NewDecoder(r) }

// Canonical recursively sorts map keys so that two structurally equal values
// always marshal to byte-identical JSON. Spec.md requires this at every
// rendering boundary (catalog, operation, schema, payload output).
func Canonical(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = Canonical(v[k])
		}
		return orderedMap{keys: keys, values: out}
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Canonical(item)
		}
		return out
	default:
		return v
	}
}

// orderedMap marshals its keys in a fixed order, giving Canonical() a
// byte-stable result without depending on a particular JSON encoder's map
// key ordering.
type orderedMap struct {
	keys   []string
	values map[string]any
}

func (m orderedMap) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}
