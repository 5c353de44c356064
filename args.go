package cogcmp

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Args is an ordered mapping from argument name to tagged value. Encounter
// order is preserved through classification and onto the wire; setting an
// existing name updates the value in place without reordering.
type Args struct {
	names  []string
	values map[string]Value
}

// NewArgs returns an empty argument mapping.
func NewArgs() *Args {
	return &Args{values: make(map[string]Value)}
}

// Set adds or replaces an argument and returns the receiver for chaining.
func (a *Args) Set(name string, v Value) *Args {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
	return a
}

// Get returns the value for name.
func (a *Args) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Len returns the number of arguments.
func (a *Args) Len() int {
	return len(a.names)
}

// Names returns the argument names in encounter order.
func (a *Args) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// clone copies the mapping so framework-reserved keys can be merged in
// without mutating the caller's Args.
func (a *Args) clone() *Args {
	c := NewArgs()
	for _, name := range a.names {
		c.Set(name, a.values[name])
	}
	return c
}

// SpecialArg is one out-of-band argument record: a binary blob or an
// encoded columnar table, tagged with the originating argument name.
// Records keep the order in which their arguments were encountered.
type SpecialArg struct {
	Key     string `json:"key"`
	Kind    string `json:"kind"` // "bytes" or "table"
	Payload []byte `json:"payload"`
}

// classified is the result of partitioning a call's arguments.
type classified struct {
	jsonNames []string
	jsonVals  map[string]any
	special   []SpecialArg
}

// classify partitions arguments into JSON args and special-arg records,
// in encounter order. Bytes-like is checked before table-like; everything
// else falls through to JSON verbatim. Classification itself is pure —
// the only failure modes are table encoding (EncodingError) and a table
// argument arriving with no codec installed (MissingDependencyError).
func classify(args *Args, codec TableCodec) (*classified, error) {
	c := &classified{jsonVals: make(map[string]any, args.Len())}
	for _, name := range args.names {
		v := args.values[name]
		switch {
		case v.IsBytesLike():
			c.special = append(c.special, SpecialArg{
				Key:     name,
				Kind:    "bytes",
				Payload: v.BytesValue(),
			})
		case v.IsTableLike():
			if codec == nil {
				return nil, fmt.Errorf(
					"%w: argument %q is tabular but the context has no table codec; "+
						"construct the context with a codec (the default context wires tabular.Codec)",
					ErrMissingDependency, name)
			}
			buf, err := codec.Encode(v.TableValue())
			if err != nil {
				return nil, wrapTabularError(err)
			}
			c.special = append(c.special, SpecialArg{
				Key:     name,
				Kind:    "table",
				Payload: buf,
			})
		default:
			c.jsonNames = append(c.jsonNames, name)
			c.jsonVals[name] = v.JSONValue()
		}
	}
	return c, nil
}

// serializeJSONArgs renders the JSON args as a single JSON object string,
// preserving encounter order. The string is both the wire payload the
// frontend decodes and an input to full-fingerprint identity, so it must be
// deterministic for identical input.
func serializeJSONArgs(c *classified) (string, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range c.jsonNames {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return "", fmt.Errorf("%w: argument name %q: %w", ErrEncoding, name, err)
		}
		val, err := json.Marshal(c.jsonVals[name])
		if err != nil {
			return "", fmt.Errorf("%w: could not convert argument %q to JSON: %w", ErrEncoding, name, err)
		}
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
	}
	sb.WriteByte('}')
	return sb.String(), nil
}
