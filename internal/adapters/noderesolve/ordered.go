package noderesolve

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"go.trai.ch/zerr"
)

// valueKind is the JSON kind of a node in an exports or imports map.
type valueKind int

const (
	kindNull valueKind = iota
	kindString
	kindArray
	kindObject
	kindOther
)

// member is one key of a JSON object, in declaration order.
type member struct {
	key   string
	value *value
}

// value is a JSON tree that keeps object keys in declaration order, which
// encoding/json maps do not. Condition matching depends on that order.
type value struct {
	kind    valueKind
	str     string
	items   []*value
	members []member
}

// parseOrdered decodes raw into an order-preserving tree.
func parseOrdered(raw json.RawMessage) (*value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, zerr.New("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return &value{kind: kindNull}, nil
	case string:
		return &value{kind: kindString, str: t}, nil
	case json.Delim:
		switch t {
		case '[':
			v := &value{kind: kindArray}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				v.items = append(v.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return v, nil
		case '{':
			v := &value{kind: kindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, zerr.New("object key is not a string")
				}
				child, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				v.members = append(v.members, member{key: key, value: child})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return v, nil
		default:
			return nil, zerr.With(zerr.New("unexpected delimiter"), "delim", t.String())
		}
	default:
		return &value{kind: kindOther}, nil
	}
}

// get returns the member named key.
func (v *value) get(key string) (*value, bool) {
	for _, m := range v.members {
		if m.key == key {
			return m.value, true
		}
	}
	return nil, false
}
