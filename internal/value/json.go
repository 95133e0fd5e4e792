package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

type jsonWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

// MarshalJSON encodes v as JSON, keeping object members in insertion
// order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes JSON into v, keeping object members in document
// order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse decodes a single JSON document.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSON(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("value: trailing data after JSON document")
	}
	return v, nil
}

func readJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		n, err := ParseNumber(t.String())
		if err != nil {
			return Value{}, err
		}
		return Number(n), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var elems []Value
			for dec.More() {
				e, err := readJSON(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, e)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, arr: elems}, nil
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("value: unexpected object key %v", keyTok)
				}
				e, err := readJSON(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: e})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return ObjectOf(NewObject(members...)), nil
		}
	}
	return Value{}, fmt.Errorf("value: unexpected JSON token %v", tok)
}

func writeJSON(w jsonWriter, v Value) error {
	switch v.kind {
	case KindNull:
		_, err := w.WriteString("null")
		return err
	case KindBool:
		_, err := w.WriteString(strconv.FormatBool(v.b))
		return err
	case KindNumber:
		if math.IsInf(v.n, 0) || math.IsNaN(v.n) {
			return fmt.Errorf("value: unsupported number %v", v.n)
		}
		_, err := w.WriteString(FormatNumber(v.n))
		return err
	case KindString:
		return writeJSONString(w, v.s)
	case KindArray:
		if err := w.WriteByte('['); err != nil {
			return err
		}
		for i, e := range v.arr {
			if i > 0 {
				if err := w.WriteByte(','); err != nil {
					return err
				}
			}
			if err := writeJSON(w, e); err != nil {
				return err
			}
		}
		return w.WriteByte(']')
	case KindObject:
		if err := w.WriteByte('{'); err != nil {
			return err
		}
		first := true
		for k, e := range v.obj.All() {
			if !first {
				if err := w.WriteByte(','); err != nil {
					return err
				}
			}
			first = false
			if err := writeJSONString(w, k); err != nil {
				return err
			}
			if err := w.WriteByte(':'); err != nil {
				return err
			}
			if err := writeJSON(w, e); err != nil {
				return err
			}
		}
		return w.WriteByte('}')
	}
	return fmt.Errorf("value: unknown kind %s", v.kind)
}

func writeJSONString(w jsonWriter, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
