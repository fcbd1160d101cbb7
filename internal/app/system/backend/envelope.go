package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// envelopeKeys are the wrapper members unwrapped around payloads, in
// priority order.
var envelopeKeys = []string{"data", "items", "results", "result", "item"}

// maxEnvelopeDepth bounds how many wrappers are peeled off.
const maxEnvelopeDepth = 3

// DecodeList decodes a collection payload. Accepted shapes:
//
//	[ {...}, ... ]
//	{"data": [ ... ]}                  (or items/results)
//	{"success": true, "data": {"bookings": [ ... ], "total": 3}}
//	{"drivers": [ ... ]}               (single array member)
//	null
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	for depth := 0; depth <= maxEnvelopeDepth; depth++ {
		switch {
		case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
			return []T{}, nil
		case raw[0] == '[':
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
			if items == nil {
				items = []T{}
			}
			return items, nil
		case raw[0] == '{':
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(raw, &obj); err != nil {
				return nil, err
			}
			next, ok := pickEnvelope(obj)
			if !ok {
				next, ok = soleArray(obj)
			}
			if !ok {
				return nil, fmt.Errorf("no list found in object with %d members", len(obj))
			}
			raw = bytes.TrimSpace(next)
		default:
			return nil, fmt.Errorf("unexpected list payload starting with %q", raw[0])
		}
	}
	return nil, fmt.Errorf("list payload nested deeper than %d envelopes", maxEnvelopeDepth)
}

// DecodeOne decodes a single-record payload, unwrapping data/item/result
// envelopes and named wrappers such as {"booking": {...}}. A named wrapper
// is only peeled when none of the object's members is a field of T and
// exactly one member holds an object.
func DecodeOne[T any](raw json.RawMessage) (T, error) {
	var zero T
	fields := jsonFields(reflect.TypeOf(zero))
	raw = bytes.TrimSpace(raw)
	for depth := 0; depth <= maxEnvelopeDepth; depth++ {
		if len(raw) == 0 || raw[0] != '{' {
			break
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return zero, err
		}
		next, ok := pickEnvelope(obj)
		if !ok && fields != nil && !hasField(obj, fields) {
			next, ok = soleObject(obj)
		}
		if !ok {
			break
		}
		next = bytes.TrimSpace(next)
		if len(next) == 0 || next[0] != '{' {
			break
		}
		raw = next
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, err
	}
	return v, nil
}

func pickEnvelope(obj map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, k := range envelopeKeys {
		if v, ok := obj[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// soleArray returns the only array-valued member of obj, if exactly one
// exists ({"bookings": [...], "count": 3}).
func soleArray(obj map[string]json.RawMessage) (json.RawMessage, bool) {
	var found json.RawMessage
	n := 0
	for _, v := range obj {
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '[' {
			found = v
			n++
		}
	}
	return found, n == 1
}

// soleObject returns the only object-valued member of obj, if exactly one
// exists ({"message": "ok", "booking": {...}}).
func soleObject(obj map[string]json.RawMessage) (json.RawMessage, bool) {
	var found json.RawMessage
	n := 0
	for _, v := range obj {
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '{' {
			found = v
			n++
		}
	}
	return found, n == 1
}

// jsonFields returns the lower-cased JSON member names of struct type t,
// or nil when t is not a struct.
func jsonFields(t reflect.Type) map[string]struct{} {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	out := map[string]struct{}{}
	collectFields(t, out)
	return out
}

func collectFields(t reflect.Type, out map[string]struct{}) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectFields(ft, out)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[strings.ToLower(name)] = struct{}{}
	}
}

// hasField reports whether any member of obj names a field of the target
// type. encoding/json matches names case-insensitively, so does this.
func hasField(obj map[string]json.RawMessage, fields map[string]struct{}) bool {
	for k := range obj {
		if _, ok := fields[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}
