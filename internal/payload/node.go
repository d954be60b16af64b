// Package payload navigates decoded JSON of unknown shape.
package payload

import (
	"encoding/json"
	"math"
	"strings"
)

// Node wraps one value of a decoded JSON tree. The zero Node is "absent".
type Node struct{ v any }

func Wrap(v any) Node { return Node{v: v} }

// Parse decodes raw JSON into a Node.
func Parse(b []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return Node{}, err
	}
	return Node{v: v}, nil
}

func (n Node) Exists() bool { return n.v != nil }

func (n Node) Raw() any { return n.v }

// Get returns the child under key, or an absent Node.
func (n Node) Get(key string) Node {
	obj, ok := n.v.(map[string]any)
	if !ok {
		return Node{}
	}
	return Node{v: obj[key]}
}

// Path follows a dot separated path of object keys.
func (n Node) Path(path string) Node {
	cur := n
	for _, part := range strings.Split(path, ".") {
		cur = cur.Get(part)
		if !cur.Exists() {
			return Node{}
		}
	}
	return cur
}

// Index returns the i-th element of an array, or an absent Node.
func (n Node) Index(i int) Node {
	arr, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Node{}
	}
	return Node{v: arr[i]}
}

// Array returns the elements of an array; ok is false for non-arrays.
func (n Node) Array() ([]Node, bool) {
	arr, ok := n.v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Node, len(arr))
	for i, v := range arr {
		out[i] = Node{v: v}
	}
	return out, true
}

func (n Node) String() (string, bool) {
	s, ok := n.v.(string)
	return s, ok
}

// StringOr returns the string value or def when absent or not a string.
func (n Node) StringOr(def string) string {
	if s, ok := n.String(); ok {
		return s
	}
	return def
}

// Int returns integral numbers within the int64 range only; 2.5, 1e19
// and "2" are not ints.
func (n Node) Int() (int64, bool) {
	switch v := n.v.(type) {
	case float64:
		// -2^63 is exact in float64; 2^63 is the first value past MaxInt64.
		if v != math.Trunc(v) || v < math.MinInt64 || v >= -math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	}
	return 0, false
}

// Contains reports whether an array holds the string s.
func (n Node) Contains(s string) bool {
	items, _ := n.Array()
	for _, it := range items {
		if v, ok := it.String(); ok && v == s {
			return true
		}
	}
	return false
}
