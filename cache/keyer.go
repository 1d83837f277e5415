package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
)

// Keyer maps cache keys to stable strings. A Loader given one through
// WithKeyer shares a load between every key that maps to the same string.
//
// Contract:
// - Determinism: equal keys must map to equal strings, regardless of map
//   iteration order.
// - Uniqueness: keys that should load different values must map to
//   different strings.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	Key(key any) (string, error)
}

// KeyerFunc adapts a function to Keyer.
type KeyerFunc func(key any) (string, error)

// Key calls f.
func (f KeyerFunc) Key(key any) (string, error) {
	return f(key)
}

// HashKeyer derives keys as <type>:<hash> where hash is the first 16 hex
// characters of SHA-256 over the canonical JSON form of the key.
//
// It only sees what encoding/json sees. Structs whose fields are unexported
// all hash alike, and complex numbers or channels fail to encode.
type HashKeyer struct{}

// NewHashKeyer creates a HashKeyer.
func NewHashKeyer() *HashKeyer {
	return &HashKeyer{}
}

// Key returns the derived string for key.
func (k *HashKeyer) Key(key any) (string, error) {
	// Strings and integers are already canonical.
	switch v := key.(type) {
	case string:
		return "string:" + v, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%T:%d", v, v), nil
	}

	canonical, err := canonicalJSON(key)
	if err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize key: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%T:%s", key, hex.EncodeToString(sum[:8])), nil
}

// canonicalJSON encodes v with object keys sorted at every level.
func canonicalJSON(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		out := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			name, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			elem, err := canonicalJSON(val[k])
			if err != nil {
				return nil, err
			}
			out = append(out, name...)
			out = append(out, ':')
			out = append(out, elem...)
		}
		return append(out, '}'), nil
	case []any:
		out := []byte{'['}
		for i, e := range val {
			if i > 0 {
				out = append(out, ',')
			}
			elem, err := canonicalJSON(e)
			if err != nil {
				return nil, err
			}
			out = append(out, elem...)
		}
		return append(out, ']'), nil
	default:
		// encoding/json sorts map keys for typed maps and keeps struct field order.
		return json.Marshal(v)
	}
}

var (
	_ Keyer = (*HashKeyer)(nil)
	_ Keyer = KeyerFunc(nil)
)
