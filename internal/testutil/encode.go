// encode.go - Independent encoder used to build test exports
package testutil

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

const printSafeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789()"

// KV is one entry of an ordered Table.
type KV struct {
	Key   any
	Value any
}

// Table is an ordered table for Serialize. Plain maps are serialized in
// sorted key order instead.
type Table []KV

// EncodeForPrint maps bytes onto the print-safe alphabet, 3 bytes per 4 symbols.
func EncodeForPrint(data []byte) string {
	var b strings.Builder
	i := 0
	for ; i+3 <= len(data); i += 3 {
		cache := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16
		for j := 0; j < 4; j++ {
			b.WriteByte(printSafeAlphabet[cache&0x3F])
			cache >>= 6
		}
	}
	var cache uint32
	bitlen := 0
	for ; i < len(data); i++ {
		cache |= uint32(data[i]) << bitlen
		bitlen += 8
	}
	for bitlen > 0 {
		b.WriteByte(printSafeAlphabet[cache&0x3F])
		cache >>= 6
		bitlen -= 6
	}
	return b.String()
}

// Serialize renders values as a value-format document with header and terminator.
func Serialize(values ...any) (string, error) {
	var b strings.Builder
	b.WriteString("^1")
	for _, v := range values {
		if err := writeValue(&b, v); err != nil {
			return "", err
		}
	}
	b.WriteString("^^")
	return b.String(), nil
}

// MustSerialize is Serialize that panics on unsupported input.
func MustSerialize(values ...any) string {
	s, err := Serialize(values...)
	if err != nil {
		panic(err)
	}
	return s
}

func writeValue(b *strings.Builder, v any) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("^Z")
	case bool:
		if x {
			b.WriteString("^B")
		} else {
			b.WriteString("^b")
		}
	case string:
		b.WriteString("^S")
		b.WriteString(escapeString(x))
	case int:
		b.WriteString("^N")
		b.WriteString(strconv.Itoa(x))
	case float64:
		writeNumber(b, x)
	case Table:
		b.WriteString("^T")
		for _, kv := range x {
			if err := writeValue(b, kv.Key); err != nil {
				return err
			}
			if err := writeValue(b, kv.Value); err != nil {
				return err
			}
		}
		b.WriteString("^t")
	case []any:
		t := make(Table, 0, len(x))
		for i, item := range x {
			t = append(t, KV{Key: i + 1, Value: item})
		}
		return writeValue(b, t)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := make(Table, 0, len(x))
		for _, k := range keys {
			t = append(t, KV{Key: k, Value: x[k]})
		}
		return writeValue(b, t)
	case map[int]any:
		keys := make([]int, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		t := make(Table, 0, len(x))
		for _, k := range keys {
			t = append(t, KV{Key: k, Value: x[k]})
		}
		return writeValue(b, t)
	default:
		return fmt.Errorf("serialize: unsupported type %T", v)
	}
	return nil
}

// writeNumber uses N for integers and infinities and the F/f mantissa-exponent
// pair for everything else.
func writeNumber(b *strings.Builder, n float64) {
	switch {
	case math.IsInf(n, 1):
		b.WriteString("^Ninf")
	case math.IsInf(n, -1):
		b.WriteString("^N-inf")
	case n == math.Trunc(n) && math.Abs(n) < 1<<53:
		b.WriteString("^N")
		b.WriteString(strconv.FormatInt(int64(n), 10))
	default:
		m, e := math.Frexp(n)
		m *= 1 << 53
		e -= 53
		fmt.Fprintf(b, "^F%.0f^f%d", m, e)
	}
}

func escapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 0x1E:
			b.WriteString("~z")
		case c <= 0x20:
			b.WriteByte('~')
			b.WriteByte(c + 64)
		case c == '^':
			b.WriteString("~}")
		case c == '~':
			b.WriteString("~|")
		case c == 0x7F:
			b.WriteString("~{")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CompressRaw deflates data without a zlib wrapper.
func CompressRaw(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressZlib deflates data inside a zlib wrapper.
func CompressZlib(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeExport builds a complete export string: serialize, deflate, print-safe encode, "!" prefix.
func EncodeExport(v any) (string, error) {
	doc, err := Serialize(v)
	if err != nil {
		return "", err
	}
	compressed, err := CompressRaw([]byte(doc))
	if err != nil {
		return "", err
	}
	return "!" + EncodeForPrint(compressed), nil
}

// MustEncodeExport is EncodeExport that panics on failure.
func MustEncodeExport(v any) string {
	s, err := EncodeExport(v)
	if err != nil {
		panic(err)
	}
	return s
}
