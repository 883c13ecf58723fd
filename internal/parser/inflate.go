package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/mdt-route/backend/internal/models"
	"golang.org/x/text/encoding/charmap"
)

// DefaultMaxInflatedBytes caps the decompressed payload size.
const DefaultMaxInflatedBytes int64 = 16 << 20

var errInflateLimit = errors.New("decompressed payload exceeds limit")

// Inflate decompresses a DEFLATE stream and returns it as text.
// Both zlib-wrapped and raw DEFLATE streams are accepted: zlib is tried
// when the header checks out, raw DEFLATE otherwise or if zlib fails.
// Payloads that are not valid UTF-8 are read as Latin-1.
func Inflate(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", models.NewDecodeError(models.KindDecompressFailed, "no compressed data")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxInflatedBytes
	}

	var (
		raw []byte
		err error
	)
	if hasZlibHeader(data) {
		raw, err = inflateZlib(data, maxBytes)
		if err != nil && !errors.Is(err, errInflateLimit) {
			raw, err = inflateRaw(data, maxBytes)
		}
	} else {
		raw, err = inflateRaw(data, maxBytes)
	}
	if err != nil {
		return "", models.WrapDecodeError(models.KindDecompressFailed, err, "failed to decompress payload")
	}

	return decodeText(raw)
}

// hasZlibHeader checks the RFC 1950 CMF/FLG pair.
func hasZlibHeader(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	cmf, flg := data[0], data[1]
	return cmf&0x0F == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

func inflateZlib(data []byte, maxBytes int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return readLimited(zr, maxBytes)
}

func inflateRaw(data []byte, maxBytes int64) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	return readLimited(fr, maxBytes)
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", errInflateLimit, maxBytes)
	}
	return out, nil
}

func decodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", models.WrapDecodeError(models.KindDecompressFailed, err, "payload is neither UTF-8 nor Latin-1")
	}
	return string(text), nil
}
