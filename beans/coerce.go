package beans

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the primitive parameter type of a literal setter.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindChar
	KindByte
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindFloat32
	KindFloat64
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindBool:    "bool",
	KindChar:    "rune",
	KindByte:    "byte",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindInt:     "int",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

// String returns the Go type name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

var (
	errNotBool = errors.New("want true or false")
	errNotChar = errors.New("want exactly one character")
)

// Coerce converts raw into the Go value for kind:
//
//	KindInt32   -> int32    (decimal, 32-bit range)
//	KindInt64   -> int64
//	KindInt     -> int
//	KindInt16   -> int16
//	KindInt8    -> int8
//	KindByte    -> uint8    (0..255)
//	KindFloat32 -> float32
//	KindFloat64 -> float64
//	KindBool    -> bool     ("true"/"false", any case)
//	KindChar    -> rune     (exactly one valid code point)
//	KindString  -> string   (unchanged)
//
// Failures are *CoercionError; an unlisted kind wraps ErrUnsupportedKind.
func Coerce(kind Kind, raw string) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindInt32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return int32(n), nil
	case KindInt64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return n, nil
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, strconv.IntSize)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return int(n), nil
	case KindInt16:
		n, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return int16(n), nil
	case KindInt8:
		n, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return int8(n), nil
	case KindByte:
		n, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return uint8(n), nil
	case KindFloat32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return float32(f), nil
	case KindFloat64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, coercionErr(kind, raw, err)
		}
		return f, nil
	case KindBool:
		switch {
		case strings.EqualFold(raw, "true"):
			return true, nil
		case strings.EqualFold(raw, "false"):
			return false, nil
		}
		return nil, &CoercionError{Kind: kind, Raw: raw, Err: errNotBool}
	case KindChar:
		if !utf8.ValidString(raw) || utf8.RuneCountInString(raw) != 1 {
			return nil, &CoercionError{Kind: kind, Raw: raw, Err: errNotChar}
		}
		r, _ := utf8.DecodeRuneInString(raw)
		return r, nil
	default:
		return nil, &CoercionError{Kind: kind, Raw: raw, Err: ErrUnsupportedKind}
	}
}

// coercionErr unwraps *strconv.NumError so the message carries only the reason.
func coercionErr(kind Kind, raw string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &CoercionError{Kind: kind, Raw: raw, Err: err}
}
