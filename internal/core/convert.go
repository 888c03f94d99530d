package core

import (
	"encoding"
	"strconv"
	"time"
	"unicode/utf8"
)

// Converter turns a borrowed token value into a typed value.
// Errors are returned to the caller of the parser unchanged.
type Converter interface {
	Convert(text string) (any, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(text string) (any, error)

// Convert calls f.
func (f ConverterFunc) Convert(text string) (any, error) {
	return f(text)
}

// Bool converts "true"/"false" and the other forms strconv.ParseBool accepts.
func Bool() Converter {
	return ConverterFunc(func(text string) (any, error) {
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, &ValueError{Value: text, Expected: "bool", Err: err}
		}

		return v, nil
	})
}

// Character is the value produced by Char.
type Character rune

func (c Character) String() string {
	return string(c)
}

// Char converts text holding exactly one character to a Character.
func Char() Converter {
	return ConverterFunc(func(text string) (any, error) {
		r, size := utf8.DecodeRuneInString(text)
		if size == 0 || size != len(text) || (r == utf8.RuneError && size == 1) {
			return nil, &ValueError{Value: text, Expected: "a single character"}
		}

		return Character(r), nil
	})
}

// ConverterFor returns the built-in converter for a type name such as "u16", "i64",
// "f32", "string", "bool", "char" or "duration".
func ConverterFor(typeName string) (Converter, bool) {
	conv, ok := builtinConverters()[typeName]

	return conv, ok
}

// Duration converts Go duration syntax ("30s", "5m").
func Duration() Converter {
	return ConverterFunc(func(text string) (any, error) {
		d, err := time.ParseDuration(text)
		if err != nil {
			return nil, &ValueError{Value: text, Expected: "duration", Err: err}
		}

		return d, nil
	})
}

// Float converts decimal text to float32 (bits 32) or float64.
func Float(bits int) Converter {
	if bits != bits32 {
		bits = bits64
	}

	return ConverterFunc(func(text string) (any, error) {
		v, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return nil, &ValueError{Value: text, Expected: "f" + strconv.Itoa(bits), Err: err}
		}

		if bits == bits32 {
			return float32(v), nil
		}

		return v, nil
	})
}

// Int converts base-10 text to a signed integer. bits selects the Go type: 8, 16, 32
// and 64 produce int8..int64, 0 produces int.
func Int(bits int) Converter {
	expected := intTypeName("i", bits)

	return ConverterFunc(func(text string) (any, error) {
		v, err := strconv.ParseInt(text, 10, bitSize(bits))
		if err != nil {
			return nil, &ValueError{Value: text, Expected: expected, Err: err}
		}

		switch bits {
		case bits8:
			return int8(v), nil
		case bits16:
			return int16(v), nil
		case bits32:
			return int32(v), nil
		case bits64:
			return v, nil
		default:
			return int(v), nil
		}
	})
}

// String returns the token text as is.
func String() Converter {
	return ConverterFunc(func(text string) (any, error) {
		return text, nil
	})
}

// Text converts through the UnmarshalText method of *T and yields a T.
func Text[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}]() Converter {
	return ConverterFunc(func(text string) (any, error) {
		var v T

		err := PT(&v).UnmarshalText([]byte(text))
		if err != nil {
			return nil, err
		}

		return v, nil
	})
}

// Uint converts base-10 text to an unsigned integer, with the same bits convention as Int.
func Uint(bits int) Converter {
	expected := intTypeName("u", bits)

	return ConverterFunc(func(text string) (any, error) {
		v, err := strconv.ParseUint(text, 10, bitSize(bits))
		if err != nil {
			return nil, &ValueError{Value: text, Expected: expected, Err: err}
		}

		switch bits {
		case bits8:
			return uint8(v), nil
		case bits16:
			return uint16(v), nil
		case bits32:
			return uint32(v), nil
		case bits64:
			return v, nil
		default:
			return uint(v), nil
		}
	})
}

// unexported constants.
const (
	bits8  = 8
	bits16 = 16
	bits32 = 32
	bits64 = 64
)

func bitSize(bits int) int {
	switch bits {
	case bits8, bits16, bits32, bits64:
		return bits
	default:
		return strconv.IntSize
	}
}

func builtinConverters() map[string]Converter {
	return map[string]Converter{
		"string":   String(),
		"str":      String(),
		"bool":     Bool(),
		"char":     Char(),
		"duration": Duration(),
		"int":      Int(0),
		"i8":       Int(bits8),
		"i16":      Int(bits16),
		"i32":      Int(bits32),
		"i64":      Int(bits64),
		"uint":     Uint(0),
		"u8":       Uint(bits8),
		"u16":      Uint(bits16),
		"u32":      Uint(bits32),
		"u64":      Uint(bits64),
		"float":    Float(bits64),
		"f32":      Float(bits32),
		"f64":      Float(bits64),
	}
}

func intTypeName(prefix string, bits int) string {
	switch bits {
	case bits8, bits16, bits32, bits64:
		return prefix + strconv.Itoa(bits)
	default:
		if prefix == "u" {
			return "uint"
		}

		return "int"
	}
}
