package core

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"
)

// Exported variables.
var (
	ErrBindTarget = errors.New("bind target must be a non-nil pointer to a struct")
	ErrBindType   = errors.New("value type does not match field")
)

// Bind copies a parsed value into the struct pointed to by dst.
//
// Struct fields are matched by the `cli` tag name, or the kebab-case form of the Go
// field name when untagged. `cli:"-"` skips a field, `cli:",command"` receives the
// dispatch name, and `cli:",sub"` receives the subcommand (struct or pointer to struct).
// Fields without a value are left untouched.
func Bind(v *Value, dst any) error {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() || target.Elem().Kind() != reflect.Struct {
		return ErrBindTarget
	}

	return bindStruct(v, target.Elem())
}

type bindTag struct {
	name    string
	skip    bool
	sub     bool
	command bool
}

func assignValue(fieldVal reflect.Value, val any, name string) error {
	src := reflect.ValueOf(val)
	if !src.IsValid() {
		return nil
	}

	if fieldVal.Kind() == reflect.Pointer && !src.Type().AssignableTo(fieldVal.Type()) {
		elem := reflect.New(fieldVal.Type().Elem())

		err := assignValue(elem.Elem(), val, name)
		if err != nil {
			return err
		}

		fieldVal.Set(elem)

		return nil
	}

	switch {
	case src.Type().AssignableTo(fieldVal.Type()):
		fieldVal.Set(src)
	case src.Type().ConvertibleTo(fieldVal.Type()) && sameKindFamily(src.Kind(), fieldVal.Kind()):
		if !fits(src, fieldVal) {
			return fmt.Errorf("%w: %s: %v does not fit in %s", ErrBindType, name, val, fieldVal.Type())
		}

		fieldVal.Set(src.Convert(fieldVal.Type()))
	default:
		return fmt.Errorf("%w: %s: cannot assign %s to %s", ErrBindType, name, src.Type(), fieldVal.Type())
	}

	return nil
}

func bindStruct(v *Value, target reflect.Value) error {
	typ := target.Type()

	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := parseBindTag(field)

		err := bindField(v, tag, target.Field(i))
		if err != nil {
			return err
		}
	}

	return nil
}

func bindField(v *Value, tag bindTag, fieldVal reflect.Value) error {
	switch {
	case tag.skip:
		return nil
	case tag.command:
		return assignValue(fieldVal, v.Command, tag.name)
	case tag.sub:
		return bindSub(v.Sub, fieldVal)
	}

	val, set := v.Get(tag.name)
	if !set {
		return nil
	}

	return assignValue(fieldVal, val, tag.name)
}

func bindSub(sub *Value, fieldVal reflect.Value) error {
	if sub == nil {
		return nil
	}

	switch {
	case fieldVal.Kind() == reflect.Struct:
		return bindStruct(sub, fieldVal)
	case fieldVal.Kind() == reflect.Pointer && fieldVal.Type().Elem().Kind() == reflect.Struct:
		elem := reflect.New(fieldVal.Type().Elem())

		err := bindStruct(sub, elem.Elem())
		if err != nil {
			return err
		}

		fieldVal.Set(elem)

		return nil
	default:
		return fmt.Errorf("%w: subcommand field must be a struct, got %s", ErrBindType, fieldVal.Type())
	}
}

// camelToKebab converts PascalCase or camelCase to kebab-case, keeping acronyms
// together (APIServer -> api-server).
func camelToKebab(s string) string {
	var result strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || (i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteRune('-')
			}
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

func parseBindTag(field reflect.StructField) bindTag {
	raw, ok := field.Tag.Lookup("cli")
	if !ok {
		return bindTag{name: camelToKebab(field.Name)}
	}

	if raw == "-" {
		return bindTag{skip: true}
	}

	name, opts, _ := strings.Cut(raw, ",")
	if name == "" {
		name = camelToKebab(field.Name)
	}

	tag := bindTag{name: name}

	for opt := range strings.SplitSeq(opts, ",") {
		switch opt {
		case "sub":
			tag.sub = true
		case "command":
			tag.command = true
		}
	}

	return tag
}

// sameKindFamily limits conversions to numeric-to-numeric and string-to-string so that
// reflect does not turn integers into strings.
func sameKindFamily(a, b reflect.Kind) bool {
	return kindFamily(a) == kindFamily(b)
}

// fits reports whether src converts to dst's kind without losing its value.
// Floats never narrow to integers.
func fits(src, dst reflect.Value) bool {
	switch {
	case isInt(dst.Kind()):
		switch {
		case isInt(src.Kind()):
			return !dst.OverflowInt(src.Int())
		case isUint(src.Kind()):
			return src.Uint() <= math.MaxInt64 && !dst.OverflowInt(int64(src.Uint()))
		}

		return false
	case isUint(dst.Kind()):
		switch {
		case isInt(src.Kind()):
			return src.Int() >= 0 && !dst.OverflowUint(uint64(src.Int()))
		case isUint(src.Kind()):
			return !dst.OverflowUint(src.Uint())
		}

		return false
	case isFloat(dst.Kind()) && isFloat(src.Kind()):
		return !dst.OverflowFloat(src.Float())
	}

	return true
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func kindFamily(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return 1
	case reflect.String:
		return 2
	case reflect.Bool:
		return 3
	default:
		return 0
	}
}
