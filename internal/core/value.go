package core

import (
	"fmt"
	"strings"
)

// Field is one resolved field of a parsed command.
type Field struct {
	Name  string
	Value any
	// Set is false only for optional fields that received no value.
	Set bool
}

// Value is a fully constructed command produced by the parser.
type Value struct {
	Command string
	Fields  []Field
	// Sub is the nested command, if the schema has one and it was given.
	Sub *Value
	// SubField names the field holding Sub; empty when Sub replaces the payload.
	SubField string
	Tuple    bool
}

// Bool returns the named field as a bool, false if it is absent or not a bool.
func (v *Value) Bool(name string) bool {
	got, _ := v.Get(name)
	b, _ := got.(bool)

	return b
}

// Get returns the named field's value and whether it was set.
func (v *Value) Get(name string) (any, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, f.Set
		}
	}

	return nil, false
}

// Lookup returns the named field's value, or nil when it is absent.
func (v *Value) Lookup(name string) any {
	got, _ := v.Get(name)

	return got
}

// Path returns the dispatch names from v down to its innermost subcommand.
func (v *Value) Path() []string {
	var path []string

	for cur := v; cur != nil; cur = cur.Sub {
		path = append(path, cur.Command)
	}

	return path
}

func (v *Value) String() string {
	var b strings.Builder

	v.render(&b)

	return b.String()
}

func (v *Value) render(b *strings.Builder) {
	b.WriteString(v.Command)

	named := v.Sub != nil && v.SubField != ""

	switch {
	case v.Tuple && (len(v.Fields) > 0 || named):
		b.WriteByte('(')
		v.renderFields(b, false)
		b.WriteByte(')')
	case len(v.Fields) > 0 || named:
		b.WriteByte('{')
		v.renderFields(b, true)
		b.WriteByte('}')
	}

	if v.Sub != nil && v.SubField == "" {
		b.WriteByte(' ')
		v.Sub.render(b)
	}
}

func (v *Value) renderFields(b *strings.Builder, withNames bool) {
	for i, f := range v.Fields {
		if i > 0 {
			b.WriteString(", ")
		}

		if withNames {
			b.WriteString(f.Name + ": ")
		}

		b.WriteString(renderScalar(f))
	}

	if v.Sub == nil || v.SubField == "" {
		return
	}

	if len(v.Fields) > 0 {
		b.WriteString(", ")
	}

	if withNames {
		b.WriteString(v.SubField + ": ")
	}

	v.Sub.render(b)
}

func renderScalar(f Field) string {
	if !f.Set {
		return "none"
	}

	switch val := f.Value.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case Character:
		return fmt.Sprintf("%q", rune(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}
