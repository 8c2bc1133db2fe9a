// Copyright 2024 The geobatch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file  except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the  License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package context holds the run-scoped variable model: Value (a
// primitive or a lazily-interpolated template string), Context (a
// site/run pair with a key lookup), and the Cartesian Generator that
// pairs every site with every run.
package context

import (
	"regexp"
	"strconv"

	"github.com/geobatch/geobatch/pkg/errors"
)

// Value is a tagged union: either a primitive (Bool, Int, Float, String)
// or a TemplateString of literal/placeholder fragments.
type Value struct {
	kind   valueKind
	b      bool
	i      int64
	f      float64
	s      string
	fields []Fragment
}

type valueKind int

const (
	kindBool valueKind = iota
	kindInt
	kindFloat
	kindString
	kindTemplateString
)

// Fragment is one piece of a TemplateString: either literal text or a
// placeholder key to resolve at interpolation time.
type Fragment struct {
	Literal       string
	Placeholder   string
	IsPlaceholder bool
}

// Bool constructs a primitive boolean value.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// Int constructs a primitive integer value.
func Int(i int64) Value { return Value{kind: kindInt, i: i} }

// Float constructs a primitive floating-point value.
func Float(f float64) Value { return Value{kind: kindFloat, f: f} }

// String constructs a primitive string value (not a TemplateString, even
// if it happens to contain "${").
func String(s string) Value { return Value{kind: kindString, s: s} }

// fragmentRE matches a run of "${...}" or a run of non-"$" characters.
var fragmentRE = regexp.MustCompile(`(\$\{[^}]+}|[^$]+)`)

// TemplateString parses s into a TemplateString value. If s contains no
// "${...}" placeholders it is returned as a plain String value instead,
// matching the rule that a TemplateString must have at least one
// placeholder fragment to be worth the name.
func TemplateString(s string) (Value, error) {
	matches := fragmentRE.FindAllString(s, -1)
	if len(matches) == 0 {
		return Value{}, errors.NewConfigurationError("template string %q has zero fragments", s)
	}

	fragments := make([]Fragment, 0, len(matches))
	hasPlaceholder := false

	for _, m := range matches {
		if len(m) >= 3 && m[0] == '$' && m[1] == '{' && m[len(m)-1] == '}' {
			fragments = append(fragments, Fragment{Placeholder: m[2 : len(m)-1], IsPlaceholder: true})
			hasPlaceholder = true
			continue
		}
		fragments = append(fragments, Fragment{Literal: m})
	}

	if !hasPlaceholder {
		return String(s), nil
	}

	return Value{kind: kindTemplateString, fields: fragments}, nil
}

// IsTemplateString reports whether v is a lazily-interpolated template
// string rather than a plain primitive.
func (v Value) IsTemplateString() bool {
	return v.kind == kindTemplateString
}

// DisplayString converts a primitive to its display form. Bool renders as
// "true"/"false", Int as decimal, Float as the shortest round-trip
// decimal, String as itself. Calling DisplayString on a TemplateString
// panics; callers must interpolate it first via Context.Resolve.
func (v Value) DisplayString() string {
	switch v.kind {
	case kindBool:
		if v.b {
			return "true"
		}
		return "false"
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindString:
		return v.s
	default:
		panic("context: DisplayString called on a TemplateString value")
	}
}

// Fragments returns the fragments of a TemplateString value. It is only
// meaningful when IsTemplateString() is true.
func (v Value) Fragments() []Fragment {
	return v.fields
}

// Canonical reserializes a TemplateString back to its "${a}-${b}" form.
// Used only for round-trip tests; primitives reserialize via
// DisplayString.
func (v Value) Canonical() string {
	if v.kind != kindTemplateString {
		return v.DisplayString()
	}

	out := ""
	for _, f := range v.fields {
		if f.IsPlaceholder {
			out += "${" + f.Placeholder + "}"
		} else {
			out += f.Literal
		}
	}
	return out
}
