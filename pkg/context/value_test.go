package context

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayString(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"float", Float(1.5), "1.5"},
		{"float integral", Float(3), "3"},
		{"string", String("hello"), "hello"},
		{"empty string", String(""), ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.DisplayString(); got != c.want {
				t.Fatalf("DisplayString() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestDisplayStringPanicsOnTemplateString(t *testing.T) {
	v, err := TemplateString("${a}")
	if err != nil {
		t.Fatalf("TemplateString() error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected DisplayString() to panic on a TemplateString")
		}
	}()
	v.DisplayString()
}

func TestTemplateStringFragments(t *testing.T) {
	cases := []struct {
		in   string
		want []Fragment
	}{
		{
			in: "${a}",
			want: []Fragment{
				{Placeholder: "a", IsPlaceholder: true},
			},
		},
		{
			in: "pre-${a}-post",
			want: []Fragment{
				{Literal: "pre-"},
				{Placeholder: "a", IsPlaceholder: true},
				{Literal: "-post"},
			},
		},
		{
			in: "${a}${b}",
			want: []Fragment{
				{Placeholder: "a", IsPlaceholder: true},
				{Placeholder: "b", IsPlaceholder: true},
			},
		},
	}

	for _, c := range cases {
		v, err := TemplateString(c.in)
		if err != nil {
			t.Fatalf("TemplateString(%q) error = %v", c.in, err)
		}
		if !v.IsTemplateString() {
			t.Fatalf("TemplateString(%q) is not a template string value", c.in)
		}
		if diff := cmp.Diff(c.want, v.Fragments()); diff != "" {
			t.Fatalf("Fragments(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestTemplateStringZeroFragmentsRejected(t *testing.T) {
	if _, err := TemplateString(""); err == nil {
		t.Fatalf("expected an empty string to be rejected")
	}
	// A bare "$" matches neither the placeholder nor the literal
	// alternative, so it also produces zero fragments.
	if _, err := TemplateString("$"); err == nil {
		t.Fatalf("expected a bare \"$\" to be rejected")
	}
}

func TestCanonicalPrimitive(t *testing.T) {
	if got, want := Int(3).Canonical(), "3"; got != want {
		t.Fatalf("Canonical() = %q, want %q", got, want)
	}
}

func TestCanonicalMixedFragments(t *testing.T) {
	v, err := TemplateString("pre-${a}-mid-${b}-post")
	if err != nil {
		t.Fatalf("TemplateString() error = %v", err)
	}
	if got, want := v.Canonical(), "pre-${a}-mid-${b}-post"; got != want {
		t.Fatalf("Canonical() = %q, want %q", got, want)
	}
}
