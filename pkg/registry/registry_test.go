package registry

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClaimNamespaceOnce(t *testing.T) {
	c := NewNamespaceClaims()

	if _, err := c.Claim("std"); err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if _, err := c.Claim("std"); err == nil {
		t.Fatalf("expected re-claiming \"std\" to fail")
	}
}

func TestClaimRejectsIllegalName(t *testing.T) {
	c := NewNamespaceClaims()
	if _, err := c.Claim("Not_Valid"); err == nil {
		t.Fatalf("expected Claim() to reject an illegal namespace name")
	}
}

func TestRegisterAndGet(t *testing.T) {
	c := NewNamespaceClaims()
	ns, err := c.Claim("std")
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}

	r := NewRegistry[int]()
	if err := r.Register(ns, "a", 1); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	id := PublicIdentifier{Namespace: "std", ID: "a"}
	v, ok := r.Get(id)
	if !ok || v != 1 {
		t.Fatalf("Get() = (%v, %v), want (1, true)", v, ok)
	}

	if err := r.Register(ns, "a", 2); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegisterRejectsIllegalID(t *testing.T) {
	c := NewNamespaceClaims()
	ns, _ := c.Claim("std")

	r := NewRegistry[int]()
	if err := r.Register(ns, "Not Valid", 1); err == nil {
		t.Fatalf("expected Register() to reject an illegal id")
	}
}

func TestParsePublicIdentifier(t *testing.T) {
	cases := []struct {
		in        string
		defaultNS string
		wantNS    string
		wantID    string
		wantErr   bool
	}{
		{"std:vector", "fallback", "std", "vector", false},
		{"vector", "std", "std", "vector", false},
		{"", "std", "", "", true},
		{"not valid!", "std", "", "", true},
	}

	for _, c := range cases {
		got, err := ParsePublicIdentifier(c.in, c.defaultNS)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePublicIdentifier(%q) expected error, got nil", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePublicIdentifier(%q) error = %v", c.in, err)
			continue
		}
		if got.Namespace != c.wantNS || got.ID != c.wantID {
			t.Errorf("ParsePublicIdentifier(%q) = %+v, want {%s %s}", c.in, got, c.wantNS, c.wantID)
		}
	}
}

func TestPublicIdentifierString(t *testing.T) {
	id := PublicIdentifier{Namespace: "std", ID: "vector"}
	if got, want := id.String(), "std:vector"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestRegistryEntriesAndLen(t *testing.T) {
	c := NewNamespaceClaims()
	ns, _ := c.Claim("std")

	r := NewRegistry[string]()
	r.Register(ns, "a", "one")
	r.Register(ns, "b", "two")

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID.ID < entries[j].ID.ID })

	want := []RegistryEntry[string]{
		{ID: PublicIdentifier{Namespace: "std", ID: "a"}, Resource: "one"},
		{ID: PublicIdentifier{Namespace: "std", ID: "b"}, Resource: "two"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryIDsAndResources(t *testing.T) {
	c := NewNamespaceClaims()
	ns, _ := c.Claim("std")

	r := NewRegistry[string]()
	r.Register(ns, "a", "one")
	r.Register(ns, "b", "two")

	ids := r.IDs()
	if len(ids) != 2 {
		t.Fatalf("len(IDs()) = %d, want 2", len(ids))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].ID < ids[j].ID })
	if ids[0].String() != "std:a" || ids[1].String() != "std:b" {
		t.Fatalf("IDs() = %v", ids)
	}

	resources := r.Resources()
	if len(resources) != 2 {
		t.Fatalf("len(Resources()) = %d, want 2", len(resources))
	}
	sort.Strings(resources)
	if diff := cmp.Diff([]string{"one", "two"}, resources); diff != "" {
		t.Fatalf("Resources() mismatch (-want +got):\n%s", diff)
	}
}

func TestIsRegistered(t *testing.T) {
	c := NewNamespaceClaims()
	ns, _ := c.Claim("std")

	r := NewRegistry[int]()
	r.Register(ns, "a", 1)

	if !r.IsRegistered(PublicIdentifier{Namespace: "std", ID: "a"}) {
		t.Fatalf("expected std:a to be registered")
	}
	if r.IsRegistered(PublicIdentifier{Namespace: "std", ID: "b"}) {
		t.Fatalf("expected std:b to be absent")
	}
	if r.IsRegistered(PublicIdentifier{Namespace: "other", ID: "a"}) {
		t.Fatalf("expected other:a to be absent")
	}
}
