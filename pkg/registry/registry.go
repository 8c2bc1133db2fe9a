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

// Package registry implements the namespace/identifier extensibility core:
// namespaces are claimed once, resources are registered under a
// (namespace, id) pair, and lookups are performed through a
// PublicIdentifier parsed from configuration.
package registry

import (
	"fmt"
	"regexp"

	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/collections"
	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/log"
)

// validNameRE matches a valid namespace name or a valid resource id.
var validNameRE = regexp.MustCompile(`^[a-z0-9-]+$`)

// Namespace is the claim token returned by NamespaceClaims.Claim. It is opaque
// data: only the claimant that received it may register resources under
// it, preventing one extension from registering resources that impersonate
// another extension's namespace.
type Namespace struct {
	name string
}

// String returns the namespace's claimed name.
func (n Namespace) String() string {
	return n.name
}

// PublicIdentifier is a freely constructible (namespace, id) pair used to
// look resources up in a registry. Unlike Namespace it carries no proof of
// a claim.
type PublicIdentifier struct {
	Namespace string
	ID        string
}

// String renders the identifier in its canonical "namespace:id" form.
func (p PublicIdentifier) String() string {
	return fmt.Sprintf("%s:%s", p.Namespace, p.ID)
}

// identifierRE matches "ns:id" or bare "id", with the namespace group
// optional.
var identifierRE = regexp.MustCompile(`^(?:([a-z0-9._-]+):)?([a-z0-9._-]+)$`)

// ParsePublicIdentifier parses s as "ns:id" or bare "id"; in the latter
// case defaultNamespace is substituted.
func ParsePublicIdentifier(s string, defaultNamespace string) (PublicIdentifier, error) {
	m := identifierRE.FindStringSubmatch(s)
	if m == nil {
		return PublicIdentifier{}, errors.NewConfigurationError("expected \"ns:id\" or \"id\", got %q", s)
	}

	ns := m[1]
	if ns == "" {
		ns = defaultNamespace
	}

	return PublicIdentifier{Namespace: ns, ID: m[2]}, nil
}

// Registry is a two-key map from (namespace, id) to a cheaply cloneable
// resource R. Keys are validated on insert and duplicates are rejected.
type Registry[R any] struct {
	entries *collections.K2Map[string, string, R]
}

// NewRegistry constructs an empty registry.
func NewRegistry[R any]() *Registry[R] {
	return &Registry[R]{entries: collections.NewK2Map[string, string, R]()}
}

// Register stores resource under (ns, id). ns must already be claimed by
// the caller (the Namespace type enforces this at the call site); id must
// match [a-z0-9-]+ and must not already be registered.
func (r *Registry[R]) Register(ns Namespace, id string, resource R) error {
	if !validNameRE.MatchString(id) {
		return errors.NewRegistryError("illegal resource id %q: must match [a-z0-9-]+", id)
	}

	if r.entries.Contains(ns.name, id) {
		return errors.NewRegistryError("resource %s already registered", PublicIdentifier{Namespace: ns.name, ID: id})
	}

	r.entries.Insert(ns.name, id, resource)
	glog.V(log.LevelDebug).Infof("registered resource %s", PublicIdentifier{Namespace: ns.name, ID: id})

	return nil
}

// IsRegistered reports whether id is a resource registered in the registry.
func (r *Registry[R]) IsRegistered(id PublicIdentifier) bool {
	return r.entries.Contains(id.Namespace, id.ID)
}

// Get looks resource up by its public identifier.
func (r *Registry[R]) Get(id PublicIdentifier) (R, bool) {
	return r.entries.Get(id.Namespace, id.ID)
}

// IDs returns every public identifier registered.
func (r *Registry[R]) IDs() []PublicIdentifier {
	entries := r.entries.Entries()
	ids := make([]PublicIdentifier, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, PublicIdentifier{Namespace: e.K1, ID: e.K2})
	}
	return ids
}

// Resources returns every registered resource value.
func (r *Registry[R]) Resources() []R {
	return r.entries.Values()
}

// RegistryEntry pairs a public identifier with its resource, as returned
// by Entries.
type RegistryEntry[R any] struct {
	ID       PublicIdentifier
	Resource R
}

// Entries returns every (identifier, resource) pair registered.
func (r *Registry[R]) Entries() []RegistryEntry[R] {
	raw := r.entries.Entries()
	out := make([]RegistryEntry[R], 0, len(raw))
	for _, e := range raw {
		out = append(out, RegistryEntry[R]{ID: PublicIdentifier{Namespace: e.K1, ID: e.K2}, Resource: e.V})
	}
	return out
}

// Len returns the total number of registered resources.
func (r *Registry[R]) Len() int {
	return r.entries.Len()
}
