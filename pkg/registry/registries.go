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

package registry

import (
	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/log"
)

// NamespaceClaims tracks the set of namespace names claimed so far.
// Which concrete Registry[R] instances an application recognizes is
// composed by the caller, since this package has no knowledge of what R
// is.
type NamespaceClaims struct {
	claimed map[string]struct{}
}

// NewNamespaceClaims constructs an empty claim set.
func NewNamespaceClaims() *NamespaceClaims {
	return &NamespaceClaims{claimed: make(map[string]struct{})}
}

// Claim mints a Namespace for name. name must match [a-z0-9-]+ and must
// not already be claimed.
func (c *NamespaceClaims) Claim(name string) (Namespace, error) {
	if !validNameRE.MatchString(name) {
		return Namespace{}, errors.NewRegistryError("illegal namespace %q: must match [a-z0-9-]+", name)
	}

	if _, ok := c.claimed[name]; ok {
		return Namespace{}, errors.NewRegistryError("namespace %q already claimed", name)
	}

	c.claimed[name] = struct{}{}
	glog.V(log.LevelDebug).Infof("claimed namespace %q", name)

	return Namespace{name: name}, nil
}

// IsClaimed reports whether name has already been claimed.
func (c *NamespaceClaims) IsClaimed(name string) bool {
	_, ok := c.claimed[name]
	return ok
}
