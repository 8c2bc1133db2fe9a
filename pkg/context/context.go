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

package context

import (
	"strconv"

	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/sites"
)

// Run is the immutable, caller-supplied part of a Context: a name, the
// template path to render, and a set of extra named values overlaid
// underneath the built-in keys.
type Run struct {
	Name         string
	TemplatePath string
	Extra        map[string]Value
}

// Context pairs a Site with a Run and provides a key lookup that overlays
// built-in keys (site_id, lng, lon, lat, name) on top of Run.Extra.
type Context struct {
	Site sites.Site
	Run  Run
}

// Get returns the Value bound to key: a built-in if key is one of
// site_id/lng/lon/lat/name, else a lookup into Run.Extra. ok is false if
// key is bound nowhere.
func (c Context) Get(key string) (Value, bool) {
	switch key {
	case "site_id":
		return String(strconv.FormatInt(int64(c.Site.ID), 10)), true
	case "lng", "lon":
		return Float(c.Site.Lon.AsFloat64()), true
	case "lat":
		return Float(c.Site.Lat.AsFloat64()), true
	case "name":
		return String(c.Run.Name), true
	}

	v, ok := c.Run.Extra[key]
	return v, ok
}

// Dir computes the per-context output directory under base:
// base/run.name/lon.Ns(4)/lat.Ew(4).
func (c Context) Dir(base string) string {
	return base + "/" + c.Run.Name + "/" + c.Site.Lon.Ns(4) + "/" + c.Site.Lat.Ew(4)
}

// Resolve interpolates key against c to a display string, recursively
// resolving any TemplateString values it encounters along the way.
// Resolve fails with an interpolation error if key is unbound, or if
// resolving key would re-enter a key already being resolved in the same
// call chain.
func (c Context) Resolve(key string) (string, error) {
	return c.resolve(key, map[string]struct{}{})
}

func (c Context) resolve(key string, inProgress map[string]struct{}) (string, error) {
	if _, cycle := inProgress[key]; cycle {
		return "", errors.NewInterpolationError("cyclic reference to %q", key)
	}

	v, ok := c.Get(key)
	if !ok {
		return "", errors.NewInterpolationError("no such key %q", key)
	}

	if !v.IsTemplateString() {
		return v.DisplayString(), nil
	}

	inProgress[key] = struct{}{}
	defer delete(inProgress, key)

	out := ""
	for _, f := range v.Fragments() {
		if !f.IsPlaceholder {
			out += f.Literal
			continue
		}

		resolved, err := c.resolve(f.Placeholder, inProgress)
		if err != nil {
			return "", err
		}
		out += resolved
	}

	return out, nil
}

// Variables builds the flat map of primitive variables a template engine
// sees: the built-ins (including the soil_id back-compat alias of
// site_id) plus every key in Run.Extra, each fully interpolated.
func (c Context) Variables() (map[string]string, error) {
	vars := map[string]string{
		"site_id": strconv.FormatInt(int64(c.Site.ID), 10),
		"lng":     strconv.FormatFloat(c.Site.Lon.AsFloat64(), 'g', -1, 64),
		"lon":     strconv.FormatFloat(c.Site.Lon.AsFloat64(), 'g', -1, 64),
		"lat":     strconv.FormatFloat(c.Site.Lat.AsFloat64(), 'g', -1, 64),
		"name":    c.Run.Name,
	}
	vars["soil_id"] = vars["site_id"]

	for key := range c.Run.Extra {
		resolved, err := c.Resolve(key)
		if err != nil {
			return nil, err
		}
		vars[key] = resolved
	}

	return vars, nil
}
