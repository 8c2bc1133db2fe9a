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

// Package sites defines the geolocated unit of work (Site), the pluggable
// driver contract that produces a stream of them (Generator, Driver), and
// the registry composition that holds the set of
// drivers an application recognizes.
package sites

import (
	"encoding/json"

	"github.com/geobatch/geobatch/pkg/geo"
	"github.com/geobatch/geobatch/pkg/registry"
)

// Site is a geolocated unit of work: a 32-bit integer id paired with a
// longitude/latitude. It is a non-owning value produced by a driver.
type Site struct {
	ID  int32
	Lon geo.GeoDeg
	Lat geo.GeoDeg
}

// Generator is a polymorphic lazy sequence of Site, pull-style, finite,
// not restartable. Implementations may hold external resources (open
// files, datasets); they are owned by the generator until Close is
// called. It is not safe for concurrent use; a generator is consumed by
// exactly one producer goroutine.
type Generator interface {
	// Next returns the next Site. ok is false once the generator is
	// exhausted; err is non-nil if the underlying source failed mid-read,
	// in which case the generator has also terminated.
	Next() (site Site, ok bool, err error)

	// Close releases any resources (file handles, datasets) held by the
	// generator.
	Close() error
}

// Driver is a registered pair of operations, captured as closures so that
// the config type each driver decodes into is never exposed across the
// registry boundary: DecodeConfig closes over a driver-specific config
// type and returns it as an opaque value; Create closes over the same
// type and only ever receives what its own DecodeConfig produced.
type Driver struct {
	// DecodeConfig parses the driver-specific fields of a sites{} config
	// block into an opaque driver config value.
	DecodeConfig func(raw json.RawMessage) (interface{}, error)

	// Create instantiates a Generator from a config value previously
	// produced by DecodeConfig.
	Create func(config interface{}) (Generator, error)
}

// Registries composes the namespace claim set with the registry of site
// generator drivers. In this system it is the entire extensibility
// surface; a future addition of a second kind of pluggable resource would
// add a second Registry[R] field here without touching pkg/registry.
type Registries struct {
	Namespaces *registry.NamespaceClaims
	Drivers    *registry.Registry[Driver]
}

// NewRegistries constructs an empty Registries with nothing claimed and
// no drivers registered.
func NewRegistries() *Registries {
	return &Registries{
		Namespaces: registry.NewNamespaceClaims(),
		Drivers:    registry.NewRegistry[Driver](),
	}
}
