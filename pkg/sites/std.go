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

package sites

// StdNamespace is the namespace under which the built-in vector and
// raster drivers are registered.
const StdNamespace = "std"

// RegisterStandardDrivers claims the "std" namespace on r and registers
// the built-in vector and raster site generator drivers as "std:vector"
// and "std:raster".
func RegisterStandardDrivers(r *Registries) error {
	ns, err := r.Namespaces.Claim(StdNamespace)
	if err != nil {
		return err
	}

	if err := r.Drivers.Register(ns, "vector", vectorDriver()); err != nil {
		return err
	}

	if err := r.Drivers.Register(ns, "raster", rasterDriver()); err != nil {
		return err
	}

	return nil
}
