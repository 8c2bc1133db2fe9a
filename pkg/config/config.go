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

// Package config loads and validates the JSON run-configuration file.
// Unlike a plain schema decoder, the "sites.type" field names a resource
// in the driver registry; Load resolves it against a Seed during
// decoding rather than leaving callers to look it up afterwards, so the
// returned Config always carries an already-bound driver.
package config

import (
	"encoding/json"
	"math"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/log"
	"github.com/geobatch/geobatch/pkg/registry"
	"github.com/geobatch/geobatch/pkg/sites"
)

// Seed parameterizes Load with the live registry set and the default
// namespace applied to an identifier field that omits one.
type Seed struct {
	Registries       *sites.Registries
	DefaultNamespace string
}

// Config is the fully decoded, already-validated configuration: a bound
// site generator driver plus its driver-specific config, an optional
// sample cap, and the nonempty list of runs.
type Config struct {
	Driver       sites.Driver
	DriverConfig interface{}
	SampleSize   *int
	Runs         []context.Run
}

// sitesHeader is the portion of the "sites" object this package itself
// understands. The whole "sites" object, these two fields included, is
// forwarded to the driver's DecodeConfig untouched.
type sitesHeader struct {
	Type       string `json:"type"`
	SampleSize *int   `json:"sample_size"`
}

// document is the top-level shape of a configuration file.
type document struct {
	Sites json.RawMessage   `json:"sites"`
	Runs  []json.RawMessage `json:"runs"`
}

// Load reads path, decodes it against seed, validates the result, and
// returns the bound Config.
func Load(path string, seed Seed) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError("reading config file %q: %v", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConfigurationError("parsing config file %q: %v", path, err)
	}

	var header sitesHeader
	if err := json.Unmarshal(doc.Sites, &header); err != nil {
		return nil, errors.NewConfigurationError("parsing \"sites\" block of %q: %v", path, err)
	}

	id, err := registry.ParsePublicIdentifier(header.Type, seed.DefaultNamespace)
	if err != nil {
		return nil, errors.NewConfigurationError("parsing sites.type %q: %v", header.Type, err)
	}

	driver, ok := seed.Registries.Drivers.Get(id)
	if !ok {
		return nil, errors.NewConfigurationError("resource %s not registered", id)
	}

	driverConfig, err := driver.DecodeConfig(doc.Sites)
	if err != nil {
		return nil, errors.NewConfigurationError("decoding driver config for %s: %v", id, err)
	}

	glog.V(log.LevelDebug).Infof("resolved sites.type %q to driver %s", header.Type, id)

	runs := make([]context.Run, 0, len(doc.Runs))
	for i, raw := range doc.Runs {
		run, err := decodeRun(raw)
		if err != nil {
			return nil, errors.NewConfigurationError("decoding runs[%d]: %v", i, err)
		}
		runs = append(runs, run)
	}

	cfg := &Config{
		Driver:       driver,
		DriverConfig: driverConfig,
		SampleSize:   header.SampleSize,
		Runs:         runs,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeRun decodes one element of the "runs" array: "name" and
// "template" are reserved keys, everything else becomes an extra
// context.Value, detected as a TemplateString when it is a JSON string
// containing at least one "${...}" placeholder.
func decodeRun(raw json.RawMessage) (context.Run, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return context.Run{}, err
	}

	var name, templatePath string
	if nameRaw, ok := fields["name"]; ok {
		if err := json.Unmarshal(nameRaw, &name); err != nil {
			return context.Run{}, errors.NewConfigurationError("run \"name\" must be a string: %v", err)
		}
	}
	if tmplRaw, ok := fields["template"]; ok {
		if err := json.Unmarshal(tmplRaw, &templatePath); err != nil {
			return context.Run{}, errors.NewConfigurationError("run \"template\" must be a string: %v", err)
		}
	}
	delete(fields, "name")
	delete(fields, "template")

	extra := make(map[string]context.Value, len(fields))
	for key, rawVal := range fields {
		v, err := decodeValue(rawVal)
		if err != nil {
			return context.Run{}, errors.NewConfigurationError("run %q, field %q: %v", name, key, err)
		}
		extra[key] = v
	}

	return context.Run{Name: name, TemplatePath: templatePath, Extra: extra}, nil
}

// decodeValue decodes one JSON scalar into a context.Value.
func decodeValue(raw json.RawMessage) (context.Value, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.Contains(s, "${") {
			return context.TemplateString(s)
		}
		return context.String(s), nil
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return context.Bool(b), nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f == math.Trunc(f) {
			return context.Int(int64(f)), nil
		}
		return context.Float(f), nil
	}

	return context.Value{}, errors.NewConfigurationError("unsupported value %s", raw)
}
