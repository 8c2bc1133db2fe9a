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

package config

import (
	"encoding/json"
	"os"

	"github.com/go-openapi/jsonpointer"

	"github.com/geobatch/geobatch/pkg/errors"
)

// DumpPointer reads the raw configuration file at path and resolves an
// RFC 6901 JSON pointer against it, returning the pointed-to value. It
// exists for operators debugging a malformed "runs" or "sites" block
// without hand-parsing the file, and deliberately bypasses Load's
// registry resolution and validation.
func DumpPointer(path, pointer string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError("reading config file %q: %v", path, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConfigurationError("parsing config file %q: %v", path, err)
	}

	p, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, errors.NewConfigurationError("json pointer %q malformed: %v", pointer, err)
	}

	value, _, err := p.Get(doc)
	if err != nil {
		return nil, errors.NewConfigurationError("json pointer %q: %v", pointer, err)
	}

	return value, nil
}
