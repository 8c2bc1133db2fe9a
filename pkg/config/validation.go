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
	"os"
	"regexp"

	"github.com/geobatch/geobatch/pkg/errors"
)

var runNameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validate checks a decoded Config for the semantic rules the JSON
// schema cannot express on its own: a nonempty, uniquely-named run list,
// each name matching the slug pattern, and each template file existing
// as a regular file on disk.
func validate(cfg *Config) error {
	if len(cfg.Runs) == 0 {
		return errors.NewValidationError("\"runs\" must be nonempty")
	}

	seen := make(map[string]struct{}, len(cfg.Runs))

	for _, run := range cfg.Runs {
		if !runNameRE.MatchString(run.Name) {
			return errors.NewValidationError("run name %q must match [A-Za-z0-9_-]+", run.Name)
		}

		if _, dup := seen[run.Name]; dup {
			return errors.NewValidationError("duplicate run name %q", run.Name)
		}
		seen[run.Name] = struct{}{}

		if err := validateTemplateFile(run.Name, run.TemplatePath); err != nil {
			return err
		}
	}

	return nil
}

func validateTemplateFile(runName, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewValidationError("run %q: template %q: %v", runName, path, err)
	}
	if !info.Mode().IsRegular() {
		return errors.NewValidationError("run %q: template %q is not a regular file", runName, path)
	}
	return nil
}

// ValidateWorkdirOverride checks the CLI-level workdir constraints: if
// workdir exists it must be a directory; if it is non-empty, clear must
// be set.
func ValidateWorkdirOverride(path string, clear bool) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.NewValidationError("stat workdir %q: %v", path, err)
	}
	if !info.IsDir() {
		return errors.NewValidationError("workdir %q exists and is not a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.NewValidationError("reading workdir %q: %v", path, err)
	}
	if len(entries) > 0 && !clear {
		return errors.NewValidationError("workdir %q is non-empty; pass --clear-workdir to overwrite", path)
	}

	return nil
}
