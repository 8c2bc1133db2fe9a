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

// Package workdir bootstraps the on-disk root geobatch materializes its
// output into: either a caller-supplied directory (created if absent,
// optionally cleared if non-empty) or a fresh temporary directory.
package workdir

import (
	"os"

	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/errors"
)

// Options controls how Make bootstraps the workdir.
type Options struct {
	// Path is the caller-supplied workdir. Empty means "use a temp dir".
	Path string

	// Keep, when Path is empty, keeps the temp dir on process exit
	// instead of removing it. It is ignored when Path is set: an
	// explicit workdir is always kept.
	Keep bool

	// Clear allows Make to empty a non-empty explicit Path before use.
	// It has no effect when Path is empty.
	Clear bool
}

// Make resolves Options into a concrete directory and whether the caller
// owns cleaning it up afterwards (true for an unkept temp dir).
func Make(opts Options) (dir string, removeOnExit bool, err error) {
	if opts.Path == "" {
		dir, err = os.MkdirTemp("", "geobatch-workdir")
		if err != nil {
			return "", false, errors.NewConfigurationError("creating temporary workdir: %v", err)
		}
		glog.V(1).Infof("using temporary workdir %q (keep=%v)", dir, opts.Keep)
		return dir, !opts.Keep, nil
	}

	info, statErr := os.Stat(opts.Path)
	switch {
	case statErr == nil && !info.IsDir():
		return "", false, errors.NewValidationError("workdir %q exists and is not a directory", opts.Path)
	case statErr == nil:
		entries, readErr := os.ReadDir(opts.Path)
		if readErr != nil {
			return "", false, errors.NewConfigurationError("reading workdir %q: %v", opts.Path, readErr)
		}
		if len(entries) > 0 {
			if !opts.Clear {
				return "", false, errors.NewValidationError("workdir %q is non-empty; pass --clear-workdir to overwrite", opts.Path)
			}
			for _, e := range entries {
				if err := os.RemoveAll(opts.Path + "/" + e.Name()); err != nil {
					return "", false, errors.NewConfigurationError("clearing workdir %q: %v", opts.Path, err)
				}
			}
			glog.Infof("cleared workdir %q", opts.Path)
		}
	case os.IsNotExist(statErr):
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return "", false, errors.NewConfigurationError("creating workdir %q: %v", opts.Path, err)
		}
	default:
		return "", false, errors.NewConfigurationError("stat workdir %q: %v", opts.Path, statErr)
	}

	return opts.Path, false, nil
}
