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

// Package processor implements the per-context work unit: materializing
// an output directory, rendering a template, and writing the result to
// disk.
package processor

import (
	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/template"
)

// Processor consumes contexts from in, does its work, and forwards each
// context it finishes with to out. It runs until in is closed and
// drained, then returns nil, or returns early with a non-nil error.
// Implementations must be safe to run concurrently from multiple workers
// sharing the same channel pair.
type Processor interface {
	Process(out chan<- context.Context, in <-chan context.Context, templates *template.Engine) error
}
