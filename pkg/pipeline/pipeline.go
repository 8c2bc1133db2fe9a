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

// Package pipeline implements the worker-count-driven dispatch of a
// processor over a bounded producer/consumer channel pair: a Sync
// pipeline runs the processor on the calling goroutine; a Threaded
// pipeline runs it across a fixed pool of worker goroutines sharing the
// same channel pair.
package pipeline

import (
	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/processor"
	"github.com/geobatch/geobatch/pkg/template"
)

// Pipeline runs a Processor over a bounded channel pair until in is
// closed and drained.
type Pipeline interface {
	Conduct(out chan<- context.Context, in <-chan context.Context, templates *template.Engine) error
}

// New selects a Pipeline implementation per the worker-count policy:
// workers == 0 resolves to runtime.NumCPU() by the caller before New is
// invoked; workers == 1 selects Sync; workers >= 2 selects Threaded.
// workers < 1 is a caller error.
func New(workers int, proc processor.Processor) (Pipeline, error) {
	if workers == 1 {
		return &Sync{Processor: proc}, nil
	}
	return NewThreaded(workers, proc)
}
