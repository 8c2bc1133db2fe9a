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

package pipeline

import (
	"sync"

	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/log"
	"github.com/geobatch/geobatch/pkg/processor"
	"github.com/geobatch/geobatch/pkg/template"
)

// Threaded runs its Processor across Workers goroutines, all sharing the
// same input and output channels; ordering between rx_out and rx_in is
// not guaranteed once more than one worker is active.
type Threaded struct {
	Workers   int
	Processor processor.Processor
}

// NewThreaded constructs a Threaded pipeline. It fails with a
// configuration error if workers < 2, since a single worker should use
// Sync instead.
func NewThreaded(workers int, proc processor.Processor) (*Threaded, error) {
	if workers < 2 {
		return nil, errors.NewConfigurationError("threaded pipeline requires at least 2 workers, got %d", workers)
	}
	return &Threaded{Workers: workers, Processor: proc}, nil
}

// Conduct implements Pipeline. Each worker runs Processor.Process against
// the shared channel pair; if any worker returns an error, Conduct
// collects and returns the first one observed after all workers have
// joined.
func (p *Threaded) Conduct(out chan<- context.Context, in <-chan context.Context, templates *template.Engine) error {
	var wg sync.WaitGroup
	errs := make([]error, p.Workers)

	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			if err := p.Processor.Process(out, in, templates); err != nil {
				glog.Errorf("worker %d: %v", worker, err)
				errs[worker] = err
			}
		}(i)
	}

	wg.Wait()
	glog.V(log.LevelDebug).Infof("all %d workers joined", p.Workers)

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
