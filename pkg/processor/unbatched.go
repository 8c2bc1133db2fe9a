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

package processor

import (
	"os"

	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/template"
)

// Unbatched processes one context at a time: it creates a directory,
// renders the run's template, writes the result, and forwards the
// context downstream. Failure handling is asymmetric: a directory-create
// failure is logged but does not fail the work unit, while a missing
// template, a render failure, or a write failure are all fatal to the
// worker.
type Unbatched struct {
	Workdir string
}

// Process implements processor.Processor.
func (p *Unbatched) Process(out chan<- context.Context, in <-chan context.Context, templates *template.Engine) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewProcessorError("send on closed output channel: %v", r)
		}
	}()

	for ctx := range in {
		if err := p.processOne(ctx, templates); err != nil {
			return err
		}
		out <- ctx
	}

	return nil
}

func (p *Unbatched) processOne(ctx context.Context, templates *template.Engine) error {
	dir := ctx.Dir(p.Workdir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		glog.Errorf("creating directory %q: %v", dir, err)
	}

	basename, ok := templates.FileName(ctx.Run.Name)
	if !ok {
		return errors.NewProcessorError("no template registered for run %q", ctx.Run.Name)
	}

	rendered, err := templates.Render(ctx)
	if err != nil {
		return errors.NewProcessorError("rendering run %q: %v", ctx.Run.Name, err)
	}

	if err := os.WriteFile(dir+"/"+basename, []byte(rendered), 0o644); err != nil {
		return errors.NewProcessorError("writing %q/%q: %v", dir, basename, err)
	}

	return nil
}
