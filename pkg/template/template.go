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

// Package template adapts the standard text/template engine to the
// register-by-name / render-with-a-context contract the pipeline needs.
// Templates never see a TemplateString: interpolation happens in
// pkg/context before the engine is invoked, so the engine only ever sees
// a flat map of primitive variables.
package template

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/log"
)

// Engine registers named templates (one per run) and renders them against
// a Context. It is safe for concurrent use after all Register calls have
// completed: rendering only reads from the underlying template set.
type Engine struct {
	mu        sync.RWMutex
	templates *template.Template
	filenames map[string]string
}

// NewEngine constructs an empty Engine.
func NewEngine() *Engine {
	return &Engine{
		templates: template.New("geobatch"),
		filenames: make(map[string]string),
	}
}

// Register reads path as UTF-8 text, registers it as a named template
// keyed by runName, and remembers the file's basename for later lookup by
// FileName.
func (e *Engine) Register(runName, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return errors.NewTemplateError("reading template %q for run %q: %v", path, runName, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.templates.New(runName).Parse(string(contents)); err != nil {
		return errors.NewTemplateError("parsing template %q for run %q: %v", path, runName, err)
	}

	e.filenames[runName] = filepath.Base(path)

	glog.V(log.LevelDebug).Infof("registered template for run %q from %q", runName, path)

	return nil
}

// FileName returns the basename recorded when runName was registered,
// used as the output file name under the per-context directory. ok is
// false if runName was never registered.
func (e *Engine) FileName(runName string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	name, ok := e.filenames[runName]
	return name, ok
}

// Render builds the flat variable map for ctx and dispatches it to the
// template registered for ctx.Run.Name.
func (e *Engine) Render(ctx context.Context) (string, error) {
	vars, err := ctx.Variables()
	if err != nil {
		return "", errors.NewTemplateError("evaluating context for run %q: %v", ctx.Run.Name, err)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, ctx.Run.Name, vars); err != nil {
		return "", errors.NewTemplateError("rendering template for run %q: %v", ctx.Run.Name, err)
	}

	return buf.String(), nil
}
