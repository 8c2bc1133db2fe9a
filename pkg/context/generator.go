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

package context

import (
	"github.com/geobatch/geobatch/pkg/sites"
)

// Generator emits one Context per (site, run) pair: sites outer, runs
// inner, per site-wise emission. It is single-pass and not safe for
// concurrent use; exactly one producer goroutine should own it.
type Generator struct {
	siteGen    sites.Generator
	runs       []Run
	sampleSize *int

	currSite *sites.Site
	currRun  int
	emitted  int
}

// NewGenerator constructs a Generator pairing every Site siteGen yields
// with every run in runs, in list order. If sampleSize is non-nil,
// enumeration stops after that many items regardless of how many sites
// remain.
func NewGenerator(siteGen sites.Generator, runs []Run, sampleSize *int) *Generator {
	return &Generator{siteGen: siteGen, runs: runs, sampleSize: sampleSize}
}

// Next returns the next Context. ok is false once the generator is
// exhausted (the sample cap was hit or the underlying site generator ran
// out).
func (g *Generator) Next() (Context, bool, error) {
	if g.sampleSize != nil && g.emitted >= *g.sampleSize {
		return Context{}, false, nil
	}

	if g.currRun >= len(g.runs) {
		g.currRun = 0
		g.currSite = nil
	}

	if g.currSite == nil {
		site, ok, err := g.siteGen.Next()
		if err != nil {
			return Context{}, false, err
		}
		if !ok {
			return Context{}, false, nil
		}
		g.currSite = &site
	}

	run := g.runs[g.currRun]
	g.currRun++
	g.emitted++

	return Context{Site: *g.currSite, Run: run}, true, nil
}
