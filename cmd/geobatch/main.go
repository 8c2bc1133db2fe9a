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

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/geobatch/geobatch/pkg/config"
	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/pipeline"
	"github.com/geobatch/geobatch/pkg/processor"
	"github.com/geobatch/geobatch/pkg/sites"
	"github.com/geobatch/geobatch/pkg/template"
	"github.com/geobatch/geobatch/pkg/version"
	"github.com/geobatch/geobatch/pkg/workdir"
)

const defaultNamespace = "std"

func main() {
	var (
		configFile         string
		workers            int
		pipelineBufferSize int
		workdirPath        string
		keepWorkdir        bool
		clearWorkdir       bool
		dumpPointer        string
	)

	flag.StringVar(&configFile, "config-file", "config.json", "path to the run configuration file")
	flag.StringVar(&configFile, "c", "config.json", "shorthand for --config-file")
	flag.IntVar(&workers, "workers", 0, "number of worker goroutines; 0 selects the number of logical CPUs, 1 selects the single-threaded pipeline")
	flag.IntVar(&workers, "w", 0, "shorthand for --workers")
	flag.IntVar(&pipelineBufferSize, "pipeline-buffer-size", 128, "capacity of the channels between producer, pipeline, and sink")
	flag.IntVar(&pipelineBufferSize, "p", 128, "shorthand for --pipeline-buffer-size")
	flag.StringVar(&workdirPath, "workdir", "", "explicit working directory; a temp directory is used if unset")
	flag.StringVar(&workdirPath, "d", "", "shorthand for --workdir")
	flag.BoolVar(&keepWorkdir, "keep-workdir", false, "keep the temp workdir on exit; ignored when --workdir is set")
	flag.BoolVar(&keepWorkdir, "k", false, "shorthand for --keep-workdir")
	flag.BoolVar(&clearWorkdir, "clear-workdir", false, "clear a non-empty --workdir before use")
	flag.StringVar(&dumpPointer, "dump-pointer", "", "resolve an RFC 6901 JSON pointer against --config-file and exit, bypassing registry resolution")
	flag.Parse()

	glog.Infof("%s %s (git commit %s)", version.Application, version.Version, version.GitCommit)

	if dumpPointer != "" {
		value, err := config.DumpPointer(configFile, dumpPointer)
		if err != nil {
			glog.Errorf("%v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%v\n", value)
		return
	}

	if err := run(configFile, workers, pipelineBufferSize, workdirPath, keepWorkdir, clearWorkdir); err != nil {
		glog.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string, workers, bufferSize int, workdirPath string, keepWorkdir, clearWorkdir bool) error {
	if err := config.ValidateWorkdirOverride(workdirPath, clearWorkdir); err != nil {
		return err
	}

	registries := sites.NewRegistries()
	if err := sites.RegisterStandardDrivers(registries); err != nil {
		return err
	}

	cfg, err := config.Load(configFile, config.Seed{Registries: registries, DefaultNamespace: defaultNamespace})
	if err != nil {
		return err
	}

	dir, removeOnExit, err := workdir.Make(workdir.Options{Path: workdirPath, Keep: keepWorkdir, Clear: clearWorkdir})
	if err != nil {
		return err
	}
	if removeOnExit {
		defer os.RemoveAll(dir)
	}

	siteGen, err := cfg.Driver.Create(cfg.DriverConfig)
	if err != nil {
		return err
	}
	defer siteGen.Close()

	engine := template.NewEngine()
	for _, r := range cfg.Runs {
		if err := engine.Register(r.Name, r.TemplatePath); err != nil {
			return err
		}
	}

	resolvedWorkers := workers
	if resolvedWorkers == 0 {
		resolvedWorkers = runtime.NumCPU()
	}

	pl, err := pipeline.New(resolvedWorkers, &processor.Unbatched{Workdir: dir})
	if err != nil {
		return err
	}

	runID := uuid.New()
	glog.Infof("run %s: workdir=%q workers=%d buffer=%d", runID, dir, resolvedWorkers, bufferSize)

	in := make(chan context.Context, bufferSize)
	out := make(chan context.Context, bufferSize)

	gen := context.NewGenerator(siteGen, cfg.Runs, cfg.SampleSize)

	go produce(gen, in)

	conductErr := make(chan error, 1)
	go func() {
		conductErr <- pl.Conduct(out, in, engine)
		close(out)
	}()

	count := 0
	for range out {
		count++
	}

	if err := <-conductErr; err != nil {
		return err
	}

	glog.Infof("run %s: processed %d contexts", runID, count)

	return nil
}

// produce drains gen into in, closing in when the generator is exhausted.
// A mid-iteration driver error is logged; the generator simply stops
// early rather than silently dropping the producer goroutine.
func produce(gen *context.Generator, in chan<- context.Context) {
	defer close(in)

	for {
		ctx, ok, err := gen.Next()
		if err != nil {
			glog.Errorf("context generator: %v", err)
			return
		}
		if !ok {
			return
		}
		in <- ctx
	}
}
