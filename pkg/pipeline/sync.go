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
	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/processor"
	"github.com/geobatch/geobatch/pkg/template"
)

// Sync runs its Processor once, on the calling goroutine.
type Sync struct {
	Processor processor.Processor
}

// Conduct implements Pipeline.
func (s *Sync) Conduct(out chan<- context.Context, in <-chan context.Context, templates *template.Engine) error {
	return s.Processor.Process(out, in, templates)
}
