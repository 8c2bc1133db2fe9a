package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geobatch/geobatch/pkg/context"
	"github.com/geobatch/geobatch/pkg/geo"
	"github.com/geobatch/geobatch/pkg/sites"
	"github.com/geobatch/geobatch/pkg/template"
)

func TestUnbatchedProcessOne(t *testing.T) {
	workdir := t.TempDir()
	tmplPath := filepath.Join(t.TempDir(), "r1.tmpl")
	if err := os.WriteFile(tmplPath, []byte("id={{.site_id}}"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	engine := template.NewEngine()
	if err := engine.Register("r1", tmplPath); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p := &Unbatched{Workdir: workdir}

	in := make(chan context.Context, 1)
	out := make(chan context.Context, 1)

	ctx := context.Context{
		Site: sites.Site{ID: 9, Lon: geo.FromFloat64(1), Lat: geo.FromFloat64(2)},
		Run:  context.Run{Name: "r1"},
	}
	in <- ctx
	close(in)

	if err := p.Process(out, in, engine); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	close(out)

	got := <-out
	if got.Site.ID != ctx.Site.ID {
		t.Fatalf("forwarded context mismatch: got id %d, want %d", got.Site.ID, ctx.Site.ID)
	}

	rendered, err := os.ReadFile(ctx.Dir(workdir) + "/r1.tmpl")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(rendered) != "id=9" {
		t.Fatalf("rendered content = %q, want %q", rendered, "id=9")
	}
}

func TestUnbatchedMissingTemplateIsFatal(t *testing.T) {
	workdir := t.TempDir()
	engine := template.NewEngine()
	p := &Unbatched{Workdir: workdir}

	in := make(chan context.Context, 1)
	out := make(chan context.Context, 1)
	in <- context.Context{Run: context.Run{Name: "missing"}}
	close(in)

	if err := p.Process(out, in, engine); err == nil {
		t.Fatalf("expected an error for a missing template registration")
	}
}

func TestUnbatchedRenderFailureIsFatal(t *testing.T) {
	workdir := t.TempDir()
	tmplPath := filepath.Join(t.TempDir(), "r1.tmpl")
	if err := os.WriteFile(tmplPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	engine := template.NewEngine()
	if err := engine.Register("r1", tmplPath); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	dangling, err := context.TemplateString("${nowhere}")
	if err != nil {
		t.Fatalf("TemplateString() error = %v", err)
	}

	p := &Unbatched{Workdir: workdir}

	in := make(chan context.Context, 1)
	out := make(chan context.Context, 1)
	in <- context.Context{
		Run: context.Run{Name: "r1", Extra: map[string]context.Value{"bad": dangling}},
	}
	close(in)

	if err := p.Process(out, in, engine); err == nil {
		t.Fatalf("expected a render failure to be fatal to the worker")
	}
}

func TestUnbatchedClosedOutputChannelBecomesError(t *testing.T) {
	workdir := t.TempDir()
	tmplPath := filepath.Join(t.TempDir(), "r1.tmpl")
	if err := os.WriteFile(tmplPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	engine := template.NewEngine()
	if err := engine.Register("r1", tmplPath); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p := &Unbatched{Workdir: workdir}

	in := make(chan context.Context, 1)
	out := make(chan context.Context)
	close(out)

	in <- context.Context{Run: context.Run{Name: "r1"}}
	close(in)

	if err := p.Process(out, in, engine); err == nil {
		t.Fatalf("expected a send on a closed output channel to surface as an error")
	}
}
