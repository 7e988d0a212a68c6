package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/dentaview/internal/clock"
	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/resource"
	"github.com/Faultbox/dentaview/internal/teeth"
	"github.com/Faultbox/dentaview/internal/ui"
	"github.com/Faultbox/dentaview/internal/viewer"
)

const stlTriangle = `solid jaw
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 10 0 0
      vertex 0 20 4
    endloop
  endfacet
endsolid jaw
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range []string{"lower_jaw.stl", "upper_jaw.stl"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(stlTriangle), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "session.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(t *testing.T) (*Runner, *viewer.Controller) {
	t.Helper()
	cfg := config.Default()
	clk := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctrl := viewer.New(cfg.Viewer, loader.New(resource.NewRegistry(), cfg.Viewer.RestPositions), clk)
	t.Cleanup(func() { ctrl.Close() })
	return NewRunner(ctrl, clk), ctrl
}

func TestReplay(t *testing.T) {
	path := writeScript(t, `
files: [lower_jaw.stl, upper_jaw.stl]
steps:
  - action: upload
  - wait: 1.5s
  - action: labels
  - action: segments
  - action: settle
  - action: select-tooth
    value: 3
  - action: jaw-offset
    value: 8
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r, ctrl := newRunner(t)

	recs, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(recs) != 7 {
		t.Fatalf("got %d records, want 7", len(recs))
	}
	if !recs[0].State.ModelsLoading {
		t.Error("upload step should leave models loading")
	}
	if recs[1].State.ModelsLoading || len(ctrl.State().Models) != 2 {
		t.Error("wait step should complete the load")
	}

	st := ctrl.State()
	if st.Busy() {
		t.Error("controller busy after settle")
	}
	if !st.LabelsVisible || !st.SegmentsVisible {
		t.Errorf("labels=%v segments=%v, want both visible", st.LabelsVisible, st.SegmentsVisible)
	}
	if st.SegmentRevealCount != teeth.Count() {
		t.Errorf("SegmentRevealCount = %d, want %d", st.SegmentRevealCount, teeth.Count())
	}
	if st.SelectedTooth != 3 || st.UpperJawOffset != 8 {
		t.Errorf("selected=%d offset=%v", st.SelectedTooth, st.UpperJawOffset)
	}
	for _, rec := range recs {
		if rec.Err != "" {
			t.Errorf("step %d (%s): %s", rec.Index, rec.Action, rec.Err)
		}
	}
}

func TestReplayRecordsRejectedSteps(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - action: wireframe
  - action: lighting
    value: 0.5
`), "")
	if err != nil {
		t.Fatal(err)
	}
	r, ctrl := newRunner(t)

	recs, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(recs[0].Err, "disabled") {
		t.Errorf("wireframe record err = %q", recs[0].Err)
	}
	if recs[1].Err != "" {
		t.Errorf("lighting record err = %q", recs[1].Err)
	}
	if got := ctrl.State().LightingIntensity; got < 0.49 || got > 0.51 {
		t.Errorf("LightingIntensity = %v, want 0.5", got)
	}
}

func TestReplayStrict(t *testing.T) {
	s, _ := Parse([]byte("steps:\n  - action: wireframe\n  - action: reset\n"), "")
	r, _ := newRunner(t)
	r.Strict = true

	recs, err := r.Run(context.Background(), s)
	if !errors.Is(err, ui.ErrDisabled) {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
	if len(recs) != 1 {
		t.Errorf("got %d records, want 1", len(recs))
	}
}

func TestReplayUnknownActionAborts(t *testing.T) {
	s, _ := Parse([]byte("steps:\n  - action: teleport\n  - action: reset\n"), "")
	r, _ := newRunner(t)

	_, err := r.Run(context.Background(), s)
	if !errors.Is(err, ui.ErrUnknownAction) {
		t.Fatalf("err = %v, want ErrUnknownAction", err)
	}
}

func TestParseUnknownStep(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - value: 3\n"), "")
	if !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("err = %v, want ErrUnknownStep", err)
	}
}

func TestUploadStepFileList(t *testing.T) {
	path := writeScript(t, `
steps:
  - action: upload
    value: [upper_jaw.stl]
  - action: settle
`)
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	r, ctrl := newRunner(t)
	if _, err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	models := ctrl.State().Models
	if len(models) != 1 || models[0].Jaw != teeth.Upper {
		t.Errorf("models = %+v, want one upper jaw", models)
	}
}

func TestRunCanceled(t *testing.T) {
	s, _ := Parse([]byte("steps:\n  - action: reset\n"), "")
	r, _ := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, s); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
