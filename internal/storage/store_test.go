package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/rigid2d/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times: []float64{0.0, 0.01},
		Frames: [][]sim.BodyState{
			{{X: 0, Y: 10, Angle: 0}, {X: 1, Y: 0, Angle: 0}},
			{{X: 0, Y: 9.9, Angle: 0.1}, {X: 1, Y: 0, Angle: 0}},
		},
		Metrics: map[string]float64{"kinetic_energy": 1.5},
		Steps:   1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("stack", 0.01, 1.0, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "stack" {
		t.Errorf("expected scene stack, got %s", meta.Scene)
	}
	if meta.Bodies != 2 {
		t.Errorf("expected 2 bodies, got %d", meta.Bodies)
	}
	if meta.Metrics["kinetic_energy"] != 1.5 {
		t.Errorf("expected kinetic_energy 1.5, got %f", meta.Metrics["kinetic_energy"])
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 frames and times, got %d and %d", len(frames), len(times))
	}
	if len(frames[0]) != 2 {
		t.Errorf("expected 2 bodies per frame, got %d", len(frames[0]))
	}
	if frames[1][0].Y != 9.9 {
		t.Errorf("expected y 9.9, got %f", frames[1][0].Y)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d runs", len(runs))
	}

	if _, err := st.Save("bounce", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Scene != "bounce" {
		t.Errorf("expected scene bounce, got %s", runs[0].Scene)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New("/nonexistent/base/dir")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoad_Missing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, "stack", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Scene != "stack" {
		t.Errorf("expected scene stack, got %s", data.Scene)
	}
	if len(data.Frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(data.Frames))
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSONFile(path, "stack", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Dt != 0.01 {
		t.Errorf("expected dt 0.01, got %v", out.Dt)
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,b0_x,b0_y,b0_angle") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}
