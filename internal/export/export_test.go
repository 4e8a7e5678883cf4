package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Faneva385/svg-initiation/internal/attrs"
	"github.com/Faneva385/svg-initiation/internal/document"
)

func testOptions() Options {
	return Options{
		ID:     "export-test",
		Size:   200,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func parse(t *testing.T, raw map[string]string) attrs.Attributes {
	t.Helper()
	a, err := attrs.Parse(raw)
	if err != nil {
		t.Fatalf("attrs.Parse: %v", err)
	}
	return a
}

func readDoc(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		t.Fatalf("parse svg: %v", err)
	}
	return doc
}

func TestRenderFinal(t *testing.T) {
	a := parse(t, map[string]string{"data": "1;2;3", "labels": "a;b;c", "donut": "0.5"})

	var buf bytes.Buffer
	if err := Render(&buf, a, 1, testOptions()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := readDoc(t, &buf)

	if n := doc.Find("path.slice").Length(); n != 3 {
		t.Errorf("slices = %d, want 3", n)
	}
	if n := doc.Find("text.label").Length(); n != 3 {
		t.Errorf("labels = %d, want 3", n)
	}
	if n := doc.Find("mask").Length(); n != 1 {
		t.Errorf("masks = %d, want 1", n)
	}
	if id, _ := doc.Find("g").First().Attr("id"); id != "export-test" {
		t.Errorf("root id = %q, want export-test", id)
	}
}

func TestRenderPartialHasNoLabels(t *testing.T) {
	a := parse(t, map[string]string{"data": "1;2;3", "labels": "a;b;c"})

	var buf bytes.Buffer
	if err := Render(&buf, a, 0.3, testOptions()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := readDoc(t, &buf)
	if n := doc.Find("text.label").Length(); n != 0 {
		t.Errorf("labels at partial progress = %d, want 0", n)
	}
	if n := doc.Find("path.slice").Length(); n != 3 {
		t.Errorf("slices = %d, want 3", n)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := parse(t, map[string]string{"data": "4;1;1", "labels": "x;y;z", "donut": "0.3"})
	var first, second bytes.Buffer
	if err := Render(&first, a, 1, testOptions()); err != nil {
		t.Fatal(err)
	}
	if err := Render(&second, a, 1, testOptions()); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("rendering the same chart twice produced different output")
	}
}

func TestRenderRejectsZeroTotal(t *testing.T) {
	a := parse(t, map[string]string{"data": "0;0"})
	if err := Render(io.Discard, a, 1, testOptions()); err == nil {
		t.Error("expected error for zero total")
	}
}

func TestFrames(t *testing.T) {
	a := parse(t, map[string]string{"data": "1;1", "labels": "l;r", "duration": "100ms"})
	dir := t.TempDir()

	opts := testOptions()
	opts.FPS = 50
	paths, err := Frames(context.Background(), a, dir, opts)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}

	// 20ms steps: four animated passes, then the settled one at 100ms.
	if len(paths) != 5 {
		t.Fatalf("frames = %d, want 5", len(paths))
	}
	if filepath.Base(paths[0]) != "frame_0000.svg" {
		t.Errorf("first frame = %s", paths[0])
	}

	for i, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		labels := readDoc(t, f).Find("text.label").Length()
		f.Close()

		last := i == len(paths)-1
		if last && labels != 2 {
			t.Errorf("final frame labels = %d, want 2", labels)
		}
		if !last && labels != 0 {
			t.Errorf("frame %d has %d labels, want 0", i, labels)
		}
	}
}

func TestFramesWithoutAnimation(t *testing.T) {
	a := parse(t, map[string]string{"data": "1", "animate": "false"})
	paths, err := Frames(context.Background(), a, t.TempDir(), testOptions())
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("frames = %d, want 1", len(paths))
	}
}

func TestFramesCanceled(t *testing.T) {
	a := parse(t, map[string]string{"data": "1;2", "duration": "1s"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Frames(ctx, a, t.TempDir(), testOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestBatch(t *testing.T) {
	m := document.NewSampleManifest()
	m.Charts = append(m.Charts, document.ChartSpec{Data: []float64{2, 3}})
	dir := t.TempDir()

	var progress bytes.Buffer
	opts := testOptions()
	opts.Workers = 2
	opts.Progress = &progress

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := Batch(ctx, m, dir, opts)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	if results[0].Name != "browsers" || results[1].Name != "budget" {
		t.Errorf("results out of manifest order: %+v", results)
	}
	if !strings.HasPrefix(results[3].Name, "chart_") {
		t.Errorf("unnamed chart got %q", results[3].Name)
	}

	for _, r := range results {
		f, err := os.Open(r.Path)
		if err != nil {
			t.Fatalf("open %s: %v", r.Path, err)
		}
		doc := readDoc(t, f)
		f.Close()
		if doc.Find("path.slice").Length() == 0 {
			t.Errorf("%s has no slices", r.Name)
		}
		id, _ := doc.Find("g").First().Attr("id")
		if id != "piechart-"+sanitizeName(r.Name) {
			t.Errorf("%s root id = %q", r.Name, id)
		}
	}

	budget := readFile(t, results[1].Path)
	if n := budget.Find("mask").Length(); n != 1 {
		t.Errorf("budget donut masks = %d, want 1", n)
	}
}

func TestBatchInvalidManifest(t *testing.T) {
	m := &document.Manifest{Charts: []document.ChartSpec{{Name: "bad", Data: []float64{0}}}}
	if _, err := Batch(context.Background(), m, t.TempDir(), testOptions()); err == nil {
		t.Error("expected error for invalid manifest")
	}
}

func TestSanitizeName(t *testing.T) {
	if got := sanitizeName("q3 sales/eu"); got != "q3-sales-eu" {
		t.Errorf("sanitizeName = %q", got)
	}
}

func readFile(t *testing.T, path string) *goquery.Document {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	return readDoc(t, f)
}
