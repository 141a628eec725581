package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/storage"
)

func testBase(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Size = 48
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestParseGallery(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		entries int
		wantErr error
	}{
		{
			name: "two entries",
			data: `name: demo
size: 64
entries:
  - seed: alpha
    svg: true
  - preset: binary
    seed: beta
    advance: 3
`,
			entries: 2,
		},
		{name: "no entries", data: "name: empty\n", wantErr: ErrEmptyGallery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGallery([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if len(g.Entries) != tt.entries {
				t.Errorf("entries = %d, want %d", len(g.Entries), tt.entries)
			}
		})
	}
}

func TestParseGalleryRejectsBadInput(t *testing.T) {
	for _, data := range []string{"entries: [", "size: -1\nentries:\n  - seed: x\n"} {
		if _, err := ParseGallery([]byte(data)); err == nil {
			t.Errorf("ParseGallery(%q) succeeded", data)
		}
	}
}

func TestLoadGallery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.yaml")
	if err := os.WriteFile(path, []byte("entries:\n  - seed: one\n  - name: two\n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadGallery(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if g.Entries[0].Label() != "one" || g.Entries[1].Label() != "two" {
		t.Errorf("labels = %q, %q", g.Entries[0].Label(), g.Entries[1].Label())
	}
	if (Entry{}).Label() != "(base)" {
		t.Errorf("empty label = %q", Entry{}.Label())
	}
}

func TestSeedRange(t *testing.T) {
	g := SeedRange("hunt", 3)
	if len(g.Entries) != 3 {
		t.Fatalf("entries = %d", len(g.Entries))
	}
	if g.Entries[2].Seed != "hunt-2" {
		t.Errorf("seed = %q", g.Entries[2].Seed)
	}
}

func TestRunnerWritesExports(t *testing.T) {
	base := testBase(t)
	st := storage.New(base.DataDir)
	g := &Gallery{Entries: []Entry{
		{Seed: "alpha", SVG: true},
		{Preset: "binary", Seed: "beta", Advance: 2, Caption: "beta"},
		{Preset: "nope"},
		{Seed: "alpha"},
	}}

	results, err := NewRunner(base, st, 2, nil).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != len(g.Entries) {
		t.Fatalf("results = %d", len(results))
	}
	if !errors.Is(results[2].Err, config.ErrUnknownPreset) {
		t.Errorf("unknown preset err = %v", results[2].Err)
	}
	for _, i := range []int{0, 1, 3} {
		res := results[i]
		if res.Err != nil {
			t.Fatalf("entry %d failed: %v", i, res.Err)
		}
		if res.Entry != g.Entries[i] {
			t.Errorf("result %d is out of order", i)
		}
		if res.ID == "" {
			t.Errorf("entry %d has no export id", i)
		}
		for _, name := range []string{"closure_rate", "occlusion", "steps_per_frame"} {
			if _, ok := res.Metrics[name]; !ok {
				t.Errorf("entry %d missing metric %s", i, name)
			}
		}
	}
	if results[0].ID == results[3].ID {
		t.Error("same seed shared an export id")
	}
	if results[1].Summary.Seed != "beta" {
		t.Errorf("summary seed = %q", results[1].Summary.Seed)
	}

	meta, err := st.Load(results[0].ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(meta.Artefacts) != 2 || meta.Artefacts[1] != svgName {
		t.Errorf("artefacts = %v", meta.Artefacts)
	}
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("exports = %d, want 3", len(runs))
	}
}

func TestRunnerWithoutStore(t *testing.T) {
	base := testBase(t)
	results, err := NewRunner(base, nil, 0, nil).Run(context.Background(), SeedRange("s", 2))
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range results {
		if res.Err != nil || res.ID != "" {
			t.Errorf("result = %+v", res)
		}
	}
	entries, err := os.ReadDir(base.DataDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("data dir has %d entries", len(entries))
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewRunner(testBase(t), nil, 1, nil).Run(ctx, SeedRange("c", 4))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	for _, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("entry %s err = %v", res.Entry.Seed, res.Err)
		}
	}
}

func TestRank(t *testing.T) {
	results := []Result{
		{Entry: Entry{Seed: "a"}, Metrics: map[string]float64{"closure_rate": 0.2}},
		{Entry: Entry{Seed: "b"}, Err: errors.New("boom")},
		{Entry: Entry{Seed: "c"}, Metrics: map[string]float64{"closure_rate": 0.9}},
		{Entry: Entry{Seed: "d"}, Metrics: map[string]float64{"occlusion": 1}},
		{Entry: Entry{Seed: "e"}, Metrics: map[string]float64{"closure_rate": 0.5}},
	}

	ranked := Rank(results, "closure_rate")
	want := []string{"c", "e", "a"}
	if len(ranked) != len(want) {
		t.Fatalf("ranked = %d, want %d", len(ranked), len(want))
	}
	for i, seed := range want {
		if ranked[i].Entry.Seed != seed {
			t.Errorf("rank %d = %s, want %s", i, ranked[i].Entry.Seed, seed)
		}
	}
}
