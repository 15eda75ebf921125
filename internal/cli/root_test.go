package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"grove-cli/internal/model"
	"grove-cli/internal/store"
)

func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func seedStore(t *testing.T, dir string, seeds ...model.Seed) {
	t.Helper()
	s := store.Store{Dir: dir}
	for i := range seeds {
		seeds[i] = store.Normalize(seeds[i])
	}
	if err := s.SaveAll(seeds); err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func TestSeedsCountEmpty(t *testing.T) {
	dir := t.TempDir()
	out, err := runCmd(t, dir, "seeds", "count")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("count output not JSON: %v (%q)", err, out)
	}
	if got["count"] != 0 {
		t.Fatalf("count = %d; want 0", got["count"])
	}
}

func TestSeedsListFiltersByClass(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir,
		model.Seed{ID: "seed-g", Class: model.ClassGreen},
		model.Seed{ID: "seed-y", Class: model.ClassYellow},
	)

	out, err := runCmd(t, dir, "seeds", "list", "--class", "green")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []model.Seed
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("list output not JSON: %v", err)
	}
	if len(got) != 1 || got[0].ID != "seed-g" {
		t.Fatalf("filtered list wrong: %+v", got)
	}
}

func TestSeedsShowAndDelete(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir, model.Seed{ID: "seed-a", Ghost: "hello", Class: model.ClassRed})

	out, err := runCmd(t, dir, "seeds", "show", "seed-a")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var seed model.Seed
	if err := json.Unmarshal([]byte(out), &seed); err != nil {
		t.Fatalf("show output not JSON: %v", err)
	}
	if seed.Ghost != "hello" {
		t.Fatalf("shown seed wrong: %+v", seed)
	}

	if _, err := runCmd(t, dir, "seeds", "delete", "seed-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := runCmd(t, dir, "seeds", "show", "seed-a"); err == nil {
		t.Fatal("show after delete should fail")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir, model.Seed{ID: "seed-a", Ghost: "kept"})
	exportPath := filepath.Join(t.TempDir(), "out.json")

	if _, err := runCmd(t, dir, "export", exportPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	// Import into a different, pre-populated grove: replace, not merge.
	dir2 := t.TempDir()
	seedStore(t, dir2, model.Seed{ID: "seed-old", Ghost: "gone"})
	if _, err := runCmd(t, dir2, "import", exportPath); err != nil {
		t.Fatalf("import: %v", err)
	}

	seeds := (store.Store{Dir: dir2}).LoadAll()
	if len(seeds) != 1 || seeds[0].ID != "seed-a" {
		t.Fatalf("import should replace wholesale: %+v", seeds)
	}
}

func TestImportRejectsNonArrayFile(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir, model.Seed{ID: "seed-keep"})

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o644); err != nil {
		t.Fatalf("write bad file: %v", err)
	}
	if _, err := runCmd(t, dir, "import", bad); err == nil {
		t.Fatal("non-array import should fail")
	}
	seeds := (store.Store{Dir: dir}).LoadAll()
	if len(seeds) != 1 || seeds[0].ID != "seed-keep" {
		t.Fatalf("rejected import touched the store: %+v", seeds)
	}
}

func TestAskClassifiesAndPlants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			return // availability probe
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"a remembered thing"}`))
	}))
	defer srv.Close()
	t.Setenv("GROVE_API_URL", srv.URL)

	dir := t.TempDir()
	out, err := runCmd(t, dir, "ask", "what was lost?", "--class", "green", "--note", "rings true")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	var got struct {
		Ghost   string     `json:"ghost"`
		Planted model.Seed `json:"planted"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("ask output not JSON: %v (%q)", err, out)
	}
	if got.Ghost != "a remembered thing" {
		t.Fatalf("ghost = %q", got.Ghost)
	}
	if got.Planted.Class != model.ClassGreen || got.Planted.Note != "rings true" {
		t.Fatalf("planted seed wrong: %+v", got.Planted)
	}

	seeds := (store.Store{Dir: dir}).LoadAll()
	if len(seeds) != 1 || seeds[0].Ghost != "a remembered thing" {
		t.Fatalf("seed not persisted: %+v", seeds)
	}
}

func TestAskUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	t.Setenv("GROVE_API_URL", url)

	dir := t.TempDir()
	if _, err := runCmd(t, dir, "ask", "anyone there?"); err == nil {
		t.Fatal("ask against a dead endpoint should fail the preflight")
	}
	if (store.Store{Dir: dir}).Count() != 0 {
		t.Fatal("failed ask must not plant anything")
	}
}

func TestDemoCommandPlantsOnce(t *testing.T) {
	dir := t.TempDir()
	out, err := runCmd(t, dir, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	var got struct {
		Planted bool `json:"planted"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("demo output not JSON: %v", err)
	}
	if !got.Planted || got.Count == 0 {
		t.Fatalf("first demo run = %+v", got)
	}

	out, err = runCmd(t, dir, "demo")
	if err != nil {
		t.Fatalf("second demo: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("demo output not JSON: %v", err)
	}
	if got.Planted {
		t.Fatal("second demo run should not plant")
	}
}
