package papertab

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/papertab/tables"
)

func writeCorpus(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestProcessCorpus(t *testing.T) {
	paths := writeCorpus(t, map[string]string{
		"a.txt": splitTable,
		"b.txt": "[12] Method A 94.2% 0.81\n[13] Method B 91.0% 0.77\n[14] Method C 96.5% 0.83\n",
		"c.txt": "Nothing tabular here.\n",
	})
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	paths = append(paths, missing)

	opts := DefaultCorpusOptions()
	opts.Workers = 2
	summary, warnings, err := ProcessCorpus(context.Background(), paths, opts)
	if err != nil {
		t.Fatalf("ProcessCorpus() error = %v", err)
	}

	if summary.Files != 3 {
		t.Errorf("Files = %d, want 3", summary.Files)
	}
	if summary.Tables != 2 || summary.Valid != 2 || summary.Merged != 1 {
		t.Errorf("summary = %d tables, %d valid, %d merged; want 2, 2, 1", summary.Tables, summary.Valid, summary.Merged)
	}
	if summary.Issues["No tables found"] != 1 {
		t.Errorf("Issues = %v", summary.Issues)
	}
	if len(summary.Documents) != 3 {
		t.Fatalf("len(Documents) = %d, want 3", len(summary.Documents))
	}
	for i, want := range []string{"a.txt", "b.txt", "c.txt"} {
		if got := filepath.Base(summary.Documents[i].Name); got != want {
			t.Errorf("Documents[%d] = %s, want %s", i, got, want)
		}
	}

	if len(warnings) != 1 || warnings[0].Kind != WarningDocumentFailed || warnings[0].Source != missing {
		t.Errorf("warnings = %v, want one document failure for %s", warnings, missing)
	}
}

func TestProcessCorpus_InvalidConfig(t *testing.T) {
	opts := DefaultCorpusOptions()
	opts.Config.MinRows = 0

	if _, _, err := ProcessCorpus(context.Background(), nil, opts); !errors.Is(err, tables.ErrInvalidConfig) {
		t.Errorf("ProcessCorpus() error = %v, want ErrInvalidConfig", err)
	}
}

func TestProcessCorpus_Cancelled(t *testing.T) {
	paths := writeCorpus(t, map[string]string{"a.txt": splitTable})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := ProcessCorpus(ctx, paths, DefaultCorpusOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("ProcessCorpus() error = %v, want context.Canceled", err)
	}
}

func TestProcessCorpus_Empty(t *testing.T) {
	summary, warnings, err := ProcessCorpus(context.Background(), nil, DefaultCorpusOptions())
	if err != nil || summary.Files != 0 || len(warnings) != 0 {
		t.Errorf("ProcessCorpus(nil) = %+v, %v, %v", summary, warnings, err)
	}
}
