package history

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeHistory(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "history.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_LoadAndMemoize(t *testing.T) {
	path := writeHistory(t, t.TempDir(), `[[1700000000000, 1950.5]]`)
	l := NewLoader(path)

	raw, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 record, got %d", len(raw))
	}

	// A rewritten file must not be observed without a Reset.
	if err := os.WriteFile(path, []byte(`[]`), 0644); err != nil {
		t.Fatal(err)
	}
	raw, err = l.Load()
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("memo not retained: got %d records", len(raw))
	}

	l.Reset()
	raw, err = l.Load()
	if err != nil {
		t.Fatalf("load after reset: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("reset not honored: got %d records", len(raw))
	}
}

func TestLoader_NonArrayTreatedAsEmpty(t *testing.T) {
	path := writeHistory(t, t.TempDir(), `{"not": "an array"}`)
	l := NewLoader(path)

	raw, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("expected empty collection, got %d records", len(raw))
	}
}

func TestLoader_FailureClearsMemoForRetry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	l := NewLoader(path)

	if _, err := l.Load(); err == nil {
		t.Fatal("expected error for missing file")
	}

	// A later request retries from scratch and succeeds.
	if err := os.WriteFile(path, []byte(`[[1700000000000, 1950.5]]`), 0644); err != nil {
		t.Fatal(err)
	}
	raw, err := l.Load()
	if err != nil {
		t.Fatalf("retry load: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("expected 1 record after retry, got %d", len(raw))
	}
}

func TestLoader_ParseErrorSurfaced(t *testing.T) {
	path := writeHistory(t, t.TempDir(), `{corrupt`)
	l := NewLoader(path)
	if _, err := l.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoader_ConcurrentLoadsShareResult(t *testing.T) {
	path := writeHistory(t, t.TempDir(), `[[1700000000000, 1950.5]]`)
	l := NewLoader(path)

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw, err := l.Load()
			if err == nil && len(raw) != 1 {
				err = os.ErrInvalid
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("goroutine %d: %v", i, err)
		}
	}
}
