package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"almanac"
)

const smallUmalquraTable = `type = islamic-umalqura
version = 1.0
iso-start = 1999-04-17
min = 1420
max = 1421
1420 = 29 30 30 30 29 30 29 30 29 30 29 29
1421 = 30 29 30 30 29 30 29 30 29 30 29 29
`

func TestLookupKnownVariants(t *testing.T) {
	r := New()

	variants := []string{
		"coptic",
		"indian",
		"chinese",
		"japanese",
		"historic",
		"historic:1752-09-14",
		"islamic-east-civil",
		"islamic-west-astro:-1",
		"islamic-umalqura",
	}

	for _, variant := range variants {
		t.Run(variant, func(t *testing.T) {
			s, err := r.Lookup(variant)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", variant, err)
			}
			if s.Variant() != variant {
				t.Errorf("Variant() = %q, want %q", s.Variant(), variant)
			}
			if s.MinEpochDay() > s.MaxEpochDay() {
				t.Errorf("empty range [%d,%d]", s.MinEpochDay(), s.MaxEpochDay())
			}
		})
	}
}

func TestLookupUnknownVariant(t *testing.T) {
	r := New()

	for _, variant := range []string{"gregorian", "islamic", "historic-1752", ""} {
		if _, err := r.Lookup(variant); !almanac.IsKind(err, almanac.UnsupportedVariant) {
			t.Errorf("Lookup(%q): error = %v, want UNSUPPORTED_VARIANT", variant, err)
		}
	}
}

func TestPackageLevelLookup(t *testing.T) {
	s, err := Lookup("coptic")
	if err != nil {
		t.Fatalf("Lookup(coptic) error: %v", err)
	}
	if s.Variant() != "coptic" {
		t.Errorf("Variant() = %q", s.Variant())
	}
}

func TestLookupMemoizes(t *testing.T) {
	r := New()

	first, err := r.Lookup("japanese")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Lookup("japanese")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second lookup returned a different instance")
	}

	r.Invalidate("japanese")
	third, err := r.Lookup("japanese")
	if err != nil {
		t.Fatal(err)
	}
	if third == nil {
		t.Fatal("lookup after invalidation returned nil")
	}
}

func TestConcurrentLookupsConverge(t *testing.T) {
	r := New()

	const workers = 32
	results := make([]System, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := r.Lookup("chinese")
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d observed a different instance", i)
		}
	}
}

func TestDataDirOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "islamic-umalqura.data")
	if err := os.WriteFile(path, []byte(smallUmalquraTable), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(WithDataDir(dir))
	s, err := r.Lookup("islamic-umalqura")
	if err != nil {
		t.Fatalf("Lookup with data dir error: %v", err)
	}
	// The override table covers two years (708 days), far less than the
	// embedded one.
	if got := int64(s.MaxEpochDay() - s.MinEpochDay() + 1); got != 708 {
		t.Errorf("override table spans %d days, want 708", got)
	}

	// A registry without the data dir keeps the embedded table.
	embedded, err := New().Lookup("islamic-umalqura")
	if err != nil {
		t.Fatal(err)
	}
	if embedded.MaxEpochDay() == s.MaxEpochDay() {
		t.Error("override table not used")
	}
}

func TestDataDirMalformedTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "islamic-umalqura.data")
	if err := os.WriteFile(path, []byte("type = islamic-umalqura\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(WithDataDir(dir))
	if _, err := r.Lookup("islamic-umalqura"); !almanac.IsKind(err, almanac.ResourceFormat) {
		t.Errorf("malformed override: error = %v, want RESOURCE_FORMAT", err)
	}
}

func TestWatchReloadsChangedTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "islamic-umalqura.data")
	if err := os.WriteFile(path, []byte(smallUmalquraTable), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(WithDataDir(dir))
	before, err := r.Lookup("islamic-umalqura")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx) }()

	// Give the watcher a moment to register before touching the file.
	time.Sleep(100 * time.Millisecond)

	extended := strings.Replace(smallUmalquraTable, "max = 1421", "max = 1422", 1) +
		"1422 = 30 29 30 30 29 30 29 30 29 30 29 29\n"
	if err := os.WriteFile(path, []byte(extended), 0o644); err != nil {
		t.Fatal(err)
	}

	// The debounced invalidation lands within a few hundred milliseconds;
	// poll until the reloaded table shows the extra year.
	deadline := time.Now().Add(5 * time.Second)
	for {
		after, err := r.Lookup("islamic-umalqura")
		if err == nil && after.MaxEpochDay() > before.MaxEpochDay() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("watched change never reloaded the table")
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Watch() returned %v, want context.Canceled", err)
	}
}

func TestWatchWithoutDataDir(t *testing.T) {
	r := New()
	if err := r.Watch(context.Background()); err != nil {
		t.Errorf("Watch without data dir = %v, want nil", err)
	}
}
