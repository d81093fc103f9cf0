// Package registry resolves calendar variant strings to their calendar
// systems. Lookups are memoized: table-driven systems load their data on
// first use, concurrent first-time constructions are permitted, and all
// callers converge on one canonical instance.
//
// A registry can be pointed at a data directory holding resource files
// ("islamic-umalqura.data", "chinese.data", "japanese.data") that
// override the compiled-in tables; Watch reloads such systems when their
// backing file changes on disk.
package registry

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"almanac"
	"almanac/chinese"
	"almanac/coptic"
	"almanac/hijri"
	"almanac/historic"
	"almanac/indian"
	"almanac/japanese"
)

// System is the variant-independent surface every calendar system
// implements.
type System interface {
	Variant() string
	MinEpochDay() almanac.EpochDay
	MaxEpochDay() almanac.EpochDay
}

// Registry memoizes variant lookups. The zero value is not usable;
// construct with New.
type Registry struct {
	dataDir string
	systems sync.Map // variant string -> System
}

// Option configures a Registry.
type Option func(*Registry)

// WithDataDir prefers resource files under dir over the embedded tables
// for table-driven variants.
func WithDataDir(dir string) Option {
	return func(r *Registry) { r.dataDir = dir }
}

// New constructs a Registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultRegistry backs the package-level Lookup.
var defaultRegistry = New()

// Lookup resolves a variant string against the process-wide registry.
func Lookup(variant string) (System, error) {
	return defaultRegistry.Lookup(variant)
}

// Lookup resolves a variant string to its calendar system, constructing
// and memoizing it on first use. Construction may race with other
// callers; losing constructions are discarded so every caller observes
// the same instance.
func (r *Registry) Lookup(variant string) (System, error) {
	if cached, ok := r.systems.Load(variant); ok {
		return cached.(System), nil
	}
	built, err := r.construct(variant)
	if err != nil {
		return nil, err
	}
	canonical, _ := r.systems.LoadOrStore(variant, built)
	return canonical.(System), nil
}

// Invalidate drops the memoized system for a variant; the next Lookup
// reconstructs it.
func (r *Registry) Invalidate(variant string) {
	r.systems.Delete(variant)
}

func (r *Registry) construct(variant string) (System, error) {
	switch {
	case variant == "coptic":
		return coptic.Calendar{}, nil
	case variant == "indian":
		return indian.Calendar{}, nil
	case variant == "chinese":
		if data, ok := r.readData("chinese"); ok {
			return chinese.NewSystemWithData(data)
		}
		return chinese.NewSystem()
	case variant == "japanese":
		if data, ok := r.readData("japanese"); ok {
			return japanese.NewSystemWithData(data)
		}
		return japanese.NewSystem()
	case variant == historic.VariantPrefix || strings.HasPrefix(variant, historic.VariantPrefix+":"):
		return historic.NewSystem(variant)
	case strings.HasPrefix(variant, "islamic-"):
		base, _, err := hijri.ParseVariant(variant)
		if err != nil {
			return nil, err
		}
		if base == hijri.VariantUmalqura {
			if data, ok := r.readData(base); ok {
				return hijri.NewSystemWithData(variant, data)
			}
		}
		return hijri.NewSystem(variant)
	default:
		return nil, almanac.Errorf(almanac.UnsupportedVariant, "unknown calendar variant %q", variant)
	}
}

// readData returns the on-disk override for a table-driven variant, if
// the registry has a data directory and the file exists.
func (r *Registry) readData(base string) ([]byte, bool) {
	if r.dataDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(r.dataDir, base+".data"))
	if err != nil {
		return nil, false
	}
	return data, true
}
