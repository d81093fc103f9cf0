// Package era resolves era-segmented year numbering for calendars whose
// years are counted from the start of a named period: Japanese nengo,
// the Chinese sexagesimal cycle, and the AD/BC split of the historic
// calendar.
//
// An era list is ordered by start epoch day. Resolution at an era
// transition is governed by the caller's leniency: the last civil year of
// an outgoing era and the first of its successor share the same related
// year, so a date stated in the old era can name a day that already
// belongs to the new one.
package era

import (
	"sort"

	"almanac"
)

// Era is one named period of an era-segmented calendar.
type Era struct {
	// Name identifies the era ("Meiji", "AD", ...).
	Name string
	// FirstRelatedYear is the civil year in which the era begins; year 1
	// of the era corresponds to this related year.
	FirstRelatedYear int
	// Start is the first epoch day of the era.
	Start almanac.EpochDay
}

// List is an immutable ordered sequence of eras.
type List struct {
	eras []Era
}

// NewList validates and returns an era list. Eras must be strictly
// increasing in start epoch day and carry distinct names.
func NewList(eras []Era) (*List, error) {
	if len(eras) == 0 {
		return nil, almanac.NewError(almanac.InvalidDate, "era list is empty")
	}
	seen := make(map[string]bool, len(eras))
	for i, e := range eras {
		if e.Name == "" {
			return nil, almanac.Errorf(almanac.InvalidDate, "era %d has no name", i)
		}
		if seen[e.Name] {
			return nil, almanac.Errorf(almanac.InvalidDate, "duplicate era name %q", e.Name)
		}
		seen[e.Name] = true
		if i > 0 && eras[i-1].Start >= e.Start {
			return nil, almanac.Errorf(almanac.InvalidDate,
				"era %q does not start after era %q", e.Name, eras[i-1].Name)
		}
	}
	own := make([]Era, len(eras))
	copy(own, eras)
	return &List{eras: own}, nil
}

// Eras returns a copy of the ordered era sequence.
func (l *List) Eras() []Era {
	out := make([]Era, len(l.eras))
	copy(out, l.eras)
	return out
}

// First returns the earliest era.
func (l *List) First() Era { return l.eras[0] }

// Last returns the latest era.
func (l *List) Last() Era { return l.eras[len(l.eras)-1] }

// At returns the era active on the given epoch day. Days before the first
// era's start are out of range.
func (l *List) At(epochDay almanac.EpochDay) (Era, error) {
	// First era starting after the target, minus one.
	i := sort.Search(len(l.eras), func(i int) bool { return l.eras[i].Start > epochDay }) - 1
	if i < 0 {
		return Era{}, almanac.Errorf(almanac.OutOfRange,
			"epoch day %d precedes the first era %q", epochDay, l.eras[0].Name)
	}
	return l.eras[i], nil
}

// ByName returns the era with the given name.
func (l *List) ByName(name string) (Era, error) {
	for _, e := range l.eras {
		if e.Name == name {
			return e, nil
		}
	}
	return Era{}, almanac.Errorf(almanac.UnsupportedVariant, "unknown era %q", name)
}

// Next returns the era following e, if any.
func (l *List) Next(e Era) (Era, bool) {
	for i, cur := range l.eras {
		if cur.Name == e.Name && i+1 < len(l.eras) {
			return l.eras[i+1], true
		}
	}
	return Era{}, false
}

// Previous returns the era preceding e, if any.
func (l *List) Previous(e Era) (Era, bool) {
	for i, cur := range l.eras {
		if cur.Name == e.Name && i > 0 {
			return l.eras[i-1], true
		}
	}
	return Era{}, false
}

// Resolve reconciles a caller-supplied era name with the era computed for
// the epoch day under the given leniency:
//
//   - Strict: the supplied era must equal the computed era, otherwise an
//     ERA_MISMATCH error.
//   - Smart: the computed era silently replaces the supplied one.
//   - Lax: the supplied era is kept verbatim, without validation.
//
// This is the only defined way to handle the day a new era starts
// mid-month.
func (l *List) Resolve(name string, epochDay almanac.EpochDay, leniency almanac.Leniency) (Era, error) {
	supplied, err := l.ByName(name)
	if err != nil {
		return Era{}, err
	}
	if leniency == almanac.Lax {
		return supplied, nil
	}
	computed, err := l.At(epochDay)
	if err != nil {
		return Era{}, err
	}
	if computed.Name == supplied.Name {
		return supplied, nil
	}
	if leniency == almanac.Strict {
		return Era{}, almanac.Errorf(almanac.EraMismatch,
			"era %q does not match era %q active on epoch day %d", name, computed.Name, epochDay)
	}
	return computed, nil
}

// RelatedYear converts a year of the era to the civil (related) year.
func (e Era) RelatedYear(yearOfEra int) int {
	return e.FirstRelatedYear + yearOfEra - 1
}

// YearOfEra converts a civil (related) year to the year of the era.
func (e Era) YearOfEra(relatedYear int) int {
	return relatedYear - e.FirstRelatedYear + 1
}
