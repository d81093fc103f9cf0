package chinese

import (
	"almanac"
	"almanac/internal/wire"
)

// typeTag is the stable persisted identity of Chinese dates.
const typeTag = 4

// MarshalBinary encodes the date as its type tag plus (cycle, year of
// cycle, month, leap flag, day).
func (d Date) MarshalBinary() ([]byte, error) {
	b := wire.AppendUint8(nil, typeTag)
	b = wire.AppendInt32(b, int32(d.cycle))
	b = wire.AppendUint8(b, uint8(d.year))
	b = wire.AppendUint8(b, uint8(d.month.Number))
	leap := uint8(0)
	if d.month.Leap {
		leap = 1
	}
	b = wire.AppendUint8(b, leap)
	b = wire.AppendUint8(b, uint8(d.day))
	return b, nil
}

// DecodeDate reverses MarshalBinary against this system, validating the
// reconstructed fields, including the leap flag, against the table.
func (s *System) DecodeDate(data []byte) (Date, error) {
	tag, rest, err := wire.ReadUint8(data)
	if err != nil {
		return Date{}, err
	}
	if tag != typeTag {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "type tag %d is not a chinese date", tag)
	}
	cycle, rest, err := wire.ReadInt32(rest)
	if err != nil {
		return Date{}, err
	}
	year, rest, err := wire.ReadUint8(rest)
	if err != nil {
		return Date{}, err
	}
	month, rest, err := wire.ReadUint8(rest)
	if err != nil {
		return Date{}, err
	}
	leap, rest, err := wire.ReadUint8(rest)
	if err != nil {
		return Date{}, err
	}
	day, _, err := wire.ReadUint8(rest)
	if err != nil {
		return Date{}, err
	}
	return s.New(int(cycle), int(year), almanac.MonthSpec{Number: int(month), Leap: leap != 0}, int(day))
}
