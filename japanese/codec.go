package japanese

import (
	"almanac"
	"almanac/internal/wire"
)

// typeTag is the stable persisted identity of Japanese lunisolar dates.
const typeTag = 5

// MarshalBinary encodes the date as its type tag plus (era name, year of
// era, month, leap flag, day).
func (d Date) MarshalBinary() ([]byte, error) {
	b := wire.AppendUint8(nil, typeTag)
	b = wire.AppendString(b, d.era.Name)
	b = wire.AppendInt32(b, int32(d.year))
	b = wire.AppendUint8(b, uint8(d.month.Number))
	leap := uint8(0)
	if d.month.Leap {
		leap = 1
	}
	b = wire.AppendUint8(b, leap)
	b = wire.AppendUint8(b, uint8(d.day))
	return b, nil
}

// DecodeDate reverses MarshalBinary against this system. The era is
// validated strictly: a persisted date is expected to name its true era.
func (s *System) DecodeDate(data []byte) (Date, error) {
	tag, rest, err := wire.ReadUint8(data)
	if err != nil {
		return Date{}, err
	}
	if tag != typeTag {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "type tag %d is not a japanese date", tag)
	}
	eraName, rest, err := wire.ReadString(rest)
	if err != nil {
		return Date{}, err
	}
	year, rest, err := wire.ReadInt32(rest)
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
	return s.New(eraName, int(year), almanac.MonthSpec{Number: int(month), Leap: leap != 0}, int(day), almanac.Strict)
}
