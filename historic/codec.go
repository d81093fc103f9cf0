package historic

import (
	"almanac"
	"almanac/internal/wire"
)

// typeTag is the stable persisted identity of historic dates.
const typeTag = 6

// MarshalBinary encodes the date as its type tag, variant string, era
// and (year of era, month, day).
func (d Date) MarshalBinary() ([]byte, error) {
	b := wire.AppendUint8(nil, typeTag)
	b = wire.AppendString(b, d.sys.variant)
	b = wire.AppendString(b, d.eraName)
	b = wire.AppendInt32(b, int32(d.yearOfEra))
	b = wire.AppendUint8(b, uint8(d.month))
	b = wire.AppendUint8(b, uint8(d.day))
	return b, nil
}

// DecodeDate reverses MarshalBinary, reconstructing the variant system
// and validating the fields against it.
func DecodeDate(data []byte) (Date, error) {
	tag, rest, err := wire.ReadUint8(data)
	if err != nil {
		return Date{}, err
	}
	if tag != typeTag {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "type tag %d is not a historic date", tag)
	}
	variant, rest, err := wire.ReadString(rest)
	if err != nil {
		return Date{}, err
	}
	sys, err := NewSystem(variant)
	if err != nil {
		return Date{}, err
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
	day, _, err := wire.ReadUint8(rest)
	if err != nil {
		return Date{}, err
	}
	return sys.New(eraName, int(year), int(month), int(day))
}
