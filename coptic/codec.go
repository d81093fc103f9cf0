package coptic

import (
	"almanac"
	"almanac/internal/wire"
)

// typeTag is the stable persisted identity of Coptic dates.
const typeTag = 1

// MarshalBinary encodes the date as its type tag plus the minimal field
// set (year, month, day); decoding reconstructs the value without any
// formatting state.
func (d Date) MarshalBinary() ([]byte, error) {
	b := wire.AppendUint8(nil, typeTag)
	b = wire.AppendInt32(b, int32(d.year))
	b = wire.AppendUint8(b, uint8(d.month))
	b = wire.AppendUint8(b, uint8(d.day))
	return b, nil
}

// DecodeDate reverses MarshalBinary, validating the reconstructed
// fields.
func DecodeDate(data []byte) (Date, error) {
	tag, rest, err := wire.ReadUint8(data)
	if err != nil {
		return Date{}, err
	}
	if tag != typeTag {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "type tag %d is not a coptic date", tag)
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
	return New(int(year), int(month), int(day))
}
