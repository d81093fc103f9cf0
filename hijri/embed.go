package hijri

import _ "embed"

// umalquraData is the compiled-in Umm al-Qura sighting table. The registry
// can substitute an on-disk table in the same format.
//
//go:embed umalqura.data
var umalquraData []byte
