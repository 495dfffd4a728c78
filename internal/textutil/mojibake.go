package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// replacement maps a known corrupted sequence to its ASCII repair.
type replacement struct {
	bad  string
	good string
}

// mojibakeReplacements lists corrupted hyphen/apostrophe sequences seen in
// spreadsheet exports, keyed by how many bad decode passes produced them.
// Several entries contain C1 control code points, so they are spelled with
// escapes. Ordering contract: longer sequences are checked before any
// shorter sequence that could be a substring of them, so the most-corrupted
// forms come first and the real Unicode code points last.
var mojibakeReplacements = []replacement{
	// Non-breaking hyphen and apostrophe through two bad decode passes.
	{"\u00c3\u0083\u00c2\u00a2\u00c3\u0082\u00c2\u0080\u00c3\u0082\u00c2\u0091", "-"},
	{"\u00c3\u0083\u00c2\u00a2\u00c3\u0082\u00c2\u0080\u00c3\u0082\u00c2\u0099", "'"},
	// The same through one bad decode pass.
	{"\u00c3\u00a2\u00c2\u0080\u00c2\u0091", "-"},
	{"\u00c3\u00a2\u00c2\u0080\u00c2\u0099", "'"},
	// Forms left behind when the round trip repairs all but the last pass.
	{"\u00e2\u0080\u0091", "-"},
	{"\u00e2\u0080\u0093", "-"},
	{"\u00e2\u0080\u0094", "-"},
	{"\u00e2\u0080\u0099", "'"},
	{"\u2011", "-"}, // non-breaking hyphen
	{"\u2013", "-"}, // en dash
	{"\u2014", "-"}, // em dash
	{"\u2019", "'"}, // smart apostrophe
}

// RepairMojibake repairs text that was decoded as Latin-1 when the bytes
// were actually UTF-8. It re-encodes the string as Latin-1 and keeps the
// result if it forms valid UTF-8; any failure leaves the input unchanged.
// Known corrupted hyphen/apostrophe sequences are then mapped to plain
// ASCII and whitespace runs collapsed. Total function, no error channel.
func RepairMojibake(s string) string {
	if b, err := charmap.ISO8859_1.NewEncoder().String(s); err == nil && utf8.ValidString(b) {
		s = b
	}

	for _, r := range mojibakeReplacements {
		s = strings.ReplaceAll(s, r.bad, r.good)
	}

	return strings.Join(strings.Fields(s), " ")
}
