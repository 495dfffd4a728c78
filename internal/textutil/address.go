package textutil

import "regexp"

var (
	// Comma-delimited suite/unit/building fragment, through the next comma
	// or end of string: ", Suite 708", ", Ste B", ", Unit A", ", Bldg 10".
	suiteFragmentRe = regexp.MustCompile(`(?i),\s*(Suite|Ste\.?|Unit|Bldg\.?|Building)\b[^,]*`)

	// Inline unit markers like "#101".
	hashUnitRe = regexp.MustCompile(`#\s*\w+`)

	multiSpaceRe   = regexp.MustCompile(`\s{2,}`)
	trailingJunkRe = regexp.MustCompile(`[,\s]+$`)
)

// SimplifyAddress rewrites a display address into a form geocoders accept:
// mojibake is repaired first so the patterns see real characters, then
// suite/unit/building fragments and "#" unit markers are removed. The result
// is used only to build geocode queries; the stored display address is never
// replaced by it.
func SimplifyAddress(addr string) string {
	addr = RepairMojibake(addr)

	addr = suiteFragmentRe.ReplaceAllString(addr, "")
	addr = hashUnitRe.ReplaceAllString(addr, "")
	addr = multiSpaceRe.ReplaceAllString(addr, " ")
	addr = trailingJunkRe.ReplaceAllString(addr, "")

	return addr
}
