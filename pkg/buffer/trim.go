package buffer

import (
	"unicode/utf8"

	"github.com/textbuf/textbuf/internal/chars"
)

// trimStringRange scans s inward from both ends of the code-unit range
// [ustart, uend) and returns the narrowed range with surrounding whitespace
// excluded. Whitespace is anything chars.IsSpace matches; characters
// outside the BMP are never whitespace, so surrogate pairs are left alone.
func trimStringRange(s string, ustart, uend int) (int, int) {
	bi := chars.ByteOffset(s, ustart)
	ui := ustart
	for ui < uend {
		r, size := utf8.DecodeRuneInString(s[bi:])
		if !chars.IsSpace(r) {
			break
		}
		ui += chars.RuneUnits(r)
		bi += size
	}
	bj := chars.ByteOffset(s, uend)
	uj := uend
	for uj > ui {
		r, size := utf8.DecodeLastRuneInString(s[:bj])
		if !chars.IsSpace(r) {
			break
		}
		uj -= chars.RuneUnits(r)
		bj -= size
	}
	return ui, uj
}
