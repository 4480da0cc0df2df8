package plan

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// naturalCollator orders task file paths "alphabetical, natural-numeric":
// embedded digit runs compare by numeric value rather than
// lexicographically, so "frame9.png" sorts before "frame10.png".
var naturalCollator = collate.New(language.Und, collate.Numeric)

func naturalLess(a, b string) bool {
	return naturalCollator.CompareString(a, b) < 0
}
