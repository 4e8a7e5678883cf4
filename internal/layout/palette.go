package layout

// DefaultPalette is the fixed slice palette. Its last entry is never assigned.
var DefaultPalette = []string{
	"#FAAA32",
	"#3EFA7D",
	"#FA6A25",
	"#0C94FA",
	"#FA1F19",
	"#0CFAE2",
	"#AB6D23",
}

// ColorAt returns the fill for slice k: palette[k mod (len(palette)-1)].
// Palettes with fewer than two entries always yield their first color.
func ColorAt(palette []string, k int) string {
	if len(palette) == 0 {
		return ""
	}
	if len(palette) < 2 || k < 0 {
		return palette[0]
	}
	return palette[k%(len(palette)-1)]
}
