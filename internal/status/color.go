package status

import (
	"strconv"
	"strings"
)

type legacyColor struct {
	name string
	code string
	r, g, b int
}

// legacyPalette is the canonical legacy Minecraft color table, in the fixed
// enumeration order (black first, white last) used both for alias lookup
// and as the tie-break order when mapping an arbitrary hex color to its
// nearest legacy entry.
var legacyPalette = []legacyColor{
	{"black", "0", 0x00, 0x00, 0x00},
	{"dark_blue", "1", 0x00, 0x00, 0xAA},
	{"dark_green", "2", 0x00, 0xAA, 0x00},
	{"dark_aqua", "3", 0x00, 0xAA, 0xAA},
	{"dark_red", "4", 0xAA, 0x00, 0x00},
	{"dark_purple", "5", 0xAA, 0x00, 0xAA},
	{"gold", "6", 0xFF, 0xAA, 0x00},
	{"gray", "7", 0xAA, 0xAA, 0xAA},
	{"dark_gray", "8", 0x55, 0x55, 0x55},
	{"blue", "9", 0x55, 0x55, 0xFF},
	{"green", "a", 0x55, 0xFF, 0x55},
	{"aqua", "b", 0x55, 0xFF, 0xFF},
	{"red", "c", 0xFF, 0x55, 0x55},
	{"light_purple", "d", 0xFF, 0x55, 0xFF},
	{"yellow", "e", 0xFF, 0xFF, 0x55},
	{"white", "f", 0xFF, 0xFF, 0xFF},
}

// nameAliases maps accepted alternate spellings to a canonical palette name.
var nameAliases = map[string]string{
	"purple":       "dark_purple",
	"grey":         "gray",
	"dark_grey":    "dark_gray",
	"pink":         "light_purple",
}

// ColorCode maps a description "color" field to its legacy format-code
// letter/digit. Named colors (with accepted aliases) map directly;
// "#RRGGBB" hex strings map to the nearest legacy palette entry by
// Euclidean RGB distance, ties broken by enumeration order. Anything else
// maps to "r" (reset).
func ColorCode(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := nameAliases[lower]; ok {
		lower = canonical
	}
	if lower == "reset" {
		return "r"
	}
	for _, c := range legacyPalette {
		if c.name == lower {
			return c.code
		}
	}
	if strings.HasPrefix(lower, "#") && len(lower) == 7 {
		if code, ok := nearestHexCode(lower); ok {
			return code
		}
	}
	return "r"
}

func nearestHexCode(hex string) (string, bool) {
	rv, err1 := strconv.ParseInt(hex[1:3], 16, 32)
	gv, err2 := strconv.ParseInt(hex[3:5], 16, 32)
	bv, err3 := strconv.ParseInt(hex[5:7], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}

	bestIdx := 0
	bestDist := -1
	for i, c := range legacyPalette {
		dr := int(rv) - c.r
		dg := int(gv) - c.g
		db := int(bv) - c.b
		dist := dr*dr + dg*dg + db*db
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}
	return legacyPalette[bestIdx].code, true
}
