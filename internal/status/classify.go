package status

import "strings"

// nameMarkers is the priority-ordered, most-specific-first list of
// version-name substrings used once neither modded nor forgeData is
// present. Order matters: forks embed their parent's name (Paper's version
// string contains "Spigot").
var nameMarkers = []struct {
	needle string
	label  string
}{
	{"velocity", "Velocity"},
	{"waterfall", "Waterfall"},
	{"bungeecord", "Bungeecord"},
	{"leaves", "Leaves"},
	{"folia", "Folia"},
	{"purpur", "Purpur"},
	{"pufferfish", "Pufferfish"},
	{"paper", "Paper"},
	{"spigot", "Spigot"},
	{"bukkit", "Bukkit"},
}

// Classify derives the server_type string per the priority cascade:
// modded field present -> Neoforge; forgeData present -> Lexforge; else a
// case-insensitive substring match on the version name; default Java.
func Classify(versionName string, modded *bool, forgeData *ForgeData) string {
	if modded != nil {
		return "Neoforge"
	}
	if forgeData != nil {
		return "Lexforge"
	}
	lower := strings.ToLower(versionName)
	for _, m := range nameMarkers {
		if strings.Contains(lower, m.needle) {
			return m.label
		}
	}
	return "Java"
}
