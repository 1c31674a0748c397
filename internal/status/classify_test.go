package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyNameOrderingMostSpecificFirst(t *testing.T) {
	// Paper embeds "Spigot" in its version string; Spigot must not win.
	require.Equal(t, "Paper", Classify("git-Paper-123 (MC: 1.20.4) Spigot", nil, nil))
}

func TestClassifyDefaultJava(t *testing.T) {
	require.Equal(t, "Java", Classify("1.20.4", nil, nil))
}

func TestClassifyModdedOverridesForgeData(t *testing.T) {
	modded := true
	fd := &ForgeData{Mods: []ForgeMod{{ID: "jei"}}}
	require.Equal(t, "Neoforge", Classify("Paper", &modded, fd))
}

func TestClassifyForgeDataOverridesNameMatch(t *testing.T) {
	fd := &ForgeData{Mods: []ForgeMod{{ID: "jei"}}}
	require.Equal(t, "Lexforge", Classify("Paper 1.20.4", nil, fd))
}

func TestClassifyProxies(t *testing.T) {
	cases := map[string]string{
		"Velocity 1.20":   "Velocity",
		"Waterfall 1.20":  "Waterfall",
		"BungeeCord 1.20": "Bungeecord",
		"git-Leaves":      "Leaves",
		"git-Folia":       "Folia",
		"git-Purpur":      "Purpur",
		"Pufferfish 1.20": "Pufferfish",
		"Spigot 1.20":     "Spigot",
		"CraftBukkit":     "Bukkit",
	}
	for name, want := range cases {
		require.Equal(t, want, Classify(name, nil, nil), name)
	}
}
