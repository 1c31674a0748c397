// Package status parses a Minecraft Server List Ping status JSON document
// into a typed record, classifies the implementation, and reconstructs the
// formatted MOTD.
package status

import "encoding/json"

// Version identifies the server's reported game version and protocol.
type Version struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// SamplePlayer is one entry in the players.sample list.
type SamplePlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Players carries the server's player-count and sample-list fields.
type Players struct {
	Max    int32          `json:"max"`
	Online int32          `json:"online"`
	Sample []SamplePlayer `json:"sample,omitempty"`
}

// ForgeMod identifies one mod reported by a Forge-family server.
type ForgeMod struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// ForgeData is the normalized modded-server metadata, sourced from either
// the modern "forgeData" key or the legacy "modinfo" key.
type ForgeData struct {
	Mods []ForgeMod `json:"mods"`
}

// ServerStatus is the parsed, classified result of a successful ping.
type ServerStatus struct {
	Version              Version         `json:"version"`
	Players              Players         `json:"players"`
	DescriptionRaw       json.RawMessage `json:"-"`
	DescriptionFormatted string          `json:"description_formatted,omitempty"`
	Favicon              *string         `json:"favicon,omitempty"`
	PreventsReports      *bool           `json:"prevents_reports,omitempty"`
	EnforcesSecureChat   *bool           `json:"enforces_secure_chat,omitempty"`
	Modded               *bool           `json:"modded,omitempty"`
	ForgeData            *ForgeData      `json:"forge_data,omitempty"`
	LatencyMillis        int64           `json:"latency_ms,omitempty"`
	ServerType           string          `json:"server_type"`
}

// rawModernForgeData mirrors the modern Forge/Lexforge "forgeData" key.
type rawModernForgeData struct {
	Mods []struct {
		ModID     string `json:"modId"`
		Modmarker string `json:"modmarker"`
	} `json:"mods"`
}

// rawLegacyModInfo mirrors the legacy FML "modinfo" key.
type rawLegacyModInfo struct {
	ModList []struct {
		ModID   string `json:"modid"`
		Version string `json:"version"`
	} `json:"modList"`
}

// rawStatus mirrors the wire JSON document before normalization.
type rawStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int32 `json:"max"`
		Online int32 `json:"online"`
		Sample []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"sample"`
	} `json:"players"`
	Description        json.RawMessage     `json:"description"`
	Favicon            *string             `json:"favicon"`
	PreventsReports    *bool               `json:"preventsChatReports"`
	EnforcesSecureChat *bool               `json:"enforcesSecureChat"`
	Modded             *bool               `json:"isModded"`
	ForgeData          *rawModernForgeData `json:"forgeData"`
	ModInfo            *rawLegacyModInfo   `json:"modinfo"`
}

// Parse decodes a status JSON document (modern status response or a
// synthesized legacy equivalent) into a ServerStatus, classifying the
// implementation and flattening the description along the way.
func Parse(data []byte) (ServerStatus, error) {
	var raw rawStatus
	if err := json.Unmarshal(data, &raw); err != nil {
		return ServerStatus{}, err
	}

	st := ServerStatus{
		Version: Version{
			Name:     raw.Version.Name,
			Protocol: raw.Version.Protocol,
		},
		Players: Players{
			Max:    raw.Players.Max,
			Online: raw.Players.Online,
		},
		DescriptionRaw:     raw.Description,
		Favicon:            raw.Favicon,
		PreventsReports:    raw.PreventsReports,
		EnforcesSecureChat: raw.EnforcesSecureChat,
		Modded:             raw.Modded,
	}
	for _, p := range raw.Players.Sample {
		st.Players.Sample = append(st.Players.Sample, SamplePlayer{ID: p.ID, Name: p.Name})
	}

	st.ForgeData = normalizeForgeData(raw.ForgeData, raw.ModInfo)

	formatted, ok := FormatDescription(raw.Description)
	if ok {
		st.DescriptionFormatted = formatted
	}

	st.ServerType = Classify(st.Version.Name, st.Modded, st.ForgeData)

	return st, nil
}

func normalizeForgeData(modern *rawModernForgeData, legacy *rawLegacyModInfo) *ForgeData {
	switch {
	case modern != nil:
		fd := &ForgeData{Mods: make([]ForgeMod, 0, len(modern.Mods))}
		for _, m := range modern.Mods {
			fd.Mods = append(fd.Mods, ForgeMod{ID: m.ModID, Version: m.Modmarker})
		}
		return fd
	case legacy != nil:
		fd := &ForgeData{Mods: make([]ForgeMod, 0, len(legacy.ModList))}
		for _, m := range legacy.ModList {
			fd.Mods = append(fd.Mods, ForgeMod{ID: m.ModID, Version: m.Version})
		}
		return fd
	default:
		return nil
	}
}
