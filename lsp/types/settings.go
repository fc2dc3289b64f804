package types

import (
	"encoding/json"
	"fmt"
)

// SettingsSection is the key editors nest our settings under
const SettingsSection = "panda"

// Settings are the editor settings, keyed the way the editor extension
// declares them.
type Settings struct {
	CompletionsEnabled        bool `json:"completions.enabled"`
	CompletionsTokenFnEnabled bool `json:"completions.token-fn.enabled"`

	HoversEnabled               bool `json:"hovers.enabled"`
	HoversTokensEnabled         bool `json:"hovers.tokens.enabled"`
	HoversTokensCSSPreview      bool `json:"hovers.tokens.css-preview.enabled"`
	HoversConditionsEnabled     bool `json:"hovers.conditions.enabled"`
	HoversSemanticColorsEnabled bool `json:"hovers.semantic-colors.enabled"`
	HoversRecipesEnabled        bool `json:"hovers.recipes.enabled"`

	InlayHintsEnabled        bool `json:"inlay-hints.enabled"`
	ColorHintsEnabled        bool `json:"color-hints.enabled"`
	ColorHintsSemanticTokens bool `json:"color-hints.semantic-tokens.enabled"`
	RemToPxEnabled           bool `json:"rem-to-px.enabled"`

	// DiagnosticsEnabled reports unknown and deprecated token references
	DiagnosticsEnabled bool `json:"diagnostics.enabled"`

	// DesignTokensConfigEnabled also imports the token files listed in
	// .config/design-tokens.*
	DesignTokensConfigEnabled bool `json:"design-tokens-config.enabled"`
}

// DefaultSettings returns the settings used until the editor sends its own
func DefaultSettings() Settings {
	return Settings{
		CompletionsEnabled:          true,
		CompletionsTokenFnEnabled:   true,
		HoversEnabled:               true,
		HoversTokensEnabled:         true,
		HoversTokensCSSPreview:      true,
		HoversConditionsEnabled:     true,
		HoversSemanticColorsEnabled: true,
		HoversRecipesEnabled:        true,
		InlayHintsEnabled:           true,
		ColorHintsEnabled:           true,
		ColorHintsSemanticTokens:    true,
		RemToPxEnabled:              false,
		DiagnosticsEnabled:          true,
		DesignTokensConfigEnabled:   true,
	}
}

// ParseSettings decodes settings over the defaults. The payload may be the
// settings themselves or wrap them under "panda"; keys may be dotted
// ("hovers.enabled") or nested ({"hovers": {"enabled": true}}).
func ParseSettings(raw any) (Settings, error) {
	settings := DefaultSettings()
	if raw == nil {
		return settings, nil
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return settings, fmt.Errorf("settings is not a map")
	}
	if section, ok := m[SettingsSection]; ok {
		if m, ok = section.(map[string]any); !ok {
			return settings, fmt.Errorf("%s settings is not a map", SettingsSection)
		}
	}

	flat := make(map[string]any, len(m))
	flattenSettings("", m, flat)

	data, err := json.Marshal(flat)
	if err != nil {
		return settings, fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return settings, nil
}

func flattenSettings(prefix string, m map[string]any, out map[string]any) {
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenSettings(key, nested, out)
			continue
		}
		out[key] = value
	}
}
