package config

// defaults is the lowest resolution tier: statically documented per-service
// fallbacks. Only genuinely optional settings belong here; anything a
// service cannot run without (tokens, keys, account IDs) is deliberately
// absent so a gap fails resolution instead of guessing.
var defaults = map[string]map[string]any{
	"telegram": {
		"parse_mode": "HTML",
	},
	"pdf_tools": {
		"default_format": "A4",
		"default_margin": 20,
	},
	"elevenlabs": {
		"default_voice": "rachel",
		"default_model": "eleven_monolingual_v1",
	},
	"calendar": {
		"timezone": "UTC",
		"business_hours": map[string]any{
			"start": "09:00",
			"end":   "17:00",
		},
		"excluded_days": []any{"saturday", "sunday"},
		"slot_minutes":  30,
	},
}

// Default returns the documented static default for service.key, if any.
func Default(service, key string) (any, bool) {
	section, ok := defaults[service]
	if !ok {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}
