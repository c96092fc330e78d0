package present

// roleIcons maps the catalog's role icon names to single-cell glyphs.
var roleIcons = map[string]string{
	"box":           "▢",
	"boxes":         "▦",
	"chevron-right": "›",
	"copy":          "⧉",
	"database":      "⛁",
	"fingerprint":   "◉",
	"hammer":        "⚒",
	"history":       "↺",
	"layers":        "☰",
	"layout":        "▤",
	"settings":      "⚙",
	"shield-alert":  "⛨",
	"user-check":    "✓",
	"zap":           "⚡",
}

// Icon returns the glyph for a role icon name, or a bullet when unknown.
func Icon(name string) string {
	if s, ok := roleIcons[name]; ok {
		return s
	}
	return "•"
}
