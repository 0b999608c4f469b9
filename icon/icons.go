package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Warn
	Progress
	Stream
	VOD
	Key
	Config
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✔",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(・_・;)",
		squares: "🟨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・・ )?",
		squares: "🟦",
	},
	Stream: {
		emoji:   "🔴",
		nerd:    "",
		plain:   "●",
		kaomoji: "(◕‿◕)",
		squares: "🟥",
	},
	VOD: {
		emoji:   "📼",
		nerd:    "",
		plain:   "▶",
		kaomoji: "(⌐■_■)",
		squares: "🟪",
	},
	Key: {
		emoji:   "🔑",
		nerd:    "",
		plain:   "#",
		kaomoji: "(¬‿¬)",
		squares: "🟧",
	},
	Config: {
		emoji:   "⚙️",
		nerd:    "",
		plain:   "*",
		kaomoji: "(¬_¬)",
		squares: "⬜",
	},
}
