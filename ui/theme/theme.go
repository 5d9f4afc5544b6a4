package theme

// Palette and ttk style setup for the tuner window.

import (
	tk "modernc.org/tk9.0"
)

// Palette holds the resolved colors for one mode.
type Palette struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = Palette{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Border:    "#d0d7de",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Palette{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// Style names for Style(...) options.
const (
	StylePrimaryButton = "primary.TButton"
	StyleStepButton    = "step.TButton"
	StyleStatusLabel   = "status.TLabel"
	StyleCaptionLabel  = "caption.TLabel"
)

var darkMode bool

// PaletteFor returns the palette for the given mode.
func PaletteFor(isDark bool) Palette {
	if isDark {
		return dark
	}
	return light
}

// Current returns the palette applied by the last InitStyles call.
func Current() Palette { return PaletteFor(darkMode) }

// InitStyles activates the base theme and configures the named styles.
func InitStyles(isDark bool) {
	darkMode = isDark
	p := PaletteFor(isDark)
	_ = tk.ActivateTheme("azure light")
	tk.App.Configure(tk.Background(p.AppBg))

	tk.StyleConfigure(StylePrimaryButton,
		tk.Background(p.Primary),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleStepButton,
		tk.Padding("1p 1p"),
		tk.Borderwidth(1),
	)
	tk.StyleConfigure(StyleStatusLabel,
		tk.Foreground(p.Text),
		tk.Background(p.Surface),
		tk.Padding("4p 2p"),
		tk.Borderwidth(1),
		tk.Relief("groove"),
	)
	tk.StyleConfigure(StyleCaptionLabel,
		tk.Foreground(p.TextMuted),
		tk.Background(p.AppBg),
		tk.Padding("2p 1p"),
	)
}
