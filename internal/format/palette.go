package format

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Palette holds the colors of the structured report. The zero Palette
// prints plain text.
type Palette struct {
	Number    text.Colors
	Package   text.Colors
	Version   text.Colors
	Orphan    text.Colors
	OutOfDate text.Colors
	Group     text.Colors
	Installed text.Colors
	LocalVer  text.Colors
	Votes     text.Colors
	Popular   text.Colors
	Desc      text.Colors
	repos     map[string]text.Colors
	otherRepo text.Colors
}

// DefaultPalette is the classic pacman-like scheme.
func DefaultPalette() Palette {
	return Palette{
		Number:    text.Colors{text.FgHiWhite},
		Package:   text.Colors{text.Bold},
		Version:   text.Colors{text.Bold, text.FgGreen},
		Orphan:    text.Colors{text.Bold, text.FgRed},
		OutOfDate: text.Colors{text.Bold, text.FgRed},
		Group:     text.Colors{text.Bold, text.FgBlue},
		Installed: text.Colors{text.Bold, text.FgCyan},
		LocalVer:  text.Colors{text.Bold, text.FgGreen},
		Votes:     text.Colors{text.Bold, text.FgYellow},
		Popular:   text.Colors{text.FgYellow},
		repos: map[string]text.Colors{
			"core":    {text.Bold, text.FgRed},
			"extra":   {text.Bold, text.FgGreen},
			"testing": {text.Bold, text.FgMagenta},
			"local":   {text.Bold, text.FgYellow},
			"aur":     {text.Bold, text.FgMagenta},
		},
		otherRepo: text.Colors{text.Bold, text.FgYellow},
	}
}

// Repo returns the color used for a repository name.
func (p Palette) Repo(name string) text.Colors {
	if c, ok := p.repos[name]; ok {
		return c
	}
	return p.otherRepo
}

// PaletteFor resolves a color mode ("auto", "always" or "never").
func PaletteFor(mode string) Palette {
	switch mode {
	case "always":
		return DefaultPalette()
	case "never":
		return Palette{}
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return DefaultPalette()
	}
	return Palette{}
}

func paint(c text.Colors, s string) string {
	if len(c) == 0 {
		return s
	}
	return c.Sprint(s)
}
