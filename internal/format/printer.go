package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gopak/gopak-query/internal/pkg"
	"github.com/gopak/gopak-query/internal/results"
	"github.com/gopak/gopak-query/internal/vercmp"
)

// Op is the operation whose results are printed; it drives the layout of
// the structured report.
type Op int

const (
	OpQuery Op = iota
	OpSearch
	OpList
	OpUpgrades
	OpForeign
)

// Options is the read-only configuration of a Printer.
type Options struct {
	Op Op
	// Template selects template mode when not empty.
	Template  string
	Quiet     bool
	Escape    bool
	Numbering bool
	ShowSize  bool
	Palette   Palette
	// Delimiter joins list-valued template fields; empty means
	// pkg.ListSeparator.
	Delimiter string
	// Width reports the terminal width; nil uses TerminalWidth.
	Width func() int
}

// Printer renders entries to w, either with the structured report or with
// the user template.
type Printer struct {
	w         io.Writer
	installed Finder
	opts      Options
	number    int
}

func NewPrinter(w io.Writer, installed Finder, opts Options) *Printer {
	if opts.Width == nil {
		opts.Width = TerminalWidth
	}
	if opts.Delimiter == "" {
		opts.Delimiter = pkg.ListSeparator
	}
	return &Printer{w: w, installed: installed, opts: opts}
}

// Print writes one entry.
func (p *Printer) Print(e *results.Entry) error {
	if p.opts.Quiet || e == nil {
		return nil
	}
	var out string
	if p.opts.Template == "" {
		out = p.structured(e)
	} else {
		s, ok := Render(p.opts.Template, e.Target(), e, p.installed, p.opts.Delimiter)
		if !ok {
			return nil
		}
		if p.opts.Escape {
			out = EscapeQuotes(s)
		} else {
			out = s + "\n"
		}
	}
	_, err := io.WriteString(p.w, out)
	return err
}

func (p *Printer) installedVersion(name string) (string, bool) {
	if p.installed == nil {
		return "", false
	}
	lp, ok := p.installed.Find(name)
	if !ok {
		return "", false
	}
	return lp.Version, true
}

func (p *Printer) structured(e *results.Entry) string {
	var b strings.Builder
	pal := p.opts.Palette
	remote := e.Kind() == results.KindRemote
	upgrades := p.opts.Op == OpUpgrades

	if p.opts.Numbering {
		p.number++
		b.WriteString(paint(pal.Number, strconv.Itoa(p.number)) + " ")
	}

	repoField := pkg.FieldSource
	if p.opts.Op == OpForeign {
		repoField = pkg.FieldRepository
	}
	if repo, ok := e.Field(repoField); ok {
		b.WriteString(paint(pal.Repo(repo), repo+"/"))
	}
	name, _ := e.Field(pkg.FieldName)
	b.WriteString(paint(pal.Package, name) + " ")

	lver, installed := p.installedVersion(name)
	verField := pkg.FieldVersion
	if upgrades {
		verField = pkg.FieldNewVersion
	}
	ver, _ := e.Field(verField)
	_, maintained := e.Field(pkg.FieldMaintainer)
	outOfDate := false
	if o, ok := e.Field(pkg.FieldOutOfDate); ok && o != "0" {
		outOfDate = true
	}

	if p.opts.Op == OpForeign {
		if remote {
			c := pal.Version
			if !maintained {
				c = pal.Orphan
			} else if outOfDate {
				c = pal.OutOfDate
			}
			b.WriteString(paint(c, lver))
			if vercmp.Compare(ver, lver) > 0 {
				repo, _ := e.Field(pkg.FieldRepository)
				fmt.Fprintf(&b, " ( %s: %s )", repo, ver)
			}
		} else {
			b.WriteString(paint(pal.Version, lver))
		}
		b.WriteString("\n")
		return b.String()
	}

	verColor := pal.Version
	if remote && !maintained {
		verColor = pal.Orphan
	}
	if upgrades {
		b.WriteString(paint(verColor, lver) + " -> " + paint(pal.Version, ver))
	} else {
		b.WriteString(paint(verColor, ver))
	}

	if p.opts.ShowSize && !remote {
		fmt.Fprintf(&b, " [%.2f M]", float64(e.Local().InstalledSize)/(1024.0*1024.0))
	}
	if upgrades {
		b.WriteString("\n")
		return b.String()
	}

	if g, ok := e.Field(pkg.FieldGroups); ok {
		b.WriteString(" " + paint(pal.Group, "("+g+")"))
	}

	if r, _ := e.Field(pkg.FieldRepository); installed && r != pkg.RepoLocal {
		s := "[installed"
		if ver != lver {
			s += ": " + paint(pal.LocalVer, lver)
		}
		b.WriteString(" " + paint(pal.Installed, s+"]"))
	}

	if remote {
		if outOfDate {
			b.WriteString(" " + paint(pal.OutOfDate, "(Out of Date)"))
		}
		if v, ok := e.Field(pkg.FieldVotes); ok {
			b.WriteString(" " + paint(pal.Votes, "("+v+")"))
		}
		if v, ok := e.Field(pkg.FieldPopularity); ok {
			b.WriteString(" " + paint(pal.Popular, "("+v+")"))
		}
	}
	b.WriteString("\n")

	if p.opts.Op != OpSearch && p.opts.Op != OpList {
		return b.String()
	}
	if d, ok := e.Field(pkg.FieldDescription); ok {
		b.WriteString(paint(pal.Desc, Wrap(d, Indent, p.opts.Width())))
	}
	return b.String()
}
