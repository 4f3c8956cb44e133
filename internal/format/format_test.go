package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gopak/gopak-query/internal/pkg"
	"github.com/gopak/gopak-query/internal/results"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB map[string]*pkg.Local

func (f fakeDB) Find(name string) (*pkg.Local, bool) {
	p, ok := f[name]
	return p, ok
}

func yay() *pkg.Remote {
	return &pkg.Remote{
		Name:        "yay",
		Version:     "12.3.5-1",
		Maintainer:  "jguer",
		Votes:       1800,
		Popularity:  23.5,
		Description: "Yet another yogurt",
	}
}

func installedYay() fakeDB {
	return fakeDB{"yay": {
		Name:        "yay",
		Version:     "12.0-1",
		InstallDate: time.Unix(1700000000, 0),
		Reason:      "explicit",
	}}
}

func TestRender(t *testing.T) {
	bash := &pkg.Local{Name: "bash", Version: "5.1"}
	tests := []struct {
		tmpl string
		want string
	}{
		{"%n-%v", "bash-5.1"},
		{"100%%", "100%"},
		{"%n 50%", "bash 50%"},
		{"%", "%"},
		{"%%%", "%%"},
		{"%w", "-"},
		{"[%t]", "[bash>=5]"},
		{"%é|%n", "-|bash"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		got, ok := Render(tt.tmpl, "bash>=5", bash, nil, " ")
		require.True(t, ok, tt.tmpl)
		assert.Equal(t, tt.want, got, tt.tmpl)
	}

	_, ok := Render("", "", bash, nil, " ")
	assert.False(t, ok)
}

func TestRenderRedirectsLocalFields(t *testing.T) {
	got, ok := Render("%n %v %l %1 %3 %m", "", yay(), installedYay(), " ")
	require.True(t, ok)
	assert.Equal(t, "yay 12.3.5-1 12.0-1 1700000000 explicit jguer", got)

	got, _ = Render("%n %l", "", yay(), fakeDB{}, " ")
	assert.Equal(t, "yay -", got)

	got, _ = Render("%l", "", yay(), nil, " ")
	assert.Equal(t, "-", got)
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "a\tb\nc", Unescape(`a\tb\nc`))
	assert.Equal(t, "\x1b[1m%n", Unescape(`\e[1m%n`))
	assert.Equal(t, `a\b`, Unescape(`a\\b`))
	assert.Equal(t, `\q`, Unescape(`\q`))
	assert.Equal(t, `end\`, Unescape(`end\`))
	assert.Equal(t, "no escapes", Unescape("no escapes"))
}

func TestEscapeQuotes(t *testing.T) {
	assert.Equal(t, `say \"hi\"`, EscapeQuotes(`say "hi"`))
}

func TestWrap(t *testing.T) {
	text := "A fast and lightweight package helper written in Go with extra words"
	out := Wrap(text, 4, 24)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Greater(t, len(lines), 1)
	var words []string
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "    "), "line %q", l)
		assert.LessOrEqual(t, runewidth.StringWidth(l), 24, "line %q", l)
		words = append(words, strings.Fields(l)...)
	}
	assert.Equal(t, strings.Fields(text), words)
}

func TestWrapUnknownWidth(t *testing.T) {
	assert.Equal(t, "    one two three\n", Wrap("one two three", 4, 0))
}

func TestWrapLongWordOverflows(t *testing.T) {
	out := Wrap("tiny supercalifragilisticexpialidocious end", 2, 12)
	assert.Equal(t, "  tiny\n  supercalifragilisticexpialidocious\n  end\n", out)
}

func newPrinter(buf *bytes.Buffer, db Finder, opts Options) *Printer {
	opts.Width = func() int { return 80 }
	return NewPrinter(buf, db, opts)
}

func TestPrinterStructuredSearch(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, installedYay(), Options{Op: OpSearch})
	require.NoError(t, p.Print(results.NewRemote("yay", yay())))
	assert.Equal(t, "aur/yay 12.3.5-1 [installed: 12.0-1] (1800) (23.500000)\n    Yet another yogurt\n", buf.String())
}

func TestPrinterStructuredRemoteFlags(t *testing.T) {
	var buf bytes.Buffer
	r := yay()
	r.OutOfDate = 1690000000
	r.Version = "12.0-1"
	p := newPrinter(&buf, installedYay(), Options{Op: OpQuery})
	require.NoError(t, p.Print(results.NewRemote("", r)))
	assert.Equal(t, "aur/yay 12.0-1 [installed] (Out of Date) (1800) (23.500000)\n", buf.String())
}

func TestPrinterStructuredLocalWithSizeAndNumbers(t *testing.T) {
	bash := &pkg.Local{Name: "bash", Version: "5.1.016-1", Repo: "core", Groups: []string{"base"}, InstalledSize: 1572864}
	var buf bytes.Buffer
	p := newPrinter(&buf, fakeDB{"bash": bash}, Options{Op: OpQuery, Numbering: true, ShowSize: true})
	require.NoError(t, p.Print(results.NewLocal("", bash)))
	require.NoError(t, p.Print(results.NewLocal("", bash)))
	assert.Equal(t, "1 core/bash 5.1.016-1 [1.50 M] (base)\n2 core/bash 5.1.016-1 [1.50 M] (base)\n", buf.String())
}

func TestPrinterUpgrades(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, installedYay(), Options{Op: OpUpgrades})
	require.NoError(t, p.Print(results.NewRemote("", yay())))
	assert.Equal(t, "aur/yay 12.0-1 -> 12.3.5-1\n", buf.String())
}

func TestPrinterForeign(t *testing.T) {
	mytool := &pkg.Local{Name: "mytool", Version: "0.1"}
	db := installedYay()
	db["mytool"] = mytool
	var buf bytes.Buffer
	p := newPrinter(&buf, db, Options{Op: OpForeign})
	require.NoError(t, p.Print(results.NewRemote("", yay())))
	require.NoError(t, p.Print(results.NewLocal("", mytool)))
	assert.Equal(t, "aur/yay 12.0-1 ( aur: 12.3.5-1 )\nlocal/mytool 0.1\n", buf.String())
}

func TestPrinterTemplateModes(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, nil, Options{Template: `"%n" `, Escape: true})
	require.NoError(t, p.Print(results.NewRemote("", yay())))
	require.NoError(t, p.Print(results.NewRemote("", yay())))
	assert.Equal(t, `\"yay\" \"yay\" `, buf.String())

	buf.Reset()
	p = newPrinter(&buf, nil, Options{Template: "%n|%t"})
	require.NoError(t, p.Print(results.NewRemote("ya", yay())))
	assert.Equal(t, "yay|ya\n", buf.String())

	buf.Reset()
	p = newPrinter(&buf, nil, Options{Template: "%n", Quiet: true})
	require.NoError(t, p.Print(results.NewRemote("", yay())))
	assert.Empty(t, buf.String())
}

func TestPrinterDescriptionOnlyForSearchAndList(t *testing.T) {
	bash := &pkg.Local{Name: "bash", Version: "5.1", Repo: "core", Description: "GNU shell"}
	for op, want := range map[Op]string{
		OpList:  "core/bash 5.1\n    GNU shell\n",
		OpQuery: "core/bash 5.1\n",
	} {
		var buf bytes.Buffer
		p := newPrinter(&buf, nil, Options{Op: op})
		require.NoError(t, p.Print(results.NewLocal("", bash)))
		assert.Equal(t, want, buf.String())
	}
}

func TestPrinterTemplateEmptyExpansionStillPrintsLine(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, nil, Options{Op: OpList, Template: "%t"})
	require.NoError(t, p.Print(results.NewLocal("", &pkg.Local{Name: "bash"})))
	assert.Equal(t, "\n", buf.String())
}

func TestPrinterTemplateDelimiter(t *testing.T) {
	bash := &pkg.Local{Name: "bash", Depends: []string{"readline", "", "glibc"}}
	var buf bytes.Buffer
	p := newPrinter(&buf, nil, Options{Template: "%n: %D", Delimiter: ","})
	require.NoError(t, p.Print(results.NewLocal("", bash)))
	assert.Equal(t, "bash: readline,glibc\n", buf.String())

	buf.Reset()
	p = newPrinter(&buf, nil, Options{Template: "%D"})
	require.NoError(t, p.Print(results.NewLocal("", bash)))
	assert.Equal(t, "readline glibc\n", buf.String())
}

func TestPrinterForeignUsesRemoteRepoName(t *testing.T) {
	r := yay()
	r.Repo = "chaotic"
	var buf bytes.Buffer
	p := newPrinter(&buf, installedYay(), Options{Op: OpForeign})
	require.NoError(t, p.Print(results.NewRemote("", r)))
	assert.Equal(t, "chaotic/yay 12.0-1 ( chaotic: 12.3.5-1 )\n", buf.String())
}

// esc wraps s in the escape sequence for codes and a reset.
func esc(codes, s string) string { return "\x1b[" + codes + "m" + s + "\x1b[0m" }

func TestPrinterStructuredColors(t *testing.T) {
	text.EnableColors()
	orphan := &pkg.Remote{Name: "orphan", Version: "1.0-1", Votes: 3, Popularity: 0.5}
	stale := &pkg.Remote{Name: "stale", Version: "2.0-1", Maintainer: "bob", OutOfDate: 1690000000, Votes: 10, Popularity: 1}
	current := &pkg.Remote{Name: "yay", Version: "12.0-1", Maintainer: "jguer"}
	bash := &pkg.Local{Name: "bash", Version: "5.1", Repo: "core", Description: "GNU shell"}
	staleInstalled := fakeDB{"stale": {Name: "stale", Version: "1.0-1"}}

	tests := []struct {
		name  string
		op    Op
		db    Finder
		entry *results.Entry
		want  string
	}{
		{"orphan", OpQuery, fakeDB{}, results.NewRemote("", orphan),
			esc("1;35", "aur/") + esc("1", "orphan") + " " + esc("1;31", "1.0-1") +
				" " + esc("1;33", "(3)") + " " + esc("33", "(0.500000)") + "\n"},
		{"out of date", OpQuery, fakeDB{}, results.NewRemote("", stale),
			esc("1;35", "aur/") + esc("1", "stale") + " " + esc("1;32", "2.0-1") +
				" " + esc("1;31", "(Out of Date)") + " " + esc("1;33", "(10)") + " " + esc("33", "(1.000000)") + "\n"},
		{"installed same version", OpQuery, installedYay(), results.NewRemote("", current),
			esc("1;35", "aur/") + esc("1", "yay") + " " + esc("1;32", "12.0-1") +
				" " + esc("1;36", "[installed]") + " " + esc("1;33", "(0)") + " " + esc("33", "(0.000000)") + "\n"},
		{"foreign out of date", OpForeign, staleInstalled, results.NewRemote("", stale),
			esc("1;35", "aur/") + esc("1", "stale") + " " + esc("1;31", "1.0-1") + " ( aur: 2.0-1 )\n"},
		{"local with description", OpSearch, fakeDB{}, results.NewLocal("", bash),
			esc("1;31", "core/") + esc("1", "bash") + " " + esc("1;32", "5.1") + "\n    GNU shell\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := newPrinter(&buf, tt.db, Options{Op: tt.op, Palette: DefaultPalette()})
			require.NoError(t, p.Print(tt.entry))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPaletteFor(t *testing.T) {
	assert.Empty(t, PaletteFor("never").Version)
	pal := PaletteFor("always")
	assert.NotEmpty(t, pal.Version)
	assert.Equal(t, pal.otherRepo, pal.Repo("chaotic-aur"))
	assert.NotEqual(t, pal.Repo("core"), pal.Repo("extra"))
}

func TestClassify(t *testing.T) {
	for _, c := range []byte("lF134I") {
		assert.Equal(t, alwaysLocal, classify(c), string(c))
	}
	assert.Equal(t, contextual, classify('t'))
	assert.Equal(t, variantNative, classify('n'))
}
