package format

import (
	"strings"
	"unicode/utf8"

	"github.com/gopak/gopak-query/internal/pkg"
)

// Fielder exposes package fields by their format character.
type Fielder interface {
	Field(c byte) (string, bool)
	Items(c byte) ([]string, bool)
}

// Finder looks up an installed package by name.
type Finder interface {
	Find(name string) (*pkg.Local, bool)
}

// Render expands tmpl for one package. "%%" is a literal percent sign, "%t"
// the search term, any other "%c" the field c of p or "-" when p has no such
// value. List-valued fields are joined with delim. A "%" ending the template
// is copied as is. Render declines an empty template.
func Render(tmpl, target string, p Fielder, installed Finder, delim string) (string, bool) {
	if tmpl == "" {
		return "", false
	}
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' || i == len(tmpl)-1 {
			b.WriteByte(c)
			continue
		}
		next := tmpl[i+1]
		if next >= utf8.RuneSelf {
			// not a field character; skip the whole rune
			_, size := utf8.DecodeRuneInString(tmpl[i+1:])
			b.WriteByte('-')
			i += size
			continue
		}
		i++
		if next == '%' {
			b.WriteByte('%')
			continue
		}
		v, ok := lookup(next, target, p, installed, delim)
		if !ok {
			v = "-"
		}
		b.WriteString(v)
	}
	return b.String(), true
}

func lookup(c byte, target string, p Fielder, installed Finder, delim string) (string, bool) {
	switch classify(c) {
	case contextual:
		return target, true
	case alwaysLocal:
		if installed == nil {
			return "", false
		}
		name, ok := p.Field(pkg.FieldName)
		if !ok {
			return "", false
		}
		lp, ok := installed.Find(name)
		if !ok {
			return "", false
		}
		return value(lp, c, delim)
	}
	return value(p, c, delim)
}

func value(p Fielder, c byte, delim string) (string, bool) {
	if items, ok := p.Items(c); ok {
		return strings.Join(items, delim), true
	}
	return p.Field(c)
}

// Unescape expands the backslash sequences \\, \e, \n, \r and \t of a user
// template. Other sequences are kept verbatim.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case 'e':
			b.WriteByte('\x1b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			continue
		}
		i++
	}
	return b.String()
}

// EscapeQuotes prefixes every double quote with a backslash.
func EscapeQuotes(s string) string { return strings.ReplaceAll(s, `"`, `\"`) }
