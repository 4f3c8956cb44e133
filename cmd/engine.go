package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/gopak/gopak-query/internal/config"
	"github.com/gopak/gopak-query/internal/format"
	"github.com/gopak/gopak-query/internal/localdb"
	"github.com/gopak/gopak-query/internal/logging"
	"github.com/gopak/gopak-query/internal/query"
	"github.com/gopak/gopak-query/internal/remote"
	"github.com/gopak/gopak-query/internal/results"
	"github.com/spf13/pflag"
)

// mergeFlags overlays the output flags the user set on top of the
// configured values.
func mergeFlags(out config.Output, fs *pflag.FlagSet) config.Output {
	if fs.Changed("sort") {
		out.Sort = flags.sort
	}
	if fs.Changed("reverse") {
		out.Reverse = flags.reverse
	}
	if fs.Changed("just-one") {
		out.JustOne = flags.justOne
	}
	if fs.Changed("quiet") {
		out.Quiet = flags.quiet
	}
	if fs.Changed("format") {
		out.Format = flags.format
	}
	if fs.Changed("escape") {
		out.Escape = flags.escape
	}
	if fs.Changed("number") {
		out.Numbering = flags.numbering
	}
	if fs.Changed("color") {
		out.Color = flags.color
	}
	if fs.Changed("delimiter") {
		out.Delimiter = flags.delimiter
	}
	if fs.Changed("show-size") {
		out.ShowSize = flags.showSize
	}
	return out
}

// dbPath resolves the installed-package database against the config dir.
func dbPath(cfg config.Config, fs *pflag.FlagSet) string {
	p := cfg.LocalDB
	if fs.Changed("db") {
		return flags.db
	}
	if p != "" && !filepath.IsAbs(p) && cfgDir != "" {
		p = filepath.Join(cfgDir, p)
	}
	return p
}

type session struct {
	engine *query.Engine
	out    config.Output
}

func newSession(fs *pflag.FlagSet, op format.Op, w io.Writer, regex bool) (*session, error) {
	cfg := config.Get()
	out := mergeFlags(cfg.Output, fs)
	if err := config.Validate(config.Config{Output: out}); err != nil {
		return nil, err
	}
	key, err := results.ParseSortKey(out.Sort)
	if err != nil {
		return nil, err
	}
	path := dbPath(cfg, fs)
	db, err := localdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}
	logging.Debug(fmt.Sprintf("local database %s: %d packages", db.Path(), len(db.Packages())))

	var rem query.Remote
	if !flags.offline && cfg.Remote.URL != "" {
		rem = remote.NewClient(cfg.Remote.URL, cfg.Remote.Name, cfg.Remote.TimeoutDuration())
	}

	printer := format.NewPrinter(w, db, format.Options{
		Op:        op,
		Template:  format.Unescape(out.Format),
		Quiet:     out.Quiet,
		Escape:    out.Escape,
		Numbering: out.Numbering,
		ShowSize:  out.ShowSize,
		Delimiter: format.Unescape(out.Delimiter),
		Palette:   format.PaletteFor(out.Color),
	})
	engine := query.New(db, rem, printer, query.Options{
		Sort:    key,
		Reverse: out.Reverse,
		JustOne: out.JustOne,
		Regex:   regex || out.Regex,
	})
	return &session{engine: engine, out: out}, nil
}

// done turns an empty quiet run into ErrNothingFound.
func (s *session) done(err error) error {
	if err != nil {
		return err
	}
	if s.out.Quiet && s.engine.Printed() == 0 {
		return ErrNothingFound
	}
	return nil
}

// sourcesFrom maps the --local/--remote pair; neither means both.
func sourcesFrom(local, remote bool) query.Sources {
	var s query.Sources
	if local {
		s |= query.SourceLocal
	}
	if remote {
		s |= query.SourceRemote
	}
	if s == 0 {
		return query.SourceAll
	}
	return s
}
