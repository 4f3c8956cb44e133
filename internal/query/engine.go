package query

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gopak/gopak-query/internal/logging"
	"github.com/gopak/gopak-query/internal/pkg"
	"github.com/gopak/gopak-query/internal/results"
	"github.com/gopak/gopak-query/internal/target"
	"github.com/gopak/gopak-query/internal/vercmp"
)

// LocalDB is the installed-package database.
type LocalDB interface {
	Find(name string) (*pkg.Local, bool)
	Packages() []*pkg.Local
	Foreign() []*pkg.Local
}

// Remote is the remote repository. Name is the label targets use to pick
// it, as in "aur/yay".
type Remote interface {
	Name() string
	Search(ctx context.Context, term string) ([]*pkg.Remote, error)
	Info(ctx context.Context, names []string) ([]*pkg.Remote, error)
}

// Printer renders one entry.
type Printer interface {
	Print(e *results.Entry) error
}

// Sources selects the databases a query looks at.
type Sources uint8

const (
	SourceLocal Sources = 1 << iota
	SourceRemote
	SourceAll = SourceLocal | SourceRemote
)

func (s Sources) has(o Sources) bool { return s&o != 0 }

type Options struct {
	Sort    results.SortKey
	Reverse bool
	// JustOne stops looking for a target once a source satisfied it.
	JustOne bool
	Regex   bool
}

// Engine runs query cycles: collect matches, rank them, render them and
// release them.
type Engine struct {
	local   LocalDB
	remote  Remote
	printer Printer
	opts    Options
	set     *results.Set
	observe func(*results.Entry)
	printed int
}

// New returns an engine. remote may be nil to work offline.
func New(local LocalDB, remote Remote, printer Printer, opts Options) *Engine {
	return &Engine{local: local, remote: remote, printer: printer, opts: opts, set: results.NewSet()}
}

// Observe registers fn to be called with every entry right before it is
// printed.
func (e *Engine) Observe(fn func(*results.Entry)) { e.observe = fn }

// Printed is the number of entries handed to the printer so far.
func (e *Engine) Printed() int { return e.printed }

// Search looks for packages whose name or description matches all terms.
func (e *Engine) Search(ctx context.Context, terms []string, src Sources) error {
	if len(terms) == 0 {
		return nil
	}
	joined := strings.Join(terms, " ")
	var errs []error
	if src.has(SourceLocal) && e.local != nil {
		for _, p := range e.local.Packages() {
			if !e.matches(terms, p.Name, p.Description) {
				continue
			}
			if err := e.emit(results.NewLocal(joined, p)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if src.has(SourceRemote) && e.remote != nil {
		term := longest(terms)
		logging.Debug(fmt.Sprintf("remote search: %q", term))
		found, err := e.remote.Search(ctx, term)
		if err != nil {
			errs = append(errs, fmt.Errorf("remote search %q: %w", term, err))
		}
		for _, p := range found {
			if !e.matches(terms, p.Name, p.Description) {
				continue
			}
			if err := e.emit(results.NewRemote(joined, p)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	errs = append(errs, e.flush(terms))
	return errors.Join(errs...)
}

// Query looks up packages by target ("name", "name>=1.0", "repo/name").
func (e *Engine) Query(ctx context.Context, targets []string, src Sources) error {
	tracker := target.NewTracker(e.opts.JustOne)
	var names []string
	var errs []error
	if src.has(SourceLocal) && e.local != nil {
		for _, raw := range targets {
			spec := target.Parse(raw)
			names = append(names, spec.Name)
			p, ok := e.local.Find(spec.Name)
			if !ok || !spec.CheckVersion(p.Version) || !localSource(spec, p) {
				continue
			}
			if !tracker.Add(raw, p.Name) {
				continue
			}
			if err := e.emit(results.NewLocal(raw, p)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	pending := tracker.Prune(targets)
	if src.has(SourceRemote) && e.remote != nil && len(pending) > 0 {
		var specs []target.Spec
		var lookup []string
		for _, raw := range pending {
			spec := target.Parse(raw)
			if spec.Source != "" && spec.Source != e.remote.Name() {
				continue
			}
			specs = append(specs, spec)
			lookup = append(lookup, spec.Name)
		}
		if len(lookup) > 0 {
			logging.Debug("remote info: " + joinSpecs(specs))
			found, err := e.remote.Info(ctx, lookup)
			if err != nil {
				errs = append(errs, fmt.Errorf("remote info: %w", err))
			}
			for _, spec := range specs {
				i := slices.IndexFunc(found, func(p *pkg.Remote) bool { return spec.NameCmp(p.Name) == 0 })
				if i < 0 || !spec.CheckVersion(found[i].Version) {
					continue
				}
				p := found[i]
				if !tracker.Add(spec.Raw, p.Name) {
					continue
				}
				if err := e.emit(results.NewRemote(spec.Raw, p)); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	if names == nil {
		for _, raw := range targets {
			names = append(names, target.Parse(raw).Name)
		}
	}
	errs = append(errs, e.flush(names))
	return errors.Join(errs...)
}

// List prints every installed package.
func (e *Engine) List(ctx context.Context) error {
	var errs []error
	if e.local != nil {
		for _, p := range e.local.Packages() {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				break
			}
			if err := e.emit(results.NewLocal("", p)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	errs = append(errs, e.flush(nil))
	return errors.Join(errs...)
}

// Upgrades prints the foreign packages for which the remote repository has a
// newer version.
func (e *Engine) Upgrades(ctx context.Context) error {
	var errs []error
	installed, found, err := e.crossReference(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	for _, lp := range installed {
		rp, ok := found[lp.Name]
		if !ok || vercmp.Compare(rp.Version, lp.Version) <= 0 {
			continue
		}
		if err := e.emit(results.NewRemote(lp.Name, rp)); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, e.flush(nil))
	return errors.Join(errs...)
}

// Foreign prints the foreign packages, using the remote entry when the
// remote repository knows the package.
func (e *Engine) Foreign(ctx context.Context) error {
	var errs []error
	installed, found, err := e.crossReference(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	for _, lp := range installed {
		entry := results.NewLocal(lp.Name, lp)
		if rp, ok := found[lp.Name]; ok {
			entry = results.NewRemote(lp.Name, rp)
		}
		if err := e.emit(entry); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, e.flush(nil))
	return errors.Join(errs...)
}

func (e *Engine) crossReference(ctx context.Context) ([]*pkg.Local, map[string]*pkg.Remote, error) {
	if e.local == nil {
		return nil, nil, nil
	}
	installed := e.local.Foreign()
	found := map[string]*pkg.Remote{}
	if e.remote == nil || len(installed) == 0 {
		return installed, found, nil
	}
	names := make([]string, 0, len(installed))
	for _, p := range installed {
		names = append(names, p.Name)
	}
	logging.Debug(fmt.Sprintf("remote info for %d foreign packages", len(names)))
	res, err := e.remote.Info(ctx, names)
	if err != nil {
		return installed, found, fmt.Errorf("remote info: %w", err)
	}
	for _, p := range res {
		found[p.Name] = p
	}
	return installed, found, nil
}

func (e *Engine) matches(terms []string, name, desc string) bool {
	return target.MatchAll(terms, name, e.opts.Regex) || target.MatchAll(terms, desc, e.opts.Regex)
}

// emit prints right away when no order is requested, and buffers otherwise.
func (e *Engine) emit(entry *results.Entry) error {
	if e.opts.Sort == results.SortNone {
		return e.print(entry)
	}
	e.set.Insert(entry)
	return nil
}

func (e *Engine) print(entry *results.Entry) error {
	if e.observe != nil {
		e.observe(entry)
	}
	e.printed++
	return e.printer.Print(entry)
}

// flush ends a cycle: rank, print and drain the buffered entries.
func (e *Engine) flush(terms []string) error {
	defer e.set.Drain()
	if e.set.Len() == 0 {
		return nil
	}
	if e.opts.Sort == results.SortRelevance {
		e.set.Score(terms)
	}
	e.set.Sort(e.opts.Sort)
	for entry := range e.set.All(e.opts.Reverse) {
		if err := e.print(entry); err != nil {
			return err
		}
	}
	return nil
}

func localSource(spec target.Spec, p *pkg.Local) bool {
	return spec.Source == "" || spec.Source == pkg.RepoLocal || spec.Source == p.Repo
}

func joinSpecs(specs []target.Spec) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func longest(terms []string) string {
	var best string
	for _, t := range terms {
		if len(t) > len(best) {
			best = t
		}
	}
	return best
}
