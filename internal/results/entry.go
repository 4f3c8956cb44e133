package results

import (
	"fmt"

	"github.com/gopak/gopak-query/internal/pkg"
)

// Kind tells which package variant an Entry holds.
type Kind uint8

const (
	KindLocal Kind = iota + 1
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Entry is one matched package. Local packages are shared with the
// database they come from; remote packages are owned copies.
type Entry struct {
	kind      Kind
	local     *pkg.Local
	remote    *pkg.Remote
	target    string
	relevance Key[int]
}

// NewLocal wraps an installed package found for target.
func NewLocal(target string, p *pkg.Local) *Entry {
	return &Entry{kind: KindLocal, local: p, target: target, relevance: Max[int]()}
}

// NewRemote wraps a copy of a remote package found for target.
func NewRemote(target string, p *pkg.Remote) *Entry {
	return &Entry{kind: KindRemote, remote: p.Clone(), target: target, relevance: Max[int]()}
}

func (e *Entry) Kind() Kind { return e.kind }

// Target is the search term that produced the entry.
func (e *Entry) Target() string { return e.target }

// Relevance is the best edit distance to a search term, or Max when the
// entry was never scored.
func (e *Entry) Relevance() Key[int] { return e.relevance }

// Local panics unless the entry holds a local package.
func (e *Entry) Local() *pkg.Local {
	if e.kind != KindLocal {
		panic(fmt.Sprintf("results: Local called on %s entry", e.kind))
	}
	return e.local
}

// Remote panics unless the entry holds a remote package.
func (e *Entry) Remote() *pkg.Remote {
	if e.kind != KindRemote {
		panic(fmt.Sprintf("results: Remote called on %s entry", e.kind))
	}
	return e.remote
}

// Field dispatches to the accessor of the held variant.
func (e *Entry) Field(c byte) (string, bool) {
	switch e.kind {
	case KindLocal:
		return e.local.Field(c)
	case KindRemote:
		return e.remote.Field(c)
	}
	return "", false
}

// Items dispatches to the list accessor of the held variant.
func (e *Entry) Items(c byte) ([]string, bool) {
	switch e.kind {
	case KindLocal:
		return e.local.Items(c)
	case KindRemote:
		return e.remote.Items(c)
	}
	return nil, false
}

// Name returns the package name, empty for a released entry.
func (e *Entry) Name() string {
	n, _ := e.Field(pkg.FieldName)
	return n
}

func (e *Entry) installDate() int64 {
	if e.kind != KindLocal || e.local.InstallDate.IsZero() {
		return 0
	}
	return e.local.InstallDate.Unix()
}

func (e *Entry) size() int64 {
	if e.kind != KindLocal {
		return 0
	}
	return e.local.InstalledSize
}

func (e *Entry) votes() Key[int] {
	if e.kind != KindRemote {
		return Max[int]()
	}
	return Exact(e.remote.Votes)
}

func (e *Entry) popularity() Key[float64] {
	if e.kind != KindRemote {
		return Max[float64]()
	}
	return Exact(e.remote.Popularity)
}

func (e *Entry) release() {
	e.remote = nil
	e.local = nil
	e.kind = 0
}
