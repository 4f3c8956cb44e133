package query

import (
	"context"
	"errors"
	"testing"

	"github.com/gopak/gopak-query/internal/localdb"
	"github.com/gopak/gopak-query/internal/pkg"
	"github.com/gopak/gopak-query/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const installed = `
packages:
  - name: yay
    version: 12.0-1
    description: Yet another yogurt
  - name: mytool
    version: "0.1"
    description: personal helper
  - name: bash
    version: 5.1.016-1
    repo: core
    description: The GNU Bourne Again shell
  - name: yaourt
    version: 1.9-1
    description: legacy helper
`

type fakeRemote struct {
	pkgs      []*pkg.Remote
	err       error
	searched  []string
	infoNames [][]string
}

func (f *fakeRemote) Name() string { return pkg.RepoAUR }

func (f *fakeRemote) Search(_ context.Context, term string) ([]*pkg.Remote, error) {
	f.searched = append(f.searched, term)
	if f.err != nil {
		return nil, f.err
	}
	return f.pkgs, nil
}

func (f *fakeRemote) Info(_ context.Context, names []string) ([]*pkg.Remote, error) {
	f.infoNames = append(f.infoNames, names)
	if f.err != nil {
		return nil, f.err
	}
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []*pkg.Remote
	for _, p := range f.pkgs {
		if want[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}

// recorder keeps what was printed as "kind:name@target".
type recorder struct {
	lines []string
	fail  error
}

func (r *recorder) Print(e *results.Entry) error {
	if r.fail != nil {
		return r.fail
	}
	r.lines = append(r.lines, e.Kind().String()+":"+e.Name()+"@"+e.Target())
	return nil
}

func newFixture(t *testing.T, opts Options) (*Engine, *fakeRemote, *recorder) {
	t.Helper()
	db, err := localdb.Parse([]byte(installed))
	require.NoError(t, err)
	rem := &fakeRemote{pkgs: []*pkg.Remote{
		{Name: "yay", Version: "12.3.5-1", Description: "Yet another yogurt", Votes: 1800, Popularity: 23.5},
		{Name: "yay-bin", Version: "12.3.5-1", Description: "Yet another yogurt (binary)", Votes: 500, Popularity: 5.1},
		{Name: "yaourt", Version: "1.9-1", Description: "legacy helper", Votes: 900},
	}}
	rec := &recorder{}
	return New(db, rem, rec, opts), rem, rec
}

func TestSearchUnsortedPrintsInDiscoveryOrder(t *testing.T) {
	e, rem, rec := newFixture(t, Options{})
	require.NoError(t, e.Search(context.Background(), []string{"yogurt"}, SourceAll))

	assert.Equal(t, []string{
		"local:yay@yogurt",
		"remote:yay@yogurt",
		"remote:yay-bin@yogurt",
	}, rec.lines)
	assert.Equal(t, []string{"yogurt"}, rem.searched)
}

func TestSearchUsesLongestTermRemotely(t *testing.T) {
	e, rem, rec := newFixture(t, Options{})
	require.NoError(t, e.Search(context.Background(), []string{"yay", "-bin"}, SourceRemote))

	assert.Equal(t, []string{"-bin"}, rem.searched)
	assert.Equal(t, []string{"remote:yay-bin@yay -bin"}, rec.lines)
}

func TestSearchSortedByVotesPinsLocal(t *testing.T) {
	e, _, rec := newFixture(t, Options{Sort: results.SortVotes})
	require.NoError(t, e.Search(context.Background(), []string{"y"}, SourceAll))

	assert.Equal(t, []string{
		"local:mytool@y",
		"local:yaourt@y",
		"local:yay@y",
		"remote:yay@y",
		"remote:yaourt@y",
		"remote:yay-bin@y",
	}, rec.lines)
}

func TestSearchRelevance(t *testing.T) {
	e, _, rec := newFixture(t, Options{Sort: results.SortRelevance})
	require.NoError(t, e.Search(context.Background(), []string{"yay"}, SourceRemote))

	assert.Equal(t, []string{"remote:yay@yay", "remote:yay-bin@yay"}, rec.lines)
}

func TestSearchRemoteErrorStillPrintsLocal(t *testing.T) {
	e, rem, rec := newFixture(t, Options{Sort: results.SortName})
	rem.err = errors.New("offline")

	err := e.Search(context.Background(), []string{"helper"}, SourceAll)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
	assert.Equal(t, []string{"local:mytool@helper", "local:yaourt@helper"}, rec.lines)
}

func TestSearchRegex(t *testing.T) {
	e, _, rec := newFixture(t, Options{Regex: true})
	require.NoError(t, e.Search(context.Background(), []string{"^ya"}, SourceLocal))

	assert.Equal(t, []string{"local:yaourt@^ya", "local:yay@^ya"}, rec.lines)
}

func TestQueryLocalThenRemote(t *testing.T) {
	e, rem, rec := newFixture(t, Options{})
	require.NoError(t, e.Query(context.Background(), []string{"yay", "yay-bin>=12", "nope"}, SourceAll))

	assert.Equal(t, []string{
		"local:yay@yay",
		"remote:yay@yay",
		"remote:yay-bin@yay-bin>=12",
	}, rec.lines)
	require.Len(t, rem.infoNames, 1)
	assert.Equal(t, []string{"yay", "yay-bin", "nope"}, rem.infoNames[0])
}

func TestQueryJustOneSkipsSatisfiedTargets(t *testing.T) {
	e, rem, rec := newFixture(t, Options{JustOne: true})
	require.NoError(t, e.Query(context.Background(), []string{"yay", "yay-bin"}, SourceAll))

	assert.Equal(t, []string{"local:yay@yay", "remote:yay-bin@yay-bin"}, rec.lines)
	assert.Equal(t, [][]string{{"yay-bin"}}, rem.infoNames)
}

func TestQueryRemoteSourceLabel(t *testing.T) {
	e, rem, rec := newFixture(t, Options{})
	require.NoError(t, e.Query(context.Background(), []string{"aur/yay-bin", "chaotic/yaourt"}, SourceRemote))

	assert.Equal(t, []string{"remote:yay-bin@aur/yay-bin"}, rec.lines)
	assert.Equal(t, [][]string{{"yay-bin"}}, rem.infoNames)
}

func TestQueryVersionAndSource(t *testing.T) {
	e, rem, rec := newFixture(t, Options{})
	require.NoError(t, e.Query(context.Background(), []string{"yay>12.1", "core/bash", "extra/bash"}, SourceAll))

	assert.Equal(t, []string{"local:bash@core/bash", "remote:yay@yay>12.1"}, rec.lines)
	assert.Equal(t, [][]string{{"yay"}}, rem.infoNames)
}

func TestListSortedByName(t *testing.T) {
	e, _, rec := newFixture(t, Options{Sort: results.SortName, Reverse: true})
	require.NoError(t, e.List(context.Background()))

	assert.Equal(t, []string{
		"local:yay@",
		"local:yaourt@",
		"local:mytool@",
		"local:bash@",
	}, rec.lines)
}

func TestUpgrades(t *testing.T) {
	e, rem, rec := newFixture(t, Options{})
	require.NoError(t, e.Upgrades(context.Background()))

	assert.Equal(t, []string{"remote:yay@yay"}, rec.lines)
	require.Len(t, rem.infoNames, 1)
	assert.ElementsMatch(t, []string{"yay", "mytool", "yaourt"}, rem.infoNames[0])
}

func TestForeignPrefersRemoteEntry(t *testing.T) {
	e, _, rec := newFixture(t, Options{Sort: results.SortName})
	require.NoError(t, e.Foreign(context.Background()))

	assert.Equal(t, []string{"local:mytool@mytool", "remote:yaourt@yaourt", "remote:yay@yay"}, rec.lines)
}

func TestOfflineEngine(t *testing.T) {
	db, err := localdb.Parse([]byte(installed))
	require.NoError(t, err)
	rec := &recorder{}
	e := New(db, nil, rec, Options{Sort: results.SortName})

	require.NoError(t, e.Foreign(context.Background()))
	assert.Equal(t, []string{"local:mytool@mytool", "local:yaourt@yaourt", "local:yay@yay"}, rec.lines)

	rec.lines = nil
	require.NoError(t, e.Upgrades(context.Background()))
	assert.Empty(t, rec.lines)
}

func TestPrinterErrorIsReturnedAndSetIsDrained(t *testing.T) {
	e, _, rec := newFixture(t, Options{Sort: results.SortName})
	rec.fail = errors.New("broken pipe")

	err := e.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Zero(t, e.set.Len())
}

func TestObserverSeesPrintedEntries(t *testing.T) {
	e, _, _ := newFixture(t, Options{Sort: results.SortName})
	var seen []string
	e.Observe(func(en *results.Entry) { seen = append(seen, en.Name()) })

	require.NoError(t, e.Search(context.Background(), []string{"helper"}, SourceLocal))
	assert.Equal(t, []string{"mytool", "yaourt"}, seen)
	assert.Equal(t, 2, e.Printed())
}

func TestEmptySearchIsNoop(t *testing.T) {
	e, rem, rec := newFixture(t, Options{})
	require.NoError(t, e.Search(context.Background(), nil, SourceAll))
	assert.Empty(t, rec.lines)
	assert.Empty(t, rem.searched)
}
