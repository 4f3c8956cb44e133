package console

import (
	"errors"
	"fmt"
	"strconv"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/gopak/gopak-query/internal/pkg"
	"github.com/gopak/gopak-query/internal/results"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Item is a printed entry kept for picking. Entries are released at the end
// of a query cycle, so the fields are copied out.
type Item struct {
	Repo    string
	Name    string
	Version string
	Votes   string
}

func (it Item) Label() string {
	return fmt.Sprintf("%s/%s %s", it.Repo, it.Name, it.Version)
}

type askFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

// Picker collects the entries of a query cycle and lets the user choose
// some of them.
type Picker struct {
	items []Item
	seen  map[string]struct{}
	ask   askFunc
}

func NewPicker() *Picker {
	return &Picker{seen: map[string]struct{}{}, ask: survey.AskOne}
}

// Observe records e. It is meant to be passed to query.Engine.Observe.
func (p *Picker) Observe(e *results.Entry) {
	it := Item{Name: e.Name()}
	it.Repo, _ = e.Field(pkg.FieldSource)
	it.Version, _ = e.Field(pkg.FieldVersion)
	if v, ok := e.Field(pkg.FieldVotes); ok {
		it.Votes = v
	}
	if _, dup := p.seen[it.Label()]; dup {
		return
	}
	p.seen[it.Label()] = struct{}{}
	p.items = append(p.items, it)
}

// Pick asks which of the collected items to keep. Nothing is asked when
// nothing was collected.
func (p *Picker) Pick(message string) ([]Item, error) {
	if len(p.items) == 0 {
		return nil, nil
	}
	labels := make([]string, 0, len(p.items))
	byLabel := make(map[string]Item, len(p.items))
	for _, it := range p.items {
		labels = append(labels, it.Label())
		byLabel[it.Label()] = it
	}
	selected := make([]string, 0)
	ms := &survey.MultiSelect{Message: message, Options: labels}
	if err := p.ask(ms, &selected); err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(selected))
	for _, l := range selected {
		it, ok := byLabel[l]
		if !ok {
			return nil, errors.New("unknown selection: " + l)
		}
		out = append(out, it)
	}
	return out, nil
}

// RenderTable lays the items out as a table, one row per item.
func RenderTable(items []Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Repository", "Package", "Version", "Votes"})
	for i, it := range items {
		votes := it.Votes
		if votes == "" {
			votes = "-"
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), it.Repo, text.Bold.Sprint(it.Name), it.Version, votes})
	}
	return tw.Render() + "\n"
}
