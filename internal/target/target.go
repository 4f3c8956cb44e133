package target

import (
	"strings"

	"github.com/gopak/gopak-query/internal/vercmp"
)

// Op is a version comparison operator.
type Op int

const (
	OpAny Op = iota
	OpEQ
	OpLT
	OpLE
	OpGT
	OpGE
)

func (o Op) String() string {
	switch o {
	case OpEQ:
		return "="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	}
	return ""
}

// operators in lookup order; two-character operators first.
var operators = []Op{OpLE, OpGE, OpLT, OpGT, OpEQ}

// Spec is a parsed target such as "core/bash>=5.0".
type Spec struct {
	Raw     string
	Source  string
	Name    string
	Op      Op
	Version string
}

// Parse never fails: anything that is not a recognised constraint ends up in
// the name.
func Parse(raw string) Spec {
	s := Spec{Raw: raw}
	rest := raw
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		s.Source = rest[:i]
		rest = rest[i+1:]
	}
	for _, op := range operators {
		sym := op.String()
		i := strings.Index(rest, sym)
		if i < 0 {
			continue
		}
		if i == 0 {
			// "<=1.0" has no name to constrain; keep it as a plain name
			break
		}
		s.Op = op
		s.Version = rest[i+len(sym):]
		s.Name = rest[:i]
		return s
	}
	s.Name = rest
	return s
}

func (s Spec) String() string {
	var b strings.Builder
	if s.Source != "" {
		b.WriteString(s.Source)
		b.WriteByte('/')
	}
	b.WriteString(s.Name)
	if s.Op != OpAny {
		b.WriteString(s.Op.String())
		b.WriteString(s.Version)
	}
	return b.String()
}

// CheckVersion reports whether version satisfies the constraint of s.
func (s Spec) CheckVersion(version string) bool {
	if s.Op == OpAny {
		return true
	}
	c := vercmp.Compare(version, s.Version)
	switch s.Op {
	case OpLE:
		return c <= 0
	case OpGE:
		return c >= 0
	case OpLT:
		return c < 0
	case OpGT:
		return c > 0
	case OpEQ:
		return c == 0
	}
	return true
}

// NameCmp compares the name of s with name byte-wise.
func (s Spec) NameCmp(name string) int { return strings.Compare(s.Name, name) }

// Compatible reports whether b, which must be an exact or unversioned
// target, satisfies the constraint a.
func Compatible(a, b Spec) bool {
	if b.Op != OpEQ && b.Op != OpAny {
		return false
	}
	if a.Name != b.Name {
		return false
	}
	return a.Op == OpAny || b.Op == OpAny || a.CheckVersion(b.Version)
}
