package pkg

import (
	"strconv"
	"strings"
	"time"
)

// Repository names used for the "r" field.
const (
	RepoLocal = "local"
	RepoAUR   = "aur"
)

// Field characters understood by Local.Field and Remote.Field.
const (
	FieldArch         byte = 'a'
	FieldConflicts    byte = 'C'
	FieldDepends      byte = 'D'
	FieldDescription  byte = 'd'
	FieldFiles        byte = 'F'
	FieldGroups       byte = 'g'
	FieldID           byte = 'i'
	FieldInstallSize  byte = 'I'
	FieldKeywords     byte = 'K'
	FieldLicenses     byte = 'L'
	FieldLocalVersion byte = 'l'
	FieldMaintainer   byte = 'm'
	FieldName         byte = 'n'
	FieldOptDepends   byte = 'O'
	FieldOutOfDate    byte = 'o'
	FieldPopularity   byte = 'p'
	FieldProvides     byte = 'P'
	FieldRepository   byte = 'r'
	FieldReplaces     byte = 'R'
	FieldSource       byte = 's'
	FieldTarget       byte = 't'
	FieldURL          byte = 'u'
	FieldVersion      byte = 'v'
	FieldNewVersion   byte = 'V'
	FieldVotes        byte = 'w'
	FieldInstallDate  byte = '1'
	FieldBuildDate    byte = '2'
	FieldReason       byte = '3'
	FieldValidation   byte = '4'
)

// ListSeparator joins the items of list-valued fields returned by Field.
// Callers wanting another separator use Items.
const ListSeparator = " "

// Local is a package of the installed-package database.
type Local struct {
	Name          string
	Version       string
	Description   string
	// Repo is the sync repository the package was installed from; empty
	// for foreign packages.
	Repo          string
	URL           string
	Arch          string
	Groups        []string
	Licenses      []string
	Depends       []string
	OptDepends    []string
	Provides      []string
	Conflicts     []string
	Replaces      []string
	Files         []string
	InstallDate   time.Time
	BuildDate     time.Time
	Reason        string
	Validation    []string
	InstalledSize int64
}

// Field returns the value of the field designated by c.
func (p *Local) Field(c byte) (string, bool) {
	switch c {
	case FieldName:
		return nonEmpty(p.Name)
	case FieldVersion, FieldLocalVersion, FieldNewVersion:
		return nonEmpty(p.Version)
	case FieldDescription:
		return nonEmpty(p.Description)
	case FieldSource:
		if p.Repo != "" {
			return p.Repo, true
		}
		return RepoLocal, true
	case FieldRepository:
		return RepoLocal, true
	case FieldURL:
		return nonEmpty(p.URL)
	case FieldArch:
		return nonEmpty(p.Arch)
	case FieldGroups:
		return Join(p.Groups, ListSeparator)
	case FieldLicenses:
		return Join(p.Licenses, ListSeparator)
	case FieldDepends:
		return Join(p.Depends, ListSeparator)
	case FieldOptDepends:
		return Join(p.OptDepends, ListSeparator)
	case FieldProvides:
		return Join(p.Provides, ListSeparator)
	case FieldConflicts:
		return Join(p.Conflicts, ListSeparator)
	case FieldReplaces:
		return Join(p.Replaces, ListSeparator)
	case FieldFiles:
		return Join(p.Files, ListSeparator)
	case FieldInstallDate:
		return unixTime(p.InstallDate)
	case FieldBuildDate:
		return unixTime(p.BuildDate)
	case FieldReason:
		return nonEmpty(p.Reason)
	case FieldValidation:
		return Join(p.Validation, ListSeparator)
	case FieldInstallSize:
		return strconv.FormatInt(p.InstalledSize, 10), true
	}
	return "", false
}

// Items returns the non-empty items of the list-valued field c.
func (p *Local) Items(c byte) ([]string, bool) {
	switch c {
	case FieldGroups:
		return items(p.Groups)
	case FieldLicenses:
		return items(p.Licenses)
	case FieldDepends:
		return items(p.Depends)
	case FieldOptDepends:
		return items(p.OptDepends)
	case FieldProvides:
		return items(p.Provides)
	case FieldConflicts:
		return items(p.Conflicts)
	case FieldReplaces:
		return items(p.Replaces)
	case FieldFiles:
		return items(p.Files)
	case FieldValidation:
		return items(p.Validation)
	}
	return nil, false
}

// Remote is a package of the remote repository.
type Remote struct {
	ID          int
	Name        string
	PackageBase string
	Version     string
	Description string
	URL         string
	Maintainer  string
	// Repo is the name the remote repository is known by; empty means
	// RepoAUR.
	Repo string
	// OutOfDate is the unix time the package was flagged, 0 when current.
	OutOfDate   int64
	Votes       int
	Popularity  float64
	Licenses    []string
	Keywords    []string
	Depends     []string
	OptDepends  []string
	Provides    []string
	Conflicts   []string
	Replaces    []string
	FirstSubmit time.Time
	LastModify  time.Time
}

// Field returns the value of the field designated by c.
func (p *Remote) Field(c byte) (string, bool) {
	switch c {
	case FieldName:
		return nonEmpty(p.Name)
	case FieldVersion, FieldNewVersion:
		return nonEmpty(p.Version)
	case FieldDescription:
		return nonEmpty(p.Description)
	case FieldSource, FieldRepository:
		if p.Repo != "" {
			return p.Repo, true
		}
		return RepoAUR, true
	case FieldURL:
		return nonEmpty(p.URL)
	case FieldMaintainer:
		return nonEmpty(p.Maintainer)
	case FieldOutOfDate:
		if p.OutOfDate > 0 {
			return "1", true
		}
		return "0", true
	case FieldVotes:
		return strconv.Itoa(p.Votes), true
	case FieldPopularity:
		return strconv.FormatFloat(p.Popularity, 'f', 6, 64), true
	case FieldID:
		return strconv.Itoa(p.ID), true
	case FieldLicenses:
		return Join(p.Licenses, ListSeparator)
	case FieldKeywords:
		return Join(p.Keywords, ListSeparator)
	case FieldDepends:
		return Join(p.Depends, ListSeparator)
	case FieldOptDepends:
		return Join(p.OptDepends, ListSeparator)
	case FieldProvides:
		return Join(p.Provides, ListSeparator)
	case FieldConflicts:
		return Join(p.Conflicts, ListSeparator)
	case FieldReplaces:
		return Join(p.Replaces, ListSeparator)
	case FieldBuildDate:
		return unixTime(p.LastModify)
	}
	return "", false
}

// Items returns the non-empty items of the list-valued field c.
func (p *Remote) Items(c byte) ([]string, bool) {
	switch c {
	case FieldLicenses:
		return items(p.Licenses)
	case FieldKeywords:
		return items(p.Keywords)
	case FieldDepends:
		return items(p.Depends)
	case FieldOptDepends:
		return items(p.OptDepends)
	case FieldProvides:
		return items(p.Provides)
	case FieldConflicts:
		return items(p.Conflicts)
	case FieldReplaces:
		return items(p.Replaces)
	}
	return nil, false
}

// Clone returns a deep copy of p.
func (p *Remote) Clone() *Remote {
	if p == nil {
		return nil
	}
	c := *p
	c.Licenses = cloneStrings(p.Licenses)
	c.Keywords = cloneStrings(p.Keywords)
	c.Depends = cloneStrings(p.Depends)
	c.OptDepends = cloneStrings(p.OptDepends)
	c.Provides = cloneStrings(p.Provides)
	c.Conflicts = cloneStrings(p.Conflicts)
	c.Replaces = cloneStrings(p.Replaces)
	return &c
}

// Join concatenates the non-empty items with sep. It reports false when
// nothing is left to join.
func Join(items []string, sep string) (string, bool) {
	var b strings.Builder
	n := 0
	for _, it := range items {
		if it == "" {
			continue
		}
		if n > 0 {
			b.WriteString(sep)
		}
		b.WriteString(it)
		n++
	}
	return b.String(), n > 0
}

func nonEmpty(s string) (string, bool) { return s, s != "" }

func items(s []string) ([]string, bool) {
	var out []string
	for _, it := range s {
		if it != "" {
			out = append(out, it)
		}
	}
	return out, len(out) > 0
}

func unixTime(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return strconv.FormatInt(t.Unix(), 10), true
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
