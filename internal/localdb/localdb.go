package localdb

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gopak/gopak-query/internal/pkg"
)

type record struct {
	Name          string    `yaml:"name"`
	Version       string    `yaml:"version"`
	Description   string    `yaml:"description"`
	Repo          string    `yaml:"repo"`
	URL           string    `yaml:"url"`
	Arch          string    `yaml:"arch"`
	Groups        []string  `yaml:"groups"`
	Licenses      []string  `yaml:"licenses"`
	Depends       []string  `yaml:"depends"`
	OptDepends    []string  `yaml:"optdepends"`
	Provides      []string  `yaml:"provides"`
	Conflicts     []string  `yaml:"conflicts"`
	Replaces      []string  `yaml:"replaces"`
	Files         []string  `yaml:"files"`
	InstallDate   time.Time `yaml:"install_date"`
	BuildDate     time.Time `yaml:"build_date"`
	Reason        string    `yaml:"install_reason"`
	Validation    []string  `yaml:"validation"`
	InstalledSize int64     `yaml:"installed_size"`
}

type file struct {
	Packages []record `yaml:"packages"`
}

// DB is the installed-package database, loaded once from a YAML file.
// Packages are owned by the DB and shared with callers.
type DB struct {
	path   string
	byName map[string]*pkg.Local
	names  []string
}

// Open reads the database at path. A missing file is an empty database.
func Open(path string) (*DB, error) {
	db := &DB{path: path, byName: map[string]*pkg.Local{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return db, nil
		}
		return nil, err
	}
	if err := db.load(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// Parse builds a database from YAML content.
func Parse(data []byte) (*DB, error) {
	db := &DB{byName: map[string]*pkg.Local{}}
	if err := db.load(data); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) load(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, r := range f.Packages {
		if r.Name == "" {
			return fmt.Errorf("package without name")
		}
		if _, ok := db.byName[r.Name]; ok {
			return fmt.Errorf("duplicate package: %s", r.Name)
		}
		db.byName[r.Name] = &pkg.Local{
			Name:          r.Name,
			Version:       r.Version,
			Description:   r.Description,
			Repo:          r.Repo,
			URL:           r.URL,
			Arch:          r.Arch,
			Groups:        r.Groups,
			Licenses:      r.Licenses,
			Depends:       r.Depends,
			OptDepends:    r.OptDepends,
			Provides:      r.Provides,
			Conflicts:     r.Conflicts,
			Replaces:      r.Replaces,
			Files:         r.Files,
			InstallDate:   r.InstallDate,
			BuildDate:     r.BuildDate,
			Reason:        r.Reason,
			Validation:    r.Validation,
			InstalledSize: r.InstalledSize,
		}
		db.names = append(db.names, r.Name)
	}
	sort.Strings(db.names)
	return nil
}

func (db *DB) Path() string { return db.path }

func (db *DB) Find(name string) (*pkg.Local, bool) {
	p, ok := db.byName[name]
	return p, ok
}

// Packages returns the installed packages ordered by name.
func (db *DB) Packages() []*pkg.Local {
	out := make([]*pkg.Local, 0, len(db.names))
	for _, n := range db.names {
		out = append(out, db.byName[n])
	}
	return out
}

// Foreign returns the installed packages that do not belong to a sync
// repository.
func (db *DB) Foreign() []*pkg.Local {
	var out []*pkg.Local
	for _, p := range db.Packages() {
		if p.Repo == "" {
			out = append(out, p)
		}
	}
	return out
}
