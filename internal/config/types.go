package config

import "time"

type Remote struct {
	URL     string `yaml:"url" json:"url"`
	Timeout string `yaml:"timeout" json:"timeout"`
	// Name is the repository label printed for remote packages.
	Name string `yaml:"name" json:"name"`
}

// TimeoutDuration returns the parsed timeout, or 0 when it is unset or
// malformed. Validate reports malformed values.
func (r Remote) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0
	}
	return d
}

type Output struct {
	Sort      string `yaml:"sort" json:"sort"`
	Reverse   bool   `yaml:"reverse" json:"reverse"`
	JustOne   bool   `yaml:"just_one" json:"just_one"`
	Quiet     bool   `yaml:"quiet" json:"quiet"`
	Format    string `yaml:"format" json:"format"`
	Escape    bool   `yaml:"escape" json:"escape"`
	Numbering bool   `yaml:"numbering" json:"numbering"`
	Color     string `yaml:"color" json:"color"`
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	ShowSize  bool   `yaml:"show_size" json:"show_size"`
	Regex     bool   `yaml:"regex" json:"regex"`
}

type Config struct {
	// LocalDB is the installed-package database file. Relative paths are
	// resolved against the config directory.
	LocalDB string `yaml:"local_db" json:"local_db"`
	Remote  Remote `yaml:"remote" json:"remote"`
	Output  Output `yaml:"output" json:"output"`
}
