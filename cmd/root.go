package cmd

import (
	"context"
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/gopak/gopak-query/internal/assets"
	"github.com/gopak/gopak-query/internal/config"
	"github.com/gopak/gopak-query/internal/logging"
	"github.com/spf13/cobra"
)

var cfgFile string
var cfgDir string
var verbose bool
var version = "dev"

// ErrNothingFound is returned in quiet mode when a query printed nothing,
// so that scripts can rely on the exit status.
var ErrNothingFound = errors.New("nothing found")

var flags struct {
	db        string
	offline   bool
	sort      string
	reverse   bool
	justOne   bool
	quiet     bool
	format    string
	escape    bool
	numbering bool
	color     string
	delimiter string
	showSize  bool
}

var rootCmd = &cobra.Command{
	Use:           "gpq",
	Short:         "Query installed and remote packages",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Run executes the command line and returns the exit status. A failure is
// logged before the log file is closed.
func Run(ctx context.Context) int {
	defer logging.Close()
	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNothingFound):
		return 1
	}
	logging.Error(err.Error())
	return 1
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "path to any YAML file inside the config directory (default dir: ~/.config/gopak-query); all *.yaml in that directory are merged")
	pf.BoolVarP(&verbose, "verbose", "v", false, "show remote requests and other details")
	pf.StringVar(&flags.db, "db", "", "installed-package database file")
	pf.BoolVar(&flags.offline, "offline", false, "do not contact the remote repository")
	pf.StringVarP(&flags.sort, "sort", "s", "", "sort by none, name, installdate, size, votes, popularity or relevance")
	pf.BoolVarP(&flags.reverse, "reverse", "r", false, "reverse the sort order")
	pf.BoolVar(&flags.justOne, "just-one", false, "report at most one result per target")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "print nothing; exit status tells whether something was found")
	pf.StringVarP(&flags.format, "format", "f", "", "print each result with this template (%n name, %v version, ...)")
	pf.BoolVar(&flags.escape, "escape", false, "escape double quotes in template output and omit newlines")
	pf.BoolVar(&flags.numbering, "number", false, "number the results")
	pf.StringVar(&flags.color, "color", "", "auto, always or never")
	pf.StringVar(&flags.delimiter, "delimiter", "", "separator for list-valued fields")
	pf.BoolVar(&flags.showSize, "show-size", false, "show the installed size")
	rootCmd.Version = version
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgFile != "" {
		cfgDir = filepath.Dir(cfgFile)
	} else {
		dir, _ := os.UserConfigDir()
		if su := os.Getenv("SUDO_USER"); su != "" {
			if u, err := user.Lookup(su); err == nil && u.HomeDir != "" {
				dir = filepath.Join(u.HomeDir, ".config")
			}
		}
		cfgDir = filepath.Join(dir, "gopak-query")
	}
	if err := assets.WriteDefaultConfigIfMissing(cfgDir); err != nil {
		logging.Error("config dir: " + err.Error())
		os.Exit(1)
	}
	entries, _ := os.ReadDir(cfgDir)
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		low := strings.ToLower(e.Name())
		if strings.HasSuffix(low, ".yaml") || strings.HasSuffix(low, ".yml") {
			files = append(files, filepath.Join(cfgDir, e.Name()))
		}
	}
	cfg, err := config.LoadDefaultsAndFiles(assets.DefaultConfig, files)
	if err != nil {
		logging.Error("config error: " + err.Error())
		os.Exit(1)
	}
	if err := config.ValidateAgainstSchema(cfg); err != nil {
		logging.Error("schema error: " + err.Error())
		os.Exit(1)
	}
	if err := logging.Init(cfgDir); err != nil {
		logging.Error("log file: " + err.Error())
	}
	logging.SetVerbose(verbose)
}
