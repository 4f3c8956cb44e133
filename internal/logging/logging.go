package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/text"
)

var logfile *os.File
var verbose bool

func init() {
	log.SetOutput(io.Discard)
}

// Init appends log lines to <dir>/logs/gopak-query.log.
func Init(dir string) error {
	p := filepath.Join(dir, "logs")
	if err := os.MkdirAll(p, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(p, "gopak-query.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logfile = f
	log.SetOutput(f)
	return nil
}

func Close() {
	if logfile != nil {
		_ = logfile.Close()
		logfile = nil
	}
	log.SetOutput(io.Discard)
}

func Info(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	log.Println(msg)
}

func Error(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, text.FgRed.Sprint(msg))
	log.Println("[ERROR] " + msg)
}

// SetVerbose toggles debug output on stderr.
func SetVerbose(v bool) { verbose = v }

// Debug is always logged to the file and printed only in verbose mode.
func Debug(msg string) {
	log.Println("[DEBUG] " + msg)
	if !verbose {
		return
	}
	_, _ = fmt.Fprintln(os.Stderr, text.FgHiBlack.Sprint(msg))
}
