package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/ws1importer/ws1importer/importer"
	"github.com/ws1importer/ws1importer/settings"
	"github.com/ws1importer/ws1importer/utils"
	"github.com/ws1importer/ws1importer/ws1"
)

// version is stamped at build time.
var version = "dev"

func main() {
	var inputPath string
	var outputPath string
	var logLevel string
	var dryRun bool
	var showVersion bool
	flag.StringVar(&inputPath, "input", "", "Path to the input variables JSON file. Reads stdin when omitted or set to -.")
	flag.StringVar(&outputPath, "output", "", "Path to write the output variables JSON file to. Writes stdout when omitted.")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	flag.BoolVar(&dryRun, "dry-run", false, "Never delete anything on the server, only report what would happen.")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit.")

	flag.Parse()

	if showVersion {
		fmt.Println("ws1importer " + version)
		return
	}

	level, err := log.ParseLevel(utils.LogLevel())
	if err != nil {
		log.Fatalf("invalid -log-level value [%s]", logLevel)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	s, err := loadSettings(inputPath)
	if err != nil {
		log.Error(err)
		os.Exit(exitCode(err))
	}

	// The global dry-run switch downgrades an explicitly enabled prune to a
	// report-only one.
	if utils.DryRun() && s.Prune.Mode == settings.PruneOn {
		log.Info("dry run - version pruning downgraded to report-only")
		s.Prune.Mode = settings.PruneDryRun
	}

	auth, err := ws1.NewAuthenticator(context.Background(), s.Auth)
	if err != nil {
		log.Error(err)
		os.Exit(exitCode(err))
	}

	out, err := importer.New(ws1.NewClient(s.APIURL, auth), s).Run()
	if err != nil {
		log.Error(err)
		out.ResultCode = exitCode(err)
		out.Stderr = err.Error()
	}

	if werr := writeOutputs(out, outputPath); werr != nil {
		log.Error(werr)
		if err == nil {
			err = werr
		}
	}

	os.Exit(exitCode(err))
}

func loadSettings(inputPath string) (*settings.Settings, error) {
	var r io.Reader = os.Stdin
	if inputPath != "" && inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, &settings.ConfigError{Reason: err.Error()}
		}
		defer f.Close()
		r = f
	}
	return settings.Load(r)
}

func writeOutputs(out *importer.Outputs, outputPath string) error {
	if outputPath == "" {
		return out.Write(os.Stdout)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return out.Write(f)
}

// exitCode maps an error to the process exit code. Misconfiguration is
// distinguished from a failure at the server so recipe wrappers can tell
// "fix your inputs" from "try again later".
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case settings.IsConfigError(err):
		return 2
	default:
		return 1
	}
}
