// Command formcontacts converts a form-collection CSV export into a contacts
// manager import file. It reads the export row by row, remaps seven source
// columns onto the 23-column contacts schema, and asks for a group label to
// stamp on every contact.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/bz4tools/formcontacts/internal/config"
	"github.com/bz4tools/formcontacts/internal/convert"
	"github.com/bz4tools/formcontacts/internal/prompt"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for formcontacts.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`

	Input  string `arg:"" optional:"" help:"Form-export CSV to read (default from config, else input.csv)."`
	Output string `arg:"" optional:"" help:"Contacts CSV to write (default from config, else output.csv)."`

	Label    *string `help:"Labels value for every contact; skips the prompt."`
	NoPrompt bool    `help:"Never prompt; use the configured default label."`
	Quiet    bool    `short:"q" help:"Suppress the startup echo and summary."`
}

// errUsage marks argument mistakes kong cannot catch on its own.
var errUsage = errors.New("provide both an input and an output path, or neither")

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/formcontacts/config.yaml"),
		".formcontacts.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the conversion.
func (c *CLI) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return c.run(cfg, os.Stdin, os.Stdout, os.Stderr)
}

// run executes the conversion against explicit streams, enabling testable wiring.
func (c *CLI) run(cfg *config.Config, stdin *os.File, stdout, stderr io.Writer) error {
	inPath, outPath, err := c.resolvePaths(cfg)
	if err != nil {
		return err
	}

	if !c.Quiet {
		_, _ = fmt.Fprintf(stdout, "Reading from: %s\n", inPath)
		_, _ = fmt.Fprintf(stdout, "Writing to:   %s (UTF-8 with BOM)\n", outPath)
	}

	label, err := c.resolveLabel(cfg, stdin, stdout)
	if err != nil {
		return err
	}
	if !c.Quiet {
		echo := label
		if echo == "" {
			echo = "[EMPTY]"
		}
		_, _ = fmt.Fprintf(stdout, "Using group label: %q\n", echo)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		// Release the input handle before reporting.
		in.Close()
		return fmt.Errorf("opening output file: %w", err)
	}
	defer out.Close()

	conv := convert.New(
		convert.WithLabel(label),
		convert.WithWarnWriter(stderr),
	)
	stats, err := conv.Run(in, out)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	if !c.Quiet {
		_, _ = fmt.Fprintf(stdout, "Done. Processed %d data rows.\n", stats.Processed)
	}
	return nil
}

// resolvePaths picks input and output file names: both positional args, or
// neither (config and built-in defaults then apply).
func (c *CLI) resolvePaths(cfg *config.Config) (inPath, outPath string, err error) {
	switch {
	case c.Input != "" && c.Output != "":
		return c.Input, c.Output, nil
	case c.Input == "" && c.Output == "":
		return cfg.Files.Input, cfg.Files.Output, nil
	default:
		return "", "", errUsage
	}
}

// resolveLabel picks the Labels value: the --label flag wins, then the
// interactive prompt (unless disabled), then the configured default.
func (c *CLI) resolveLabel(cfg *config.Config, stdin *os.File, stdout io.Writer) (string, error) {
	if c.Label != nil {
		return *c.Label, nil
	}
	if c.NoPrompt || !cfg.Labels.Prompt {
		return cfg.Labels.Default, nil
	}

	out, ok := stdout.(*os.File)
	if !ok {
		// No real terminal behind this writer; fall back to a plain read.
		return prompt.AskPlain(stdin, stdout)
	}
	return prompt.Ask(stdin, out)
}

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
)

// exitCode maps an error to the process exit code. Every fatal condition
// (bad arguments, unopenable files, canceled prompt) exits 1.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	return exitFailure
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("formcontacts"),
		kong.Description("Convert a form-export CSV into a contacts import CSV."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	if err := ctx.Run(); err != nil {
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprintln(os.Stderr, "usage: formcontacts [<input.csv> <output.csv>]")
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
