package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/homed-tools/hddl/internal/catalog"
	"github.com/homed-tools/hddl/internal/config"
	"github.com/homed-tools/hddl/internal/output"
	"github.com/homed-tools/hddl/internal/source"
	"github.com/homed-tools/hddl/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.2.0"

// exitUsage is the exit code for unknown options or stray arguments
const exitUsage = 3

// usageError marks errors that should print help and exit with exitUsage
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "hddl",
	Short: "HOMEd supported device list",
	Long: `Generates a Markdown list of ZigBee devices supported by HOMEd.

Device descriptions are read from the device library JSON files, either from
a local directory (-d) or from the upstream GitHub repository (default), and
grouped by vendor with links to the line each device is defined on.`,
	Args:          noArgs,
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the device list interactively",
	Long: `Collects the device list and shows it in a searchable list.

Press Enter to print the link of the selected device, ESC to exit.`,
	Args: noArgs,
	RunE: runBrowse,
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{err: err}
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(browseCmd)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringP("dir", "d", "", "Collect from a local device library directory instead of GitHub")
	pf.String("aliases", "", "TOML file with section titles per device library file")
	pf.Bool("fail-fast", false, "Stop at the first file that cannot be read or parsed")
	pf.Bool("strict-json", false, "Reject files with data after the top-level JSON value")
	pf.Duration("timeout", 0, "HTTP request timeout for the GitHub source (default 30s)")
	pf.String("listing-url", "", "GitHub contents API URL of the device library directory")
	pf.String("link-base", "", "Base URL device links point to")
	pf.BoolP("verbose", "v", false, "Report progress on stderr")

	rootCmd.Flags().StringP("file", "f", "", "Write output to file (default devs.md with -o file)")
	rootCmd.Flags().StringP("output", "o", "", "Output mode: print, file, copy")
	rootCmd.Flags().Bool("copy", false, "Copy output to the clipboard (shorthand for -o copy)")

	viper.BindPFlag("dir", pf.Lookup("dir"))
	viper.BindPFlag("aliases_file", pf.Lookup("aliases"))
	viper.BindPFlag("fail_fast", pf.Lookup("fail-fast"))
	viper.BindPFlag("strict_json", pf.Lookup("strict-json"))
	viper.BindPFlag("timeout", pf.Lookup("timeout"))
	viper.BindPFlag("listing_url", pf.Lookup("listing-url"))
	viper.BindPFlag("link_base", pf.Lookup("link-base"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Handle output mode flags
	if c, _ := cmd.Flags().GetBool("copy"); c {
		config.SetOutput(string(output.ModeCopy))
	} else if cmd.Flags().Changed("file") && !cmd.Flags().Changed("output") {
		config.SetOutput(string(output.ModeFile))
	}

	mode, err := output.ParseMode(config.GetOutput())
	if err != nil {
		return &usageError{err: err}
	}

	// Fail before collecting anything if the output file cannot be created
	dest := output.NewDestination(mode, config.GetFile())
	if err := dest.Check(); err != nil {
		return err
	}

	printer := ui.NewPrinter(os.Stderr, config.GetVerbose())
	cat, aliases, err := collect(cmd.Context(), printer)
	if err != nil {
		return err
	}

	var b strings.Builder
	if err := catalog.NewRenderer(config.GetLinkBase()).Render(&b, cat, aliases); err != nil {
		return err
	}
	if err := dest.Write(b.String()); err != nil {
		return err
	}
	if mode == output.ModeFile {
		printer.Info("wrote %s", dest.Path())
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(os.Stderr, config.GetVerbose())
	cat, aliases, err := collect(cmd.Context(), printer)
	if err != nil {
		return err
	}

	renderer := catalog.NewRenderer(config.GetLinkBase())
	return ui.Browse(catalog.Sections(cat, aliases), renderer, os.Stdout)
}

// collect builds the catalogue from the configured source
func collect(ctx context.Context, printer *ui.Printer) (*catalog.Catalog, *catalog.AliasTable, error) {
	aliases := catalog.NewAliasTable()
	if path := config.GetAliasesFile(); path != "" {
		if err := aliases.LoadAliasFile(path); err != nil {
			return nil, nil, err
		}
	}

	var opts []catalog.CollectorOption
	if config.GetFailFast() {
		opts = append(opts, catalog.WithFailFast())
	}
	if config.GetStrictJSON() {
		opts = append(opts, catalog.WithStrictJSON())
	}

	var src catalog.Source
	if dir := config.GetDir(); dir != "" {
		printer.Info("collecting from %s", dir)
		src = source.NewDir(dir)
	} else {
		printer.Info("collecting from %s", config.GetListingURL())
		src = source.NewGitHub(config.GetListingURL(), config.GetTimeout())
	}

	cat := catalog.NewCatalog()
	res, err := catalog.NewCollector(cat, aliases, opts...).CollectFrom(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	printer.Result(res, cat)
	return cat, aliases, nil
}

func main() {
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	stop()
	if err == nil {
		return
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(os.Stderr, "Invalid option(s)")
		cmd.Help()
		os.Exit(exitUsage)
	}
	ui.NewPrinter(os.Stderr, false).Error("%v", err)
	os.Exit(1)
}
