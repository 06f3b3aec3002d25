package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/placepin/internal/app"
	"github.com/hyperifyio/placepin/internal/candidate"
)

type rootOptions struct {
	configPath string
	envFiles   []string
	verbose    bool
	cacheDir   string
	noCache    bool
	ocrBackend string
	exclude    []string

	cfg app.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "placepin",
		Short:         "Find the places mentioned in social media posts and pin them on a map",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose (debug) logging")
	pf.StringVar(&opts.cacheDir, "cache.dir", app.DefaultCacheDir, "Cache directory for scraped pages and place lookups")
	pf.BoolVar(&opts.noCache, "no-cache", false, "Disable on-disk caching")
	pf.StringVar(&opts.ocrBackend, "ocr.backend", "", "OCR backend: ocrspace, tesseract or vision")
	pf.StringSliceVar(&opts.exclude, "exclude", nil, "Place names never reported as candidates (replaces the built-in list)")

	root.AddCommand(
		newServeCmd(opts),
		newCandidatesCmd(opts),
		newScrapeCmd(opts),
		newOCRCmd(opts),
		newLocateCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load assembles the configuration: defaults, config file, env, then any
// flags given explicitly.
func (o *rootOptions) load(cmd *cobra.Command) error {
	if err := app.LoadEnvFiles(o.envFiles...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("cache.dir") {
		cfg.CacheDir = o.cacheDir
	}
	if flags.Changed("no-cache") {
		cfg.NoCache = o.noCache
	}
	if flags.Changed("ocr.backend") {
		cfg.OCRBackend = o.ocrBackend
	}
	if flags.Changed("exclude") {
		cfg.ExcludedPlaces = append([]string{}, o.exclude...)
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) newApp() (*app.App, error) {
	a, err := app.New(o.cfg)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return a, nil
}

// readText joins args, or reads stdin when there are none or the only one is "-".
func readText(in io.Reader, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}

func parseModeFlag(s string) (candidate.Mode, error) {
	if s == "" {
		return "", nil
	}
	return candidate.ParseMode(s)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "placepin "+app.VersionString())
			return err
		},
	}
}

