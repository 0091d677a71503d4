package main

import (
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spellbind/spellbind"
	"github.com/spellbind/spellbind/indexfile"
	"github.com/spellbind/spellbind/internal/config"
	"github.com/spellbind/spellbind/internal/logger"
	"github.com/spellbind/spellbind/server"
	"github.com/spellbind/spellbind/verbosity"
)

var (
	configPath    string
	verbosityName string
	verbose       bool

	log = logger.New("spellbind")
)

func main() {
	root := &cobra.Command{
		Use:   "spellbind",
		Short: "Spelling correction and word segmentation over a frequency lexicon",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(charmlog.DebugLevel)
				charmlog.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "spellbind.toml", "path to TOML config")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	lookupCmd := &cobra.Command{
		Use:   "lookup <term>...",
		Short: "Suggest corrections for single terms",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLookup,
	}
	lookupCmd.Flags().StringVar(&verbosityName, "verbosity", "top", "result policy: top, closest or all")

	compoundCmd := &cobra.Command{
		Use:   "compound <phrase>",
		Short: "Correct and segment a whole phrase",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompound,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	indexCmd := &cobra.Command{
		Use:   "index <output>",
		Short: "Write a prebuilt delete-index snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runIndex,
	}

	root.AddCommand(lookupCmd, compoundCmd, serveCmd, indexCmd)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func buildEngine(cfg *config.Config) (*spellbind.Engine, error) {
	opts := []spellbind.Option{
		spellbind.WithMaxDictionaryEditDistance(cfg.Engine.MaxEditDistance),
		spellbind.WithPrefixLength(cfg.Engine.PrefixLength),
		spellbind.WithCountThreshold(cfg.Engine.CountThreshold),
	}

	if cfg.Dict.IndexPath != "" {
		snapshot, err := indexfile.Load(cfg.Dict.IndexPath)
		if err != nil {
			return nil, err
		}
		if err := snapshot.Validate(cfg.Engine.MaxEditDistance, cfg.Engine.PrefixLength); err != nil {
			return nil, err
		}
		opts = append(opts, spellbind.WithPrebuiltDeletes(snapshot.Deletes))
		log.Debug("seeded prebuilt delete index", "buckets", len(snapshot.Deletes))
	}

	builder, err := spellbind.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.Dict.UnigramPath == "" {
		return nil, fmt.Errorf("no unigram lexicon configured (dict.unigram_path)")
	}
	if err := builder.LoadDictionaryFile(cfg.Dict.UnigramPath); err != nil {
		return nil, err
	}
	if cfg.Dict.BigramPath != "" {
		if err := builder.LoadBigramDictionaryFile(cfg.Dict.BigramPath); err != nil {
			return nil, err
		}
	}

	engine := builder.Build()
	log.Debug("engine ready", "words", engine.WordCount(), "buckets", engine.EntryCount())
	return engine, nil
}

func setup() (*config.Config, *spellbind.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, engine, nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	verb, ok := verbosity.Parse(verbosityName)
	if !ok {
		return fmt.Errorf("unknown verbosity %q", verbosityName)
	}

	_, engine, err := setup()
	if err != nil {
		return err
	}

	for _, term := range args {
		suggestions, err := engine.Lookup(term, verb)
		if err != nil {
			return err
		}
		fmt.Printf("%s:\n", term)
		for _, s := range suggestions {
			fmt.Printf("  %-24s distance=%d frequency=%d\n", s.Term, s.Distance, s.Frequency)
		}
	}
	return nil
}

func runCompound(cmd *cobra.Command, args []string) error {
	_, engine, err := setup()
	if err != nil {
		return err
	}

	suggestions, err := engine.LookupCompound(args[0])
	if err != nil {
		return err
	}
	for _, s := range suggestions {
		fmt.Printf("%s  distance=%d frequency=%d\n", s.Term, s.Distance, s.Frequency)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, engine, err := setup()
	if err != nil {
		return err
	}

	srv := server.New(engine, log)
	return srv.Start(cfg.Server.Addr)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// snapshots are generated from scratch, ignore any configured index
	cfg.Dict.IndexPath = ""

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	snapshot := &indexfile.Snapshot{
		MaxDictionaryEditDistance: cfg.Engine.MaxEditDistance,
		PrefixLength:              cfg.Engine.PrefixLength,
		Deletes:                   engine.Deletes(),
		Words:                     engine.Words(),
	}
	if err := indexfile.Save(args[0], snapshot); err != nil {
		return err
	}
	log.Info("snapshot written", "path", args[0], "buckets", len(snapshot.Deletes), "words", len(snapshot.Words))
	return nil
}
