package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/versewright/rhyme"
	"github.com/versewright/rhyme/internal/config"
)

// options holds the global flags and the state built from them.
type options struct {
	configPath string
	dataDir    string
	logLevel   string

	cfg *config.Config
	lx  *rhyme.Lexicon
	an  *rhyme.Analyser
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "rhyme",
		Short:         "Detect rhyme and near-rhyme between lines of verse",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data", "", "lexicon data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(
		newAnalyseCmd(opts),
		newSchemeCmd(opts),
		newPoemCmd(opts),
		newCoupletsCmd(opts),
		newGlossCmd(opts),
	)
	return rootCmd
}

// setup loads the configuration, installs the logger and loads the lexicon.
func (o *options) setup(stderr io.Writer) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	if o.dataDir != "" {
		cfg.Lexicon.DataDir = o.dataDir
	}
	if o.logLevel != "" {
		lvl := config.LogLevel(o.logLevel)
		if !lvl.IsValid() {
			return fmt.Errorf("invalid --log-level %q", o.logLevel)
		}
		cfg.Server.LogLevel = lvl
	}
	o.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Server.LogLevel.SlogLevel()})))

	lx, err := rhyme.LoadLexicon(cfg.Lexicon.DataDir,
		rhyme.WithDictionaryFile(cfg.Lexicon.Dictionary),
		rhyme.WithRulesFile(cfg.Lexicon.Inflections),
		rhyme.WithIrregularsFile(cfg.Lexicon.Irregulars),
		rhyme.WithCotCaughtMerger(cfg.Lexicon.MergerEnabled()),
	)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	slog.Debug("lexicon loaded", "data_dir", cfg.Lexicon.DataDir, "words", lx.Len())

	o.lx = lx
	o.an = rhyme.New(lx,
		rhyme.WithMaxSyllables(cfg.Analysis.MaxSyllables),
		rhyme.WithConcurrency(cfg.Analysis.Concurrency),
	)
	return nil
}

func newAnalyseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "analyse LINE LINE [LINE...]",
		Aliases: []string{"analyze"},
		Short:   "Find the common rime of lines assumed to rhyme",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.an.Analyse(args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rhyme.FormatAnalysis(res))
			return nil
		},
	}
}

func newSchemeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scheme FILE [FILE...]",
		Short: "Detect the rhyme scheme of poems (one verse per line, \"-\" for stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poems := make([][]string, len(args))
			for i, path := range args {
				lines, err := readPoem(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				poems[i] = lines
			}
			schemes, err := opts.an.DetectSchemes(cmd.Context(), poems)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for k, s := range schemes {
				if len(args) > 1 {
					fmt.Fprintf(out, "%s\n", args[k])
				}
				fmt.Fprintf(out, "Rhyme scheme: %s\n\n", s)
				for i, line := range s.Lines {
					tail, err := opts.an.Tail(line)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %s  %3d  %s  %s\n", s.Letters[i], i+1, line,
						rhyme.FormatRimeCandidates(rhyme.RimeCandidates(tail)))
				}
				if k < len(schemes)-1 {
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
}

func newPoemCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "poem FILE",
		Short: "Analyse every rhyme group of a poem and export the result as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readPoem(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			pa, err := opts.an.AnalysePoem(lines)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := writeCSV(w, pa); err != nil {
				return err
			}
			if output != "" {
				slog.Info("wrote poem analysis", "path", output, "scheme", pa.Scheme.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write CSV to this file instead of stdout")
	return cmd
}

func newCoupletsCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "couplets FILE",
		Short: "Analyse consecutive line pairs as rhyming couplets and export CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readPoem(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			couplets, err := opts.an.AnalyseCouplets(cmd.Context(), lines)
			if err != nil {
				return err
			}
			slog.Info("analysed couplets", "lines", len(lines), "couplets", len(couplets))

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			records := make([][]string, 0, len(couplets)+1)
			records = append(records, rhyme.CoupletHeader)
			for _, c := range couplets {
				if c.Err != nil {
					slog.Warn("couplet failed", "couplet", c.Number, "err", c.Err)
				}
				records = append(records, c.Record())
			}
			cw := csv.NewWriter(w)
			return cw.WriteAll(records)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write CSV to this file instead of stdout")
	return cmd
}

func newGlossCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gloss TEXT...",
		Short: "Print an interlinear morpheme gloss of a sentence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := opts.lx.Decompose(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rhyme.FormatGloss(words))
			return nil
		},
	}
}

// readPoem reads the non-blank lines of path, or of stdin when path is "-".
func readPoem(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: no lines", path)
	}
	return lines, nil
}

// writeCSV writes the rows of pa with a header line.
func writeCSV(w io.Writer, pa *rhyme.PoemAnalysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rhyme.PoemRowHeader); err != nil {
		return err
	}
	for _, row := range pa.Rows() {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
