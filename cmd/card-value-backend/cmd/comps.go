package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jessysellshomes/card-value-backend/internal/comps"
	"github.com/jessysellshomes/card-value-backend/internal/config"
	"github.com/jessysellshomes/card-value-backend/pkg/logger"
	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

type compsFlags struct {
	year      string
	set       string
	subject   string
	number    string
	variant   string
	serial    string
	language  string
	domain    string
	auto      bool
	patch     bool
	keywords  []string
	buckets   []string
	tightness string
	limit     int
}

func compsCommand() *cobra.Command {
	var flags compsFlags

	cmd := &cobra.Command{
		Use:   "comps",
		Short: "Look up comps from the terminal",
		Long: "Runs the comp pipeline once against the eBay Browse API using the\n" +
			"configured credentials and prints per-bucket summaries.",
		Example: `  card-value-backend comps --subject "Joe Burrow" --year 2020 --set Prizm --number 315
  card-value-backend comps --subject Charizard --domain pokemon --buckets RAW,PSA_10 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runComps(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.year, "year", "", "card year")
	cmd.Flags().StringVar(&flags.set, "set", "", "set name")
	cmd.Flags().StringVar(&flags.subject, "subject", "", "player or character name")
	cmd.Flags().StringVar(&flags.number, "number", "", "card number")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "parallel or variant")
	cmd.Flags().StringVar(&flags.serial, "serial", "", "serial numbering, e.g. /99")
	cmd.Flags().StringVar(&flags.language, "language", "", "card language")
	cmd.Flags().StringVar(&flags.domain, "domain", "", "card domain (pokemon, sports, ...)")
	cmd.Flags().BoolVar(&flags.auto, "auto", false, "card is an autograph")
	cmd.Flags().BoolVar(&flags.patch, "patch", false, "card is a patch/relic")
	cmd.Flags().StringSliceVar(&flags.keywords, "keywords", nil, "extra search keywords")
	cmd.Flags().StringSliceVar(&flags.buckets, "buckets", nil, "buckets to search (default: domain default set)")
	cmd.Flags().StringVar(&flags.tightness, "tightness", "NORMAL", "query tightness (STRICT, NORMAL, LOOSE)")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "marketplace results per bucket")

	return cmd
}

func runComps(cmd *cobra.Command, flags compsFlags) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New("warn", cfg.Logging.Format)
	p := buildPipeline(cfg, log)

	identity := domain.CardIdentity{
		Year:           flags.year,
		Set:            flags.set,
		Subject:        flags.subject,
		CardNumber:     flags.number,
		Variant:        flags.variant,
		SerialNumbered: flags.serial,
		Language:       flags.language,
		Domain:         flags.domain,
		ExtraKeywords:  flags.keywords,
	}
	// Only forward the flags when set, so the exclusion defaults apply.
	if cmd.Flags().Changed("auto") {
		identity.IsAuto = &flags.auto
	}
	if cmd.Flags().Changed("patch") {
		identity.IsPatch = &flags.patch
	}

	buckets := make([]domain.Bucket, 0, len(flags.buckets))
	for _, b := range flags.buckets {
		buckets = append(buckets, domain.Bucket(b))
	}

	results := p.coord.Run(cmd.Context(), identity, comps.MultiSearch{
		Buckets:             buckets,
		Tightness:           domain.ParseTightness(flags.tightness),
		MaxResultsPerBucket: flags.limit,
	})

	if jsonOutput() {
		return printJSON(os.Stdout, results)
	}
	return printResultsTable(os.Stdout, results)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printResultsTable(
	w io.Writer,
	results map[domain.Bucket]domain.BucketResult,
) error {
	tw := newTabWriter(w)
	tw.writef("BUCKET\tSAMPLE\tMEDIAN\tRANGE\tCONFIDENCE\tNOTES\n")

	for bucket, result := range results {
		if result.Error != "" {
			tw.writef("%s\t-\t-\t-\t-\t%s\n", bucket, result.Error)
			continue
		}

		s := result.Summary
		priceRange := "-"
		median := "-"
		if s.SampleSize > 0 {
			median = fmt.Sprintf("$%.2f", s.MedianAllIn)
			priceRange = fmt.Sprintf("$%.2f-$%.2f", s.RangeAllIn[0], s.RangeAllIn[1])
		}

		notes := ""
		if len(s.Notes) > 0 {
			notes = s.Notes[0]
		}

		tw.writef("%s\t%d\t%s\t%s\t%s\t%s\n",
			bucket, s.SampleSize, median, priceRange, s.Confidence, notes)
	}

	return tw.finish()
}
