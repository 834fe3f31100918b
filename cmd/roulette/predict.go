package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"roulette_backend/internal/predictor"

	"github.com/spf13/cobra"
)

type predictOptions struct {
	variant string
	count   int
	seed    int64
	json    bool
}

func newPredictCmd() *cobra.Command {
	opts := predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict [outcomes...]",
		Short: "Run the ensemble on a history offline",
		Long: `Run the ensemble on the given history (oldest first) and print the
prediction set with the per-analyzer breakdown. Use "00" for double zero.`,
		Example: "  roulette predict --variant european --seed 42 1 2 3 4 5 6 7 8 9 10",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.variant, "variant", "american", "Table variant (american|european)")
	cmd.Flags().IntVar(&opts.count, "count", predictor.DefaultCount, "Number of outcomes to predict")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for the random fill, 0 uses the clock")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")

	return cmd
}

func runPredict(out io.Writer, opts predictOptions, args []string) error {
	variant, err := predictor.ParseVariant(opts.variant)
	if err != nil {
		return err
	}

	seq := make([]predictor.Outcome, 0, len(args))
	for _, a := range args {
		// Допускаем "1,2,3" одним аргументом
		for _, part := range strings.Split(a, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			o, err := predictor.ParseOutcome(part)
			if err != nil {
				return err
			}
			if !variant.Contains(o) {
				return fmt.Errorf("%s is not on the %s table", o, variant)
			}
			seq = append(seq, o)
		}
	}

	var engineOpts []predictor.Option
	if opts.seed != 0 {
		engineOpts = append(engineOpts, predictor.WithSeed(opts.seed))
	}
	res := predictor.New(engineOpts...).Predict(seq, opts.count, variant)

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(res.Predictions) == 0 {
		_, err = fmt.Fprintf(out, "not enough data: %d of %d outcomes\n", len(seq), predictor.MinHistory)
		return err
	}

	fmt.Fprintf(out, "predictions: %s\n", joinOutcomes(res.Predictions))
	for _, a := range res.Analyzers {
		fmt.Fprintf(out, "  %-9s %.1f  %s\n", a.Name, a.Weight, joinOutcomes(a.Predictions))
	}
	return nil
}

func joinOutcomes(outcomes []predictor.Outcome) string {
	if len(outcomes) == 0 {
		return "-"
	}
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = o.String()
	}
	return strings.Join(parts, " ")
}
