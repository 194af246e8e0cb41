package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"studysize/adapters/excel"
	"studysize/adapters/report"
	"studysize/app"
	"studysize/domain/design"
	"studysize/domain/table"
	"studysize/internal"
	"studysize/internal/calculator"
)

// groupFlags are shared by the scalar subcommands.
type groupFlags struct {
	exposed    float64
	unexposed  float64
	groupRatio float64
	ci         float64
	format     string
}

func (g *groupFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&g.exposed, "exposed", 0, "Index group risk or rate (exposure prevalence in cases for odds_ratio)")
	cmd.Flags().Float64Var(&g.unexposed, "unexposed", 0, "Comparison group risk or rate (exposure prevalence in controls for odds_ratio)")
	cmd.Flags().Float64Var(&g.groupRatio, "group-ratio", design.DefaultGroupRatio, "Comparison group size over index group size")
	cmd.Flags().Float64Var(&g.ci, "ci", 0, "Confidence level (default DEFAULT_CONFIDENCE)")
	cmd.Flags().StringVar(&g.format, "format", "md", "Output format: json|csv|md|html")
	_ = cmd.MarkFlagRequired("exposed")
	_ = cmd.MarkFlagRequired("unexposed")
}

func (g *groupFlags) groups() design.Groups {
	return design.Groups{Index: g.exposed, Comparison: g.unexposed}
}

func (g *groupFlags) confidence(cmd *cobra.Command) (float64, error) {
	if cmd.Flags().Changed("ci") {
		return g.ci, nil
	}
	cfg, err := loadEnv()
	if err != nil {
		return 0, err
	}
	return cfg.Sweep.DefaultConfidence, nil
}

func newSampleSizeCmd() *cobra.Command {
	var g groupFlags
	var precision float64

	cmd := &cobra.Command{
		Use:   "n [measure]",
		Short: "Sample size needed for a target confidence interval precision",
		Long: `Compute the index and comparison group sizes whose confidence interval
reaches the requested precision. For ratio measures precision is the ratio of
the upper to the lower limit; for differences it is the interval width.

Example: studysize n risk_difference --precision 0.08 --exposed 0.4 --unexposed 0.3 --group-ratio 3 --ci 0.9`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			measure, err := design.ParseEffectMeasure(args[0])
			if err != nil {
				return err
			}
			ci, err := g.confidence(cmd)
			if err != nil {
				return err
			}
			res, err := calculator.SampleSize(design.SampleSizeRequest{
				Measure:    measure,
				Precision:  precision,
				Groups:     g.groups(),
				GroupRatio: g.groupRatio,
				Confidence: ci,
			})
			if err != nil {
				return err
			}
			return writeCells(cmd.OutOrStdout(), g.format, res.Row())
		},
	}

	g.register(cmd)
	cmd.Flags().Float64Var(&precision, "precision", 0, "Target precision")
	_ = cmd.MarkFlagRequired("precision")
	return cmd
}

func newPrecisionCmd() *cobra.Command {
	var g groupFlags
	var n float64

	cmd := &cobra.Command{
		Use:   "precision [measure]",
		Short: "Confidence interval precision achieved by a given index group size",
		Long: `Compute the precision achieved when the index group (exposed, or cases for
odds_ratio) has n units and the comparison group has n * group-ratio units.

Example: studysize precision odds_ratio --n 500 --exposed 0.6 --unexposed 0.4 --group-ratio 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			measure, err := design.ParseEffectMeasure(args[0])
			if err != nil {
				return err
			}
			ci, err := g.confidence(cmd)
			if err != nil {
				return err
			}
			res, err := calculator.Precision(design.PrecisionRequest{
				Measure:    measure,
				NIndex:     n,
				Groups:     g.groups(),
				GroupRatio: g.groupRatio,
				Confidence: ci,
			})
			if err != nil {
				return err
			}
			return writeCells(cmd.OutOrStdout(), g.format, res.Row())
		},
	}

	g.register(cmd)
	cmd.Flags().Float64Var(&n, "n", 0, "Index group size")
	_ = cmd.MarkFlagRequired("n")
	return cmd
}

func newUpperCmd() *cobra.Command {
	var g groupFlags
	var upperLimit, prob float64

	cmd := &cobra.Command{
		Use:   "upper [measure]",
		Short: "Sample size keeping the upper confidence limit below a bound",
		Long: `Compute the group sizes at which the upper confidence limit falls at or below
--upper-limit with probability --prob, given the effect implied by the groups.

Example: studysize upper rate_ratio --upper-limit 2 --prob 0.9 --exposed 0.01 --unexposed 0.01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			measure, err := design.ParseEffectMeasure(args[0])
			if err != nil {
				return err
			}
			ci, err := g.confidence(cmd)
			if err != nil {
				return err
			}
			res, err := calculator.UpperBound(design.UpperBoundRequest{
				Measure:    measure,
				UpperLimit: upperLimit,
				Prob:       prob,
				Groups:     g.groups(),
				GroupRatio: g.groupRatio,
				Confidence: ci,
			})
			if err != nil {
				return err
			}
			return writeCells(cmd.OutOrStdout(), g.format, res.Row())
		},
	}

	g.register(cmd)
	cmd.Flags().Float64Var(&upperLimit, "upper-limit", 0, "Upper confidence limit of concern")
	cmd.Flags().Float64Var(&prob, "prob", 0, "Probability the upper limit falls at or below --upper-limit")
	_ = cmd.MarkFlagRequired("upper-limit")
	_ = cmd.MarkFlagRequired("prob")
	return cmd
}

func newMapCmd() *cobra.Command {
	var argFlags []string
	var gridFile string
	var format string
	var outFile string

	cmd := &cobra.Command{
		Use:   "map [function]",
		Short: "Evaluate a function over every combination of argument values",
		Long: `Evaluate a catalog function (see "studysize functions") over the Cartesian
product of its argument values. Values come from repeated --arg flags, a grid
file (.xlsx or .csv, one column per parameter), or both; --arg wins.

Example: studysize map n_risk_ratio --arg precision=1.5,2,3 --arg exposed=0.4 --arg unexposed=0.3 --arg group_ratio=1,3 --format xlsx --out rr.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEnv()
			if err != nil {
				return err
			}
			logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))

			grid := excel.Grid{}
			if gridFile != "" {
				if grid, err = excel.ReadGridFile(gridFile); err != nil {
					return err
				}
			}
			for _, a := range argFlags {
				name, values, err := parseArg(a)
				if err != nil {
					return err
				}
				grid[name] = values
			}

			writer, err := report.DefaultWriters(args[0]).Lookup(format)
			if err != nil {
				return err
			}

			sweeps := app.NewSweepService(calculator.New(), app.SweepOptions{
				Workers:           cfg.Sweep.Workers,
				MaxRows:           cfg.Sweep.MaxRows,
				DefaultConfidence: cfg.Sweep.DefaultConfidence,
			}, logger)
			result, err := sweeps.Map(cmd.Context(), app.SweepRequest{Function: args[0], Args: grid})
			if err != nil {
				return err
			}

			if outFile == "" {
				return writer.Write(cmd.OutOrStdout(), result.Table)
			}
			path := outFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(cfg.Export.Dir, path)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			if err := writer.Write(f, result.Table); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			logger.Info("wrote %d rows to %s (sweep %s)", result.Table.Len(), path, result.SweepID)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&argFlags, "arg", nil, "Parameter values as name=v1,v2,... (repeatable)")
	cmd.Flags().StringVar(&gridFile, "grid", "", "Read parameter values from an .xlsx or .csv file")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: json|csv|xlsx|md|html")
	cmd.Flags().StringVar(&outFile, "out", "", "Write to this file (relative to EXPORT_DIR) instead of stdout")
	return cmd
}

func newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions available to map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, fn := range calculator.Functions() {
				params := make([]string, len(fn.Params))
				for i, p := range fn.Params {
					params[i] = p.Name
					if p.Default != nil {
						params[i] += "=" + strconv.FormatFloat(*p.Default, 'g', -1, 64)
					}
				}
				fmt.Fprintf(out, "%-28s (%s) -> %s\n", fn.Name, strings.Join(params, ", "), strings.Join(fn.Outputs, ", "))
			}
			return nil
		},
	}
}

// parseArg splits "name=v1,v2" into a parameter name and its values.
func parseArg(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid --arg %q: want name=v1,v2,...", s)
	}
	var values []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid --arg %q: %w", s, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return "", nil, fmt.Errorf("invalid --arg %q: no values", s)
	}
	return name, values, nil
}

// writeCells prints one result row in the requested format.
func writeCells(out io.Writer, format string, cells []design.Cell) error {
	columns := make([]string, len(cells))
	row := make([]float64, len(cells))
	for i, c := range cells {
		columns[i] = c.Name
		row[i] = c.Value
	}
	t := table.New(columns, 1)
	if err := t.Append(row); err != nil {
		return err
	}
	writer, err := report.DefaultWriters("").Lookup(format)
	if err != nil {
		return err
	}
	return writer.Write(out, t)
}
