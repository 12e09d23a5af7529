// Command hichew searches the optimal TAD-segmentation parameter for
// each chromosome of a Hi-C experiment.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/pipeline"
	"github.com/aence/hichew/search"
	"github.com/aence/hichew/segment"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hichew",
		Short:         "adaptive TAD-segmentation parameter search for Hi-C contact maps",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "", "path to a YAML config file")
	root.PersistentFlags().String("log-level", "info", "logrus level (debug, info, warn, error)")
	root.AddCommand(newSearchCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "search the optimal segmentation parameter per chromosome",
		RunE:  runSearch,
	}
	fl := cmd.Flags()
	fl.String("method", string(hic.Armatus), "segmentation method: armatus, modularity or insulation")
	fl.String("data-dir", "", "directory with <stage>/<chrom>.tsv[.gz] dense matrices")
	fl.String("stage", "3-4h", "developmental stage to search")
	fl.StringSlice("chroms", nil, "chromosomes to process")
	fl.Int("resolution", 5000, "bin resolution in bp")
	fl.Float64("grid-start", 0, "first grid value")
	fl.Float64("grid-stop", 0, "exclusive grid upper bound")
	fl.Float64("grid-step", 0, "grid step")
	fl.Float64("expected", pipeline.DefaultExpected, "expected TAD size in bp")
	fl.Float64("percentile", pipeline.DefaultPercentile, "normalization clamp percentile")
	fl.Float64("eps", 0, "stop tolerance (0 means the method default)")
	fl.Int("window-eps", pipeline.DefaultWindowEps, "trailing count window for the insulation early stop")
	fl.Float64("max-intertad-size", segment.DefaultMaxInterTADSize, "exclusive lower segment size bound, in bins")
	fl.Float64("max-tad-size", segment.DefaultMaxTADSize, "exclusive upper segment size bound, in bins")
	fl.Int64("bad-bin-distance", segment.DefaultBadBinDistance, "bad-interval expansion for insulation boundaries, in bins")
	fl.Bool("adaptive-threshold", false, "derive the noise metric threshold from the noise frequency")
	fl.Int("workers", 1, "chromosomes processed in parallel")
	fl.String("out", "", "directory for the result tables (omit to skip writing)")
	fl.String("oracle", "", "segmentation oracle executable")
	fl.StringSlice("oracle-args", nil, "extra arguments for the oracle executable")

	cobra.CheckErr(cmd.MarkFlagRequired("data-dir"))
	cobra.CheckErr(cmd.MarkFlagRequired("chroms"))
	cobra.CheckErr(cmd.MarkFlagRequired("grid-stop"))
	cobra.CheckErr(cmd.MarkFlagRequired("grid-step"))
	cobra.CheckErr(cmd.MarkFlagRequired("oracle"))
	return cmd
}

func runSearch(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("HICHEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logrus.NewEntry(logger)

	method := hic.Method(v.GetString("method"))
	if !method.Valid() {
		return segment.ErrUnsupportedMethod
	}

	grid, err := search.NewGrid(v.GetFloat64("grid-start"), v.GetFloat64("grid-stop"), v.GetFloat64("grid-step"))
	if err != nil {
		return err
	}
	provider, err := contact.NewDirProvider(v.GetString("data-dir"), v.GetInt("resolution"), log)
	if err != nil {
		return err
	}
	adapter := segment.NewAdapter()
	adapter.Register(method, segment.NewExecOracle(method, v.GetString("oracle"), v.GetStringSlice("oracle-args")...))

	cfg := pipeline.DefaultConfig(method)
	cfg.Stage = v.GetString("stage")
	cfg.Chromosomes = v.GetStringSlice("chroms")
	cfg.Grid = grid
	cfg.Resolution = v.GetInt("resolution")
	cfg.Expected = v.GetFloat64("expected")
	cfg.Percentile = v.GetFloat64("percentile")
	if eps := v.GetFloat64("eps"); eps > 0 {
		cfg.Eps = eps
	}
	cfg.WindowEps = v.GetInt("window-eps")
	cfg.MaxInterTADSize = v.GetFloat64("max-intertad-size")
	cfg.MaxTADSize = v.GetFloat64("max-tad-size")
	cfg.BadBinDistance = v.GetInt64("bad-bin-distance")
	cfg.AdaptiveThreshold = v.GetBool("adaptive-threshold")
	cfg.Workers = v.GetInt("workers")
	cfg.OutDir = v.GetString("out")
	cfg.Log = log

	orch, err := pipeline.New(provider, adapter, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := orch.Run(ctx)
	if err != nil {
		return err
	}
	for chrom, param := range res.OptParams {
		log.WithFields(logrus.Fields{"chrom": chrom, method.ParamName(): param}).
			Info("optimal parameter")
	}
	return nil
}
