package cmd

import (
	"os"
	"time"

	"github.com/brandkit/brandkit/internal/gitver"
	"github.com/brandkit/brandkit/internal/pipeline"
	"github.com/brandkit/brandkit/pkg/config"
	"github.com/brandkit/brandkit/pkg/exitcode"
	"github.com/brandkit/brandkit/pkg/logger"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Convert source images and write the manifest",
	Long: `Generate walks the source tree brand by brand, converts every source
image into the configured sizes and formats with bounded parallelism, then
assembles and writes the manifest. Individual conversion failures become
warnings; only an unreadable config or an unusable output directory abort
the run.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		p, err := buildPipeline(cmd)
		if err != nil {
			return err
		}

		manifest, err := p.Run(cmd.Context())
		if err != nil {
			logger.Error("Generation failed", logger.Err(err))
			os.Exit(exitcode.OutputError)
		}

		p.Warnings().Report()
		assets := 0
		for _, b := range manifest.Brands {
			for _, g := range b.AssetTypes {
				assets += len(g.Assets)
			}
		}
		logger.Info("Generation complete",
			logger.Int("brands", len(manifest.Brands)),
			logger.Int("assets", assets),
			logger.Int("warnings", p.Warnings().Len()))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("source", "", "Source directory (overrides config)")
	generateCmd.Flags().String("output", "", "Output directory (overrides config)")
	generateCmd.Flags().String("set-version", "", "Version tag for the generated tree (overrides config and git)")
	generateCmd.Flags().Int("concurrency", 0, "Maximum parallel conversions (overrides config)")
	generateCmd.Flags().Bool("dry-run", false, "Plan and convert in memory without writing outputs")

	manifestCmd.Flags().String("source", "", "Source directory (overrides config)")
	manifestCmd.Flags().String("output", "", "Output directory (overrides config)")
	manifestCmd.Flags().String("set-version", "", "Version tag of the generated tree (overrides config and git)")
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Assemble the manifest from an existing output tree",
	Long: `Manifest re-indexes an already generated output tree without converting
anything: it parses generated filenames, groups variants into logical assets,
merges metadata overrides, and rewrites the manifest. Running it twice over
an unchanged tree produces byte-identical output.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		p, err := buildPipeline(cmd)
		if err != nil {
			return err
		}

		manifest, err := p.Assemble(time.Now())
		if err != nil {
			logger.Error("Assembly failed", logger.Err(err))
			os.Exit(exitcode.ManifestError)
		}
		if err := p.WriteManifest(manifest); err != nil {
			logger.Error("Manifest write failed", logger.Err(err))
			os.Exit(exitcode.OutputError)
		}
		p.Warnings().Report()
		return nil
	},
}

// buildPipeline loads configuration and constructs the pipeline shared by
// generate and manifest. Config problems are fatal here: without a usable
// config and output directory there is nothing sensible to continue with.
func buildPipeline(cmd *cobra.Command) (*pipeline.Pipeline, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("Cannot load configuration", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	if src, _ := cmd.Flags().GetString("source"); src != "" {
		cfg.SourceDir = src
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	if _, err := os.Stat(cfg.SourceDir); err != nil {
		logger.Error("Source directory unusable", logger.String("dir", cfg.SourceDir), logger.Err(err))
		os.Exit(exitcode.SourceError)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("Cannot create output directory", logger.String("dir", cfg.OutputDir), logger.Err(err))
		os.Exit(exitcode.OutputError)
	}

	version, _ := cmd.Flags().GetString("set-version")
	if version == "" {
		version = cfg.Version
	}
	if version == "" {
		version = gitver.Describe(cfg.SourceDir)
		logger.Debug("Version derived from git", logger.String("version", version))
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return pipeline.New(cfg,
		pipeline.NewOSWalker(cfg.SourceDir),
		pipeline.NewOSWalker(cfg.OutputDir),
		pipeline.Options{Version: version, Concurrency: concurrency, DryRun: dryRun},
	), nil
}

