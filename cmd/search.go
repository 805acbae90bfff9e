package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brandkit/brandkit/internal/pipeline"
	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/brandkit/brandkit/pkg/config"
	"github.com/brandkit/brandkit/pkg/exitcode"
	"github.com/brandkit/brandkit/pkg/logger"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Query the asset catalog",
	Long: `Search loads a manifest, builds the in-memory index, and runs one
compound query: optional fuzzy text plus brand/type/format/size filters.
Results are printed as an aligned table, or as JSON with --json-output.
Text queries shorter than two characters match everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		idx, _, err := loadIndex(cmd)
		if err != nil {
			return err
		}

		q := catalog.Query{}
		if len(args) > 0 {
			q.Text = args[0]
		}
		q.BrandIDs, _ = cmd.Flags().GetStringSlice("brand")
		formats, _ := cmd.Flags().GetStringSlice("format")
		q.Formats = formats
		types, _ := cmd.Flags().GetStringSlice("type")
		for _, t := range types {
			q.Types = append(q.Types, catalog.AssetType(t))
		}
		q.MinSize, _ = cmd.Flags().GetInt("min-size")
		q.MaxSize, _ = cmd.Flags().GetInt("max-size")

		results := idx.Search(q)

		if jsonOut, _ := cmd.Flags().GetBool("json-output"); jsonOut {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		printTable(cmd, results)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("manifest", "", "Path to the manifest file (default {output}/manifest.json)")
	searchCmd.Flags().StringSlice("brand", nil, "Filter by brand id (repeatable)")
	searchCmd.Flags().StringSlice("type", nil, "Filter by asset type (logos|icons|images)")
	searchCmd.Flags().StringSlice("format", nil, "Filter by format (asset matches when any of its formats is listed)")
	searchCmd.Flags().Int("min-size", 0, "Minimum pixel width")
	searchCmd.Flags().Int("max-size", 0, "Maximum pixel width")
	searchCmd.Flags().Bool("json-output", false, "Print results as JSON")
}

// loadIndex reads and indexes the manifest named by --manifest, falling back
// to {outputDir}/manifest.json from the generation config.
func loadIndex(cmd *cobra.Command) (*catalog.Index, *catalog.Manifest, error) {
	path, _ := cmd.Flags().GetString("manifest")
	if path == "" {
		path = manifestPathFromConfig(cmd)
	}
	f, err := os.Open(path) // #nosec G304 -- path comes from the operator's own flags/config
	if err != nil {
		logger.Error("Cannot open manifest", logger.String("path", path), logger.Err(err))
		os.Exit(exitcode.ManifestError)
	}
	defer func() { _ = f.Close() }()

	manifest, err := catalog.DecodeManifest(f)
	if err != nil {
		logger.Error("Cannot parse manifest", logger.String("path", path), logger.Err(err))
		os.Exit(exitcode.ManifestError)
	}
	return catalog.NewIndex(manifest), manifest, nil
}

// manifestPathFromConfig resolves the default manifest location from the
// generation config's output directory.
func manifestPathFromConfig(cmd *cobra.Command) string {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return pipeline.ManifestFile
	}
	return filepath.Join(cfg.OutputDir, pipeline.ManifestFile)
}

// printTable writes results as a runewidth-aligned table, so brand and asset
// names containing CJK or emoji keep the columns straight.
func printTable(cmd *cobra.Command, results []catalog.Entry) {
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no assets match")
		return
	}
	headers := []string{"BRAND", "ASSET", "TYPE", "FORMATS", "SIZES"}
	rows := make([][]string, 0, len(results))
	for i := range results {
		e := &results[i]
		rows = append(rows, []string{
			e.BrandName,
			e.Display(),
			string(e.Type),
			strings.Join(e.Formats, ","),
			joinSizes(e.Sizes),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string) {
		var sb strings.Builder
		for i, cell := range cells {
			sb.WriteString(runewidth.FillRight(cell, widths[i]+2))
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(sb.String(), " "))
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d asset(s)\n", len(results))
}

func joinSizes(sizes []int) string {
	if len(sizes) == 0 {
		return "-"
	}
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, ",")
}
