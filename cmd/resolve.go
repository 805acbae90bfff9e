package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/brandkit/brandkit/pkg/exitcode"
	"github.com/brandkit/brandkit/pkg/logger"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <brand> <type> <asset>",
	Short: "Pick the best file for a logical asset",
	Long: `Resolve applies the variant-resolution policy: exact (format, size)
match first, then the requested format's original or smallest size, then the
format preference order (avif, webp, svg, png, jpg). Requesting a format the
asset does not carry exits non-zero rather than returning a wrong file.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		_, manifest, err := loadIndex(cmd)
		if err != nil {
			return err
		}

		asset := findManifestAsset(manifest, args[0], catalog.AssetType(args[1]), args[2])
		if asset == nil {
			logger.Error("Asset not found",
				logger.String("brand", args[0]),
				logger.String("type", args[1]),
				logger.String("asset", args[2]))
			os.Exit(exitcode.ResolutionMiss)
		}

		req := catalog.ResolveRequest{}
		req.Format, _ = cmd.Flags().GetString("format")
		if size, _ := cmd.Flags().GetInt("size"); size > 0 {
			req.Size = &size
		}

		file, err := catalog.Resolve(asset, req)
		if errors.Is(err, catalog.ErrNoVariant) {
			logger.Error("No matching variant",
				logger.String("asset", asset.ID),
				logger.String("format", req.Format))
			os.Exit(exitcode.ResolutionMiss)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json-output"); jsonOut {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(file)
		}
		fmt.Fprintln(cmd.OutOrStdout(), file.Path)
		return nil
	},
}

func init() {
	resolveCmd.Flags().String("manifest", "", "Path to the manifest file (default {output}/manifest.json)")
	resolveCmd.Flags().String("format", "", "Desired format (svg|png|webp|avif|jpg)")
	resolveCmd.Flags().Int("size", 0, "Desired pixel width")
	resolveCmd.Flags().Bool("json-output", false, "Print the full file record as JSON")
}

func findManifestAsset(m *catalog.Manifest, brandID string, assetType catalog.AssetType, assetID string) *catalog.Asset {
	for i := range m.Brands {
		if m.Brands[i].ID != brandID {
			continue
		}
		for j := range m.Brands[i].AssetTypes {
			group := &m.Brands[i].AssetTypes[j]
			if group.Type != assetType {
				continue
			}
			for k := range group.Assets {
				if group.Assets[k].ID == assetID {
					return &group.Assets[k]
				}
			}
		}
	}
	return nil
}
