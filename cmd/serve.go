package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandkit/brandkit/internal/pipeline"
	"github.com/brandkit/brandkit/internal/server"
	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/brandkit/brandkit/pkg/config"
	"github.com/brandkit/brandkit/pkg/exitcode"
	"github.com/brandkit/brandkit/pkg/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog API and generated assets over HTTP",
	Long: `Serve loads the manifest, builds the search index once, and exposes the
catalog: JSON API under /api, generated files under /assets/, and a
server-rendered browse page at /. POST /api/reload re-reads the manifest and
swaps in a freshly built index; in-flight requests keep the old one.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Error("Cannot load configuration", logger.Err(err))
			os.Exit(exitcode.ConfigError)
		}

		manifestPath, _ := cmd.Flags().GetString("manifest")
		if manifestPath == "" {
			manifestPath = filepath.Join(cfg.OutputDir, pipeline.ManifestFile)
		}

		loader := func() (*catalog.Manifest, error) {
			f, err := os.Open(manifestPath) // #nosec G304 -- operator-provided path
			if err != nil {
				return nil, err
			}
			defer func() { _ = f.Close() }()
			return catalog.DecodeManifest(f)
		}

		manifest, err := loader()
		if err != nil {
			logger.Error("Cannot load manifest", logger.String("path", manifestPath), logger.Err(err))
			os.Exit(exitcode.ManifestError)
		}

		srv, err := server.New(server.NewCatalogState(manifest), cfg.OutputDir, loader)
		if err != nil {
			logger.Error("Cannot build server", logger.Err(err))
			os.Exit(exitcode.ServerError)
		}

		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")
		if err := srv.ListenAndServe(fmt.Sprintf("%s:%d", host, port)); err != nil {
			logger.Error("Server stopped", logger.Err(err))
			os.Exit(exitcode.ServerError)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("manifest", "", "Path to the manifest file (default {output}/manifest.json)")
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind")
	serveCmd.Flags().Int("port", 8380, "Port to bind")
}
