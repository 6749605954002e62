package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/phototuner/internal/config"
	"github.com/ironsheep/phototuner/internal/logging"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app is shared by all subcommands; cfg is filled in by the root
// PersistentPreRunE before any subcommand runs.
type app struct {
	build BuildInfo
	cfg   *config.Config
}

func NewRoot(ctx context.Context, build BuildInfo) *cobra.Command {
	a := &app{build: build}

	cmd := &cobra.Command{
		Use:           "phototuner",
		Short:         "photo enhancement and cropping",
		Long:          "Enhance photos with preset or parametric filter chains, crop them by two corner points, and drive an interactive editing session over MCP.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				viper.SetConfigFile(path)
			}
			cfg, err := config.LoadConfig(ctx)
			if err != nil {
				return err
			}
			a.cfg = cfg

			asJSON, _ := cmd.Flags().GetBool("log-json")
			slog.SetDefault(logging.Logger(logging.Output(cfg.LogFile), asJSON, cfg.Level()))
			slog.DebugContext(ctx, "Configuration loaded",
				"preview", fmt.Sprintf("%dx%d", cfg.PreviewWidth, cfg.PreviewHeight),
				"jpeg_quality", cfg.JPEGQuality,
				"log_file", cfg.LogFile)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, a),
		NewEnhanceCmd(ctx, a),
		NewCropCmd(ctx, a),
		NewPreviewCmd(ctx, a),
		NewServeCmd(ctx, a),
	)

	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.Bool("log-json", false, "Log as JSON instead of text")
	pf.String("config", "", "Optional config file (yaml, json or toml)")
	pf.Int("viewport-width", 600, "Preview viewport width")
	pf.Int("viewport-height", 400, "Preview viewport height")

	// flags override environment and config file
	viper.BindPFlag("LOG_LEVEL", pf.Lookup("log-level"))
	viper.BindPFlag("PREVIEW_WIDTH", pf.Lookup("viewport-width"))
	viper.BindPFlag("PREVIEW_HEIGHT", pf.Lookup("viewport-height"))
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "phototuner %s\n", a.build.Version)
			fmt.Fprintf(out, "  Build time: %s\n", a.build.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", a.build.GitCommit)
		},
	}
	return cmd
}
