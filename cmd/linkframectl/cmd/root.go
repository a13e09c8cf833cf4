package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"
)

var (
	debug        bool
	logLevel     slog.LevelVar
	keystorePath string
)

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Use:   "linkframectl",
	Short: "Operator tool for linkframe key material and metrics",
	Long: `linkframectl manages the SQLite-backed keystore used by linkframe
deployments and exposes its decode metrics over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&keystorePath, "keystore", "linkframe.db", "path to the SQLite keystore database")

	viper.SetEnvPrefix("LINKFRAMECTL")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("keystore", rootCmd.PersistentFlags().Lookup("keystore"))

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if debug {
			logLevel.Set(slog.LevelDebug)
		}
		if viper.IsSet("keystore") {
			keystorePath = viper.GetString("keystore")
		}
	}

	rootCmd.AddCommand(keysCmd())
	rootCmd.AddCommand(serveMetricsCmd())
}
