// Package main provides the gemset CLI for generating stone-setting
// geometry and exporting it as GLB scenes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/forma-cad/gemset"
	"github.com/forma-cad/gemset/internal/logger"
)

var (
	// configFile is set by the --config flag.
	configFile string
	logLevel   string
	logFile    string

	// log is initialized on startup and shared by all commands.
	log *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemset",
	Short: "Gemset generates parametric jewelry stone settings",
	Long: `Gemset builds ring band, prong and gemstone geometry from a flat set
of design parameters and exports designer and production GLB scenes.
Parameters come from flags, a config file, or a named preset.`,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./gemset.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also log to this rotated file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(sizesCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	log = logger.New(logLevel, logFile)
	return loadConfig()
}

// loadConfig reads the optional config file. Viper keys mirror the
// generate flags so a config file can pin any parameter.
func loadConfig() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("gemset")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.gemset")
	}
	viper.SetEnvPrefix("GEMSET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is fine; flags and defaults apply.
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	log.Debug("loaded config", zap.String("file", viper.ConfigFileUsed()))
	return nil
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available design presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range gemset.PresetNames() {
			p, _ := gemset.Preset(name)
			fmt.Printf("%-10s %s stone %gx%gx%gmm, %d prongs, %s bases\n",
				name, p.StoneShape, p.StoneLength, p.StoneWidth, p.StoneDepth,
				p.ProngCount, p.ProngBaseStyle)
		}
	},
}

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List supported US ring sizes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range gemset.USRingSizes() {
			d, _ := gemset.USRingSize(s)
			fmt.Printf("US %-4g inner diameter %.2fmm\n", s, d)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gemset v0.1.0")
	},
}
