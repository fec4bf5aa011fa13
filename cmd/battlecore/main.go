// BattleCore is a deterministic, data-driven battle engine for party-based
// RPGs. Content is authored in Lua; battles run in a terminal UI, a plain
// CLI, or headless simulation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "battlecore",
	Short: "A turn-based battle engine with Lua-defined content",
	Long: `BattleCore loads abilities, statuses, enemies and encounters from Lua
content files and runs turn-based battles between a party roster and an
encounter lineup.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.battlecore.yaml)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 = time-based)")
	rootCmd.PersistentFlags().Int("slots", 3, "active slots per team")
	rootCmd.PersistentFlags().Float64("cadence", 1.5, "seconds between resolved turn entries")

	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("slots", rootCmd.PersistentFlags().Lookup("slots"))
	viper.BindPFlag("cadence", rootCmd.PersistentFlags().Lookup("cadence"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".battlecore")
	}

	viper.SetEnvPrefix("battlecore")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
