package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pitchperfect/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pitchperfect",
	Short: "Sight-reading trainer for piano",
	Long:  "Pitch Perfect: a terminal note-identification trainer. Read the note on the staff, play it on a MIDI or computer keyboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog YAML file (overrides PITCHPERFECT_CATALOG)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (overrides PITCHPERFECT_LOG_FILE)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: development or production (overrides PITCHPERFECT_LOG_MODE)")
	rootCmd.PersistentFlags().Bool("no-midi", false, "Do not connect to MIDI inputs")
	rootCmd.Flags().Int("octave", 0, "Octave of the 'a' key on the computer keyboard (overrides PITCHPERFECT_OCTAVE)")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads PITCHPERFECT_* variables, then applies flags set on the
// command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogPath, _ = flags.GetString("catalog")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-mode") {
		cfg.LogMode, _ = flags.GetString("log-mode")
	}
	if noMIDI, _ := flags.GetBool("no-midi"); noMIDI {
		cfg.MIDI = false
	}
	if flags.Changed("octave") {
		cfg.Octave, _ = flags.GetInt("octave")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
