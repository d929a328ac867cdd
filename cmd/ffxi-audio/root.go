// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ffxi-audio/internal/state"
	"github.com/pdiddy/ffxi-audio/pkg/types"
)

const (
	configName = "ffxi-audio"
	envPrefix  = "FFXI_AUDIO"
)

// newRootCmd builds the command tree. The root command itself runs a
// conversion; version and history are subcommands. Each tree owns its own
// viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "ffxi-audio <sound_folder> [vgmstream_path]",
		Short: "Convert FFXI .bgw and .spw audio files to .ogg",
		Long: `ffxi-audio converts FINAL FANTASY XI .bgw (music) and .spw (sound effect)
files to Ogg Vorbis. Each file is decoded to WAV with vgmstream-cli and encoded
with ffmpeg; the intermediate WAV is removed afterwards.

Files that already have a sibling .ogg are skipped, so an interrupted or
partial run can simply be started again.

Download vgmstream-cli from: https://github.com/vgmstream/vgmstream/releases

Arguments:
  sound_folder    - Path to FFXI sound folder
  vgmstream_path  - Optional path to vgmstream-cli (default: vgmstream-cli)`,
		Example: `  ffxi-audio '/home/user/FINAL FANTASY XI/sound'
  ffxi-audio '/home/user/FINAL FANTASY XI/sound' ./vgmstream-cli`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid by now; later failures are not usage errors.
			cmd.SilenceUsage = true
			cfgFile, _ := cmd.Flags().GetString("config")
			return initConfig(cmd, v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, v)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ffxi-audio.yaml or ~/.config/ffxi-audio/ffxi-audio.yaml)")
	rootCmd.PersistentFlags().String("history-db", "", "run history database (default: $XDG_STATE_HOME/ffxi-audio/history.db)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: debug, info, warn, error (default warn)")
	rootCmd.PersistentFlags().String("log-format", "", "diagnostic log format: text or json (default text)")

	rootCmd.Flags().String("encoder", "", "ffmpeg executable (default ffmpeg)")
	rootCmd.Flags().String("codec", "", "ffmpeg audio codec (default libvorbis)")
	rootCmd.Flags().Int("quality", types.DefaultQuality, "ffmpeg VBR audio quality")
	rootCmd.Flags().String("report", "", "write a run report to this .yaml or .json file")
	rootCmd.Flags().Bool("no-history", false, "do not record this run in the history database")
	rootCmd.Flags().Bool("no-color", false, "disable colored status tags")

	bindFlags(v, rootCmd)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newHistoryCmd(v))
	return rootCmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	bindings := map[string]string{
		"tools.encoder": "encoder",
		"tools.codec":   "codec",
		"tools.quality": "quality",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}

	persistent := map[string]string{
		"history.path": "history-db",
		"log.level":    "log-level",
		"log.format":   "log-format",
	}
	for key, flag := range persistent {
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
	}
}

func initConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	v.SetDefault("tools.decoder", types.DefaultDecoder)
	v.SetDefault("tools.encoder", types.DefaultEncoder)
	v.SetDefault("tools.codec", types.DefaultCodec)
	v.SetDefault("tools.quality", types.DefaultQuality)
	v.SetDefault("history.enabled", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

// loadConfig resolves the effective configuration from defaults, config
// file, environment, and flags.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// historyPath returns the configured database path or the state default.
func historyPath(cfg types.Config) (string, error) {
	if cfg.History.Path != "" {
		return cfg.History.Path, nil
	}
	dir, err := state.Dir()
	if err != nil {
		return "", err
	}
	return state.HistoryPath(dir), nil
}
