package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"study-buddy/internal/config"
)

var (
	cfgFile  string
	proxyURL string
	logLevel string

	v   *viper.Viper
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "Study Buddy explains topics, summarizes notes and quizzes you.",
	Long: `An AI study assistant with three tools: explain a topic in simple terms,
summarize notes into key points, and generate multiple-choice quizzes.
Use it from the browser (serve), the terminal UI (tui) or one-shot commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v = config.New(cfgFile)
		if f := cmd.Flags().Lookup("proxy"); f != nil && f.Changed {
			v.Set("provider.proxy", proxyURL)
		}
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
			v.Set("log.level", logLevel)
		}
		if err := bindLocalFlags(cmd); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(v)
		if err != nil {
			return err
		}
		return config.InitLogger(cfg.Log, os.Stderr)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default action when no subcommand is given
		cmd.Help()
	},
}

// flagKeys maps command-local flags onto config keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"questions": "quiz.questions",
}

func bindLocalFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/studybuddy/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&proxyURL, "proxy", "", "HTTP proxy to use for provider requests (e.g. http://127.0.0.1:7890)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	Execute()
}
