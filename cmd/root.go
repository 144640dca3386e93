package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Ashfaaq98/case-intake/internal/intake"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	redisURL string
	logLevel string
	logFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "case-intake",
	Short: "Terminal form for recording legal-case intake",
	Long: `Case-Intake is a terminal form for recording legal-case intake data
(case number, parties, court, case type, lawyer, appointment time, ticket number)
into an in-memory list for the current session.

Features:
- Add, delete and clear actions with a detail pane for the selected case
- Fixed case type and lawyer catalogs, generated appointment slots
- Optional Redis Streams notifications for every committed change

Nothing is persisted: all cases are discarded when the program exits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.case-intake.yaml)")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis", "", "Redis URL for intake notifications (empty disables them)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "logs/case-intake.log", "Log file used while the TUI is active")

	// Bind flags to viper
	viper.BindPFlag("bus.redis_url", rootCmd.PersistentFlags().Lookup("redis"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".case-intake" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".case-intake")
	}

	// Nested keys map to CASE_INTAKE_BUS_REDIS_URL style variables
	viper.SetEnvPrefix("CASE_INTAKE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("bus.redis_url", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "logs/case-intake.log")
	viper.SetDefault("ui.theme", "dark")
	viper.SetDefault("intake.slots.start", intake.DefaultSlotStart)
	viper.SetDefault("intake.slots.count", intake.DefaultSlotCount)
	viper.SetDefault("intake.slots.step", intake.DefaultSlotStep)
}

// GetConfig returns the current configuration values
func GetConfig() Config {
	return Config{
		Bus: BusConfig{
			RedisURL: viper.GetString("bus.redis_url"),
		},
		Log: LogConfig{
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		},
		UI: UIConfig{
			Theme: viper.GetString("ui.theme"),
		},
		Intake: IntakeConfig{
			Slots: SlotsConfig{
				Start: viper.GetString("intake.slots.start"),
				Count: viper.GetInt("intake.slots.count"),
				Step:  viper.GetDuration("intake.slots.step"),
			},
		},
	}
}

// Config represents the application configuration
type Config struct {
	Bus    BusConfig    `mapstructure:"bus"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
	Intake IntakeConfig `mapstructure:"intake"`
}

type BusConfig struct {
	RedisURL string `mapstructure:"redis_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

type IntakeConfig struct {
	Slots SlotsConfig `mapstructure:"slots"`
}

type SlotsConfig struct {
	Start string        `mapstructure:"start"`
	Count int           `mapstructure:"count"`
	Step  time.Duration `mapstructure:"step"`
}

// TimeSlots generates the configured appointment slots.
func (c IntakeConfig) TimeSlots() ([]string, error) {
	return intake.TimeSlots(c.Slots.Start, c.Slots.Count, c.Slots.Step)
}
