package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "fmv-calc"

	defaultRecordsFile = "CVdump.csv"
	defaultRatesFile   = "scoring_criteria.xlsx"
	defaultRatesSheet  = "OUS FMV Rates"
	defaultCountry     = "India"
)

type Config struct {
	Input       *InputConfig  `mapstructure:"input"`
	Output      string        `mapstructure:"output"`
	Country     string        `mapstructure:"country"`
	LexiconFile string        `mapstructure:"lexicon-file"`
	LogFile     string        `mapstructure:"log-file"`
	Report      *ReportConfig `mapstructure:"report"`
}

type InputConfig struct {
	Records    string `mapstructure:"records"`
	RatesFile  string `mapstructure:"rates-file"`
	RatesSheet string `mapstructure:"rates-sheet"`
}

type ReportConfig struct {
	WorkingFile string `mapstructure:"working-file"`
	OverlapFile string `mapstructure:"overlap-file"`
	MissingFile string `mapstructure:"missing-file"`
	Output      string `mapstructure:"output"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "fmv-calc scores HCP questionnaires and resolves fair market value honorarium rates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is fmv-calc.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config matters only for the run and report commands.
	if runCmd.CalledAs() == "" && reportCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: every key has a default or a flag.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Input == nil {
		config.Input = &InputConfig{}
	}
	if config.Input.Records == "" {
		config.Input.Records = defaultRecordsFile
	}
	if config.Input.RatesFile == "" {
		config.Input.RatesFile = defaultRatesFile
	}
	if config.Input.RatesSheet == "" {
		config.Input.RatesSheet = defaultRatesSheet
	}
	if config.Country == "" {
		config.Country = defaultCountry
	}

	return config, nil
}
