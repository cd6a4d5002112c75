package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/fmv"
	"github.com/medcomply/fmv-calc/internal/logger"
	"github.com/medcomply/fmv-calc/internal/rates"
	"github.com/medcomply/fmv-calc/internal/scoring"
	"github.com/medcomply/fmv-calc/internal/tabular"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score the HCP records and export FMV results",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before overwriting the output file")
	runCmd.Flags().StringP("output", "o", "", "output xlsx path. Default is a timestamped file in the current directory.")

	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), viper.GetString("log-file"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the fmv calculator", zap.String("version", version))

	lexicon := scoring.DefaultLexicon()
	if config.LexiconFile != "" {
		lexicon, err = scoring.LoadLexiconFile(config.LexiconFile)
		if err != nil {
			logger.Fatal("loading lexicon file", zap.Error(err))
		}
		logger.Info("using lexicon override", zap.String("path", config.LexiconFile))
	}

	rateTable, err := rates.Load(config.Input.RatesFile, config.Input.RatesSheet, config.Country)
	if err != nil {
		logger.Fatal("loading rate table", zap.Error(err))
	}

	logger.Info("loaded rate table",
		zap.String("country", config.Country),
		zap.Int("specialties", rateTable.Len()),
	)

	records, err := tabular.LoadCSV(config.Input.Records, logger)
	if err != nil {
		logger.Fatal("loading records", zap.Error(err))
	}

	columns := tabular.ResolveColumns(records, logger)

	cleaned, err := fmv.CleanRecords(records, columns, logger)
	if err != nil {
		logger.Fatal("cleaning records", zap.Error(err))
	}

	if cleaned.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no scorable records after cleaning"))
		return
	}

	processor := fmv.NewProcessor(lexicon, rates.NewResolver(rateTable, logger), logger)
	results := processor.Process(cleaned, columns)

	output := config.Output
	if output == "" {
		output = fmt.Sprintf("CV_FMV_Results_%s.xlsx", time.Now().Format("20060102_150405"))
	}

	if !confirmOverwrite(cmd, output, logger) {
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return
	}

	if err := fmv.WriteResults(output, results); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}

	logger.Info("results saved", zap.String("path", output), zap.Int("records", len(results)))

	fmv.LogSummary(results, logger)
}

// confirmOverwrite asks before clobbering an existing output file unless
// the auto-approve flag is set.
func confirmOverwrite(cmd *cobra.Command, output string, logger *zap.Logger) bool {
	if _, err := os.Stat(output); os.IsNotExist(err) {
		return true
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return true
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("%s already exists. Overwrite?", output),
		Items: []string{PromptYes, PromptNo},
	}

	_, action, err := prompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	return action == PromptYes
}
