package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/logger"
	"github.com/medcomply/fmv-calc/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Extract monthly summary tables from the operational workbooks",
	Run: func(_ *cobra.Command, _ []string) {
		runReport()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), viper.GetString("log-file"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config.Report == nil {
		logger.Fatal("report configuration is required", zap.String("hint", "set the report section in the configuration file"))
	}

	sections := report.Extract(report.Sources{
		WorkingFile: config.Report.WorkingFile,
		OverlapFile: config.Report.OverlapFile,
		MissingFile: config.Report.MissingFile,
	}, logger)

	if len(sections) == 0 {
		logger.Fatal("no report sections could be extracted")
	}

	output := config.Report.Output
	if output == "" {
		output = "monthly_summary.xlsx"
	}

	if err := report.Write(output, sections); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	logger.Info("report saved",
		zap.String("path", output),
		zap.Int("sections", len(sections)),
	)
}
