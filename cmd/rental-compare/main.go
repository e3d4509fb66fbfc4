package main

import (
	"flag"
	"fmt"

	"github.com/iwvelando/rental-compare/internal/config"
	"github.com/iwvelando/rental-compare/internal/logging"
	"github.com/iwvelando/rental-compare/pkg/constants"
	"github.com/iwvelando/rental-compare/pkg/output"
	"github.com/iwvelando/rental-compare/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Warnings never stop the comparison
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	err = conf.Validate()
	if err != nil {
		logger.Fatal("configuration contains out-of-range values",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	rows := conf.ToPortfolio().Evaluate()
	logger.Debug("portfolio evaluated",
		zap.String("op", "main"),
		zap.Int("properties", len(rows)),
	)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(rows, conf.Currency.Symbol)
	case constants.OutputFormatCSV:
		output.CsvFormat(rows)
	}
}
