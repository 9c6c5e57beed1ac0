package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/server"
	"github.com/leano777/bidflow/pkg/services/alternates"
	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/classify"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/leano777/bidflow/pkg/services/config"
	"github.com/leano777/bidflow/pkg/services/costing"
	"github.com/leano777/bidflow/pkg/store/memory"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the estimate compilation web server",
		RunE:  runServer,
	}

	home, _ := os.UserHomeDir()
	defaultPath := filepath.Join(home, ".bidflowcfg")

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the regional profiles file (default is $HOME/.bidflowcfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfgPath).Msg("no regional profiles loaded, using defaults")
		registry = config.DefaultRegistry()
	}

	profiles, _ := registry.GetProfiles(ctx)
	for _, name := range profiles {
		logger.Info().Msgf("Loaded regional profile `%s`", name)
	}

	provider := ids.NewUUIDProvider()
	rates := costing.DefaultRates()
	compiler := compile.NewCompiler(provider, nil, logger)
	engine := assembly.NewEngine(assembly.BuiltinCatalog(), classify.NewKeywordClassifier(), provider)
	manager := alternates.NewManager(memory.NewScopeRepository(), provider, rates, nil)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "8080"
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Compiler:   compiler,
			Assembly:   engine,
			Alternates: manager,
			Rates:      rates,
		},
	})

	return api.Start()
}
