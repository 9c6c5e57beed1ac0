package main

import (
	"fmt"
	"os"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/runtime/terminal"
	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/classify"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/rs/zerolog"
)

func main() {
	provider := ids.NewUUIDProvider()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Compiler: compile.NewCompiler(provider, nil, logger),
		Assembly: assembly.NewEngine(assembly.BuiltinCatalog(), classify.NewKeywordClassifier(), provider),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
