package terminal

import (
	"io"
	"os"

	"github.com/leano777/bidflow/pkg/runtime/terminal/commands"
	"github.com/leano777/bidflow/pkg/runtime/terminal/export"

	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	compiler *compile.Compiler
	assembly *assembly.Engine
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Compiler *compile.Compiler
	Assembly *assembly.Engine
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		compiler: opts.Compiler,
		assembly: opts.Assembly,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bidflow",
		Short: "Construction estimate compilation tool",
	}

	cmd.AddCommand(commands.NewCompileCmd(cli.compiler, cli.reporter))
	cmd.AddCommand(commands.NewScenariosCmd(cli.compiler))
	cmd.AddCommand(commands.NewPriceCmd(cli.assembly))
	cmd.AddCommand(commands.NewDecomposeCmd(cli.assembly))

	return cmd
}
