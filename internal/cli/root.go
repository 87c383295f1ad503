package cli

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/macropower/termicon/pkg/log"
	"github.com/macropower/termicon/pkg/version"
)

const (
	cmdName = "termicon"
	cmdDesc = `Procedurally draw terminal-style app icons at every iOS icon size.`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	))
}

// NewRootCmd creates the termicon command. Without a subcommand it behaves
// like "termicon generate".
func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	genArgs := NewGenerateArgs(args)

	genCmd := NewGenerateCmd(genArgs)
	cmd := &cobra.Command{
		Use:               cmdName + " [output-dir]",
		Short:             cmdDesc,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
		ValidArgsFunction: genCmd.ValidArgsFunction,
		Args:              genCmd.Args,
		RunE:              genCmd.RunE,
		SilenceUsage:      true,
	}

	args.AddFlags(cmd)
	genArgs.AddFlags(cmd)

	cmd.AddCommand(
		genCmd,
		NewListCmd(),
		NewSchemaCmd(),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		logger := slog.New(logHandler)
		slog.SetDefault(logger)
		gg.SetLogger(logger.With(slog.String("component", "gg")))

		logger.Debug("starting", slog.String("version", version.String()))

		return nil
	}
}
