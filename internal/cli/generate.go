package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/macropower/termicon/pkg/canvas"
	"github.com/macropower/termicon/pkg/config"
	"github.com/macropower/termicon/pkg/generate"
	"github.com/macropower/termicon/pkg/icon"
	"github.com/macropower/termicon/pkg/log"
)

const (
	cmdExamples = `  # Write the logo icon set into the current directory:
  termicon

  # Write the cursor icon set into an existing asset directory:
  termicon ./Assets.xcassets/AppIcon.appiconset --style cursor

  # Only the large icons, rendered at 4x and downscaled:
  termicon ./icons --match 'size >= 152' --supersample 4

  # Regenerate whenever the configuration file changes:
  termicon --config ./termicon.yaml --watch

  # Write the default configuration file and exit:
  termicon --write-config`

	canvasRemedy = `the rasterizer could not allocate a drawing surface.
Check that enough memory is available, and lower --supersample if it is set.`
)

var errWatchNeedsConfig = errors.New("--watch requires a configuration file")

type GenerateArgs struct {
	*RootArgs

	OutputDir   string
	ConfigPath  string
	Style       string
	IconSet     string
	Match       string
	Supersample int
	Watch       bool
	WriteConfig bool
	ShowConfig  bool
}

func NewGenerateArgs(rootArgs *RootArgs) *GenerateArgs {
	return &GenerateArgs{
		RootArgs: rootArgs,
	}
}

func (ga *GenerateArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ga.ConfigPath, "config", "", "Path to the termicon configuration file")
	cmd.Flags().StringVar(&ga.Style, "style", "", fmt.Sprintf("Icon style, one of: %s", icon.AllStyles))
	cmd.Flags().StringVar(&ga.IconSet, "set", "", fmt.Sprintf("Icon set, one of: %s", icon.SetNames()))
	cmd.Flags().StringVar(&ga.Match, "match", "", "CEL expression selecting icons by size and filename")
	cmd.Flags().IntVar(&ga.Supersample, "supersample", 0,
		fmt.Sprintf("Render at N times the icon size and downscale (1-%d)", icon.MaxSupersample))
	cmd.Flags().BoolVarP(&ga.Watch, "watch", "w", false, "Regenerate when the configuration file changes")
	cmd.Flags().BoolVar(&ga.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ga.ShowConfig, "show-config", false, "Print the active configuration and exit")

	must(cmd.MarkFlagFilename("config", "yaml", "yml"))
	must(cmd.RegisterFlagCompletionFunc("style",
		cobra.FixedCompletions(icon.AllStyles, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("set",
		cobra.FixedCompletions(icon.SetNames(), cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewGenerateCmd(ga *GenerateArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [output-dir]",
		Short:   "Default command, renders the icon set into the output directory",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveFilterDirs
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ga.OutputDir = args[0]
			}

			return runGenerate(cmd, ga)
		},
	}
	ga.AddFlags(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command, ga *GenerateArgs) error {
	configPath := ga.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	if ga.WriteConfig {
		return config.WriteDefault(configPath, false) //nolint:wrapcheck // Already descriptive.
	}

	out := newPrinter(cmd.OutOrStdout())

	cfg, err := loadConfig(cmd, ga, configPath)
	if err != nil {
		return err
	}

	if ga.ShowConfig {
		return showConfig(out, cfg, configPath)
	}

	err = canvas.Probe()
	if err != nil {
		return fmt.Errorf("%w\n%s", err, canvasRemedy)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = log.NewContext(ctx, slog.Default().With(slog.String("config", configPath)))

	if !ga.Watch {
		return generateOnce(ctx, out, cfg)
	}

	if _, err := os.Stat(configPath); err != nil {
		return fmt.Errorf("%w: %w", errWatchNeedsConfig, err)
	}

	err = generateOnce(ctx, out, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "generate icons", slog.Any("err", err))
	}

	return generate.Watch(ctx, configPath, func(ctx context.Context) error { //nolint:wrapcheck // Already descriptive.
		cfg, err := loadConfig(cmd, ga, configPath)
		if err != nil {
			return err
		}

		return generateOnce(ctx, out, cfg)
	})
}

// loadConfig reads the configuration file, if there is one, and applies the
// flags on top of it. A missing file is only an error when --config is set.
func loadConfig(cmd *cobra.Command, ga *GenerateArgs, configPath string) (*config.Config, error) {
	cfg := config.NewConfig()

	_, statErr := os.Stat(configPath)

	switch {
	case statErr == nil:
		loaded, err := config.Load(configPath, config.WithColor(isTerminal(cmd.ErrOrStderr())))
		if err != nil {
			return nil, err //nolint:wrapcheck // Already descriptive.
		}

		slog.Debug("loaded config", slog.String("path", configPath))

		cfg = loaded

	case ga.ConfigPath != "" || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("read config %q: %w", configPath, statErr)

	default:
		slog.Debug("no config file, using defaults", slog.String("path", configPath))
	}

	flags := cmd.Flags()
	if ga.OutputDir != "" {
		cfg.OutputDir = ga.OutputDir
	}
	if flags.Changed("style") {
		style, err := icon.ParseStyle(ga.Style)
		if err != nil {
			return nil, fmt.Errorf("--style: %w", err)
		}

		cfg.Style = style.String()
	}
	if flags.Changed("set") {
		cfg.IconSet = ga.IconSet
		cfg.Icons = nil
	}
	if flags.Changed("match") {
		cfg.Match = ga.Match
	}
	if flags.Changed("supersample") {
		cfg.Supersample = ga.Supersample
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

func showConfig(out *printer, cfg *config.Config, configPath string) error {
	slog.Info("active configuration", slog.String("path", configPath))

	b, err := cfg.MarshalYAML()
	if err != nil {
		return err
	}

	return out.yaml(b)
}

func generateOnce(ctx context.Context, out *printer, cfg *config.Config) error {
	style, err := cfg.GetStyle()
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	specs, err := cfg.Specs()
	if err != nil {
		return err
	}

	if len(specs) == 0 {
		slog.WarnContext(ctx, "no icons selected", slog.String("match", cfg.Match))

		return nil
	}

	g, err := generate.New(cfg.OutputDir,
		generate.WithStyle(style),
		generate.WithSupersample(cfg.Supersample),
	)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	defer func() {
		err := g.Close()
		if err != nil {
			slog.Debug("close output directory", slog.Any("err", err))
		}
	}()

	events := make(chan generate.Event, len(specs)+2)
	g.Subscribe(events)

	var wg sync.WaitGroup

	wg.Go(func() {
		for evt := range events {
			out.event(evt)
		}
	})

	res, err := g.GenerateAll(ctx, specs)
	close(events)
	wg.Wait()

	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	return res.Err()
}
