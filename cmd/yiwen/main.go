package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/yiwen/internal/batch"
	"codeberg.org/snonux/yiwen/internal/cli"
	"codeberg.org/snonux/yiwen/internal/models"
	"codeberg.org/snonux/yiwen/internal/phonetic"
	"codeberg.org/snonux/yiwen/internal/presenter"
	"codeberg.org/snonux/yiwen/internal/processor"
	"codeberg.org/snonux/yiwen/internal/translation"
)

// errReported marks failures already rendered to the user.
var errReported = errors.New("translation failed")

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := cmd.Context()

	logger, err := cli.NewLogger(viper.GetString("log.level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), "")
		return lister.ListAvailableModels(ctx, cmd.OutOrStdout())
	}

	resolverConfig, err := cli.ResolverConfig()
	if err != nil {
		return err
	}
	phoneticConfig, err := cli.PhoneticConfig()
	if err != nil {
		return err
	}

	resolver, err := translation.NewResolver(resolverConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create resolver: %w", err)
	}

	from := viper.GetString("translate.from")
	to := viper.GetString("translate.to")

	capability := phonetic.ProcessCapability(phoneticConfig, logger)
	if flags.BatchFile != "" || translation.IsChinese(to) {
		// Load the backend while the first gateway call is in flight
		go capability.Init(ctx)
	}

	annotator := phonetic.NewAnnotator(phonetic.DefaultStrategies(capability), logger)
	proc := processor.NewProcessor(resolver, annotator, logger)
	pres := presenter.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), viper.GetBool("output.json"))

	// Handle batch processing
	if flags.BatchFile != "" {
		return runBatch(ctx, proc, pres, flags.BatchFile, from, to, logger)
	}

	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}

	outcome := proc.Translate(ctx, translation.NewRequest(text, from, to))
	if err := pres.Render(outcome); err != nil {
		return err
	}
	if !outcome.OK() {
		return errReported
	}
	return nil
}

func runBatch(ctx context.Context, proc *processor.Processor, pres *presenter.Presenter, filename, from, to string, logger *zap.Logger) error {
	entries, err := batch.ReadBatchFile(filename)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries found in %s", filename)
	}
	logger.Debug("starting batch", zap.String("file", filename), zap.Int("entries", len(entries)))

	i := 0
	summary := proc.ProcessBatch(ctx, entries, from, to, func(entry batch.Entry, outcome processor.Outcome) {
		i++
		if err := pres.RenderHeader(i, len(entries), entry.Text); err != nil {
			logger.Warn("failed to render header", zap.Error(err))
		}
		if err := pres.Render(outcome); err != nil {
			logger.Warn("failed to render outcome", zap.Error(err))
		}
	})

	if err := pres.RenderSummary(summary); err != nil {
		return err
	}
	// Entries left unprocessed after cancellation count as failures
	if summary.Failed > 0 || summary.Total < len(entries) {
		return errReported
	}
	return nil
}

// inputText joins the arguments, or reads stdin when there are none.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no text given (pass it as arguments, via stdin or use --batch)")
		}
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
