package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"photobooth/internal/bootstrap"
	composedto "photobooth/internal/modules/compose/dto"
	printingdto "photobooth/internal/modules/printing/dto"
	templatedomain "photobooth/internal/modules/template/domain"
	templatedto "photobooth/internal/modules/template/dto"
	"photobooth/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "photobooth",
		Short:         "Unattended photo-booth kiosk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	root.AddCommand(newRunCmd(&configPath, &verbose))
	root.AddCommand(newServeCmd(&configPath, &verbose))
	root.AddCommand(newComposeCmd(&configPath, &verbose))
	root.AddCommand(newPrintCmd(&configPath, &verbose))
	root.AddCommand(newPrinterCmd(&configPath, &verbose))
	root.AddCommand(newTemplatesCmd(&configPath, &verbose))
	root.AddCommand(newEffectsCmd(&configPath, &verbose))
	root.AddCommand(newHistoryCmd(&configPath, &verbose))
	return root
}

func loadApp(configPath string, verbose bool) (*bootstrap.App, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logger)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newRunCmd(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the kiosk session loop and full-screen HUD",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			return bootstrap.RunKiosk(ctx, app)
		},
	}
}

func newServeCmd(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the remote-capture HTTP service",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			if err := bootstrap.RunServer(ctx, app); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}
}

func newComposeCmd(configPath *string, verbose *bool) *cobra.Command {
	var templateID, filter, policy string

	cmd := &cobra.Command{
		Use:   "compose <photo>...",
		Short: "Compose photos into a print page",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.Compose.Compose(context.Background(), composedto.ComposeInput{
				PhotoPaths: args,
				Filter:     filter,
				TemplateID: templateID,
				Policy:     policy,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&templateID, "template", "", "template id (default: first in catalog)")
	cmd.Flags().StringVar(&filter, "filter", "none", "filter: none|black_white|sepia|newspaper")
	cmd.Flags().StringVar(&policy, "policy", "", "placement policy: fill_crop|fit_inside")
	return cmd
}

func newPrintCmd(configPath *string, verbose *bool) *cobra.Command {
	var printer string

	cmd := &cobra.Command{
		Use:   "print <artifact>",
		Short: "Submit an artifact to the printer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			if err := app.Printing.Submit(context.Background(), printingdto.SubmitInput{
				ArtifactPath: args[0],
				Printer:      printer,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "submitted")
			return nil
		},
	}
	cmd.Flags().StringVar(&printer, "printer", "", "printer name (default: stored preference)")
	return cmd
}

func newPrinterCmd(configPath *string, verbose *bool) *cobra.Command {
	printerCmd := &cobra.Command{Use: "printer", Short: "Manage the stored printer preference"}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the stored printer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			name, err := app.Printing.Printer(context.Background())
			if err != nil {
				return err
			}
			if name == "" {
				name = "(default queue)"
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Store the printer preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			if err := app.Printing.SetPrinter(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "printer set to %s\n", args[0])
			return nil
		},
	}

	printerCmd.AddCommand(getCmd, setCmd)
	return printerCmd
}

func newTemplatesCmd(configPath *string, verbose *bool) *cobra.Command {
	templatesCmd := &cobra.Command{Use: "templates", Short: "Inspect the template catalog"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List loaded templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			templates, err := app.Templates.List(context.Background())
			if err != nil {
				return err
			}
			for _, t := range templates {
				vintage := ""
				if t.VintageEffect {
					vintage = " vintage"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-24s slots=%d%s\n", t.ID, t.Name, t.Slots, vintage)
			}
			return nil
		},
	}

	var slots int
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a catalog entry with a stock layout for the given slot count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rects := templatedomain.RectsForSlots(slots)
			if rects == nil {
				return fmt.Errorf("no stock layout for %d slots", slots)
			}
			entry := templatedto.TemplateOutput{
				ID:    fmt.Sprintf("layout_%d", slots),
				Name:  fmt.Sprintf("Stock %d-slot", slots),
				Slots: slots,
			}
			for _, r := range rects {
				entry.Rects = append(entry.Rects, templatedto.RectOutput{
					LeftPct:   r.LeftPct,
					TopPct:    r.TopPct,
					WidthPct:  r.WidthPct,
					HeightPct: r.HeightPct,
				})
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(entry)
		},
	}
	generateCmd.Flags().IntVar(&slots, "slots", 1, "slot count: 1, 2 or 4")

	templatesCmd.AddCommand(listCmd, generateCmd)
	return templatesCmd
}

func newEffectsCmd(configPath *string, verbose *bool) *cobra.Command {
	effectsCmd := &cobra.Command{Use: "effects", Short: "Inspect effect plugins"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List effects offered by enabled plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			effects, err := app.Effects.ListEffects(context.Background())
			if err != nil {
				return err
			}
			for _, e := range effects {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-20s %s\n", e.ID, e.Plugin, e.Title)
			}
			return nil
		},
	}

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check plugin binaries, checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			results, err := app.Effects.Doctor(context.Background())
			if err != nil {
				return err
			}
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = r.Error
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s binary=%t checksum=%t lifecycle=%t %s\n",
					r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK, status)
			}
			return nil
		},
	}

	effectsCmd.AddCommand(listCmd, doctorCmd)
	return effectsCmd
}

func newHistoryCmd(configPath *string, verbose *bool) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sessions and prints from the journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *verbose)
			if err != nil {
				return err
			}
			sessions, err := app.Booth.History(context.Background(), limit)
			if err != nil {
				return err
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s template=%s taken=%d selected=%d filter=%s\n",
					s.EndedAt.Format("2006-01-02 15:04"), s.Outcome, s.TemplateID, s.Taken, s.Selected, s.Filter)
			}
			prints, err := app.Booth.Prints(context.Background(), limit)
			if err != nil {
				return err
			}
			for _, p := range prints {
				status := "ok"
				if !p.OK {
					status = "failed: " + p.Message
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  print %-40s %s\n",
					p.SubmittedAt.Format("2006-01-02 15:04"), p.Artifact, status)
			}
			return nil
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "maximum rows per table")
	return historyCmd
}
