package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	boothoutadapter "photobooth/internal/modules/booth/adapter/out"
	boothin "photobooth/internal/modules/booth/port/in"
	boothservice "photobooth/internal/modules/booth/service"
	boothusecase "photobooth/internal/modules/booth/usecase"
	captureoutadapter "photobooth/internal/modules/capture/adapter/out"
	capturein "photobooth/internal/modules/capture/port/in"
	captureout "photobooth/internal/modules/capture/port/out"
	captureservice "photobooth/internal/modules/capture/service"
	captureusecase "photobooth/internal/modules/capture/usecase"
	composeoutadapter "photobooth/internal/modules/compose/adapter/out"
	composein "photobooth/internal/modules/compose/port/in"
	composeservice "photobooth/internal/modules/compose/service"
	composeusecase "photobooth/internal/modules/compose/usecase"
	effectoutadapter "photobooth/internal/modules/effect/adapter/out"
	effectin "photobooth/internal/modules/effect/port/in"
	effectservice "photobooth/internal/modules/effect/service"
	effectusecase "photobooth/internal/modules/effect/usecase"
	printingoutadapter "photobooth/internal/modules/printing/adapter/out"
	printingin "photobooth/internal/modules/printing/port/in"
	printingservice "photobooth/internal/modules/printing/service"
	printingusecase "photobooth/internal/modules/printing/usecase"
	templateoutadapter "photobooth/internal/modules/template/adapter/out"
	templatein "photobooth/internal/modules/template/port/in"
	templateservice "photobooth/internal/modules/template/service"
	templateusecase "photobooth/internal/modules/template/usecase"
	"photobooth/internal/platform/clock"
	"photobooth/internal/platform/config"
	"photobooth/internal/platform/id"
	"photobooth/internal/remote"
	uiapp "photobooth/internal/ui/app"
)

type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Templates templatein.Usecase
	Capture   capturein.Usecase
	Compose   composein.Usecase
	Printing  printingin.Usecase
	Effects   effectin.Usecase
	Booth     boothin.Usecase
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	templateUC := templateusecase.NewInteractor(templateservice.NewCatalogService(
		templateoutadapter.NewJSONCatalogStore(cfg.TemplatesPath),
		logger,
	))

	var camera captureout.Camera
	if cfg.CameraBackend == "stub" {
		camera = captureoutadapter.NewStubCamera()
	} else {
		camera = captureoutadapter.NewRpicamCamera()
	}
	captureUC := captureusecase.NewInteractor(captureservice.NewCoordinator(
		clk, camera, cfg.PhotosDir, logger,
	))

	effectUC := effectusecase.NewInteractor(effectservice.NewEffectService(
		effectoutadapter.NewDirManifestStore(cfg.PluginsDir),
		effectoutadapter.NewGRPCHost(),
	))

	composeUC := composeusecase.NewInteractor(
		composeservice.NewCompositor(
			composeoutadapter.NewFileArtifactStore(clk, cfg.PhotosDir),
			composeoutadapter.NewPluginEffectHost(effectUC),
			logger,
		),
		templateUC,
		cfg.CanvasWidth,
		cfg.CanvasHeight,
	)

	printingUC := printingusecase.NewInteractor(printingservice.NewDispatcher(
		printingoutadapter.NewLPSpooler(),
		printingoutadapter.NewFilePrefsStore(cfg.PrinterPrefs),
		cfg.PrintOptions,
		logger,
	))

	journal, err := boothoutadapter.NewSQLiteJournal(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new journal: %w", err)
	}
	boothUC := boothusecase.NewInteractor(boothservice.NewController(
		clk,
		ids,
		templateUC,
		captureUC,
		composeUC,
		printingUC,
		journal,
		boothservice.Settings{
			CountdownSeconds:  cfg.CountdownSeconds,
			InactivitySeconds: cfg.InactivitySeconds,
			QuickReviewSecs:   cfg.QuickReviewSecs,
			PostPrintDelaySec: cfg.PostPrintDelaySec,
		},
		logger,
	))

	return &App{
		Config:    cfg,
		Logger:    logger,
		Templates: templateUC,
		Capture:   captureUC,
		Compose:   composeUC,
		Printing:  printingUC,
		Effects:   effectUC,
		Booth:     boothUC,
	}, nil
}

// RunKiosk starts the session controller and the full-screen HUD. The
// controller stops when the HUD quits.
func RunKiosk(ctx context.Context, app *App) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Booth.Run(runCtx)
	}()

	program := tea.NewProgram(uiapp.NewModel(app.Booth), tea.WithAltScreen())
	_, err := program.Run()
	cancel()
	if runErr := <-errCh; runErr != nil && runErr != context.Canceled && err == nil {
		return runErr
	}
	return err
}

// RunServer exposes the remote-capture HTTP service.
func RunServer(ctx context.Context, app *App) error {
	server := remote.NewServer(
		app.Capture,
		app.Compose,
		app.Printing,
		app.Templates,
		app.Config.PhotosDir,
		app.Logger,
	)
	return server.Listen(ctx, app.Config.ListenAddr)
}
