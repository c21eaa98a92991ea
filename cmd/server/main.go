package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/garyjia/facturly/internal/capture"
	"github.com/garyjia/facturly/internal/config"
	"github.com/garyjia/facturly/internal/export"
	"github.com/garyjia/facturly/internal/interfaces/http"
	"github.com/garyjia/facturly/internal/invoice"
	"github.com/garyjia/facturly/internal/render"
	"github.com/garyjia/facturly/internal/session"
	"github.com/garyjia/facturly/internal/share"
	"github.com/garyjia/facturly/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	// .env is optional; real environment variables win
	_ = gotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	catalog := render.NewCatalog(render.TemplateID(cfg.Invoice.DefaultTemplate))
	ids := lo.Map(catalog.IDs(), func(id render.TemplateID, _ int) string { return string(id) })
	if err := cfg.Validate(ids...); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	logger.Info("Starting Facturly invoice service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port),
		zap.String("currency", cfg.Invoice.Currency),
		zap.Float64("tax_rate", cfg.Invoice.TaxRate))

	calc := invoice.NewCalculator(cfg.Invoice.TaxRateDecimal())
	issuer := render.Issuer{
		Name:    cfg.Invoice.CompanyName,
		Tagline: cfg.Invoice.Tagline,
		Email:   cfg.Invoice.SupportEmail,
		Phone:   cfg.Invoice.Phone,
		Address: cfg.Invoice.Address,
	}

	renderer := render.NewRenderer(catalog, calc, render.Config{
		Currency: cfg.Invoice.Currency,
		Issuer:   issuer,
	}, logger)

	store := session.NewStore(session.Config{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
	}, calc, logger)

	var capturer share.Capturer = share.UnavailableCapturer{}
	if cfg.Capture.Enabled {
		capturer = capture.NewRasterCapturer(capture.Config{
			Padding:  cfg.Capture.Padding,
			MaxLines: cfg.Capture.MaxLines,
		}, logger)
	} else {
		logger.Warn("Image capture disabled, shares will use text only")
	}

	composer := share.NewComposer(cfg.Invoice.Currency, cfg.Share.WhatsAppBaseURL, cfg.Invoice.SenderName)
	shares := share.NewService(capturer, composer, logger)
	exporter := export.NewXLSXExporter(cfg.Invoice.Currency, issuer, logger)

	server := http.NewServer(http.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, http.Dependencies{
		Store:    store,
		Renderer: renderer,
		Shares:   shares,
		Exporter: exporter,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server exited successfully")
}
