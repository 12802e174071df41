package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/notify-renewals/internal/application/livequery"
	"github.com/jhoicas/notify-renewals/internal/application/reminder"
	"github.com/jhoicas/notify-renewals/internal/application/subscription"
	"github.com/jhoicas/notify-renewals/internal/application/usecase"
	"github.com/jhoicas/notify-renewals/internal/domain/repository"
	"github.com/jhoicas/notify-renewals/internal/infrastructure/notifier"
	infrapdf "github.com/jhoicas/notify-renewals/internal/infrastructure/pdf"
	"github.com/jhoicas/notify-renewals/internal/infrastructure/postgres"
	"github.com/jhoicas/notify-renewals/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/notify-renewals/internal/interfaces/http"
	"github.com/jhoicas/notify-renewals/pkg/config"
	"github.com/jhoicas/notify-renewals/pkg/logger"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	loc, err := timeutil.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacén de registros")
	}
	defer store.close()

	clock := timeutil.Default()
	hub := livequery.NewHub()

	companyUC := usecase.NewCompanyUseCase(store.companies, hub, log)
	customerUC := subscription.NewCustomerUseCase(store.customers, hub, clock, loc, log)
	reportUC := subscription.NewReportUseCase(store.customers, infrapdf.NewMarotoReportGenerator(), clock)

	// Notificaciones en proceso: se entregan como eventos de log
	notifierSvc := notifier.New(clock, loc, nil, log)
	defer notifierSvc.Stop()
	reminderUC := reminder.NewUseCase(notifierSvc, clock, reminder.Config{
		ChannelID:   cfg.Reminder.ChannelID,
		ChannelName: cfg.Reminder.ChannelName,
		Title:       cfg.Reminder.Title,
		Body:        cfg.Reminder.Body,
		Location:    loc,
	}, log)

	// Sin WriteTimeout: /api/renewals/today/stream mantiene la respuesta abierta.
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// streams SSE: se cancelan antes del apagado para que no lo bloqueen
	streams, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:  companyUC,
		CustomerUC: customerUC,
		ReportUC:   reportUC,
		ReminderUC: reminderUC,
		Hub:        hub,
		Log:        log,
		Streams:    streams,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

type recordStore struct {
	customers repository.CustomerRepository
	companies repository.CompanyRepository
	close     func()
}

// openStore abre SQLite (por defecto) o PostgreSQL según STORE_DRIVER.
func openStore(ctx context.Context, cfg config.StoreConfig) (*recordStore, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &recordStore{
			customers: postgres.NewCustomerRepository(pool),
			companies: postgres.NewCompanyRepository(pool),
			close:     pool.Close,
		}, nil
	default:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &recordStore{
			customers: sqlite.NewCustomerRepository(db),
			companies: sqlite.NewCompanyRepository(db),
			close:     func() { _ = db.Close() },
		}, nil
	}
}
