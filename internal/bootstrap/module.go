package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"starcast/internal/bootstrap/config"
	"starcast/internal/bootstrap/database"
	"starcast/internal/bootstrap/logging"
	cacheinfra "starcast/internal/infrastructure/cache"
	"starcast/internal/infrastructure/generator"
	"starcast/internal/infrastructure/mailer"
	sqliterepo "starcast/internal/infrastructure/persistence/sqlite/repository"
	"starcast/internal/infrastructure/signdata"
	"starcast/internal/ports"
	"starcast/internal/usecase/horoscope"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			func() *cacheinfra.Memory { return cacheinfra.NewMemory() },
			fx.As(new(ports.ReadingCache)),
		),
	),
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *generator.OpenAI { return generator.NewOpenAI(cfg.Generator) },
			fx.As(new(ports.Generator)),
		),
	),
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *signdata.Client { return signdata.NewClient(cfg.SignData) },
			fx.As(new(ports.SignDataSource)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewSubscriberRepository,
			fx.As(new(ports.SubscriberRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *mailer.SendGrid { return mailer.NewSendGrid(cfg.Alerts) },
			fx.As(new(ports.Mailer)),
		),
	),
	fx.Provide(provideHoroscopeService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideHoroscopeService(
	cache ports.ReadingCache,
	gen ports.Generator,
	signData ports.SignDataSource,
	subscribers ports.SubscriberRepository,
	mail ports.Mailer,
	cfg config.Config,
) *horoscope.Service {
	return horoscope.NewService(cache, gen, signData, subscribers, mail, cfg.Cache)
}
