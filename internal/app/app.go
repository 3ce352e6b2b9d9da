// Package app wires the services shared by the server, worker and lambda
// entrypoints.
package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/config"
	"github.com/uyenbatu/wedding-backend/internal/calendar"
	"github.com/uyenbatu/wedding-backend/internal/emaillogs"
	"github.com/uyenbatu/wedding-backend/internal/notify"
	"github.com/uyenbatu/wedding-backend/internal/reminders"
	"github.com/uyenbatu/wedding-backend/internal/rsvps"
	"github.com/uyenbatu/wedding-backend/pkg/database"
	"github.com/uyenbatu/wedding-backend/pkg/redis"
)

// Core holds the database-backed services every entrypoint needs.
type Core struct {
	Config     *config.Config
	Logger     *zap.Logger
	Pool       *pgxpool.Pool
	RSVPs      *rsvps.Repository
	Dispatcher *notify.Dispatcher
	redis      *redis.Client
}

// NewCore connects to Postgres and builds the RSVP store and email dispatcher.
func NewCore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Core, error) {
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, logger)
	if err != nil {
		return nil, err
	}

	rsvpRepo := rsvps.NewRepository(pool, cfg.Database.RSVPTable)
	dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
		Sender:    notify.NewSender(cfg.Email, logger),
		Templates: notify.NewTemplates(cfg.Event, cfg.Copy),
		Invites:   calendar.NewBuilder(cfg.Event, cfg.Calendar.UIDDomain),
		Marker:    rsvpRepo,
		Logs:      emaillogs.NewRepository(pool),
		From:      cfg.Email,
		SiteURL:   cfg.Server.SiteURL,
		Logger:    logger,
	})

	return &Core{
		Config:     cfg,
		Logger:     logger,
		Pool:       pool,
		RSVPs:      rsvpRepo,
		Dispatcher: dispatcher,
	}, nil
}

// Migrate applies the embedded schema.
func (c *Core) Migrate(ctx context.Context) error {
	return database.Migrate(ctx, c.Pool, database.Tables{
		RSVPTable:  c.Config.Database.RSVPTable,
		PhotoTable: c.Config.Database.PhotoTable,
	})
}

// ReminderJob builds the reminder job. When REDIS_ADDR is set the run is
// guarded by a Redis lock; an unreachable Redis is logged and the job runs
// unguarded.
func (c *Core) ReminderJob(ctx context.Context) *reminders.Job {
	jobCfg := reminders.Config{
		Store:   c.RSVPs,
		Sender:  c.Dispatcher,
		DateISO: c.Config.Event.DateISO,
		Logger:  c.Logger,
	}
	if addr := c.Config.Redis.Addr; addr != "" && c.redis == nil {
		rdb, err := redis.NewClient(ctx, addr, c.Config.Redis.Password, c.Config.Redis.DB, c.Logger)
		if err != nil {
			c.Logger.Warn("redis unavailable; reminder lock disabled", zap.Error(err))
		} else {
			c.redis = rdb
		}
	}
	if c.redis != nil {
		jobCfg.Locker = c.redis
	}
	return reminders.NewJob(jobCfg)
}

// Close releases the pool and any Redis connection.
func (c *Core) Close() {
	if c.redis != nil {
		_ = c.redis.Close()
	}
	c.Pool.Close()
}
