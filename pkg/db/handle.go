package db

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// OpenFunc dials a new client. Swappable for tests.
type OpenFunc func(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error)

// Handle is the process-wide store handle. The first caller opens the
// connection; concurrent cold-start callers share that single attempt. A failed
// attempt is not cached, so the next call dials again.
type Handle struct {
	cfg    config.DBConfig
	logg   *logger.Logger
	open   OpenFunc
	group  singleflight.Group
	client atomic.Pointer[Client]
}

// NewHandle builds a lazy handle. Nothing is dialed until Client is called.
func NewHandle(cfg config.DBConfig, logg *logger.Logger, open OpenFunc) *Handle {
	if open == nil {
		open = New
	}
	return &Handle{cfg: cfg, logg: logg, open: open}
}

// Client returns the shared client, initializing it on first use.
func (h *Handle) Client(ctx context.Context) (*Client, error) {
	if c := h.client.Load(); c != nil {
		return c, nil
	}

	v, err, _ := h.group.Do("client", func() (any, error) {
		if c := h.client.Load(); c != nil {
			return c, nil
		}
		// The dial must outlive the request that happened to trigger it.
		dialCtx := context.WithoutCancel(ctx)
		c, err := h.open(dialCtx, h.cfg, h.logg)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, errors.New("database opener returned nil client")
		}
		h.client.Store(c)
		return c, nil
	})
	if err != nil {
		if h.logg != nil {
			h.logg.Error(ctx, "database handle init failed", err)
		}
		return nil, err
	}
	return v.(*Client), nil
}

// Conn satisfies Source.
func (h *Handle) Conn(ctx context.Context) (*gorm.DB, error) {
	c, err := h.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Conn(ctx)
}

// Ping initializes the handle if needed and checks connectivity.
func (h *Handle) Ping(ctx context.Context) error {
	c, err := h.Client(ctx)
	if err != nil {
		return err
	}
	return c.Ping(ctx)
}

// Initialized reports whether a client has been published.
func (h *Handle) Initialized() bool {
	return h.client.Load() != nil
}

// Close releases the client if one was opened.
func (h *Handle) Close() error {
	c := h.client.Swap(nil)
	if c == nil {
		return nil
	}
	return c.Close()
}
