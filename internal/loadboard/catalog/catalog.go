package catalog

import (
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/haulware/carriergate/internal/config"
	"github.com/haulware/carriergate/internal/loadboard/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Catalog holds the load board read from the loads file. The file is
// watched and reloaded on change; readers always see a complete snapshot
// and a missing or broken file degrades to an empty board.
type Catalog struct {
	current atomic.Value // holds []domain.Load
	log     *zap.Logger
	v       *viper.Viper
	file    string
}

func New(cfg config.Config, log *zap.Logger) *Catalog {
	c := &Catalog{
		log:  log.Named("loadboard.catalog"),
		file: cfg.LoadsFile,
	}

	v := viper.New()
	v.SetConfigFile(cfg.LoadsFile)
	v.SetConfigType("json")
	c.v = v

	if err := v.ReadInConfig(); err != nil {
		c.log.Warn("load catalog unavailable, serving empty board",
			zap.String("file", cfg.LoadsFile),
			zap.Error(err),
		)
		c.current.Store([]domain.Load{})
	} else {
		c.store(cfg.LoadsFile)
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		c.store(e.Name)
	})

	return c
}

// NewStatic builds a catalog over a fixed set of loads. Used by tests and
// seed tooling.
func NewStatic(loads []domain.Load) *Catalog {
	c := &Catalog{log: zap.NewNop()}
	if loads == nil {
		loads = []domain.Load{}
	}
	c.current.Store(loads)
	return c
}

// Loads returns the current snapshot. Callers must not mutate it.
func (c *Catalog) Loads() []domain.Load {
	return c.current.Load().([]domain.Load)
}

// Reload re-reads the loads file immediately instead of waiting for a
// watch event. A failed read keeps the previous snapshot.
func (c *Catalog) Reload() {
	if c.v == nil {
		return
	}
	if err := c.v.ReadInConfig(); err != nil {
		c.log.Warn("load catalog reload failed, keeping previous snapshot",
			zap.String("file", c.file),
			zap.Error(err),
		)
		if c.current.Load() == nil {
			c.current.Store([]domain.Load{})
		}
		return
	}
	c.store(c.file)
}

func (c *Catalog) store(source string) {
	var loads []domain.Load
	if err := c.v.UnmarshalKey("loads", &loads); err != nil {
		c.log.Warn("load catalog decode failed, keeping previous snapshot",
			zap.String("file", source),
			zap.Error(err),
		)
		if c.current.Load() == nil {
			c.current.Store([]domain.Load{})
		}
		return
	}
	if loads == nil {
		loads = []domain.Load{}
	}
	c.current.Store(loads)
	c.log.Info("load catalog loaded",
		zap.String("file", source),
		zap.Int("loads", len(loads)),
	)
}
