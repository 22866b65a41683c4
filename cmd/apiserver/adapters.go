package main

import (
	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
)

// levelReloader applies the log level of a re-read configuration file.
// Other settings need a restart.
type levelReloader struct {
	logger  logging.Logger
	current string
}

func (r *levelReloader) OnChange(cfg *config.Config) {
	if cfg.Log.Level == r.current {
		return
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		r.OnError(err)
		return
	}
	if logging.SetLevel(r.logger, level) {
		r.logger.Info("log level changed",
			logging.String("from", r.current),
			logging.String("to", cfg.Log.Level))
		r.current = cfg.Log.Level
	}
}

func (r *levelReloader) OnError(err error) {
	r.logger.Warn("ignoring invalid configuration change", logging.Err(err))
}

func watchLogLevel(path string, logger logging.Logger) error {
	current := ""
	if cfg := config.Get(); cfg != nil {
		current = cfg.Log.Level
	}
	r := &levelReloader{logger: logger, current: current}
	return config.Watch(path, r.OnChange, r.OnError)
}

//Personal.AI order the ending
