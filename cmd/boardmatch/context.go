package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"boardmatch/internal/bgg"
	"boardmatch/internal/config"
	"boardmatch/internal/library"
	"boardmatch/internal/logging"
	"boardmatch/internal/match"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) libraryClient() (*library.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return library.New(library.Config{
		BaseURL:  cfg.Library.BaseURL,
		Building: cfg.Library.Building,
		Format:   cfg.Library.Format,
		PageSize: cfg.Library.PageSize,
	})
}

func (c *commandContext) gameClient() (*bgg.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return bgg.New(bgg.Config{
		BaseURL:        cfg.GameDB.BaseURL,
		LinkedItemsURL: cfg.GameDB.LinkedItemsURL,
	})
}

func (c *commandContext) matcher(logger *slog.Logger) (*match.Matcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := c.gameClient()
	if err != nil {
		return nil, err
	}
	policy := match.FetchPolicy{
		MaxAttempts:     cfg.Matching.MaxAttempts,
		Delay:           time.Duration(cfg.Matching.BaseDelaySeconds) * time.Second,
		ProcessingDelay: time.Duration(cfg.Matching.ProcessingDelaySeconds) * time.Second,
		PacingDelay:     time.Duration(cfg.Matching.PacingDelaySeconds) * time.Second,
	}
	fetcher := match.NewFetcher(client, policy, logger)
	return match.NewMatcher(fetcher, logger, match.Options{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		MaxAuthors:          cfg.Matching.MaxAuthors,
		YearWindow:          cfg.Matching.YearWindow,
	}), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
