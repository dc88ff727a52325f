package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateGameDB(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if _, err := url.ParseRequestURI(c.Library.BaseURL); err != nil {
		return fmt.Errorf("library.base_url is not a valid URL: %w", err)
	}
	if c.Library.Building == "" {
		return errors.New("library.building must be set")
	}
	if c.Library.Format == "" {
		return errors.New("library.format must be set")
	}
	if c.Library.PageSize > 100 {
		return errors.New("library.page_size must not exceed 100")
	}
	return nil
}

func (c *Config) validateGameDB() error {
	if _, err := url.ParseRequestURI(c.GameDB.BaseURL); err != nil {
		return fmt.Errorf("gamedb.base_url is not a valid URL: %w", err)
	}
	if _, err := url.ParseRequestURI(c.GameDB.LinkedItemsURL); err != nil {
		return fmt.Errorf("gamedb.linked_items_url is not a valid URL: %w", err)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.SimilarityThreshold > 100 {
		return errors.New("matching.similarity_threshold must be between 1 and 100")
	}
	if c.Matching.MaxAttempts > 10 {
		return errors.New("matching.max_attempts must not exceed 10")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
