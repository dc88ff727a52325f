package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeGameDB()
	c.normalizeMatching()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	c.Library.BaseURL = strings.TrimSpace(c.Library.BaseURL)
	if c.Library.BaseURL == "" {
		c.Library.BaseURL = defaultLibraryBaseURL
	}
	c.Library.Building = strings.TrimSpace(c.Library.Building)
	if c.Library.Building == "" {
		c.Library.Building = defaultLibraryBuilding
	}
	c.Library.Format = strings.TrimSpace(c.Library.Format)
	if c.Library.Format == "" {
		c.Library.Format = defaultLibraryFormat
	}
	if c.Library.PageSize <= 0 {
		c.Library.PageSize = defaultLibraryPageSize
	}
}

func (c *Config) normalizeGameDB() {
	c.GameDB.BaseURL = strings.TrimSpace(c.GameDB.BaseURL)
	if c.GameDB.BaseURL == "" {
		c.GameDB.BaseURL = defaultGameDBBaseURL
	}
	c.GameDB.LinkedItemsURL = strings.TrimSpace(c.GameDB.LinkedItemsURL)
	if c.GameDB.LinkedItemsURL == "" {
		c.GameDB.LinkedItemsURL = defaultGameDBLinkedItemsURL
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.SimilarityThreshold <= 0 {
		c.Matching.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Matching.MaxAuthors <= 0 {
		c.Matching.MaxAuthors = defaultMaxAuthors
	}
	if c.Matching.YearWindow < 0 {
		c.Matching.YearWindow = defaultYearWindow
	}
	if c.Matching.MaxAttempts <= 0 {
		c.Matching.MaxAttempts = defaultMaxAttempts
	}
	if c.Matching.BaseDelaySeconds <= 0 {
		c.Matching.BaseDelaySeconds = defaultBaseDelaySeconds
	}
	if c.Matching.ProcessingDelaySeconds <= 0 {
		c.Matching.ProcessingDelaySeconds = defaultProcessingDelaySeconds
	}
	if c.Matching.PacingDelaySeconds < 0 {
		c.Matching.PacingDelaySeconds = defaultPacingDelaySeconds
	}
	if c.Matching.RecordLimit < 0 {
		c.Matching.RecordLimit = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
