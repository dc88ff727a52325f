package config

const (
	defaultDataDir                = "~/.local/share/boardmatch/data"
	defaultLogDir                 = "~/.local/share/boardmatch/logs"
	defaultLibraryBaseURL         = "https://api.finna.fi/v1"
	defaultLibraryBuilding        = "0/Keski/"
	defaultLibraryFormat          = "1/Game/BoardGame/"
	defaultLibraryPageSize        = 100
	defaultGameDBBaseURL          = "https://boardgamegeek.com/xmlapi2"
	defaultGameDBLinkedItemsURL   = "https://api.geekdo.com/api/geekitem/linkeditems"
	defaultSimilarityThreshold    = 75
	defaultMaxAuthors             = 2
	defaultYearWindow             = 1
	defaultMaxAttempts            = 3
	defaultBaseDelaySeconds       = 1
	defaultProcessingDelaySeconds = 2
	defaultPacingDelaySeconds     = 1
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Library: Library{
			BaseURL:  defaultLibraryBaseURL,
			Building: defaultLibraryBuilding,
			Format:   defaultLibraryFormat,
			PageSize: defaultLibraryPageSize,
		},
		GameDB: GameDB{
			BaseURL:        defaultGameDBBaseURL,
			LinkedItemsURL: defaultGameDBLinkedItemsURL,
		},
		Matching: Matching{
			SimilarityThreshold:    defaultSimilarityThreshold,
			MaxAuthors:             defaultMaxAuthors,
			YearWindow:             defaultYearWindow,
			MaxAttempts:            defaultMaxAttempts,
			BaseDelaySeconds:       defaultBaseDelaySeconds,
			ProcessingDelaySeconds: defaultProcessingDelaySeconds,
			PacingDelaySeconds:     defaultPacingDelaySeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
