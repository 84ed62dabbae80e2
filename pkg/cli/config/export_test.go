package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, teamName, organizationID string, rateLimit float64, rateBurst int) *Slack {
	return &Slack{
		botToken:       botToken,
		teamName:       teamName,
		organizationID: organizationID,
		rateLimit:      rateLimit,
		rateBurst:      rateBurst,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}

// NewColorsForTest creates a Colors config for testing purposes
func NewColorsForTest(path string) *Colors {
	return &Colors{path: path}
}
