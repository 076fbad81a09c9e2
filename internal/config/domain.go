package config

import (
	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/export"
	"github.com/talentosprecato/Mari/internal/imports"
	"github.com/talentosprecato/Mari/pkg/logging"
)

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

var cvEnv = &cv.Env{
	SnapshotKey:      "CV_SNAPSHOT_KEY",
	SaveDelay:        "CV_SAVE_DELAY",
	StatusResetDelay: "CV_STATUS_RESET_DELAY",
}

var aiEnv = &ai.Env{
	APIKey:         "GEMINI_API_KEY",
	Model:          "AI_MODEL",
	MaxRetries:     "AI_MAX_RETRIES",
	InitialBackoff: "AI_INITIAL_BACKOFF",
}

var importsEnv = &imports.Env{
	MaxPages: "IMPORTS_MAX_PAGES",
	MaxSize:  "IMPORTS_MAX_SIZE",
}

var exportEnv = &export.Env{
	ChromePath:  "CHROME_PATH",
	Timeout:     "EXPORT_TIMEOUT",
	MaxHTMLSize: "EXPORT_MAX_HTML_SIZE",
}
