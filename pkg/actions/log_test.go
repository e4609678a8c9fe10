package actions

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(NewCommands(&buf), slog.LevelDebug))

	logger.Debug("resolving repository", "repo", "octo/board")
	logger.Info("created project", "number", 7)
	logger.Warn("token is missing scopes", "missing", "project")
	logger.With("column", "In Progress").Error("failed to create column")

	assert.Equal(t,
		"::debug::resolving repository repo=octo/board\n"+
			"created project number=7\n"+
			"::warning::token is missing scopes missing=project\n"+
			"::error::failed to create column column=\"In Progress\"\n",
		buf.String())
}

func TestLogHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(NewCommands(&buf), nil))

	logger.Debug("hidden")
	logger.Info("shown")

	assert.Equal(t, "shown\n", buf.String())
}

func TestLogHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(NewCommands(&buf), slog.LevelInfo))

	logger.WithGroup("board").Info("created", "id", 1, slog.Group("owner", "login", "octo"))

	assert.Equal(t, "created board.id=1 board.owner.login=octo\n", buf.String())
}
