package mylog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTelegramFilter(t *testing.T) {
	ctx := context.Background()

	plain := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	assert.False(t, telegramFilter(ctx, plain))

	tagged := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	tagged.AddAttrs(slog.Bool(TelegramKey, true))
	assert.True(t, telegramFilter(ctx, tagged))

	failure := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	assert.True(t, telegramFilter(ctx, failure))
}
