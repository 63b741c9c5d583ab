// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandlerTracksUserLevel(t *testing.T) {
	prev := UserLevel
	t.Cleanup(func() { UserLevel = prev })

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf))
	UserLevel = slog.LevelWarn
	lg.Info("hidden")
	lg.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	UserLevel = slog.LevelDebug
	lg.Debug("now shown")
	assert.Contains(t, buf.String(), "now shown")
}

func TestApplyLevelColor(t *testing.T) {
	prev := colorProfile
	t.Cleanup(func() { colorProfile = prev })

	colorProfile = termenv.Ascii
	assert.Equal(t, "INFO", ApplyLevelColor(slog.LevelInfo, "INFO"))

	colorProfile = termenv.TrueColor
	colored := ApplyLevelColor(slog.LevelError, "ERROR")
	assert.Contains(t, colored, "ERROR")
	assert.NotEqual(t, "ERROR", colored)
}

func TestDefaultLogger(t *testing.T) {
	prevLog := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prevLog) })
	UseColor = false
	SetDefaultLogger()
	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}
