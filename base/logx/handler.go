// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages. It is on by default.
var UseColor = true

// colorProfile is the termenv color profile, set by [SetDefaultLogger].
var colorProfile = termenv.Ascii

// level colors, as hex strings
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "#7f8c8d",
	slog.LevelInfo:  "#27ae60",
	slog.LevelWarn:  "#f39c12",
	slog.LevelError: "#e74c3c",
}

// NewHandler returns a new text [slog.Handler] writing to w that
// shows messages at or above [UserLevel], with level names
// colored according to the current color profile.
func NewHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       userLeveler{},
		ReplaceAttr: replaceLevel,
	})
}

// SetDefaultLogger sets the default logger to be a [NewHandler]
// logger writing to stderr.  Color is enabled if [UseColor] is
// true and the terminal supports it.
func SetDefaultLogger() {
	colorProfile = termenv.Ascii
	if UseColor {
		colorProfile = termenv.NewOutput(os.Stderr).ColorProfile()
	}
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	lev, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	return slog.String(a.Key, ApplyLevelColor(lev, lev.String()))
}

// ApplyLevelColor returns str colored with the color for the given level,
// if color is enabled.
func ApplyLevelColor(lev slog.Level, str string) string {
	if colorProfile == termenv.Ascii {
		return str
	}
	hex, ok := levelColors[lev]
	if !ok {
		return str
	}
	return termenv.String(str).Foreground(colorProfile.Color(hex)).Bold().String()
}
