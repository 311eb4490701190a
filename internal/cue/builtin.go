package cue

import (
	"context"
	"log/slog"
	"strings"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/tag"
)

// Log writes a record for each firing.
// Params: "message", "level" ("debug"/"info", default "debug").
type Log struct {
	Message string
	Level   slog.Level
}

func NewLog(params map[string]string) *Log {
	return &Log{Message: params["message"], Level: parseLevel(params["level"])}
}

func (c *Log) ApplyFrom(h ability.Host) {
	slog.Log(context.Background(), c.Level, "cue",
		"message", c.Message,
		"ability", h.Definition().Name,
		"owner", h.Owner().Name())
}

// LogDurational logs add/remove of a clip window; ticks are counted, not logged.
// Params: same as Log.
type LogDurational struct {
	Message string
	Level   slog.Level
}

func NewLogDurational(params map[string]string) *LogDurational {
	return &LogDurational{Message: params["message"], Level: parseLevel(params["level"])}
}

func (c *LogDurational) ApplyFrom(h ability.Host) Handle {
	return &logHandle{cue: c, ability: h.Definition().Name, owner: h.Owner().Name()}
}

type logHandle struct {
	cue     *LogDurational
	ability string
	owner   string
	ticks   int
}

func (h *logHandle) OnAdd() {
	h.ticks = 0
	slog.Log(context.Background(), h.cue.Level, "cue added", "message", h.cue.Message, "ability", h.ability, "owner", h.owner)
}

func (h *logHandle) OnTick() { h.ticks++ }

func (h *logHandle) OnRemove() {
	slog.Log(context.Background(), h.cue.Level, "cue removed",
		"message", h.cue.Message,
		"ability", h.ability,
		"owner", h.owner,
		"ticks", h.ticks)
}

// RequireTags wraps a durational cue so it only applies when the owner holds
// all Required tags and none of the Immune tags.
type RequireTags struct {
	Cue      Durational
	Required tag.Set
	Immune   tag.Set
}

func (c *RequireTags) ApplyFrom(h ability.Host) Handle {
	owner := h.Owner()
	if !owner.HasAllTags(c.Required) || owner.HasAnyTags(c.Immune) {
		return nil
	}
	return c.Cue.ApplyFrom(h)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}
