package cue

import (
	"fmt"
	"strings"

	"github.com/udisondev/gascore/internal/tag"
)

// instantRegistry and durationalRegistry map cue kind → factory.
// Populated by init(); definition files refer to cues by kind.
var (
	instantRegistry    = map[string]func(params map[string]string) Instant{}
	durationalRegistry = map[string]func(params map[string]string) Durational{}
)

// RegisterInstant registers an instant cue factory by kind.
func RegisterInstant(kind string, factory func(params map[string]string) Instant) {
	instantRegistry[kind] = factory
}

// RegisterDurational registers a durational cue factory by kind.
func RegisterDurational(kind string, factory func(params map[string]string) Durational) {
	durationalRegistry[kind] = factory
}

// CreateInstant creates an instant cue by kind.
func CreateInstant(kind string, params map[string]string) (Instant, error) {
	factory, ok := instantRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown instant cue: %s", kind)
	}
	return factory(params), nil
}

// CreateDurational creates a durational cue by kind.
// Params "require_tags" and "immune_tags" (comma separated) wrap it in RequireTags.
func CreateDurational(kind string, params map[string]string) (Durational, error) {
	factory, ok := durationalRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown durational cue: %s", kind)
	}
	c := factory(params)

	required, immune := params["require_tags"], params["immune_tags"]
	if required == "" && immune == "" {
		return c, nil
	}
	return &RequireTags{
		Cue:      c,
		Required: tag.FromNames(splitList(required)...),
		Immune:   tag.FromNames(splitList(immune)...),
	}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	RegisterInstant("log", func(p map[string]string) Instant { return NewLog(p) })
	RegisterDurational("log", func(p map[string]string) Durational { return NewLogDurational(p) })
}
