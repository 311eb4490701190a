package task

import (
	"fmt"
	"strings"
)

// instantRegistry and ongoingRegistry map task kind → factory builder.
// Populated by init(); definition files refer to tasks by kind.
var (
	instantRegistry = map[string]func(params map[string]string) InstantFactory{}
	ongoingRegistry = map[string]func(params map[string]string) OngoingFactory{}
)

// RegisterInstant registers an instant task kind.
func RegisterInstant(kind string, builder func(params map[string]string) InstantFactory) {
	instantRegistry[kind] = builder
}

// RegisterOngoing registers an ongoing task kind.
func RegisterOngoing(kind string, builder func(params map[string]string) OngoingFactory) {
	ongoingRegistry[kind] = builder
}

// CreateInstant returns the factory for an instant task kind.
func CreateInstant(kind string, params map[string]string) (InstantFactory, error) {
	builder, ok := instantRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown instant task: %s", kind)
	}
	return builder(params), nil
}

// CreateOngoing returns the factory for an ongoing task kind.
func CreateOngoing(kind string, params map[string]string) (OngoingFactory, error) {
	builder, ok := ongoingRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown ongoing task: %s", kind)
	}
	return builder(params), nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	RegisterInstant("log", NewLogTask)
	RegisterInstant("end_ability", NewEndAbilityTask)
	RegisterOngoing("grant_tags", NewGrantTagsTask)
}
