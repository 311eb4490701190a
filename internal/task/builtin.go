package task

import (
	"log/slog"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/tag"
)

// LogTask writes a debug record when executed.
// Params: "message".
type LogTask struct {
	host    ability.Host
	message string
}

func NewLogTask(params map[string]string) InstantFactory {
	msg := params["message"]
	return func(h ability.Host) Instant {
		return &LogTask{host: h, message: msg}
	}
}

func (t *LogTask) Execute() {
	slog.Debug("task executed",
		"message", t.message,
		"ability", t.host.Definition().Name,
		"owner", t.host.Owner().Name())
}

// EndAbilityTask ends the running ability. Used by manual-end timelines.
type EndAbilityTask struct {
	host ability.Host
}

func NewEndAbilityTask(_ map[string]string) InstantFactory {
	return func(h ability.Host) Instant {
		return &EndAbilityTask{host: h}
	}
}

func (t *EndAbilityTask) Execute() {
	t.host.TryEndAbility()
}

// GrantTagsTask holds loose tags on the owner between Start and End.
// Params: "tags" (comma separated).
type GrantTagsTask struct {
	host    ability.Host
	tags    tag.Set
	holding bool
}

func NewGrantTagsTask(params map[string]string) OngoingFactory {
	tags := tag.FromNames(splitList(params["tags"])...)
	return func(h ability.Host) Ongoing {
		return &GrantTagsTask{host: h, tags: tags}
	}
}

func (t *GrantTagsTask) Start(frame int) {
	if t.holding {
		return
	}
	t.host.Owner().AddLooseTags(t.tags)
	t.holding = true
}

func (t *GrantTagsTask) Tick(frame, start, end int) {}

// End releases the tags. Safe to call without a matching Start.
func (t *GrantTagsTask) End(frame int) {
	if !t.holding {
		return
	}
	t.host.Owner().RemoveLooseTags(t.tags)
	t.holding = false
}
