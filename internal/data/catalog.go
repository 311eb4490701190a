package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/gascore/internal/ability"
	"github.com/udisondev/gascore/internal/cue"
	"github.com/udisondev/gascore/internal/effect"
	"github.com/udisondev/gascore/internal/tag"
	"github.com/udisondev/gascore/internal/targeting"
	"github.com/udisondev/gascore/internal/task"
	"github.com/udisondev/gascore/internal/timeline"
)

// Catalog holds the effect templates and abilities of a definition file.
// Read-only after Load.
type Catalog struct {
	effects   *effect.Registry
	abilities map[string]ability.Ability
	order     []string
}

// Effect returns an effect template by name.
func (c *Catalog) Effect(name string) (*effect.Effect, error) {
	return c.effects.Get(name)
}

// Ability returns an ability by name.
func (c *Catalog) Ability(name string) (ability.Ability, bool) {
	a, ok := c.abilities[name]
	return a, ok
}

// Names returns ability names in file order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of abilities.
func (c *Catalog) Len() int { return len(c.order) }

// EffectCount returns the number of effect templates.
func (c *Catalog) EffectCount() int { return c.effects.Len() }

// Option configures how definitions are resolved.
type Option func(*loader)

// WithFinder provides spatial queries for radius catchers.
func WithFinder(f targeting.Finder) Option {
	return func(l *loader) { l.finder = f }
}

// WithFrameRate sets the rate of timelines that leave frame_rate unset.
func WithFrameRate(fps int) Option {
	return func(l *loader) { l.frameRate = fps }
}

// WithPlayerOptions applies opts to every timeline player created from the catalog.
func WithPlayerOptions(opts ...timeline.Option) Option {
	return func(l *loader) { l.playerOpts = append(l.playerOpts, opts...) }
}

// Load reads a definition file. Every problem found is reported, not only the first.
func Load(path string, opts ...Option) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading abilities %s: %w", path, err)
	}

	cat, err := Parse(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading abilities %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and resolves a definition document.
func Parse(raw []byte, opts ...Option) (*Catalog, error) {
	var file fileDef
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}

	l := &loader{
		frameRate: timeline.DefaultFrameRate,
		seen:      make(map[string]bool, len(file.Abilities)),
		cat: &Catalog{
			effects:   effect.NewRegistry(),
			abilities: make(map[string]ability.Ability, len(file.Abilities)),
		},
	}
	for _, opt := range opts {
		opt(l)
	}

	for i := range file.Effects {
		l.addEffect(&file.Effects[i])
	}
	for i := range file.Abilities {
		l.addAbility(&file.Abilities[i])
	}

	if err := errors.Join(l.errs...); err != nil {
		return nil, err
	}

	slog.Info("loaded ability catalog", "effects", l.cat.effects.Len(), "abilities", len(l.cat.order))
	return l.cat, nil
}

type loader struct {
	finder     targeting.Finder
	frameRate  int
	playerOpts []timeline.Option

	cat  *Catalog
	seen map[string]bool
	errs []error
}

func (l *loader) fail(format string, args ...any) {
	l.errs = append(l.errs, fmt.Errorf(format, args...))
}

func (l *loader) addEffect(def *effectDef) {
	policy, err := effect.ParseDurationPolicy(def.Policy)
	if err != nil {
		l.fail("effect %q: %w", def.Name, err)
		return
	}
	if policy == effect.Duration && def.Duration <= 0 {
		l.fail("effect %q: duration policy needs a positive duration", def.Name)
		return
	}

	e := &effect.Effect{
		Name:        def.Name,
		Policy:      policy,
		Duration:    def.Duration,
		GrantedTags: tag.FromNames(def.GrantedTags...),
	}
	for _, m := range def.Modifiers {
		op, err := effect.ParseModOp(m.Op)
		if err != nil {
			l.fail("effect %q: attribute %q: %w", def.Name, m.Attribute, err)
			return
		}
		e.Modifiers = append(e.Modifiers, effect.Modifier{Attribute: m.Attribute, Op: op, Value: m.Value})
	}

	if err := l.cat.effects.Register(e); err != nil {
		l.fail("%w", err)
	}
}

func (l *loader) addAbility(def *abilityDef) {
	if def.Name == "" {
		l.fail("ability without name")
		return
	}
	if l.seen[def.Name] {
		l.fail("duplicate ability %q", def.Name)
		return
	}
	l.seen[def.Name] = true

	adef := ability.NewDefinition(def.Name, ability.Tags{
		Asset:               tag.FromNames(def.Tags.Asset...),
		ActivationOwned:     tag.FromNames(def.Tags.ActivationOwned...),
		ActivationRequired:  tag.FromNames(def.Tags.ActivationRequired...),
		ActivationBlocked:   tag.FromNames(def.Tags.ActivationBlocked...),
		CancelAbilitiesWith: tag.FromNames(def.Tags.CancelAbilitiesWith...),
		BlockAbilitiesWith:  tag.FromNames(def.Tags.BlockAbilitiesWith...),
	})
	adef.CooldownTime = def.CooldownTime

	before := len(l.errs)
	if def.Cooldown != "" {
		if e := l.effect(def.Name, def.Cooldown); e != nil {
			if e.Policy != effect.Duration {
				l.fail("ability %q: cooldown %q must have duration policy, got %s", def.Name, e.Name, e.Policy)
			} else {
				adef.SetCooldown(e)
			}
		}
	}
	if def.Cost != "" {
		if e := l.effect(def.Name, def.Cost); e != nil {
			if e.Policy != effect.Instant {
				l.fail("ability %q: cost %q must have instant policy, got %s", def.Name, e.Name, e.Policy)
			} else {
				adef.SetCost(e)
			}
		}
	}

	var a ability.Ability
	switch kind := l.kindOf(def); kind {
	case "simple":
		if def.Timeline != nil {
			l.fail("ability %q: simple ability cannot have a timeline", def.Name)
		}
		a = &ability.Simple{Def: adef, ManualEnd: def.ManualEnd}
	case "timeline":
		if def.Timeline == nil {
			l.fail("ability %q: timeline ability without timeline", def.Name)
			break
		}
		tl := l.timeline(def.Name, def.Timeline)
		if def.ManualEnd {
			tl.ManualEnd = true
		}
		a = timeline.NewAbility(adef, tl, l.playerOpts...)
	default:
		l.fail("ability %q: unknown kind %q", def.Name, kind)
	}

	if len(l.errs) > before || a == nil {
		return
	}
	l.cat.abilities[def.Name] = a
	l.cat.order = append(l.cat.order, def.Name)
}

func (l *loader) kindOf(def *abilityDef) string {
	if def.Kind != "" {
		return def.Kind
	}
	if def.Timeline != nil {
		return "timeline"
	}
	return "simple"
}

func (l *loader) effect(abilityName, name string) *effect.Effect {
	e, err := l.cat.effects.Get(name)
	if err != nil {
		l.fail("ability %q: %w", abilityName, err)
		return nil
	}
	return e
}

func (l *loader) timeline(name string, def *timelineDef) *timeline.Timeline {
	tl := &timeline.Timeline{
		FrameRate:  def.FrameRate,
		FrameCount: def.FrameCount,
		ManualEnd:  def.ManualEnd,
	}
	if tl.FrameRate == 0 {
		tl.FrameRate = l.frameRate
	}

	for _, tr := range def.InstantCues {
		out := timeline.Track[timeline.InstantCueMark]{Name: tr.Name}
		for _, ev := range tr.Events {
			m := timeline.InstantCueMark{Frame: ev.Frame}
			for _, k := range ev.Cues {
				c, err := cue.CreateInstant(k.Kind, k.Params)
				if err != nil {
					l.fail("ability %q: track %q: %w", name, tr.Name, err)
					continue
				}
				m.Cues = append(m.Cues, c)
			}
			out.Events = append(out.Events, m)
		}
		tl.InstantCues = append(tl.InstantCues, out)
	}

	for _, tr := range def.ReleaseEffects {
		out := timeline.Track[timeline.ReleaseEffectMark]{Name: tr.Name}
		for _, ev := range tr.Events {
			m := timeline.ReleaseEffectMark{Frame: ev.Frame}
			newCatcher, err := targeting.Create(ev.Catcher.Kind, ev.Catcher.Params, l.finder)
			if err != nil {
				l.fail("ability %q: track %q: %w", name, tr.Name, err)
			}
			m.NewCatcher = newCatcher
			for _, en := range ev.Effects {
				if e := l.effect(name, en); e != nil {
					m.Effects = append(m.Effects, e)
				}
			}
			out.Events = append(out.Events, m)
		}
		tl.ReleaseEffects = append(tl.ReleaseEffects, out)
	}

	for _, tr := range def.InstantTasks {
		out := timeline.Track[timeline.InstantTaskMark]{Name: tr.Name}
		for _, ev := range tr.Events {
			m := timeline.InstantTaskMark{Frame: ev.Frame}
			for _, k := range ev.Tasks {
				f, err := task.CreateInstant(k.Kind, k.Params)
				if err != nil {
					l.fail("ability %q: track %q: %w", name, tr.Name, err)
					continue
				}
				m.Tasks = append(m.Tasks, f)
			}
			out.Events = append(out.Events, m)
		}
		tl.InstantTasks = append(tl.InstantTasks, out)
	}

	for _, tr := range def.DurationalCues {
		out := timeline.Track[timeline.DurationalCueClip]{Name: tr.Name}
		for _, ev := range tr.Events {
			c, err := cue.CreateDurational(ev.Cue.Kind, ev.Cue.Params)
			if err != nil {
				l.fail("ability %q: track %q: %w", name, tr.Name, err)
				continue
			}
			out.Events = append(out.Events, timeline.DurationalCueClip{Start: ev.Start, End: ev.End, Cue: c})
		}
		tl.DurationalCues = append(tl.DurationalCues, out)
	}

	for _, tr := range def.BuffEffects {
		out := timeline.Track[timeline.BuffEffectClip]{Name: tr.Name}
		for _, ev := range tr.Events {
			e := l.effect(name, ev.Effect)
			if e == nil {
				continue
			}
			if !e.IsBuff() {
				l.fail("ability %q: track %q: buff %q has instant policy", name, tr.Name, e.Name)
				continue
			}
			out.Events = append(out.Events, timeline.BuffEffectClip{Start: ev.Start, End: ev.End, Effect: e})
		}
		tl.BuffEffects = append(tl.BuffEffects, out)
	}

	for _, tr := range def.OngoingTasks {
		out := timeline.Track[timeline.OngoingTaskClip]{Name: tr.Name}
		for _, ev := range tr.Events {
			f, err := task.CreateOngoing(ev.Task.Kind, ev.Task.Params)
			if err != nil {
				l.fail("ability %q: track %q: %w", name, tr.Name, err)
				continue
			}
			out.Events = append(out.Events, timeline.OngoingTaskClip{Start: ev.Start, End: ev.End, Task: f})
		}
		tl.OngoingTasks = append(tl.OngoingTasks, out)
	}

	if err := tl.Validate(); err != nil {
		l.fail("ability %q: %w", name, err)
	}
	return tl
}
