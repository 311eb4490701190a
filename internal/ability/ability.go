package ability

import "time"

// Ability is a grantable ability kind. CreateSpec is the factory used by
// Container.GrantAbility; it is called once per (owner, ability) grant.
type Ability interface {
	Definition() *Definition
	CreateSpec(owner Owner) *Spec
}

// Behavior is what an ability kind does while its Spec runs.
// Spec handles gating, cost, cooldown and tags before calling into it.
type Behavior interface {
	Activate(spec *Spec, args ...any)
	Cancel(spec *Spec)
	End(spec *Spec)
	Tick(spec *Spec, dt time.Duration)
}

// Simple is an ability without a timeline.
// OnActivate runs on activation; unless ManualEnd is set the ability ends right after.
type Simple struct {
	Def        *Definition
	ManualEnd  bool
	OnActivate func(spec *Spec, args ...any)
	OnEnd      func(spec *Spec)
}

func (a *Simple) Definition() *Definition { return a.Def }

func (a *Simple) CreateSpec(owner Owner) *Spec {
	return NewSpec(a.Def, owner, simpleBehavior{a})
}

type simpleBehavior struct {
	a *Simple
}

func (b simpleBehavior) Activate(spec *Spec, args ...any) {
	if b.a.OnActivate != nil {
		b.a.OnActivate(spec, args...)
	}
	if !b.a.ManualEnd {
		spec.TryEndAbility()
	}
}

func (b simpleBehavior) Cancel(spec *Spec) {
	if b.a.OnEnd != nil {
		b.a.OnEnd(spec)
	}
}

func (b simpleBehavior) End(spec *Spec) {
	if b.a.OnEnd != nil {
		b.a.OnEnd(spec)
	}
}

func (simpleBehavior) Tick(*Spec, time.Duration) {}
