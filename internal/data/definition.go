package data

import "time"

// Definition file layout. One file holds effect templates followed by the
// abilities that reference them by name.
//
//	effects:
//	  - name: Fireball.Cost
//	    policy: instant
//	    modifiers: [{attribute: mp, op: add, value: -20}]
//	abilities:
//	  - name: Fireball
//	    tags: {asset: [Ability.Attack.Fire]}
//	    cost: Fireball.Cost
//	    timeline:
//	      frame_count: 30
//	      release_effects:
//	        - name: hit
//	          events:
//	            - frame: 12
//	              catcher: {kind: target}
//	              effects: [Fireball.Damage]
type fileDef struct {
	Effects   []effectDef  `yaml:"effects"`
	Abilities []abilityDef `yaml:"abilities"`
}

type effectDef struct {
	Name        string        `yaml:"name"`
	Policy      string        `yaml:"policy"` // instant, duration, infinite
	Duration    time.Duration `yaml:"duration"`
	Modifiers   []modifierDef `yaml:"modifiers"`
	GrantedTags []string      `yaml:"granted_tags"`
}

type modifierDef struct {
	Attribute string  `yaml:"attribute"`
	Op        string  `yaml:"op"` // add, mul
	Value     float64 `yaml:"value"`
}

type abilityDef struct {
	Name         string        `yaml:"name"`
	Kind         string        `yaml:"kind"` // simple or timeline; inferred when empty
	Tags         tagsDef       `yaml:"tags"`
	Cooldown     string        `yaml:"cooldown"` // effect name
	CooldownTime time.Duration `yaml:"cooldown_time"`
	Cost         string        `yaml:"cost"` // effect name
	ManualEnd    bool          `yaml:"manual_end"`
	Timeline     *timelineDef  `yaml:"timeline"`
}

type tagsDef struct {
	Asset               []string `yaml:"asset"`
	ActivationOwned     []string `yaml:"activation_owned"`
	ActivationRequired  []string `yaml:"activation_required"`
	ActivationBlocked   []string `yaml:"activation_blocked"`
	CancelAbilitiesWith []string `yaml:"cancel_abilities_with"`
	BlockAbilitiesWith  []string `yaml:"block_abilities_with"`
}

type timelineDef struct {
	FrameRate  int  `yaml:"frame_rate"`
	FrameCount int  `yaml:"frame_count"`
	ManualEnd  bool `yaml:"manual_end"`

	InstantCues    []trackDef[instantCueDef]    `yaml:"instant_cues"`
	ReleaseEffects []trackDef[releaseEffectDef] `yaml:"release_effects"`
	InstantTasks   []trackDef[instantTaskDef]   `yaml:"instant_tasks"`
	DurationalCues []trackDef[durationalCueDef] `yaml:"durational_cues"`
	BuffEffects    []trackDef[buffEffectDef]    `yaml:"buff_effects"`
	OngoingTasks   []trackDef[ongoingTaskDef]   `yaml:"ongoing_tasks"`
}

type trackDef[E any] struct {
	Name   string `yaml:"name"`
	Events []E    `yaml:"events"`
}

// kindDef selects a registered cue, task or catcher kind.
type kindDef struct {
	Kind   string            `yaml:"kind"`
	Params map[string]string `yaml:"params"`
}

type instantCueDef struct {
	Frame int       `yaml:"frame"`
	Cues  []kindDef `yaml:"cues"`
}

type releaseEffectDef struct {
	Frame   int      `yaml:"frame"`
	Catcher kindDef  `yaml:"catcher"`
	Effects []string `yaml:"effects"`
}

type instantTaskDef struct {
	Frame int       `yaml:"frame"`
	Tasks []kindDef `yaml:"tasks"`
}

type durationalCueDef struct {
	Start int     `yaml:"start"`
	End   int     `yaml:"end"`
	Cue   kindDef `yaml:"cue"`
}

type buffEffectDef struct {
	Start  int    `yaml:"start"`
	End    int    `yaml:"end"`
	Effect string `yaml:"effect"`
}

type ongoingTaskDef struct {
	Start int     `yaml:"start"`
	End   int     `yaml:"end"`
	Task  kindDef `yaml:"task"`
}
