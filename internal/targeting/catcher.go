package targeting

import (
	"fmt"
	"strconv"

	"github.com/udisondev/gascore/internal/ability"
)

// Catcher selects the targets of a release-effect mark.
//
// CatchTargets appends to out and returns the extended slice; it must not
// allocate when out has enough capacity, since it runs every time a mark fires.
type Catcher interface {
	Init(owner ability.Owner)
	CatchTargets(target ability.Owner, out []ability.Owner) []ability.Owner
}

// Finder answers spatial queries for area catchers.
type Finder interface {
	FindInRadius(center ability.Owner, radius float64, out []ability.Owner) []ability.Owner
}

// Self catches the owner.
type Self struct {
	owner ability.Owner
}

func (c *Self) Init(owner ability.Owner) { c.owner = owner }

func (c *Self) CatchTargets(_ ability.Owner, out []ability.Owner) []ability.Owner {
	if c.owner == nil {
		return out
	}
	return append(out, c.owner)
}

// Target catches the ability's declared target, if any.
type Target struct{}

func (Target) Init(ability.Owner) {}

func (Target) CatchTargets(target ability.Owner, out []ability.Owner) []ability.Owner {
	if target == nil {
		return out
	}
	return append(out, target)
}

// Radius catches everything within Range of the center.
// The center is the declared target, or the owner when AroundOwner is set
// or no target was given. ExcludeOwner drops the owner from the result.
type Radius struct {
	Finder       Finder
	Range        float64
	AroundOwner  bool
	ExcludeOwner bool

	owner ability.Owner
}

func (c *Radius) Init(owner ability.Owner) { c.owner = owner }

func (c *Radius) CatchTargets(target ability.Owner, out []ability.Owner) []ability.Owner {
	if c.Finder == nil {
		return out
	}
	center := target
	if c.AroundOwner || center == nil {
		center = c.owner
	}
	if center == nil {
		return out
	}

	start := len(out)
	out = c.Finder.FindInRadius(center, c.Range, out)
	if !c.ExcludeOwner || c.owner == nil {
		return out
	}

	n := start
	for _, o := range out[start:] {
		if o.ID() != c.owner.ID() {
			out[n] = o
			n++
		}
	}
	clear(out[n:])
	return out[:n]
}

// Factory parses definition params once and returns a constructor.
// Catchers are stateful (Init), so every player gets its own instance.
type Factory func(params map[string]string, finder Finder) (func() Catcher, error)

var catcherRegistry = map[string]Factory{}

// Register registers a catcher kind.
func Register(kind string, f Factory) {
	catcherRegistry[kind] = f
}

// Create returns a constructor for catchers of kind.
func Create(kind string, params map[string]string, finder Finder) (func() Catcher, error) {
	f, ok := catcherRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown target catcher: %s", kind)
	}
	return f(params, finder)
}

func newRadius(params map[string]string, finder Finder) (func() Catcher, error) {
	r, err := strconv.ParseFloat(params["range"], 64)
	if err != nil {
		return nil, fmt.Errorf("radius catcher range %q: %w", params["range"], err)
	}
	if r < 0 {
		return nil, fmt.Errorf("radius catcher range %v is negative", r)
	}
	if finder == nil {
		return nil, fmt.Errorf("radius catcher needs a spatial finder")
	}
	around := params["around"] == "owner"
	exclude := params["exclude_owner"] == "true"
	return func() Catcher {
		return &Radius{Finder: finder, Range: r, AroundOwner: around, ExcludeOwner: exclude}
	}, nil
}

func init() {
	Register("self", func(map[string]string, Finder) (func() Catcher, error) {
		return func() Catcher { return &Self{} }, nil
	})
	Register("target", func(map[string]string, Finder) (func() Catcher, error) {
		return func() Catcher { return Target{} }, nil
	})
	Register("radius", newRadius)
}
