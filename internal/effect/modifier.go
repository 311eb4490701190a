package effect

import (
	"fmt"
	"strings"
)

// ModOp defines how a modifier is applied.
type ModOp int8

const (
	OpAdd ModOp = iota // Additive bonus (e.g. -10 mana)
	OpMul              // Multiplicative bonus (e.g. ×1.2 speed)
)

// ParseModOp parses "add" or "mul".
func ParseModOp(s string) (ModOp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "":
		return OpAdd, nil
	case "mul":
		return OpMul, nil
	default:
		return OpAdd, fmt.Errorf("unknown modifier op %q", s)
	}
}

// Modifier is a single attribute modification carried by an effect.
type Modifier struct {
	Attribute string // "hp", "mp", "speed", ...
	Op        ModOp
	Value     float64
}

// apply returns base modified by m.
func (m Modifier) apply(base float64) float64 {
	switch m.Op {
	case OpMul:
		return base * m.Value
	default:
		return base + m.Value
	}
}
