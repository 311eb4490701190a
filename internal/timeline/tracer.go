package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Phase identifies a traced section of TickFrame.
type Phase uint8

const (
	PhaseFrame Phase = iota // the whole TickFrame call
	PhaseInstantCues
	PhaseReleaseEffects
	PhaseInstantTasks
	PhaseDurationalCues
	PhaseBuffEffects
	PhaseOngoingTasks
)

func (p Phase) String() string {
	switch p {
	case PhaseFrame:
		return "frame"
	case PhaseInstantCues:
		return "instantCues"
	case PhaseReleaseEffects:
		return "releaseEffects"
	case PhaseInstantTasks:
		return "instantTasks"
	case PhaseDurationalCues:
		return "durationalCues"
	case PhaseBuffEffects:
		return "buffEffects"
	case PhaseOngoingTasks:
		return "ongoingTasks"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Tracer observes TickFrame. Begin/End calls are strictly nested: PhaseFrame
// encloses the six sub-phases of the same frame.
type Tracer interface {
	BeginPhase(ability string, frame int, phase Phase)
	EndPhase(ability string, frame int, phase Phase)
}

// SlogTracer logs the duration of every phase at debug level.
type SlogTracer struct {
	starts [PhaseOngoingTasks + 1]time.Time
}

func (t *SlogTracer) BeginPhase(_ string, _ int, phase Phase) {
	if int(phase) < len(t.starts) {
		t.starts[phase] = time.Now()
	}
}

func (t *SlogTracer) EndPhase(ability string, frame int, phase Phase) {
	if int(phase) >= len(t.starts) {
		return
	}
	slog.Debug("timeline phase",
		"ability", ability,
		"frame", frame,
		"phase", phase,
		"took", time.Since(t.starts[phase]))
}

// OTelTracer records one span per frame with one child span per phase.
type OTelTracer struct {
	tracer trace.Tracer
	ctx    context.Context
	stack  []trace.Span
	ctxs   []context.Context
}

// NewOTelTracer creates a tracer whose frame spans are children of ctx.
func NewOTelTracer(ctx context.Context, tracer trace.Tracer) *OTelTracer {
	return &OTelTracer{tracer: tracer, ctx: ctx}
}

func (t *OTelTracer) BeginPhase(ability string, frame int, phase Phase) {
	parent := t.ctx
	if n := len(t.ctxs); n > 0 {
		parent = t.ctxs[n-1]
	}
	ctx, span := t.tracer.Start(parent, "timeline."+phase.String(),
		trace.WithAttributes(
			attribute.String("ability", ability),
			attribute.Int("frame", frame),
		))
	t.ctxs = append(t.ctxs, ctx)
	t.stack = append(t.stack, span)
}

func (t *OTelTracer) EndPhase(_ string, _ int, _ Phase) {
	n := len(t.stack)
	if n == 0 {
		return
	}
	t.stack[n-1].End()
	t.stack[n-1] = nil
	t.stack = t.stack[:n-1]
	t.ctxs[n-1] = nil
	t.ctxs = t.ctxs[:n-1]
}
