package timeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/udisondev/gascore/internal/timeline"
)

func TestOTelTracer_NestsPhasesUnderFrame(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := timeline.NewOTelTracer(context.Background(), tp.Tracer("test"))
	owner := newOwner(1, "Caster")
	grantTimeline(t, owner, "Traced", &timeline.Timeline{FrameRate: 10, FrameCount: 5},
		timeline.WithTracer(tracer))

	require.True(t, owner.TryActivate("Traced"))
	owner.Tick(frameDuration(1, 10)) // frames 0 and 1

	spans := rec.Ended()
	require.Len(t, spans, 2*7)

	frames := 0
	for _, s := range spans {
		if s.Name() != "timeline.frame" {
			continue
		}
		frames++
		assert.False(t, s.Parent().IsValid(), "frame spans are roots")
	}
	assert.Equal(t, 2, frames)

	for _, s := range spans[:6] {
		assert.True(t, s.Parent().IsValid())
		assert.Equal(t, spans[6].SpanContext().SpanID(), s.Parent().SpanID(), "%s nested under frame 0", s.Name())
	}
	assert.Equal(t, "timeline.instantCues", spans[0].Name())
	assert.Equal(t, "timeline.ongoingTasks", spans[5].Name())
}

func TestSlogTracer_Balanced(t *testing.T) {
	tracer := &timeline.SlogTracer{}
	owner := newOwner(1, "Caster")
	_, player := grantTimeline(t, owner, "Logged", &timeline.Timeline{FrameRate: 10, FrameCount: 3},
		timeline.WithTracer(tracer))

	require.True(t, owner.TryActivate("Logged"))
	owner.Tick(time.Second)
	assert.False(t, player.IsPlaying())
}
