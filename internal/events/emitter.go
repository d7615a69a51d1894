package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var Emit = func(ctx context.Context, name string, evt GalleryEvent) {}

// EnableRuntimeEmitter routes events through the Wails runtime so the
// frontend can react to gallery changes.
func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt GalleryEvent) {
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

// SetCustomEmitter swaps the emitter, used by tests. A nil f silences
// emission entirely.
func SetCustomEmitter(f func(ctx context.Context, name string, evt GalleryEvent)) {
	if f == nil {
		Emit = func(context.Context, string, GalleryEvent) {}
		return
	}
	Emit = f
}
