package scan

import (
	"sync"
	"time"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/clock"
	"github.com/prinzana/sellyticsOffline-sub002/pkg/logger"
)

// ToastDebounce is the per-class window within which repeated outcomes of the
// same class emit no new toast or cue.
const ToastDebounce = 300 * time.Millisecond

// AudioPlayer plays the cue bound to a feedback class. Best-effort: failures
// are logged and swallowed, playback never blocks the pipeline.
type AudioPlayer interface {
	Play(class Class) error
}

// Notifier shows toast messages. Show replaces whatever is currently visible;
// the dispatcher always dismisses before showing so rapid scans never stack.
type Notifier interface {
	Show(class Class, message string)
	Dismiss()
}

// Dispatcher debounces and deduplicates scan feedback per outcome class.
type Dispatcher struct {
	mu     sync.Mutex
	clk    clock.Clock
	log    *logger.Logger
	audio  AudioPlayer
	toasts Notifier
	lastAt map[Class]time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherClock injects the time source used for toast debouncing.
func WithDispatcherClock(c clock.Clock) DispatcherOption {
	return func(d *Dispatcher) { d.clk = c }
}

// WithDispatcherLogger injects the dispatcher logger.
func WithDispatcherLogger(l *logger.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = l }
}

// NewDispatcher creates a feedback dispatcher over the given audio and toast
// sinks. Either sink may be nil.
func NewDispatcher(audio AudioPlayer, toasts Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		clk:    clock.System(),
		log:    logger.Default().WithComponent("feedback"),
		audio:  audio,
		toasts: toasts,
		lastAt: make(map[Class]time.Time),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch emits the toast and cue for one outcome. Suppressed outcomes and
// repeats within the debounce window are silent.
func (d *Dispatcher) Dispatch(out Outcome) {
	if out.Kind == OutcomeSuppressed {
		return
	}

	class := out.Kind.Class()

	d.mu.Lock()
	now := d.clk.Now()
	if last, ok := d.lastAt[class]; ok && now.Sub(last) < ToastDebounce {
		d.mu.Unlock()
		return
	}
	d.lastAt[class] = now
	d.mu.Unlock()

	if d.toasts != nil {
		d.toasts.Dismiss()
		d.toasts.Show(class, out.Message)
	}

	if d.audio != nil {
		if err := d.audio.Play(class); err != nil {
			d.log.Warnw("audio cue failed", "class", class.String(), "error", err)
		}
	}
}
