package scan

import (
	"errors"
	"testing"
	"time"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/clock"
)

type fakeAudio struct {
	played []Class
	err    error
}

func (f *fakeAudio) Play(class Class) error {
	f.played = append(f.played, class)
	return f.err
}

type toastEvent struct {
	dismiss bool
	class   Class
	message string
}

type fakeNotifier struct {
	events []toastEvent
}

func (f *fakeNotifier) Show(class Class, message string) {
	f.events = append(f.events, toastEvent{class: class, message: message})
}

func (f *fakeNotifier) Dismiss() {
	f.events = append(f.events, toastEvent{dismiss: true})
}

func TestDispatcher_DebouncesPerClass(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	audio := &fakeAudio{}
	toasts := &fakeNotifier{}
	d := NewDispatcher(audio, toasts, WithDispatcherClock(clk))

	d.Dispatch(Outcome{Kind: OutcomeSuccess, Message: "Widget"})
	clk.Advance(100 * time.Millisecond)
	d.Dispatch(Outcome{Kind: OutcomeSuccess, Message: "Widget"})

	if got := len(audio.played); got != 1 {
		t.Errorf("cues = %d, repeat inside the window must be silent", got)
	}

	// A different class inside the same window still gets through.
	d.Dispatch(Outcome{Kind: OutcomeDuplicate, Message: "dup"})
	if got := len(audio.played); got != 2 {
		t.Errorf("cues = %d, other class must not share the window", got)
	}

	clk.Advance(ToastDebounce)
	d.Dispatch(Outcome{Kind: OutcomeSuccess, Message: "Widget"})
	if got := len(audio.played); got != 3 {
		t.Errorf("cues = %d, window expiry must re-enable the class", got)
	}
}

func TestDispatcher_SharedClassWindow(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	audio := &fakeAudio{}
	d := NewDispatcher(audio, nil, WithDispatcherClock(clk))

	// Duplicate and already-sold map to the same rejection class and share
	// one window.
	d.Dispatch(Outcome{Kind: OutcomeDuplicate})
	clk.Advance(100 * time.Millisecond)
	d.Dispatch(Outcome{Kind: OutcomeAlreadySold})

	if got := len(audio.played); got != 1 {
		t.Errorf("cues = %d, want 1 for two rejections inside the window", got)
	}
	if audio.played[0] != ClassRejected {
		t.Errorf("class = %s, want rejected", audio.played[0])
	}
}

func TestDispatcher_DismissBeforeShow(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	toasts := &fakeNotifier{}
	d := NewDispatcher(nil, toasts, WithDispatcherClock(clk))

	d.Dispatch(Outcome{Kind: OutcomeSuccess, Message: "Widget"})
	clk.Advance(time.Second)
	d.Dispatch(Outcome{Kind: OutcomeNotFound, Message: "no such code"})

	want := []toastEvent{
		{dismiss: true},
		{class: ClassSuccess, message: "Widget"},
		{dismiss: true},
		{class: ClassNotFound, message: "no such code"},
	}
	if len(toasts.events) != len(want) {
		t.Fatalf("events = %+v, want %+v", toasts.events, want)
	}
	for i, ev := range toasts.events {
		if ev != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, ev, want[i])
		}
	}
}

func TestDispatcher_AudioFailureSwallowed(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	audio := &fakeAudio{err: errors.New("device busy")}
	toasts := &fakeNotifier{}
	d := NewDispatcher(audio, toasts, WithDispatcherClock(clk))

	d.Dispatch(Outcome{Kind: OutcomeSuccess, Message: "Widget"})

	if len(toasts.events) != 2 {
		t.Errorf("toast events = %d, audio failure must not block the toast", len(toasts.events))
	}
}

func TestDispatcher_SuppressedIsSilent(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	audio := &fakeAudio{}
	toasts := &fakeNotifier{}
	d := NewDispatcher(audio, toasts, WithDispatcherClock(clk))

	d.Dispatch(Outcome{Kind: OutcomeSuppressed, Code: "SN-100"})

	if len(audio.played) != 0 || len(toasts.events) != 0 {
		t.Error("suppressed outcomes must emit nothing")
	}
}
