package decoder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
)

type fakeDevice struct {
	attempts int
	failures int   // acquisition failures before success
	failWith error // error returned while failing
	stream   *fakeStream
}

func (d *fakeDevice) Acquire(ctx context.Context) (Stream, error) {
	d.attempts++
	if d.attempts <= d.failures {
		return nil, d.failWith
	}
	if d.stream == nil {
		d.stream = newFakeStream(nil)
	}
	return d.stream, nil
}

// fakeStream serves a fixed script of decode results, then blocks until the
// context is cancelled.
type fakeStream struct {
	script   []decodeResult
	pos      int
	released int
}

type decodeResult struct {
	code string
	err  error
}

func newFakeStream(script []decodeResult) *fakeStream {
	return &fakeStream{script: script}
}

func (s *fakeStream) Decode(ctx context.Context) (string, error) {
	if s.pos < len(s.script) {
		r := s.script[s.pos]
		s.pos++
		return r.code, r.err
	}
	<-ctx.Done()
	return "", ctx.Err()
}

func (s *fakeStream) Release() error {
	s.released++
	return nil
}

func TestAdapter_RetriesTransientAcquisition(t *testing.T) {
	device := &fakeDevice{failures: 3, failWith: errors.New("device busy")}
	a := NewAdapter(device, WithBackoff(0))

	h, err := a.Start(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer h.Stop()

	if device.attempts != 4 {
		t.Errorf("attempts = %d, want 4 (3 failures then success)", device.attempts)
	}
}

func TestAdapter_GivesUpAfterFiveAttempts(t *testing.T) {
	device := &fakeDevice{failures: 99, failWith: errors.New("device busy")}
	a := NewAdapter(device, WithBackoff(0))

	_, err := a.Start(context.Background(), nil, nil)

	if apperror.CodeOf(err) != apperror.CodeDeviceUnavailable {
		t.Fatalf("error = %v, want DEVICE_UNAVAILABLE", err)
	}
	if device.attempts != 5 {
		t.Errorf("attempts = %d, want 5", device.attempts)
	}
}

func TestAdapter_FatalErrorsSkipRetry(t *testing.T) {
	for _, fatal := range []error{ErrPermissionDenied, ErrDeviceNotFound} {
		device := &fakeDevice{failures: 99, failWith: fatal}
		a := NewAdapter(device, WithBackoff(0))

		_, err := a.Start(context.Background(), nil, nil)

		if apperror.CodeOf(err) != apperror.CodeDeviceUnavailable {
			t.Errorf("%v: error = %v, want DEVICE_UNAVAILABLE", fatal, err)
		}
		if device.attempts != 1 {
			t.Errorf("%v: attempts = %d, fatal errors must not be retried", fatal, device.attempts)
		}
	}
}

func TestAdapter_DecodeLoop(t *testing.T) {
	stream := newFakeStream([]decodeResult{
		{code: "SN-100"},
		{err: ErrNoCode},
		{err: ErrNoCode},
		{code: "SN-101"},
		{err: errors.New("frame corrupt")},
		{code: "SN-102"},
	})
	device := &fakeDevice{stream: stream}
	a := NewAdapter(device, WithBackoff(0))

	codes := make(chan string, 8)
	errs := make(chan error, 8)
	h, err := a.Start(context.Background(),
		func(code string) { codes <- code },
		func(err error) { errs <- err },
	)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	want := []string{"SN-100", "SN-101", "SN-102"}
	for _, w := range want {
		select {
		case got := <-codes:
			if got != w {
				t.Errorf("code = %q, want %q", got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", w)
		}
	}

	select {
	case e := <-errs:
		if e.Error() != "frame corrupt" {
			t.Errorf("onError got %v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("decode error never reached onError")
	}

	h.Stop()
	if stream.released != 1 {
		t.Errorf("released = %d, Stop must release the stream exactly once", stream.released)
	}
}

func TestAdapter_StopReleasesIdleStream(t *testing.T) {
	device := &fakeDevice{}
	a := NewAdapter(device, WithBackoff(0))

	h, err := a.Start(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		h.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return while Decode was blocked")
	}
	if device.stream.released != 1 {
		t.Errorf("released = %d, want 1", device.stream.released)
	}
}
