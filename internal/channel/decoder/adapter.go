// Package decoder wraps an optical decoding device (camera frame stream) and
// normalizes its output to per-code callbacks plus lifecycle/error signals.
// The decoding itself is a black box behind the Device interface.
package decoder

import (
	"context"
	"errors"
	"time"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/pkg/logger"
)

// Acquisition error classes a Device reports.
var (
	// ErrPermissionDenied: the operator refused camera access. Fatal, no retry.
	ErrPermissionDenied = errors.New("decoder: permission denied")

	// ErrDeviceNotFound: no capture device present. Fatal, no retry.
	ErrDeviceNotFound = errors.New("decoder: device not found")

	// ErrNoCode: the current frame carried no decodable code. Normal and
	// silent, never surfaced.
	ErrNoCode = errors.New("decoder: no code in frame")
)

const (
	acquireAttempts = 5
	acquireBackoff  = 200 * time.Millisecond
)

// Device acquires the underlying capture hardware.
type Device interface {
	// Acquire opens the capture device. Transient failures (device not yet
	// ready) are retried by the adapter; ErrPermissionDenied and
	// ErrDeviceNotFound are fatal.
	Acquire(ctx context.Context) (Stream, error)
}

// Stream is an acquired capture stream emitting decoded codes.
type Stream interface {
	// Decode blocks until the next frame yields a code, returns ErrNoCode for
	// a frame without one, or the context error on cancellation.
	Decode(ctx context.Context) (string, error)

	// Release frees the device and any media stream behind it.
	Release() error
}

// Adapter runs the decode loop over an acquired stream.
type Adapter struct {
	device  Device
	log     *logger.Logger
	backoff time.Duration
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithBackoff overrides the delay between acquisition attempts.
func WithBackoff(d time.Duration) AdapterOption {
	return func(a *Adapter) { a.backoff = d }
}

// WithAdapterLogger injects the adapter logger.
func WithAdapterLogger(l *logger.Logger) AdapterOption {
	return func(a *Adapter) { a.log = l }
}

// NewAdapter creates an adapter over the given device.
func NewAdapter(device Device, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		device:  device,
		log:     logger.Default().WithComponent("decoder"),
		backoff: acquireBackoff,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle controls a running decode loop.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the loop and waits for the stream to be released.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Start acquires the device and runs the decode loop until Stop. onDecode
// receives every decoded code; onError receives genuine decode errors only.
//
// Acquisition is retried up to 5 times with backoff for transient failures.
// Permission-denied and device-not-found fail immediately with
// DEVICE_UNAVAILABLE directing the operator to manual entry.
func (a *Adapter) Start(ctx context.Context, onDecode func(code string), onError func(err error)) (*Handle, error) {
	stream, err := a.acquire(ctx)
	if err != nil {
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		// Release unconditionally, abnormal teardown included.
		defer close(done)
		defer func() {
			if err := stream.Release(); err != nil {
				a.log.Warnw("capture release failed", "error", err)
			}
		}()

		for {
			code, err := stream.Decode(loopCtx)
			if loopCtx.Err() != nil {
				return
			}
			if err != nil {
				if errors.Is(err, ErrNoCode) {
					continue
				}
				a.log.Warnw("decode error", "error", err)
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onDecode != nil {
				onDecode(code)
			}
		}
	}()

	return &Handle{cancel: cancel, done: done}, nil
}

func (a *Adapter) acquire(ctx context.Context) (Stream, error) {
	var lastErr error
	for attempt := 1; attempt <= acquireAttempts; attempt++ {
		stream, err := a.device.Acquire(ctx)
		if err == nil {
			return stream, nil
		}
		if errors.Is(err, ErrPermissionDenied) {
			return nil, apperror.NewDeviceUnavailable("permission denied").WithCause(err)
		}
		if errors.Is(err, ErrDeviceNotFound) {
			return nil, apperror.NewDeviceUnavailable("device not found").WithCause(err)
		}

		lastErr = err
		a.log.Infow("device acquisition retry", "attempt", attempt, "error", err)
		if attempt < acquireAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.backoff):
			}
		}
	}
	return nil, apperror.NewDeviceUnavailable("acquisition failed").WithCause(lastErr)
}
