package scan

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/clock"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/types"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/sales/draft"
	"github.com/prinzana/sellyticsOffline-sub002/pkg/logger"
)

// RescanWindow is the hardware-debounce window: an identical code arriving
// within it of its own prior arrival is dropped before resolution. Independent
// of the wedge channel's inter-key gap, which operates per character.
const RescanWindow = 500 * time.Millisecond

// Session owns one draft sale and its scan target. All draft mutations go
// through Scan and the explicit operator edits; nothing holds a divergent
// copy of the line set.
//
// Resolution is asynchronous: Push accepts the next code without waiting for
// the previous lookup. Mutations are applied against the draft state at
// mutation time, under the session lock, never against a snapshot captured
// before the lookup.
type Session struct {
	mu         sync.Mutex
	log        *logger.Logger
	clk        clock.Clock
	resolver   *Resolver
	storeID    id.ID
	draft      *draft.Draft
	target     Target
	generation uint64
	lastCode   string
	lastSeen   time.Time

	onLines   func([]draft.Line)
	onOutcome func(Outcome)
}

// Option configures a Session.
type Option func(*Session)

// WithClock injects the time source used for re-scan suppression.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clk = c }
}

// WithLogger injects the session logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession creates a session with a fresh single-empty-line draft, armed
// for the add context.
func NewSession(storeID id.ID, resolver *Resolver, opts ...Option) *Session {
	s := &Session{
		clk:      clock.System(),
		log:      logger.Default().WithComponent("scan_session"),
		resolver: resolver,
		storeID:  storeID,
		draft:    draft.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnLinesChanged registers the callback fired after every draft mutation.
func (s *Session) OnLinesChanged(fn func([]draft.Line)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLines = fn
}

// OnOutcome registers the callback fired for every processed code.
func (s *Session) OnOutcome(fn func(Outcome)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onOutcome = fn
}

// OpenTarget arms the session: the next resolved code lands at the given
// line/slot in the given context.
func (s *Session) OpenTarget(c Context, line, slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = Target{Context: c, Line: line, Slot: slot}
}

// Target returns the current scan target.
func (s *Session) Target() Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Lines returns a deep copy of the current line set.
func (s *Session) Lines() []draft.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

func (s *Session) copyLines() []draft.Line {
	lines := make([]draft.Line, len(s.draft.Lines))
	for i := range s.draft.Lines {
		lines[i] = s.draft.Lines[i].Clone()
	}
	return lines
}

// Push feeds a code from a channel without blocking it. This is the entry
// point wired to the decoder adapter and the wedge channel.
func (s *Session) Push(code string) {
	go s.Scan(context.Background(), code)
}

// Scan processes one code synchronously: debounce, resolve, guard, reconcile,
// notify. Manual entry uses this directly.
func (s *Session) Scan(ctx context.Context, code string) Outcome {
	code = strings.TrimSpace(code)

	s.mu.Lock()
	now := s.clk.Now()
	if code != "" && strings.EqualFold(code, s.lastCode) && now.Sub(s.lastSeen) < RescanWindow {
		s.mu.Unlock()
		logger.Debug(ctx, "re-scan suppressed", "code", code)
		return Outcome{Kind: OutcomeSuppressed, Code: code}
	}
	s.lastCode = code
	s.lastSeen = now
	gen := s.generation
	s.mu.Unlock()

	res, err := s.resolver.Resolve(ctx, s.storeID, code)
	if err != nil {
		out := failureOutcome(code, err)
		s.notifyOutcome(out)
		return out
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		logger.Debug(ctx, "stale resolution discarded", "code", code)
		return Outcome{Kind: OutcomeSuppressed, Code: code}
	}
	target := s.target
	if target.Line >= len(s.draft.Lines) {
		// The line this scan was aimed at no longer exists.
		s.mu.Unlock()
		logger.Debug(ctx, "resolution discarded, target gone", "code", code, "line", target.Line)
		return Outcome{Kind: OutcomeSuppressed, Code: code}
	}
	if err := CheckDuplicate(target, code, s.draft); err != nil {
		s.mu.Unlock()
		out := failureOutcome(code, err)
		s.notifyOutcome(out)
		return out
	}

	newTarget, placement := Reconcile(code, target, res.Product, s.draft)
	s.target = newTarget
	lines := s.copyLines()
	s.mu.Unlock()

	s.notifyLines(lines)
	out := Outcome{
		Kind:      OutcomeSuccess,
		Code:      code,
		Message:   res.Product.Name,
		Placement: placement,
		Available: res.Available,
	}
	s.notifyOutcome(out)
	return out
}

// SetQuantity records an operator-typed quantity, pinning the field for the
// life of the line.
func (s *Session) SetQuantity(lineIdx, quantity int) ([]draft.Line, error) {
	s.mu.Lock()
	if lineIdx < 0 || lineIdx >= len(s.draft.Lines) {
		s.mu.Unlock()
		return nil, lineOutOfRange(lineIdx)
	}
	s.draft.Lines[lineIdx].SetQuantity(quantity)
	lines := s.copyLines()
	s.mu.Unlock()

	s.notifyLines(lines)
	return lines, nil
}

// SetUnitPrice records an operator-typed price, pinning the field for the
// life of the line.
func (s *Session) SetUnitPrice(lineIdx int, price types.Money) ([]draft.Line, error) {
	s.mu.Lock()
	if lineIdx < 0 || lineIdx >= len(s.draft.Lines) {
		s.mu.Unlock()
		return nil, lineOutOfRange(lineIdx)
	}
	s.draft.Lines[lineIdx].SetUnitPrice(price)
	lines := s.copyLines()
	s.mu.Unlock()

	s.notifyLines(lines)
	return lines, nil
}

// AddLine appends a fresh empty line, as when the operator opens a new row,
// and arms the target on it.
func (s *Session) AddLine() ([]draft.Line, int) {
	s.mu.Lock()
	idx := s.draft.Append(draft.NewLine())
	s.target = Target{Context: ContextAdd, Line: idx, Slot: 0}
	lines := s.copyLines()
	s.mu.Unlock()

	s.notifyLines(lines)
	return lines, idx
}

// Submit returns the read-only snapshot handed to the commit step.
func (s *Session) Submit() draft.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Snapshot()
}

// DiscardInFlight invalidates resolutions started before this call. The scan
// surface calls it on close; the draft itself is left untouched so closing
// and reopening without scanning changes nothing.
func (s *Session) DiscardInFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// Reset discards the draft and starts over with a single empty line. Used
// when the operator cancels the sale.
func (s *Session) Reset() {
	s.mu.Lock()
	s.generation++
	s.draft = draft.New()
	s.target = Target{}
	s.lastCode = ""
	s.lastSeen = time.Time{}
	lines := s.copyLines()
	s.mu.Unlock()

	s.notifyLines(lines)
}

func lineOutOfRange(idx int) error {
	return apperror.NewValidation("line index out of range").WithDetail("line", idx)
}

func (s *Session) notifyLines(lines []draft.Line) {
	s.mu.Lock()
	fn := s.onLines
	s.mu.Unlock()
	if fn != nil {
		fn(lines)
	}
}

func (s *Session) notifyOutcome(out Outcome) {
	s.mu.Lock()
	fn := s.onOutcome
	s.mu.Unlock()
	if fn != nil {
		fn(out)
	}
}
