package scan

import (
	"context"
	"testing"
	"time"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/clock"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/types"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/catalog/product"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/sales/draft"
)

func catalogFixture() *fakeProducts {
	widget := &product.Product{
		ID:             id.New(),
		Name:           "Widget",
		UnitPrice:      types.MustMoney("10.00"),
		RawIdentifiers: "SN-100,SN-101,SN-102",
	}
	gadget := &product.Product{
		ID:             id.New(),
		Name:           "Gadget",
		UnitPrice:      types.MustMoney("5.00"),
		RawIdentifiers: "GX-1,GX-2",
	}
	return &fakeProducts{byCode: map[string]*product.Product{
		"SN-100": widget, "SN-101": widget, "SN-102": widget,
		"GX-1": gadget, "GX-2": gadget,
	}}
}

func newTestSession(products *fakeProducts, sold *fakeSold, clk clock.Clock) *Session {
	return NewSession(id.New(), NewResolver(products, sold), WithClock(clk))
}

func TestSession_ScanBuildsDraft(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	scans := []struct {
		code string
		want Placement
	}{
		{"SN-100", PlacementBound},
		{"SN-101", PlacementExtended},
		{"GX-1", PlacementSpawned},
	}
	for _, sc := range scans {
		clk.Advance(time.Second)
		out := s.Scan(context.Background(), sc.code)
		if out.Kind != OutcomeSuccess || out.Placement != sc.want {
			t.Fatalf("Scan(%s) = %s/%s, want success/%s", sc.code, out.Kind, out.Placement, sc.want)
		}
	}

	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Quantity != 2 || lines[0].ProductName != "Widget" {
		t.Errorf("line 0 = %s x%d, want Widget x2", lines[0].ProductName, lines[0].Quantity)
	}
	if lines[1].Quantity != 1 || lines[1].ProductName != "Gadget" {
		t.Errorf("line 1 = %s x%d, want Gadget x1", lines[1].ProductName, lines[1].Quantity)
	}
}

func TestSession_RescanSuppression(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	if out := s.Scan(context.Background(), "SN-100"); out.Kind != OutcomeSuccess {
		t.Fatalf("first scan = %s, want success", out.Kind)
	}

	clk.Advance(100 * time.Millisecond)
	if out := s.Scan(context.Background(), "sn-100"); out.Kind != OutcomeSuppressed {
		t.Fatalf("re-scan inside window = %s, want suppressed", out.Kind)
	}

	// Past the window the same code is a real duplicate, not a bounce.
	clk.Advance(RescanWindow)
	out := s.Scan(context.Background(), "SN-100")
	if out.Kind != OutcomeDuplicate {
		t.Fatalf("re-scan outside window = %s, want duplicate", out.Kind)
	}
	if got := len(s.Lines()); got != 1 {
		t.Errorf("lines = %d, duplicate must not mutate the draft", got)
	}
}

func TestSession_DuplicateAcrossLines(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	s.Scan(context.Background(), "SN-100")
	clk.Advance(time.Second)
	s.Scan(context.Background(), "GX-1")
	clk.Advance(time.Second)

	out := s.Scan(context.Background(), "SN-100")
	if out.Kind != OutcomeDuplicate {
		t.Fatalf("outcome = %s, want duplicate against any line", out.Kind)
	}
}

func TestSession_EditChecksOnlyTargetLine(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	s.Scan(context.Background(), "SN-100")
	clk.Advance(time.Second)
	s.Scan(context.Background(), "GX-1")
	clk.Advance(time.Second)

	// Editing the gadget line with a code held by the widget line is allowed;
	// repeating a code already on the edited line is not.
	s.OpenTarget(ContextEdit, 1, 1)
	if out := s.Scan(context.Background(), "SN-100"); out.Kind != OutcomeSuccess {
		t.Fatalf("edit with other line's code = %s, want success", out.Kind)
	}
	clk.Advance(time.Second)
	if out := s.Scan(context.Background(), "SN-100"); out.Kind != OutcomeDuplicate {
		t.Fatalf("edit repeat on same line = %s, want duplicate", out.Kind)
	}
}

func TestSession_AlreadySoldRejected(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{sold: map[string]bool{"SN-100": true}}, clk)

	out := s.Scan(context.Background(), "SN-100")
	if out.Kind != OutcomeAlreadySold {
		t.Fatalf("outcome = %s, want already-sold", out.Kind)
	}
	if s.Lines()[0].Bound() {
		t.Error("rejected scan must leave the line unbound")
	}
}

func TestSession_StaleResolutionDiscarded(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := (*Session)(nil)
	sold := &fakeSold{}
	// The surface closes while the lookup is in flight. The resolution that
	// comes back afterwards must not touch the draft.
	sold.onIsSold = func() { s.DiscardInFlight() }
	s = newTestSession(catalogFixture(), sold, clk)

	out := s.Scan(context.Background(), "SN-100")

	if out.Kind != OutcomeSuppressed {
		t.Fatalf("outcome = %s, want suppressed", out.Kind)
	}
	lines := s.Lines()
	if len(lines) != 1 || lines[0].CodeCount() != 0 {
		t.Errorf("lines = %+v, stale resolution leaked into the draft", lines)
	}
}

func TestSession_DiscardInFlightKeepsDraft(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	s.Scan(context.Background(), "SN-100")
	s.DiscardInFlight()
	s.DiscardInFlight()

	if got := s.Lines()[0].CodeCount(); got != 1 {
		t.Errorf("codes = %d, closing the surface must not drop captured lines", got)
	}
}

func TestSession_TargetGoneDiscards(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	s.OpenTarget(ContextAdd, 5, 0)
	out := s.Scan(context.Background(), "SN-100")

	if out.Kind != OutcomeSuppressed {
		t.Fatalf("outcome = %s, want suppressed when the target line is gone", out.Kind)
	}
}

func TestSession_ManualQuantityAndPricePin(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	s.Scan(context.Background(), "SN-100")
	if _, err := s.SetQuantity(0, 5); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if _, err := s.SetUnitPrice(0, types.MustMoney("8.00")); err != nil {
		t.Fatalf("SetUnitPrice: %v", err)
	}

	clk.Advance(time.Second)
	s.Scan(context.Background(), "SN-101")

	line := s.Lines()[0]
	if line.Quantity != 5 {
		t.Errorf("quantity = %d, manual value must survive the next scan", line.Quantity)
	}
	if !line.UnitPrice.Equal(types.MustMoney("8.00")) {
		t.Errorf("price = %s, manual value must survive the next scan", line.UnitPrice)
	}

	if _, err := s.SetQuantity(9, 1); apperror.CodeOf(err) != apperror.CodeValidation {
		t.Errorf("SetQuantity out of range = %v, want validation error", err)
	}
}

func TestSession_AddLineThenMerge(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	s.Scan(context.Background(), "SN-100")
	clk.Advance(time.Second)

	// Opening a fresh row does not fork the product: the next widget code
	// still lands on line 0 and the empty row stays empty.
	if _, idx := s.AddLine(); idx != 1 {
		t.Fatalf("AddLine idx = %d, want 1", idx)
	}
	out := s.Scan(context.Background(), "SN-101")

	if out.Placement != PlacementMerged {
		t.Fatalf("placement = %s, want merged", out.Placement)
	}
	lines := s.Lines()
	if lines[0].CodeCount() != 2 || lines[1].CodeCount() != 0 {
		t.Errorf("codes = %d/%d, want 2/0", lines[0].CodeCount(), lines[1].CodeCount())
	}
	if s.Target().Line != 0 {
		t.Errorf("target line = %d, want 0 after merge", s.Target().Line)
	}
}

func TestSession_SubmitTotals(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	for _, code := range []string{"SN-100", "SN-101", "GX-1"} {
		s.Scan(context.Background(), code)
		clk.Advance(time.Second)
	}

	snap := s.Submit()
	if want := types.MustMoney("25.00"); !snap.TotalAmount.Equal(want) {
		t.Errorf("total = %s, want %s", snap.TotalAmount, want)
	}
}

func TestSession_ResetStartsOver(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	s.Scan(context.Background(), "SN-100")
	s.Reset()

	lines := s.Lines()
	if len(lines) != 1 || lines[0].Bound() {
		t.Fatalf("lines = %+v, want single empty line", lines)
	}
	// A cancelled code is scannable again immediately.
	if out := s.Scan(context.Background(), "SN-100"); out.Kind != OutcomeSuccess {
		t.Errorf("re-scan after reset = %s, want success", out.Kind)
	}
}

func TestSession_NoCodeAppearsTwice(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	codes := []string{"SN-100", "SN-101", "SN-100", "GX-1", "SN-101", "GX-1", "GX-2"}
	for _, code := range codes {
		s.Scan(context.Background(), code)
		clk.Advance(time.Second)
	}

	seen := make(map[string]int)
	for _, line := range s.Lines() {
		for _, slot := range line.Slots {
			if slot != "" {
				seen[slot]++
			}
		}
	}
	for code, n := range seen {
		if n > 1 {
			t.Errorf("code %s appears %d times in the draft", code, n)
		}
	}
	if len(seen) != 4 {
		t.Errorf("distinct codes = %d, want 4", len(seen))
	}
}

func TestSession_OutcomeCallback(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	s := newTestSession(catalogFixture(), &fakeSold{}, clk)

	var outcomes []Outcome
	s.OnOutcome(func(out Outcome) { outcomes = append(outcomes, out) })
	var lineEvents int
	s.OnLinesChanged(func([]draft.Line) { lineEvents++ })

	s.Scan(context.Background(), "SN-100")
	clk.Advance(time.Second)
	s.Scan(context.Background(), "SN-100")

	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	if outcomes[0].Kind != OutcomeSuccess || outcomes[1].Kind != OutcomeDuplicate {
		t.Errorf("outcomes = %s, %s", outcomes[0].Kind, outcomes[1].Kind)
	}
	if lineEvents != 1 {
		t.Errorf("line events = %d, only the successful scan mutates", lineEvents)
	}
}
