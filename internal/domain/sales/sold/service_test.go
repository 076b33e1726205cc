package sold

import (
	"context"
	"reflect"
	"testing"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
)

type fakeRepo struct {
	sold map[string]bool
}

func (f *fakeRepo) Exists(ctx context.Context, storeID id.ID, code string) (bool, error) {
	return f.sold[code], nil
}

func (f *fakeRepo) FindSoldOf(ctx context.Context, storeID id.ID, identifiers []string) ([]string, error) {
	var out []string
	for code := range f.sold {
		out = append(out, code)
	}
	return out, nil
}

func TestService_Available(t *testing.T) {
	// Repo reports sold codes lowercased; the set difference must still be
	// case-insensitive and keep the caller's order and spelling.
	s := NewService(&fakeRepo{sold: map[string]bool{"sn-101": true}})

	got, err := s.Available(context.Background(), id.New(), []string{"SN-100", "SN-101", "SN-102"})
	if err != nil {
		t.Fatalf("Available: %v", err)
	}

	if want := []string{"SN-100", "SN-102"}; !reflect.DeepEqual(got, want) {
		t.Errorf("available = %v, want %v", got, want)
	}
}

func TestService_AvailableEmptyInput(t *testing.T) {
	s := NewService(&fakeRepo{})

	got, err := s.Available(context.Background(), id.New(), nil)
	if err != nil || got != nil {
		t.Errorf("Available(nil) = %v, %v, want nil, nil", got, err)
	}
}

func TestService_IsSoldTrimsCode(t *testing.T) {
	s := NewService(&fakeRepo{sold: map[string]bool{"SN-100": true}})

	ok, err := s.IsSold(context.Background(), id.New(), "  SN-100  ")
	if err != nil {
		t.Fatalf("IsSold: %v", err)
	}
	if !ok {
		t.Error("expected trimmed code to match")
	}
}
