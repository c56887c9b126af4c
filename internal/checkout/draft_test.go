package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/delegance/storefront-backend/internal/statestore"
	"github.com/delegance/storefront-backend/pkg/enums"
)

func newTestDraftManager(t *testing.T) (*DraftManager, *statestore.MemoryKV) {
	t.Helper()
	kv := statestore.NewMemoryKV()
	mgr, err := NewDraftManager(statestore.New(kv, nil))
	if err != nil {
		t.Fatalf("NewDraftManager: %v", err)
	}
	return mgr, kv
}

func TestDraft_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestDraftManager(t)
	store := mgr.ForSession("s1")

	saved := store.Save(ctx, Draft{Name: "Maria", Notes: "pink ribbon", Method: enums.DeliveryMethodDelivery})
	if saved.UpdatedAt <= 0 {
		t.Fatalf("expected positive stamp, got %d", saved.UpdatedAt)
	}

	got := store.Load(ctx)
	if got == nil {
		t.Fatal("expected stored draft")
	}
	if got.Name != "Maria" || got.Notes != "pink ribbon" || got.Method != enums.DeliveryMethodDelivery {
		t.Fatalf("unexpected draft: %+v", got)
	}
	if got.UpdatedAt != saved.UpdatedAt {
		t.Fatalf("stamp mismatch: %d vs %d", got.UpdatedAt, saved.UpdatedAt)
	}
}

func TestDraft_LoadNeverSaved(t *testing.T) {
	mgr, _ := newTestDraftManager(t)
	if got := mgr.ForSession("s1").Load(context.Background()); got != nil {
		t.Fatalf("expected nil draft, got %+v", got)
	}
}

func TestDraft_InvalidStoredShape(t *testing.T) {
	ctx := context.Background()
	mgr, kv := newTestDraftManager(t)

	cases := map[string]string{
		"missingStamp":  `{"name":"Maria","notes":"","method":"pickup"}`,
		"zeroStamp":     `{"name":"Maria","notes":"","method":"pickup","updatedAt":0}`,
		"unknownMethod": `{"name":"Maria","notes":"","method":"drone","updatedAt":1700000000000}`,
		"notJSON":       `{broken`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set(ctx, Key("s1"), raw); err != nil {
				t.Fatalf("seed: %v", err)
			}
			if got := mgr.ForSession("s1").Load(ctx); got != nil {
				t.Fatalf("expected nil draft, got %+v", got)
			}
		})
	}
}

func TestDraft_AutosaveLatestWins(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestDraftManager(t)
	store := mgr.ForSession("s1")

	first := store.Save(ctx, Draft{Name: "M"})
	second := store.Save(ctx, Draft{Name: "Ma"})
	third := store.Save(ctx, Draft{Name: "Maria", Method: enums.DeliveryMethodPickup})

	if !(first.UpdatedAt < second.UpdatedAt && second.UpdatedAt < third.UpdatedAt) {
		t.Fatalf("stamps must strictly increase: %d %d %d", first.UpdatedAt, second.UpdatedAt, third.UpdatedAt)
	}

	got := store.Load(ctx)
	if got == nil || got.Name != "Maria" {
		t.Fatalf("expected latest draft, got %+v", got)
	}
}

func TestDraft_StampsIncreaseWithinSameMilli(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestDraftManager(t)
	frozen := time.UnixMilli(1700000000000)
	mgr.now = func() time.Time { return frozen }
	store := mgr.ForSession("s1")

	a := store.Save(ctx, Draft{Name: "a"})
	b := store.Save(ctx, Draft{Name: "b"})
	if b.UpdatedAt <= a.UpdatedAt {
		t.Fatalf("expected strictly increasing stamps, got %d then %d", a.UpdatedAt, b.UpdatedAt)
	}
}

func TestDraft_ClearIsIndependentOfCart(t *testing.T) {
	ctx := context.Background()
	mgr, kv := newTestDraftManager(t)
	store := mgr.ForSession("s1")

	store.Save(ctx, Draft{Name: "Maria"})
	store.Clear(ctx)

	if got := store.Load(ctx); got != nil {
		t.Fatalf("expected cleared draft, got %+v", got)
	}
	if _, found, _ := kv.Get(ctx, Key("s1")); found {
		t.Fatal("expected persisted record deleted")
	}
}
