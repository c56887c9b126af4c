package statestore

import (
	"context"
	"errors"
	"testing"
)

type cartRecord struct {
	Items []cartLine `json:"items"`
}

type cartLine struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

type failingKV struct {
	getErr error
	setErr error
	delErr error
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.getErr }
func (f *failingKV) Set(context.Context, string, string) error         { return f.setErr }
func (f *failingKV) Del(context.Context, string) error                 { return f.delErr }

func TestLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	codec := New(NewMemoryKV(), nil)

	stored := cartRecord{Items: []cartLine{{ID: "gift-box-rose", Qty: 2}}}
	Save(ctx, codec, "cart:v1:s1", stored)

	got, ok := Load[cartRecord](ctx, codec, "cart:v1:s1", nil)
	if !ok {
		t.Fatal("expected stored record to load")
	}
	if len(got.Items) != 1 || got.Items[0].ID != "gift-box-rose" || got.Items[0].Qty != 2 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestLoad_MissingKey(t *testing.T) {
	codec := New(NewMemoryKV(), nil)

	got, ok := Load[cartRecord](context.Background(), codec, "cart:v1:absent", nil)
	if ok {
		t.Fatal("expected ok=false for missing key")
	}
	if got.Items != nil {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestLoad_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := kv.Set(ctx, "cart:v1:s1", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var events []Event
	codec := New(kv, func(e Event) { events = append(events, e) })

	_, ok := Load[cartRecord](ctx, codec, "cart:v1:s1", nil)
	if ok {
		t.Fatal("corrupt payload must load as absent")
	}
	if len(events) != 1 || events[0].Op != OpLoad || events[0].Key != "cart:v1:s1" {
		t.Fatalf("expected one load event, got %+v", events)
	}
}

func TestLoad_ValidationReject(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := kv.Set(ctx, "draft:v1:s1", `{"items":[]}`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var events []Event
	codec := New(kv, func(e Event) { events = append(events, e) })

	_, ok := Load[cartRecord](ctx, codec, "draft:v1:s1", func(cartRecord) bool { return false })
	if ok {
		t.Fatal("rejected payload must load as absent")
	}
	if len(events) != 1 || !errors.Is(events[0].Err, ErrInvalidShape) {
		t.Fatalf("expected invalid-shape event, got %+v", events)
	}
}

func TestLoad_BackendError(t *testing.T) {
	backendErr := errors.New("connection refused")
	var events []Event
	codec := New(&failingKV{getErr: backendErr}, func(e Event) { events = append(events, e) })

	_, ok := Load[cartRecord](context.Background(), codec, "cart:v1:s1", nil)
	if ok {
		t.Fatal("unreadable backend must load as absent")
	}
	if len(events) != 1 || !errors.Is(events[0].Err, backendErr) {
		t.Fatalf("expected backend error event, got %+v", events)
	}
}

func TestSave_FailureIsSwallowed(t *testing.T) {
	setErr := errors.New("write refused")
	var events []Event
	codec := New(&failingKV{setErr: setErr}, func(e Event) { events = append(events, e) })

	Save(context.Background(), codec, "cart:v1:s1", cartRecord{})

	if len(events) != 1 || events[0].Op != OpSave || !errors.Is(events[0].Err, setErr) {
		t.Fatalf("expected save event, got %+v", events)
	}
}

func TestSave_NilHook(t *testing.T) {
	codec := New(&failingKV{setErr: errors.New("boom")}, nil)
	// Must not panic without a hook.
	Save(context.Background(), codec, "cart:v1:s1", cartRecord{})
	Delete(context.Background(), codec, "cart:v1:s1")
}

func TestDelete_RemovesRecord(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	codec := New(kv, nil)

	Save(ctx, codec, "draft:v1:s1", cartRecord{Items: []cartLine{{ID: "a", Qty: 1}}})
	Delete(ctx, codec, "draft:v1:s1")

	if _, ok := Load[cartRecord](ctx, codec, "draft:v1:s1", nil); ok {
		t.Fatal("expected record gone after delete")
	}
}

func TestDisabledKV(t *testing.T) {
	ctx := context.Background()
	codec := New(DisabledKV{}, nil)

	Save(ctx, codec, "cart:v1:s1", cartRecord{Items: []cartLine{{ID: "a", Qty: 1}}})
	if _, ok := Load[cartRecord](ctx, codec, "cart:v1:s1", nil); ok {
		t.Fatal("disabled backend must never report stored state")
	}
}
