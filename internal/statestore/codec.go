// Package statestore persists small JSON records under namespaced keys with
// deliberately forgiving semantics: a missing or corrupt record loads as
// empty state, and write failures never propagate to the mutation that
// triggered them. Failures are still observable through an injectable hook.
package statestore

import (
	"context"
	"encoding/json"
	"errors"
)

// Op identifies which codec operation a diagnostic event came from.
type Op string

const (
	OpLoad   Op = "load"
	OpSave   Op = "save"
	OpDelete Op = "delete"
)

// ErrInvalidShape marks a record that parsed but failed shape validation.
var ErrInvalidShape = errors.New("stored value failed validation")

// Event describes a swallowed persistence failure or a rejected payload.
type Event struct {
	Op  Op
	Key string
	Err error
}

// Hook receives diagnostic events. It must not block; it runs inline on the
// mutation path.
type Hook func(Event)

// Codec binds a KV backend to the load/save policy.
type Codec struct {
	kv   KV
	hook Hook
}

// New builds a codec. A nil hook disables diagnostics.
func New(kv KV, hook Hook) *Codec {
	return &Codec{kv: kv, hook: hook}
}

func (c *Codec) emit(op Op, key string, err error) {
	if c.hook != nil {
		c.hook(Event{Op: op, Key: key, Err: err})
	}
}

// Load reads and decodes the record at key. It reports ok=false for a
// missing key, an unreadable backend, an undecodable payload, or a payload
// rejected by validate; callers treat all of those as "no stored state".
func Load[T any](ctx context.Context, c *Codec, key string, validate func(T) bool) (T, bool) {
	var zero T

	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		c.emit(OpLoad, key, err)
		return zero, false
	}
	if !found {
		return zero, false
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		c.emit(OpLoad, key, err)
		return zero, false
	}
	if validate != nil && !validate(value) {
		c.emit(OpLoad, key, ErrInvalidShape)
		return zero, false
	}
	return value, true
}

// Save serializes and writes the record. Persistence is best-effort: any
// failure is reported through the hook and otherwise swallowed, so the
// caller's in-memory state stays authoritative.
func Save[T any](ctx context.Context, c *Codec, key string, value T) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.emit(OpSave, key, err)
		return
	}
	if err := c.kv.Set(ctx, key, string(payload)); err != nil {
		c.emit(OpSave, key, err)
	}
}

// Delete removes the record at key, best-effort.
func Delete(ctx context.Context, c *Codec, key string) {
	if err := c.kv.Del(ctx, key); err != nil {
		c.emit(OpDelete, key, err)
	}
}
