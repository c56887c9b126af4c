package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeDependency, cause, "persist cart")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable via errors.Is")
	}
	if got := err.Error(); got != "persist cart: disk full" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestAsThroughFmtWrapping(t *testing.T) {
	inner := New(CodeNotFound, "category not found")
	outer := fmt.Errorf("listing products: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error through fmt wrapping")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND code, got %s", typed.Code())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if typed := As(errors.New("plain")); typed != nil {
		t.Fatalf("expected nil for untyped error, got %+v", typed)
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("MADE_UP"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(CodeValidation, "qty must be positive")
	if !Is(err, CodeValidation) {
		t.Fatal("expected Is to match the validation code")
	}
	if Is(err, CodeConflict) {
		t.Fatal("expected Is to reject a different code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDependency, cause, "fetch products")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected at least two chain entries, got %v", dump.Chain)
	}
}
