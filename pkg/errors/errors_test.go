package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	if meta := MetadataFor(CodeValidation); meta.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("validation should map to 400, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(CodeCartNotSynced); meta.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("cart-not-synced should map to 422, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(Code("SOMETHING_ELSE")); meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should fall back to 500, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("socket closed")
	err := Wrap(CodeDependency, cause, "inventory lookup")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped cause should be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsUnwrapsThroughFmt(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "cart missing")
	outer := fmt.Errorf("loading cart: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed not-found error, got %v", typed)
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not convert")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeUpstreamData, stdErrors.New("unexpected token"), "decode vendor payload")
	dump := Dump(err)

	if dump.Code != CodeUpstreamData {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
