package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromUnwrapsChain(t *testing.T) {
	cause := errors.New("qdrant down")
	err := fmt.Errorf("workout 2: %w", New(http.StatusBadGateway, "retrieval_failed", cause))
	ae, ok := From(err)
	if !ok || ae.Code != "retrieval_failed" || ae.StatusCode() != http.StatusBadGateway {
		t.Fatalf("From: got=%+v ok=%v", ae, ok)
	}
	if !errors.Is(err, cause) || err.Error() != "workout 2: qdrant down" {
		t.Fatalf("chain: got=%q", err.Error())
	}
}

func TestStatusDefaults(t *testing.T) {
	var nilErr *Error
	if nilErr.StatusCode() != http.StatusInternalServerError || (&Error{}).Error() != "api error (500)" {
		t.Fatalf("defaults: status=%d msg=%q", nilErr.StatusCode(), (&Error{}).Error())
	}
	if _, ok := From(errors.New("plain")); ok {
		t.Fatalf("From: plain error matched")
	}
}
