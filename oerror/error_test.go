package oerror

import "testing"

func TestNewFormatsMessage(t *testing.T) {
	err := New("walkmesh: %d normals for %d vertices", 3, 4)
	if err.Error() != "walkmesh: 3 normals for 4 vertices" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
}
