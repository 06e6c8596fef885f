package strx

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "dev"); got != "dev" {
		t.Fatalf("got %q", got)
	}
	if got := Coalesce("lamp", "dev"); got != "lamp" {
		t.Fatalf("got %q", got)
	}
	if got := Coalesce(uint16(0), 0x48); got != 0x48 {
		t.Fatalf("got %#x", got)
	}
}
