package envutil

import (
	"testing"
	"time"
)

func TestBool(t *testing.T) {
	t.Setenv("TW_FLAG", "off")
	if Bool("TW_FLAG", true) {
		t.Fatalf("off: want=false got=true")
	}
	t.Setenv("TW_FLAG", "maybe")
	if !Bool("TW_FLAG", true) {
		t.Fatalf("unparseable: want default true")
	}
}

func TestNumbersFallBack(t *testing.T) {
	t.Setenv("TW_INT", "12x")
	if got := Int("TW_INT", 7); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	t.Setenv("TW_FLOAT", "0.25")
	if got := Float("TW_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: want=0.25 got=%v", got)
	}
	t.Setenv("TW_SECS", "0")
	if got := Seconds("TW_SECS", time.Minute); got != time.Minute {
		t.Fatalf("Seconds: want=1m got=%v", got)
	}
	t.Setenv("TW_SECS", "15")
	if got := Seconds("TW_SECS", time.Minute); got != 15*time.Second {
		t.Fatalf("Seconds: want=15s got=%v", got)
	}
}
