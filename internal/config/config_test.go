package config

import "testing"

func TestLoadClampsTickRate(t *testing.T) {
	for _, raw := range []string{"0", "-5"} {
		t.Setenv("TICK_RATE_HZ", raw)
		if got := Load().TickRateHz; got != 60 {
			t.Errorf("TICK_RATE_HZ=%s: tick rate = %d, want 60", raw, got)
		}
	}
}

func TestLoadClampsHistoryWindow(t *testing.T) {
	t.Setenv("HISTORY_WINDOW_SECONDS", "0")
	if got := Load().HistoryWindowSeconds; got != 3 {
		t.Errorf("history window = %d, want 3", got)
	}
}
