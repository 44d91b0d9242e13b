package belief

import (
	"fmt"
	"testing"

	"github.com/moatlabs/sage/internal/domain"
)

func TestChangeLog_RecentWindows(t *testing.T) {
	log := NewChangeLog()
	for i := 0; i < 7; i++ {
		log.Append(domain.ChangeEvent{Key: fmt.Sprintf("k%d", i)})
	}

	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{}},
		{3, []string{"k4", "k5", "k6"}},
		{7, []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6"}},
		{50, []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6"}},
	}

	for _, tt := range tests {
		got := log.Recent(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("Recent(%d) returned %d events, want %d", tt.n, len(got), len(tt.want))
		}
		for i := range tt.want {
			if got[i].Key != tt.want[i] {
				t.Fatalf("Recent(%d)[%d] = %s, want %s", tt.n, i, got[i].Key, tt.want[i])
			}
		}
	}
}

func TestChangeLog_RecentOnEmptyLog(t *testing.T) {
	log := NewChangeLog()
	if got := log.Recent(5); len(got) != 0 {
		t.Fatalf("Recent on empty log = %+v, want empty", got)
	}
}
