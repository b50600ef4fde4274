package kitchen

import (
	"testing"
	"time"

	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/model"
)

func unitAt(created time.Time, priority, batchTotal int) model.QueueUnit {
	return model.QueueUnit{
		OrderCreatedAt: created,
		BatchTotal:     batchTotal,
		Timing:         model.Timing{Speed: enum.SpeedMedium, Station: enum.StationCook, Priority: priority},
	}
}

func TestScoreFormula(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		unit     model.QueueUnit
		expected int
	}{
		{
			// 1000 - 0*50 - 0*10 + 1*2 + (4-1)*50
			name:     "fresh order, priority 1, single unit",
			unit:     unitAt(now, 1, 1),
			expected: 1152,
		},
		{
			// 1000 - 5*50 - 5*10 + 3*2 + (4-2)*50
			name:     "five minutes old, priority 2, batch of 3",
			unit:     unitAt(now.Add(-5*time.Minute), 2, 3),
			expected: 806,
		},
		{
			// 1000 - 20*50 - 20*10 + ... goes deep negative, floored
			name:     "score floors at 1",
			unit:     unitAt(now.Add(-20*time.Minute), 4, 1),
			expected: 1,
		},
		{
			// Sub-minute waits truncate to zero minutes.
			name:     "thirty seconds counts as zero minutes",
			unit:     unitAt(now.Add(-30*time.Second), 1, 1),
			expected: 1152,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.unit, now); got != tt.expected {
				t.Errorf("Score() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestScoreMonotonicity(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// All else equal, more waiting strictly decreases the score.
	fresh := Score(unitAt(now.Add(-1*time.Minute), 2, 1), now)
	stale := Score(unitAt(now.Add(-6*time.Minute), 2, 1), now)
	if stale >= fresh {
		t.Errorf("waiting 6m scored %d, waiting 1m scored %d; want strictly lower for longer wait", stale, fresh)
	}

	// All else equal, a more important priority (lower number) strictly
	// increases the score.
	urgent := Score(unitAt(now.Add(-2*time.Minute), 1, 1), now)
	relaxed := Score(unitAt(now.Add(-2*time.Minute), 4, 1), now)
	if urgent <= relaxed {
		t.Errorf("priority 1 scored %d, priority 4 scored %d; want strictly higher for priority 1", urgent, relaxed)
	}

	// Larger batches get a small positive nudge.
	small := Score(unitAt(now, 2, 1), now)
	large := Score(unitAt(now, 2, 5), now)
	if large <= small {
		t.Errorf("batch of 5 scored %d, batch of 1 scored %d; want larger batch higher", large, small)
	}
}

func TestEstimatedMinutes(t *testing.T) {
	tests := []struct {
		name     string
		speed    string
		quantity int
		expected int
	}{
		{"fast per unit", enum.SpeedFast, 1, 2},
		{"medium per unit", enum.SpeedMedium, 1, 5},
		{"slow per unit", enum.SpeedSlow, 1, 10},
		{"unknown speed defaults to medium", "WARP", 1, 5},
		{"scales with quantity", enum.SpeedFast, 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimatedMinutes(tt.quantity, model.Timing{Speed: tt.speed})
			if got != tt.expected {
				t.Errorf("EstimatedMinutes(%d, %s) = %d, want %d", tt.quantity, tt.speed, got, tt.expected)
			}
		})
	}
}
