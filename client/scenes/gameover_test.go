package scenes

import (
	"testing"
	"time"

	"github.com/cbodonnell/isozombie/pkg/game"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
)

func TestResultLines(t *testing.T) {
	result := game.Result{Score: 120, Kills: 12, Wave: 3, ShotsFired: 16, Duration: 95*time.Second + 400*time.Millisecond}

	tests := []struct {
		name string
		best *models.Score
		want string
	}{
		{"no record", nil, ""},
		{"new best", &models.Score{Points: 120, Wave: 3}, "New personal best!"},
		{"below best", &models.Score{Points: 300, Wave: 5}, "Personal best 300 (wave 5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := ResultLines("bob", result, tt.best)
			assert.Equal(t, "bob scored 120", lines[0])
			assert.Equal(t, "Wave 3, 12 kills in 1m35s", lines[1])
			assert.Equal(t, "Accuracy 75%", lines[2])
			if tt.want == "" {
				assert.Len(t, lines, 5)
				return
			}
			assert.Len(t, lines, 6)
			assert.Equal(t, tt.want, lines[3])
		})
	}
}
