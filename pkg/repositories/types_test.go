package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"plain", &ErrNotFound{Name: "ash"}, true},
		{"wrapped", fmt.Errorf("failed to get best score: %w", &ErrNotFound{}), true},
		{"other", fmt.Errorf("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
	assert.Equal(t, "no score found for ash", (&ErrNotFound{Name: "ash"}).Error())
	assert.Equal(t, "score not found", (&ErrNotFound{}).Error())
}
