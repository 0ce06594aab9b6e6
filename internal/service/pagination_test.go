package service

import (
	"testing"

	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		skip, limit int
		want        Page
		wantErr     bool
	}{
		{name: "default limit", limit: DefaultPageLimit, want: Page{Skip: 0, Limit: DefaultPageLimit}},
		{name: "zero limit", skip: 2, want: Page{Skip: 2, Limit: 0}},
		{name: "explicit", skip: 10, limit: 5, want: Page{Skip: 10, Limit: 5}},
		{name: "clamped", limit: 500, want: Page{Limit: MaxPageLimit}},
		{name: "negative skip", skip: -1, wantErr: true},
		{name: "negative limit", skip: 3, limit: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPage(tt.skip, tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
