package server_test

import (
	"testing"

	"rom-curator/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_RequiresAuth(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"KeySet", "secret", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ApiKey: tt.apiKey}
			assert.Equal(t, tt.want, c.RequiresAuth())
		})
	}
}
