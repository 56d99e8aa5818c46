package server_test

import (
	"testing"

	"patron-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"Explicit", "8000", ":8000"},
		{"Default", "", ":3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_WebhookEnabled(t *testing.T) {
	assert.False(t, server.Config{}.WebhookEnabled())
	assert.True(t, server.Config{WebhookSecret: "s"}.WebhookEnabled())
}
