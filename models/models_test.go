package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_TableName(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
}

func TestUser_JSONKeys(t *testing.T) {
	data, err := json.Marshal(User{ID: 1, Name: "Parhan", Email: "parhan@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Parhan","email":"parhan@example.com"}`, string(data))
}

func TestPrincipal_HasRole(t *testing.T) {
	admin := &Principal{ID: 1, Role: RoleAdmin}
	user := &Principal{ID: 2, Role: RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
	assert.True(t, admin.HasRole(RoleAdmin))
	assert.False(t, user.HasRole(RoleAdmin))
	assert.True(t, user.HasRole(""))
}

func TestPageRequest(t *testing.T) {
	tests := []struct {
		name   string
		page   PageRequest
		max    int
		valid  bool
		offset int
	}{
		{"defaults", NewPageRequest(), 1000, true, 0},
		{"second page", PageRequest{Page: 2, Limit: 50}, 1000, true, 50},
		{"third page of ten", PageRequest{Page: 3, Limit: 10}, 1000, true, 20},
		{"limit at max", PageRequest{Page: 1, Limit: 1000}, 1000, true, 0},
		{"no upper bound", PageRequest{Page: 1, Limit: 100000}, 0, true, 0},
		{"page zero", PageRequest{Page: 0, Limit: 50}, 1000, false, -50},
		{"limit zero", PageRequest{Page: 1, Limit: 0}, 1000, false, 0},
		{"negative limit", PageRequest{Page: 1, Limit: -1}, 1000, false, 0},
		{"limit over max", PageRequest{Page: 1, Limit: 1001}, 1000, false, 0},
		{"offset overflows", PageRequest{Page: 4611686018427387905, Limit: 50}, 1000, false, 0},
		{"offset overflows without upper bound", PageRequest{Page: math.MaxInt, Limit: 2}, 0, false, 0},
		{"largest representable offset", PageRequest{Page: math.MaxInt/50 + 1, Limit: 50}, 1000, true, (math.MaxInt / 50) * 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.page.Valid(tt.max))
			if tt.valid {
				assert.Equal(t, tt.offset, tt.page.Offset())
				assert.GreaterOrEqual(t, tt.page.Offset(), 0)
			}
		})
	}
}
