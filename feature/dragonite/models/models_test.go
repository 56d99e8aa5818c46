package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

func TestAreaFromMap(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Area
		wantErr bool
	}{
		{
			name: "bool enabled",
			raw:  `{"id": 3, "name": "North", "enabled": true, "worker_managers": [{"expected_workers": 2, "active_workers": 1}, {"expected_workers": 3, "active_workers": 3}]}`,
			want: Area{ID: 3, Name: "North", Enabled: true, WorkerManagers: []WorkerManager{{2, 1}, {3, 3}}},
		},
		{
			name: "numeric enabled",
			raw:  `{"id": 4, "name": "South", "enabled": 0}`,
			want: Area{ID: 4, Name: "South", WorkerManagers: []WorkerManager{}},
		},
		{
			name:    "missing id",
			raw:     `{"name": "Nowhere"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AreaFromMap(decode(t, tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArea_Totals(t *testing.T) {
	a := Area{WorkerManagers: []WorkerManager{{Expected: 2, Active: 1}, {Expected: 3, Active: 0}}}
	assert.Equal(t, 5, a.TotalExpected())
	assert.Equal(t, 1, a.TotalActive())

	c := a.Clone()
	c.WorkerManagers[0].Expected = 9
	assert.Equal(t, 2, a.WorkerManagers[0].Expected)
}
