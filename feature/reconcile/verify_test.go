package reconcile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	dmodels "patron-manager/feature/dragonite/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	names map[int]string
	calls atomic.Int32
}

func (f *fakeFetcher) GetArea(_ context.Context, id int) (dmodels.Area, error) {
	f.calls.Add(1)
	name, ok := f.names[id]
	if !ok {
		return dmodels.Area{}, errors.New("timeout")
	}
	return dmodels.Area{ID: id, Name: name}, nil
}

func TestVerifier_Verify(t *testing.T) {
	fetcher := &fakeFetcher{names: map[int]string{1: "renamed", 2: "same", 4: "ignored"}}
	v := NewVerifier(fetcher, 2, zap.NewNop())

	in := []dmodels.Area{
		{ID: 1, Name: "old", Enabled: true},
		{ID: 2, Name: "same", Enabled: true},
		{ID: 3, Name: "failing", Enabled: true},
		{ID: 4, Name: "disabled", Enabled: false},
	}
	out, renames := v.Verify(context.Background(), in)

	assert.Equal(t, int32(3), fetcher.calls.Load())
	assert.Equal(t, []Rename{{ID: 1, From: "old", To: "renamed"}}, renames)
	assert.Equal(t, "renamed", out[0].Name)
	assert.Equal(t, "failing", out[2].Name)
	assert.Equal(t, "disabled", out[3].Name)
	assert.Equal(t, "old", in[0].Name)
}
