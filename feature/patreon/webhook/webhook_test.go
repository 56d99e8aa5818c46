package webhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"patron-manager/feature/patreon/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const memberBody = `{"data":{"id":"m1","type":"member","attributes":{"full_name":"Test User","patron_status":"active_patron"}}}`

type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func (f *fakeDeduper) Seen(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.seen[key], nil
}

func (f *fakeDeduper) Mark(_ context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	f.seen[key] = true
	return nil
}

func TestVerifySignature(t *testing.T) {
	body := []byte(memberBody)
	sig := Sign(body, "dummy_secret")
	tampered := sig[:len(sig)-1] + "0"
	if sig[len(sig)-1] == '0' {
		tampered = sig[:len(sig)-1] + "1"
	}

	tests := []struct {
		name      string
		signature string
		secret    string
		want      bool
	}{
		{"valid", sig, "dummy_secret", true},
		{"wrong secret", sig, "other", false},
		{"tampered", tampered, "dummy_secret", false},
		{"empty secret", Sign(body, ""), "", false},
		{"empty signature", "", "dummy_secret", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature(body, tt.signature, tt.secret))
		})
	}
}

func TestProcessor_Handle(t *testing.T) {
	s := store.New()
	p := NewProcessor(s, nil, zap.NewNop())
	p.now = func() time.Time { return time.UnixMilli(5000) }
	ctx := context.Background()

	res, err := p.Handle(ctx, EventMemberCreate, "", []byte(memberBody))
	require.NoError(t, err)
	assert.Equal(t, ActionUpserted, res.Action)
	assert.Equal(t, "m1", res.MemberID)

	got, ok := s.Get("m1")
	require.True(t, ok)
	assert.Equal(t, int64(5000), got.LastUpdated)
	assert.Equal(t, "Test User", got.FullName)

	p.now = func() time.Time { return time.UnixMilli(4000) }
	res, err = p.Handle(ctx, EventPledgeUpdate, "", []byte(memberBody))
	require.NoError(t, err)
	assert.Equal(t, ActionStale, res.Action)

	res, err = p.Handle(ctx, EventMemberDelete, "", []byte(memberBody))
	require.NoError(t, err)
	assert.Equal(t, ActionRemoved, res.Action)
	assert.Zero(t, s.Count())

	res, err = p.Handle(ctx, "posts:publish", "", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, ActionIgnored, res.Action)

	_, err = p.Handle(ctx, EventMemberUpdate, "", []byte(`{"data":{}}`))
	assert.Error(t, err)
}

func TestProcessor_Dedupe(t *testing.T) {
	s := store.New()
	d := &fakeDeduper{seen: map[string]bool{}}
	p := NewProcessor(s, d, zap.NewNop())
	ctx := context.Background()

	res, err := p.Handle(ctx, EventMemberCreate, "sig-1", []byte(memberBody))
	require.NoError(t, err)
	assert.Equal(t, ActionUpserted, res.Action)

	s.Remove("m1")
	res, err = p.Handle(ctx, EventMemberCreate, "sig-1", []byte(memberBody))
	require.NoError(t, err)
	assert.Equal(t, ActionDuplicate, res.Action)
	assert.Zero(t, s.Count())

	d.err = errors.New("redis down")
	res, err = p.Handle(ctx, EventMemberCreate, "sig-1", []byte(memberBody))
	require.NoError(t, err)
	assert.Equal(t, ActionUpserted, res.Action)
}

func TestProcessor_DedupeKeysOnEvent(t *testing.T) {
	s := store.New()
	d := &fakeDeduper{seen: map[string]bool{}}
	p := NewProcessor(s, d, zap.NewNop())
	ctx := context.Background()
	body := []byte(memberBody)
	sig := Sign(body, "dummy_secret")

	res, err := p.Handle(ctx, EventPledgeCreate, sig, body)
	require.NoError(t, err)
	assert.Equal(t, ActionUpserted, res.Action)

	res, err = p.Handle(ctx, EventPledgeDelete, sig, body)
	require.NoError(t, err)
	assert.Equal(t, ActionRemoved, res.Action)
	_, ok := s.Get("m1")
	assert.False(t, ok)

	res, err = p.Handle(ctx, EventPledgeDelete, sig, body)
	require.NoError(t, err)
	assert.Equal(t, ActionDuplicate, res.Action)
}

func TestProcessor_FailedDeliveryNotRemembered(t *testing.T) {
	s := store.New()
	d := &fakeDeduper{seen: map[string]bool{}}
	p := NewProcessor(s, d, zap.NewNop())
	ctx := context.Background()

	_, err := p.Handle(ctx, EventMemberCreate, "sig-bad", []byte(`{"data":{}}`))
	require.Error(t, err)
	assert.Empty(t, d.seen)

	res, err := p.Handle(ctx, EventMemberCreate, "sig-bad", []byte(memberBody))
	require.NoError(t, err)
	assert.Equal(t, ActionUpserted, res.Action)
	assert.True(t, d.seen[EventMemberCreate+":sig-bad"])
}
