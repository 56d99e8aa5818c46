package loader_test

import (
	"errors"
	"testing"

	"patron-manager/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	a := &fakeFeature{name: "a", enabled: true}
	b := &fakeFeature{name: "b", enabled: false}
	c := &fakeFeature{name: "c", enabled: true}

	mgr := loader.NewManager()
	mgr.Register(a)
	mgr.Register(b)
	mgr.Register(c)

	loaded, err := mgr.LoadAll(fiber.New())
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, loaded)
	assert.True(t, a.loaded)
	assert.False(t, b.loaded)
}

func TestManager_LoadAllErrors(t *testing.T) {
	t.Run("Load failure", func(t *testing.T) {
		mgr := loader.NewManager()
		mgr.Register(&fakeFeature{name: "bad", enabled: true, err: errors.New("boom")})
		_, err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("Duplicate name", func(t *testing.T) {
		mgr := loader.NewManager()
		mgr.Register(&fakeFeature{name: "x", enabled: true})
		mgr.Register(&fakeFeature{name: "x", enabled: true})
		_, err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "registered twice")
	})
}
