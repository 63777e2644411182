package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct{ target Target }

func (f fakeHandle) Platform() Target      { return f.target }
func (fakeHandle) Module() string          { return "@example/adapter" }
func (fakeHandle) ImportName() string      { return "example" }
func (fakeHandle) Options() map[string]any { return nil }

func TestParseTarget(t *testing.T) {
	cases := map[string]struct {
		want Target
		ok   bool
	}{
		"":         {TargetStatic, true},
		"static":   {TargetStatic, true},
		" Vercel ": {TargetVercel, true},
		"VERCEL":   {TargetVercel, true},
		"netlify":  {"", false},
	}
	for raw, tc := range cases {
		got, ok := ParseTarget(raw)
		assert.Equal(t, tc.ok, ok, raw)
		assert.Equal(t, tc.want, got, raw)
	}
}

func TestRegistryFirstRegistrationWins(t *testing.T) {
	const target Target = "test-first-wins"
	Register(target, func() Handle { return fakeHandle{target: target} })
	Register(target, func() Handle { return nil })

	h := New(target)
	require.NotNil(t, h)
	assert.Equal(t, target, h.Platform())
	assert.Contains(t, Registered(), target)
}

func TestNewWithoutRegistration(t *testing.T) {
	assert.Nil(t, New(TargetStatic))
	assert.Nil(t, New("unknown"))
	Register("", func() Handle { return fakeHandle{} })
	assert.NotContains(t, Registered(), Target(""))
}
