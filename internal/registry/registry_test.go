package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/core"
)

type stubGame struct {
	id, title, desc string
}

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return g.title }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

type describedGame struct{ stubGame }

func (g describedGame) Description() string { return g.desc }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_plain", func() Game { return stubGame{id: "test_plain", title: "Plain"} })
	Register("test_described", func() Game {
		return describedGame{stubGame{id: "test_described", title: "Described", desc: "has a blurb"}}
	})

	assert.True(t, Exists("test_plain"))
	assert.False(t, Exists("test_missing"))

	g, err := Create("test_described")
	require.NoError(t, err)
	assert.Equal(t, "Described", g.Title())

	_, err = Create("test_missing")
	assert.Error(t, err)

	infos := map[string]GameInfo{}
	for _, info := range List() {
		infos[info.ID] = info
	}
	assert.Equal(t, GameInfo{ID: "test_plain", Title: "Plain"}, infos["test_plain"])
	assert.Equal(t, "has a blurb", infos["test_described"].Description)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })

	assert.Panics(t, func() {
		Register("test_dup", func() Game { return stubGame{id: "test_dup"} })
	})
}

func TestListIsSorted(t *testing.T) {
	Register("test_b", func() Game { return stubGame{id: "test_b"} })
	Register("test_a", func() Game { return stubGame{id: "test_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}
