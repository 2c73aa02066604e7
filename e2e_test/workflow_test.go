package e2e_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jakoblorz/go-panelcart/internal/cart"
	"github.com/jakoblorz/go-panelcart/internal/customizer"
	"github.com/jakoblorz/go-panelcart/internal/filesystem"
	"github.com/jakoblorz/go-panelcart/internal/kv"
	"github.com/jakoblorz/go-panelcart/internal/kv/bolt"
	"github.com/jakoblorz/go-panelcart/internal/models"
	"github.com/jakoblorz/go-panelcart/internal/report"
	"github.com/stretchr/testify/require"
)

func designSP(t *testing.T, quantity int, placements ...string) models.CartItem {
	t.Helper()

	panel, err := models.ParsePanelType("SP")
	require.NoError(t, err)

	grid := customizer.NewGrid(panel)
	for _, raw := range placements {
		p, err := customizer.ParsePlacement(raw)
		require.NoError(t, err)
		require.NoError(t, grid.Apply(p))
	}

	item, err := grid.Build(quantity)
	require.NoError(t, err)
	return item
}

func runWorkflow(t *testing.T, backend kv.Backend) {
	t.Helper()

	// First session: a fresh store shows the demo cart
	store := cart.New(backend, cart.WithPulseDuration(20*time.Millisecond))
	require.Len(t, store.Items(), len(cart.DefaultItems()))

	// Start a project and fill it
	store.SetProjectCode("HOTEL-1")
	require.Empty(t, store.Items())

	store.AddToCart(designSP(t, 2, "1: light | Ceiling", "2: dnd"))
	require.True(t, store.IsCounting())

	design, err := customizer.ParseDesign([]byte(`---
type: DPH
quantity: 1
panelName: Lobby
---
1: scene | Welcome
18: master
`))
	require.NoError(t, err)
	store.AddToCart(design)

	require.Equal(t, 3, store.ProjCount())
	require.Equal(t, 2, store.Tally().Get("sp"))
	require.Equal(t, 1, store.Tally().Get("dph"))

	require.Eventually(t, func() bool { return !store.IsCounting() }, time.Second, 5*time.Millisecond)

	// Reorder and bump quantity
	require.NoError(t, store.ReorderPanels([]int{1, 0}))
	require.NoError(t, store.UpdateQuantity(1, 5))
	require.Equal(t, 6, store.ProjCount())
	store.Close()

	// Second session restores the current list
	reopened := cart.New(backend)
	t.Cleanup(reopened.Close)
	items := reopened.Items()
	require.Len(t, items, 2)
	require.Equal(t, "DPH", items[0].Type)
	require.Equal(t, "Lobby", items[0].PanelName)
	require.Equal(t, 5, items[1].Quantity)

	// Switching away and back restores the project from its own key
	reopened.SetProjectCode("HOTEL-2")
	require.Empty(t, reopened.Items())
	reopened.SetProjectCode("HOTEL-1")
	require.Len(t, reopened.Items(), 2)

	projects, err := cart.ListProjects(backend)
	require.NoError(t, err)
	require.Equal(t, []string{"HOTEL-1", "HOTEL-2"}, projects)

	// Bill of quantities reflects cart and tally
	r := report.Build(reopened.ProjectCode(), reopened.Items(), reopened.Tally())
	require.Equal(t, 6, r.TotalQuantity)
	require.Len(t, r.Lines, 2)
	require.Equal(t, "SP", r.Lines[0].Code)
	require.Equal(t, 5, r.Lines[0].Tallied)

	// Clearing drops the tally and the selection
	reopened.ClearProject()
	require.Empty(t, reopened.ProjectCode())
	require.Empty(t, reopened.Tally())
}

func TestFullWorkflow(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	runWorkflow(t, kv.NewFile(fs, "/data"))

	require.True(t, fs.Exists("/data/panels_HOTEL-1.json"))
	require.True(t, fs.Exists("/data/currentPanels.json"))
	require.False(t, fs.Exists("/data/customizedPanels.json"))
}

func TestFullWorkflow_Bolt(t *testing.T) {
	store, err := bolt.Open(filepath.Join(t.TempDir(), "panelcart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	runWorkflow(t, store)
}
