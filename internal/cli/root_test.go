package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jakoblorz/go-panelcart/internal/cart"
	"github.com/jakoblorz/go-panelcart/internal/config"
	"github.com/jakoblorz/go-panelcart/internal/filesystem"
	"github.com/jakoblorz/go-panelcart/internal/kv"
	"github.com/jakoblorz/go-panelcart/internal/models"
	"github.com/stretchr/testify/require"
)

const testDataDir = "/data"

func testConfig() *config.Config {
	return &config.Config{
		DataDir:  testDataDir,
		Backend:  config.BackendFile,
		LogLevel: "error",
	}
}

// runCLI executes one invocation against fs, the way separate shell
// commands would share a data directory.
func runCLI(t *testing.T, fs *filesystem.MockFileSystem, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(fs, testConfig(), nil)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, fs *filesystem.MockFileSystem, args ...string) string {
	t.Helper()
	out, err := runCLI(t, fs, args...)
	require.NoError(t, err, out)
	return out
}

func listJSON(t *testing.T, fs *filesystem.MockFileSystem) listOutput {
	t.Helper()
	var decoded listOutput
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, fs, "list", "--format", "json")), &decoded))
	return decoded
}

func TestRoot_FirstRunShowsDefaults(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	out := mustRun(t, fs)
	require.Contains(t, out, "Cart (no project)")
	require.Contains(t, out, "#5")
	require.Contains(t, out, "Total panels: 5")
}

func TestRoot_ProjectWorkflow(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	out := mustRun(t, fs, "project", "new", "ALPHA")
	require.Contains(t, out, "Switched to project ALPHA (0 panels, total 0)")

	out = mustRun(t, fs, "add", "--type", "SP", "--slot", "1: light | Ceiling", "--slot", "5: | Guest", "-q", "2")
	require.Contains(t, out, "Added SP x2 as panel #1 (project total: 2)")

	out = mustRun(t, fs, "add", "--type", "dph", "--name", "Lobby")
	require.Contains(t, out, "Added DPH x1 as panel #2 (project total: 3)")

	listed := listJSON(t, fs)
	require.Equal(t, "ALPHA", listed.ProjectCode)
	require.Equal(t, 3, listed.Total)
	require.Len(t, listed.Items, 2)
	require.Equal(t, "SP", listed.Items[0].Type)
	require.Len(t, listed.Items[0].Icons, 2)
	require.Equal(t, "Lobby", listed.Items[1].PanelName)

	require.True(t, fs.Exists("/data/panels_ALPHA.json"))
	require.True(t, fs.Exists("/data/currentPanels.json"))
	require.True(t, fs.Exists("/data/activeProject.json"))

	out = mustRun(t, fs, "qty", "1", "4")
	require.Contains(t, out, "Panel #1 quantity set to 4 (project total: 5)")

	out = mustRun(t, fs, "reorder", "2", "1")
	require.Contains(t, out, "Cart reordered")
	require.Equal(t, "DPH", listJSON(t, fs).Items[0].Type)

	out = mustRun(t, fs, "remove", "1")
	require.Contains(t, out, "Removed panel #1 (project total: 4)")

	out = mustRun(t, fs, "qty", "1", "0")
	require.Contains(t, out, "Removed panel #1 (project total: 0)")
	require.Empty(t, listJSON(t, fs).Items)
}

func TestRoot_ProjectsKeepSeparateCarts(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	mustRun(t, fs, "project", "use", "ALPHA")
	mustRun(t, fs, "add", "--type", "SP", "-q", "3")
	mustRun(t, fs, "project", "use", "BETA")
	require.Empty(t, listJSON(t, fs).Items)
	mustRun(t, fs, "add", "--type", "TAG")

	mustRun(t, fs, "project", "use", "ALPHA")
	listed := listJSON(t, fs)
	require.Len(t, listed.Items, 1)
	require.Equal(t, 3, listed.Total)

	out := mustRun(t, fs, "project", "list")
	require.Contains(t, out, "ALPHA  1 panels, total 3")
	require.Contains(t, out, "BETA  1 panels, total 1")

	out = mustRun(t, fs, "project", "show")
	require.Contains(t, out, "Project: ALPHA")
	require.Contains(t, out, "Total:   3")
}

func TestRoot_EmptiedProjectStaysEmpty(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	mustRun(t, fs, "project", "use", "ALPHA")
	mustRun(t, fs, "add", "--type", "SP")
	mustRun(t, fs, "remove", "1")
	mustRun(t, fs, "project", "use", "BETA")
	mustRun(t, fs, "project", "use", "ALPHA")

	require.Empty(t, listJSON(t, fs).Items)
}

func TestRoot_ProjectNewRejectsExisting(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	mustRun(t, fs, "project", "new", "ALPHA")
	_, err := runCLI(t, fs, "project", "new", "ALPHA")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestRoot_ProjectNewGeneratesCode(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	out := mustRun(t, fs, "project", "new")
	require.Contains(t, out, "Switched to project P-")
	require.Regexp(t, `^P-[0-9A-Z]{8}$`, listJSON(t, fs).ProjectCode)
}

func TestRoot_ProjectClear(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	mustRun(t, fs, "project", "use", "ALPHA")
	mustRun(t, fs, "add", "--type", "SP", "-q", "2")

	out := mustRun(t, fs, "project", "clear", "--yes")
	require.Contains(t, out, "Cart cleared")

	listed := listJSON(t, fs)
	require.Empty(t, listed.ProjectCode)
	require.Empty(t, listed.Items)
	require.False(t, fs.Exists("/data/activeProject.json"))
	require.False(t, fs.Exists("/data/customizedPanels.json"))
	require.True(t, fs.Exists("/data/panels_ALPHA.json"))

	mustRun(t, fs, "project", "use", "ALPHA")
	require.Len(t, listJSON(t, fs).Items, 1)

	mustRun(t, fs, "project", "clear", "--yes", "--delete")
	require.False(t, fs.Exists("/data/panels_ALPHA.json"))
}

func TestRoot_Edit(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	mustRun(t, fs, "project", "use", "ALPHA")
	mustRun(t, fs, "add", "--type", "SP", "--slot", "1: light | Ceiling", "--slot", "2: fan")

	out := mustRun(t, fs, "edit", "1", "--name", "Guest bath", "--clear-slot", "2", "--slot", "3: bell | Door", "-q", "2")
	require.Contains(t, out, "Updated panel #1 (project total: 2)")

	item := listJSON(t, fs).Items[0]
	require.Equal(t, "Guest bath", item.PanelName)
	require.Equal(t, 2, item.Quantity)
	require.Len(t, item.Icons, 2)
	require.Equal(t, 0, item.Icons[0].Position)
	require.Equal(t, 2, item.Icons[1].Position)
	require.Equal(t, "Door", item.Icons[1].Text)

	mustRun(t, fs, "edit", "1", "--type", "DPH", "--design", `{"color":"white"}`)
	item = listJSON(t, fs).Items[0]
	require.Equal(t, "DPH", item.Type)
	require.JSONEq(t, `{"color":"white"}`, string(item.PanelDesign))

	out = mustRun(t, fs, "report", "--format", "json")
	require.Contains(t, out, `"code": "DPH"`)
	require.NotContains(t, out, `"code": "SP"`)
}

func TestRoot_EditNameKeepsPlacements(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	legacy := models.CartItem{
		Type:     "LEGACY-X",
		Quantity: 2,
		Icons: []models.IconPlacement{
			{IconID: models.StringPtr("sauna"), Label: "Sauna", Position: 0, Text: "Spa", Src: "icons/legacy/sauna.svg", Category: "wellness"},
			{IconID: models.StringPtr("light"), Label: "Old label", Position: 3, Src: "img/light.png"},
		},
	}

	backend := kv.NewFile(fs, testDataDir)
	raw, err := cart.EncodeItems([]models.CartItem{legacy})
	require.NoError(t, err)
	require.NoError(t, backend.Set(cart.ProjectKey("ALPHA"), raw))
	require.NoError(t, cart.SetActiveProject(backend, "ALPHA"))

	mustRun(t, fs, "edit", "1", "--name", "Wellness", "--design", `{"finish":"brass"}`)

	item := listJSON(t, fs).Items[0]
	require.Equal(t, "Wellness", item.PanelName)
	require.Equal(t, "LEGACY-X", item.Type)
	require.Equal(t, 2, item.Quantity)
	require.Equal(t, legacy.Icons, item.Icons)

	_, err = runCLI(t, fs, "edit", "1", "--slot", "2: fan")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid panel type")

	_, err = runCLI(t, fs, "edit", "1", "-q", "0")
	require.EqualError(t, err, "quantity must be at least 1, got 0")
}

func TestRoot_EditErrors(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	mustRun(t, fs, "project", "use", "ALPHA")
	mustRun(t, fs, "add", "--type", "SP")

	_, err := runCLI(t, fs, "edit", "3", "--name", "x")
	require.EqualError(t, err, "no panel #3: the cart has panels 1-1")

	_, err = runCLI(t, fs, "edit", "1", "--design", "{not json")
	require.EqualError(t, err, "invalid design JSON")

	_, err = runCLI(t, fs, "edit", "1", "--slot", "10: light")
	require.Error(t, err)
	require.Contains(t, err.Error(), "out of range")
}

func TestRoot_AddFromDesignFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/designs/bedside.md", []byte(`---
type: tag
quantity: 2
panelName: Bedside
---
1: reading | Left
9: night
`))

	mustRun(t, fs, "project", "use", "ALPHA")
	out := mustRun(t, fs, "add", "--from", "/designs/bedside.md", "-q", "4")
	require.Contains(t, out, "Added TAG x4 as panel #1 (project total: 4)")

	item := listJSON(t, fs).Items[0]
	require.Equal(t, "Bedside", item.PanelName)
	require.Len(t, item.Icons, 2)

	_, err := runCLI(t, fs, "add", "--from", "/designs/missing.md")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read design file")
}

func TestRoot_AddErrors(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	_, err := runCLI(t, fs, "add", "--type", "XX")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid panel type")

	_, err = runCLI(t, fs, "add", "--type", "SP", "--slot", "1: unicorn")
	require.EqualError(t, err, "unknown icon: unicorn")

	_, err = runCLI(t, fs, "add", "--type", "SP", "-q", "0")
	require.Error(t, err)
}

func TestRoot_IndexErrors(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	mustRun(t, fs, "project", "use", "ALPHA")

	_, err := runCLI(t, fs, "remove", "1")
	require.EqualError(t, err, "no panel #1: the cart is empty")

	mustRun(t, fs, "add", "--type", "SP")
	mustRun(t, fs, "add", "--type", "TAG")

	_, err = runCLI(t, fs, "qty", "5", "1")
	require.EqualError(t, err, "no panel #5: the cart has panels 1-2")

	_, err = runCLI(t, fs, "remove", "0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid panel number")

	_, err = runCLI(t, fs, "reorder", "1", "1")
	require.EqualError(t, err, "order must list each of the panels 1-2 exactly once")

	_, err = runCLI(t, fs, "reorder", "--move", "3:1")
	require.Error(t, err)

	_, err = runCLI(t, fs, "reorder")
	require.Error(t, err)

	require.Equal(t, "SP", listJSON(t, fs).Items[0].Type)
}

func TestRoot_ReorderMove(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	mustRun(t, fs, "project", "use", "ALPHA")
	for _, code := range []string{"SP", "TAG", "DPH"} {
		mustRun(t, fs, "add", "--type", code)
	}

	mustRun(t, fs, "reorder", "--move", "3:1")
	items := listJSON(t, fs).Items
	require.Equal(t, []string{"DPH", "SP", "TAG"}, []string{items[0].Type, items[1].Type, items[2].Type})
}

func TestRoot_ListText(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	mustRun(t, fs, "project", "use", "ALPHA")
	mustRun(t, fs, "add", "--type", "SP", "--slot", "1: light | Ceiling")

	out := mustRun(t, fs, "list", "--panels")
	require.Contains(t, out, "Project ALPHA")
	require.Contains(t, out, "Ceiling")

	_, err := runCLI(t, fs, "list", "--format", "yaml")
	require.EqualError(t, err, "invalid format: yaml (must be text or json)")
}

func TestRoot_Report(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	mustRun(t, fs, "project", "use", "ALPHA")
	mustRun(t, fs, "add", "--type", "SP", "-q", "2")
	mustRun(t, fs, "add", "--type", "SP")

	out := mustRun(t, fs, "report")
	require.Contains(t, out, "Bill of quantities - project ALPHA")
	require.Contains(t, out, "Total")
}

func TestRoot_InvalidBackend(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	_, err := runCLI(t, fs, "--backend", "redis", "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid backend: redis")
}
