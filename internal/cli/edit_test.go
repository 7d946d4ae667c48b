package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/render/export"
)

func newTestEditor(t *testing.T, text string, clip *bytes.Buffer) EditorModel {
	t.Helper()
	store := blob.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	q := float64(defaultQuality)
	return newEditorModel(context.Background(), radial.Settings{TextLines: text}, editorSession{
		store:    store,
		exporter: export.New(store),
		format:   export.PNG,
		quality:  &q,
		dir:      t.TempDir(),
		clip:     clip,
		now:      func() time.Time { return time.UnixMilli(1700000000000) },
	})
}

// press feeds msgs through Update and returns the final model and command.
func press(m EditorModel, msgs ...tea.Msg) (EditorModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(EditorModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorTyping(t *testing.T) {
	m := newTestEditor(t, "", nil)

	m, _ = press(m,
		runes("ab"),
		tea.KeyMsg{Type: tea.KeySpace},
		runes("c"),
		tea.KeyMsg{Type: tea.KeyEnter},
		runes("xy"),
		tea.KeyMsg{Type: tea.KeyBackspace},
	)

	want := []string{"ab c", "x"}
	if strings.Join(m.Lines, "|") != strings.Join(want, "|") {
		t.Errorf("Lines = %q, want %q", m.Lines, want)
	}
	if m.Row != 1 {
		t.Errorf("Row = %d, want 1", m.Row)
	}
}

func TestEditorNavigation(t *testing.T) {
	m := newTestEditor(t, "one\ntwo\nthree", nil)
	if m.Row != 2 {
		t.Fatalf("initial Row = %d, want 2", m.Row)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.Row != 0 {
		t.Errorf("Row after up = %d, want 0", m.Row)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter}, runes("new"))
	want := "one|new|two|three"
	if got := strings.Join(m.Lines, "|"); got != want {
		t.Errorf("Lines = %q, want %q", got, want)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Row != 3 {
		t.Errorf("Row after down = %d, want 3", m.Row)
	}
}

func TestEditorBackspaceRemovesEmptyLine(t *testing.T) {
	m := newTestEditor(t, "a\n", nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.Lines) != 1 || m.Row != 0 {
		t.Errorf("Lines = %q Row = %d, want one line at row 0", m.Lines, m.Row)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.Lines) != 1 || m.Lines[0] != "" {
		t.Errorf("Lines = %q, want a single empty line", m.Lines)
	}
}

func TestEditorUpdateDoesNotAliasLines(t *testing.T) {
	m := newTestEditor(t, "abc", nil)
	before := m

	_, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if before.Lines[0] != "abc" {
		t.Errorf("previous model changed to %q", before.Lines[0])
	}
}

func TestEditorRefusesEmptyExport(t *testing.T) {
	m := newTestEditor(t, " \n", nil)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("empty scene should not start an export")
	}
	if m.Status != "Nothing to export" {
		t.Errorf("Status = %q", m.Status)
	}
}

func TestEditorSave(t *testing.T) {
	m := newTestEditor(t, "Hello", nil)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s should start an export")
	}
	if _, again := press(m, tea.KeyMsg{Type: tea.KeyCtrlS}); again != nil {
		t.Error("second save while busy should be ignored")
	}

	m, _ = press(m, cmd())
	if m.Err != nil {
		t.Fatalf("export error: %v", m.Err)
	}
	if len(m.Saved) != 1 {
		t.Fatalf("Saved = %v, want one file", m.Saved)
	}
	if filepath.Base(m.Saved[0]) != "RadialText_1700000000000.png" {
		t.Errorf("saved name = %q", filepath.Base(m.Saved[0]))
	}
	if _, err := os.Stat(m.Saved[0]); err != nil {
		t.Errorf("saved file: %v", err)
	}
}

func TestEditorCopy(t *testing.T) {
	var clip bytes.Buffer
	m := newTestEditor(t, "Hello", &clip)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatal("ctrl+y should start an export")
	}
	m, _ = press(m, cmd())

	if m.Err != nil {
		t.Fatalf("copy error: %v", m.Err)
	}
	if m.Status != "Base64-encoded data has been copied to the clipboard." {
		t.Errorf("Status = %q", m.Status)
	}
	if !strings.HasPrefix(clip.String(), "\x1b]52;") {
		t.Errorf("clipboard output %q is not an OSC 52 sequence", clip.String())
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(t, "a", nil)

	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := press(m, tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%v should quit", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not quit", k)
		}
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t, "alpha\nbeta", nil)
	view := m.View()

	for _, want := range []string{"alpha", "beta", "2 lines"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
