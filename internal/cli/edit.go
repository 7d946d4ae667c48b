package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/errors"
	rtio "github.com/matzehuels/radialtext/pkg/io"
	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/render/export"
)

// Editor styles
var (
	editorCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorLineStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	scene   sceneFlags
	format  string
	quality string
	dir     string
}

// editCommand creates the interactive edit command.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit text lines interactively and export images",
		Long: `Edit text lines interactively.

The status line shows the line count and the size the exported image will
have. Press ctrl+s to save an image into --dir, ctrl+y to copy it to the
clipboard as a Base64 data URL, and esc to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, args); err != nil {
				return err
			}
			if len(args) > 0 && args[0] == rtio.Stdin {
				return errors.New(errors.ErrCodeInvalidInput, "edit reads the terminal; pass a file instead of -")
			}
			settings, err := opts.scene.resolve(cmd, args)
			if err != nil {
				return err
			}
			return runEdit(cmd.Context(), settings, &opts)
		},
	}

	opts.scene.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.PNG), "image format: png, jpg, webp")
	cmd.Flags().StringVarP(&opts.quality, "quality", "q", "", "image quality 1-100 for jpg and webp (default 100)")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "directory for saved images")

	return cmd
}

func runEdit(ctx context.Context, settings radial.Settings, opts *editOpts) error {
	logger := loggerFromContext(ctx)
	store := blob.NewMemoryStore()
	defer store.Close()

	m := newEditorModel(ctx, settings, editorSession{
		store:    store,
		exporter: export.New(store, export.WithLogger(logger)),
		format:   export.ParseFormat(opts.format),
		quality:  exportQuality(opts.quality),
		dir:      opts.dir,
		clip:     os.Stderr,
		now:      time.Now,
	})
	defer m.session.exporter.Tracker().Release(ctx)

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	for _, path := range final.(EditorModel).Saved {
		printFile(path)
	}
	return nil
}

// =============================================================================
// EditorModel - Interactive line editor
// =============================================================================

// editorSession is the export state shared by every copy of the model.
type editorSession struct {
	store    blob.Store
	exporter *export.Exporter
	format   export.Format
	quality  *float64
	dir      string
	clip     io.Writer
	now      func() time.Time
}

// exportDoneMsg reports the outcome of a save or copy.
type exportDoneMsg struct {
	path string // saved file, empty for a clipboard copy
	err  error
}

// EditorModel is the bubbletea model for editing the text lines.
type EditorModel struct {
	Lines  []string
	Row    int
	Saved  []string
	Status string
	Err    error

	ctx      context.Context
	settings radial.Settings
	session  editorSession
	busy     bool
}

// newEditorModel creates an editor starting from the settings' text.
func newEditorModel(ctx context.Context, settings radial.Settings, session editorSession) EditorModel {
	lines := strings.Split(strings.ReplaceAll(settings.TextLines, "\r\n", "\n"), "\n")
	return EditorModel{
		Lines:    lines,
		Row:      len(lines) - 1,
		ctx:      ctx,
		settings: settings,
		session:  session,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

// config normalizes the settings with the edited lines.
func (m EditorModel) config() radial.Config {
	s := m.settings
	s.TextLines = strings.Join(m.Lines, "\n")
	return radial.Normalize(s)
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.busy = false
		m.Err = msg.err
		switch {
		case msg.err != nil:
			m.Status = "Action failed! Reasons: " + errors.UserMessage(msg.err)
		case msg.path != "":
			m.Saved = append(m.Saved, msg.path)
			m.Status = "Saved " + msg.path
		default:
			m.Status = "Base64-encoded data has been copied to the clipboard."
		}
		return m, nil
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m EditorModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Lines = slices.Clone(m.Lines)
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlS:
		return m.export(export.TransientURL)
	case tea.KeyCtrlY:
		return m.export(export.EmbeddedURL)
	case tea.KeyUp:
		if m.Row > 0 {
			m.Row--
		}
	case tea.KeyDown:
		if m.Row < len(m.Lines)-1 {
			m.Row++
		}
	case tea.KeyEnter:
		m.Lines = slices.Insert(m.Lines, m.Row+1, "")
		m.Row++
	case tea.KeyBackspace:
		line := []rune(m.Lines[m.Row])
		switch {
		case len(line) > 0:
			m.Lines[m.Row] = string(line[:len(line)-1])
		case len(m.Lines) > 1:
			m.Lines = slices.Delete(m.Lines, m.Row, m.Row+1)
			if m.Row > 0 {
				m.Row--
			}
		}
	case tea.KeySpace:
		m.Lines[m.Row] += " "
	case tea.KeyRunes:
		m.Lines[m.Row] += string(msg.Runes)
	}
	return m, nil
}

// export starts an export of the current lines. Saving and copying are
// refused while an export runs or when there is nothing to draw.
func (m EditorModel) export(kind export.Kind) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	cfg := m.config()
	if len(cfg.Lines) == 0 {
		m.Status = "Nothing to export"
		return m, nil
	}
	m.busy = true
	m.Status = "Processing image..."

	ctx, session := m.ctx, m.session
	req := export.Request{
		Scene:   radial.Build(cfg),
		Kind:    kind,
		Format:  session.format,
		Quality: session.quality,
	}
	return m, func() tea.Msg {
		res, err := session.exporter.Export(ctx, req)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if kind == export.EmbeddedURL {
			_, err := osc52.New(res.URL).WriteTo(session.clip)
			return exportDoneMsg{err: err}
		}
		path := filepath.Join(session.dir, rtio.DownloadName(res.Format, session.now()))
		if err := rtio.ExportResult(ctx, path, res, session.store); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// stats returns the status-line summary of the current scene.
func (m EditorModel) stats() string {
	cfg := m.config()
	p, err := buildPreview(cfg, radial.Viewport{Width: defaultWidth, Height: defaultHeight})
	if err != nil {
		return StyleError.Render(errors.UserMessage(err))
	}
	return sceneStats(p.lines, radial.FormatDimensions(p.width, p.height))
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Radial Text"))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("↑/↓ line  ⏎ new line  ctrl+s save  ctrl+y copy  esc quit"))
	b.WriteString("\n\n")

	for i, line := range m.Lines {
		if i == m.Row {
			b.WriteString(editorCursorStyle.Render("▸ " + line + "▏"))
		} else {
			b.WriteString(editorLineStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.stats())
	if m.Status != "" {
		b.WriteString("\n")
		style := editorStatusStyle
		if m.Err != nil {
			style = StyleError
		}
		b.WriteString(style.Render(m.Status))
	}
	b.WriteString("\n")
	return b.String()
}
