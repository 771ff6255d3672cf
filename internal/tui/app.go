// Package tui is the rendering boundary: a bubbletea program that drives
// the selection state machine and turns every failure into a transient
// notification.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/pixlens/internal/clip"
	"github.com/jask/pixlens/internal/config"
	"github.com/jask/pixlens/internal/notify"
	"github.com/jask/pixlens/internal/picker"
	"github.com/jask/pixlens/internal/preview"
	"github.com/jask/pixlens/internal/upload"
)

// Analyzer is the remote analysis collaborator.
type Analyzer interface {
	Analyze(ctx context.Context, f upload.SelectedFile) (string, error)
	Health(ctx context.Context) error
}

// App is the top-level bubbletea model.
type App struct {
	ctx     context.Context
	cfg     config.Config
	log     zerolog.Logger
	client  Analyzer
	clip    clip.Writer
	timeout time.Duration

	widget *upload.Widget
	notes  *notify.Stack

	// analysisSeq counts BeginAnalysis calls; only the response carrying
	// the current value may touch the widget
	analysisSeq int

	keys      keyMap
	dropInput textinput.Model
	spin      spinner.Model
	results   viewport.Model

	browser     *picker.Browser
	showBrowser bool

	thumb string
	facts *preview.Facts

	width  int
	height int
}

// New wires the application model.
func New(ctx context.Context, cfg config.Config, client Analyzer, clipW clip.Writer, log zerolog.Logger) *App {
	ti := textinput.New()
	ti.Placeholder = "paste or type an image path"
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return &App{
		ctx:       ctx,
		cfg:       cfg,
		log:       log,
		client:    client,
		clip:      clipW,
		timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		widget:    upload.NewWidget(cfg.Upload.MaxBytes),
		notes:     notify.NewStack(time.Duration(cfg.UI.NotificationSeconds) * time.Second),
		keys:      newKeyMap(),
		dropInput: ti,
		spin:      sp,
		results:   viewport.New(76, 10),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.healthCmd())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeResults()
		return a, nil

	case notify.ExpiredMsg:
		a.notes.Expire(msg.ID)
		return a, nil

	case healthMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("health probe failed")
			return a, a.notes.Push(notify.LevelError, "analysis service unreachable: "+msg.err.Error())
		}
		a.log.Info().Str("server", a.cfg.Server.BaseURL).Msg("analysis service reachable")
		return a, nil

	case fileLoadedMsg:
		return a.handleFileLoaded(msg)

	case previewMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("preview failed")
			// selection stays valid; analysis does not need a local preview
			return a, a.notes.Push(notify.LevelError, "preview failed: "+msg.err.Error())
		}
		a.thumb = msg.thumb
		facts := msg.facts
		a.facts = &facts
		return a, nil

	case analyzeDoneMsg:
		return a.handleAnalyzeDone(msg)

	case dialogMsg:
		if msg.err != nil {
			if errors.Is(msg.err, picker.ErrCancelled) {
				return a, nil
			}
			a.log.Warn().Err(msg.err).Msg("native dialog failed")
			return a, a.notes.Push(notify.LevelError, "file dialog failed: "+msg.err.Error())
		}
		return a, loadFileCmd(msg.path)

	case browserMsg:
		if msg.err != nil {
			return a, a.notes.Push(notify.LevelError, "cannot list directory: "+msg.err.Error())
		}
		a.browser = msg.browser
		a.showBrowser = true
		return a, nil

	case copyDoneMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("clipboard write failed")
			return a, a.notes.Push(notify.LevelError, "copy failed: "+msg.err.Error())
		}
		return a, a.notes.Push(notify.LevelSuccess, "result copied to clipboard")

	case spinner.TickMsg:
		if a.widget.Phase() != upload.PhaseAnalyzing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.showBrowser {
		return a.handleBrowserKey(msg)
	}
	if a.widget.Phase() == upload.PhaseIdle {
		return a.handleIdleKey(msg)
	}
	return a.handlePreviewKey(msg)
}

func (a *App) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Stage):
		path := a.dropInput.Value()
		if path == "" {
			return a, a.notes.Push(notify.LevelInfo, "drop or type an image path first")
		}
		return a, loadFileCmd(path)
	case key.Matches(msg, a.keys.Dialog):
		return a, dialogCmd(a.cfg.UI.BrowseDir)
	case key.Matches(msg, a.keys.Browse):
		return a, browseCmd(a.cfg.UI.BrowseDir)
	case key.Matches(msg, a.keys.Close):
		a.dropInput.Reset()
		return a, nil
	}
	var cmd tea.Cmd
	a.dropInput, cmd = a.dropInput.Update(msg)
	return a, cmd
}

func (a *App) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	analyzing := a.widget.Phase() == upload.PhaseAnalyzing
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Analyze):
		return a.startAnalysis()
	case key.Matches(msg, a.keys.Reset):
		a.reset()
		return a, nil
	case key.Matches(msg, a.keys.Copy):
		text, ok := a.widget.Result()
		if !ok {
			return a, a.notes.Push(notify.LevelInfo, "no analysis to copy yet")
		}
		return a, a.copyCmd(text)
	case key.Matches(msg, a.keys.Dialog):
		if analyzing {
			return a, a.notes.Push(notify.LevelError, upload.ErrAnalysisInFlight.Error())
		}
		return a, dialogCmd(a.cfg.UI.BrowseDir)
	case key.Matches(msg, a.keys.Browse):
		if analyzing {
			return a, a.notes.Push(notify.LevelError, upload.ErrAnalysisInFlight.Error())
		}
		return a, browseCmd(a.cfg.UI.BrowseDir)
	}
	var cmd tea.Cmd
	a.results, cmd = a.results.Update(msg)
	return a, cmd
}

func (a *App) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res := a.browser.HandleKey(msg.String())
	switch res.Action {
	case picker.ActionSelected:
		a.showBrowser = false
		a.browser = nil
		return a, loadFileCmd(res.Entry.Path)
	case picker.ActionCancelled:
		a.showBrowser = false
		a.browser = nil
	}
	return a, nil
}

func (a *App) handleFileLoaded(msg fileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.log.Warn().Err(msg.err).Msg("load candidate failed")
		return a, a.notes.Push(notify.LevelError, msg.err.Error())
	}
	if err := a.widget.Select(msg.file); err != nil {
		a.log.Info().
			Err(err).
			Str("file", msg.file.Name).
			Str("media_type", msg.file.MediaType).
			Int64("bytes", msg.file.Size).
			Msg("candidate rejected")
		return a, a.notes.Push(notify.LevelError, err.Error())
	}
	a.log.Info().Str("file", msg.file.Name).Str("media_type", msg.file.MediaType).Msg("image staged")
	a.thumb = ""
	a.facts = nil
	a.results.SetContent("")
	a.dropInput.Reset()
	a.dropInput.Blur()
	return a, previewCmd(msg.file, a.cfg.UI.ThumbnailWidth)
}

func (a *App) startAnalysis() (tea.Model, tea.Cmd) {
	if err := a.widget.BeginAnalysis(); err != nil {
		return a, a.notes.Push(notify.LevelError, err.Error())
	}
	f, _ := a.widget.File()
	a.analysisSeq++
	a.log.Info().Str("file", f.Name).Int("seq", a.analysisSeq).Msg("analysis started")
	return a, tea.Batch(a.analyzeCmd(f, a.analysisSeq), a.spin.Tick)
}

func (a *App) handleAnalyzeDone(msg analyzeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.analysisSeq || a.widget.Phase() != upload.PhaseAnalyzing {
		// a reset or a newer request superseded this round trip
		a.log.Debug().Int("seq", msg.seq).Int("current", a.analysisSeq).Msg("dropped superseded response")
		return a, nil
	}
	if msg.err != nil {
		a.widget.FailAnalysis()
		a.log.Warn().Err(msg.err).Msg("analysis failed")
		return a, a.notes.Push(notify.LevelError, msg.err.Error())
	}
	a.widget.FinishAnalysis(msg.text)
	a.results.SetContent(msg.text)
	a.results.GotoTop()
	return a, a.notes.Push(notify.LevelSuccess, "analysis complete")
}

// reset returns the workflow to the upload surface: selection cleared,
// drop line emptied so the same file can be re-staged.
func (a *App) reset() {
	a.widget.Reset()
	a.thumb = ""
	a.facts = nil
	a.results.SetContent("")
	a.dropInput.Reset()
	a.dropInput.Focus()
	a.showBrowser = false
	a.browser = nil
	a.log.Info().Msg("workflow reset")
}

func (a *App) resizeResults() {
	w := a.width - 6
	if w < 20 {
		w = 20
	}
	h := a.height - 18
	if h < 4 {
		h = 4
	}
	a.results.Width = w
	a.results.Height = h
}
