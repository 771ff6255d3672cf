package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/pixlens/internal/picker"
	"github.com/jask/pixlens/internal/preview"
	"github.com/jask/pixlens/internal/upload"
)

type fileLoadedMsg struct {
	file upload.SelectedFile
	err  error
}

type previewMsg struct {
	thumb string
	facts preview.Facts
	err   error
}

type analyzeDoneMsg struct {
	// seq identifies which BeginAnalysis this response answers; responses
	// from superseded requests are dropped on arrival
	seq  int
	text string
	err  error
}

type healthMsg struct {
	err error
}

type dialogMsg struct {
	path string
	err  error
}

type browserMsg struct {
	browser *picker.Browser
	err     error
}

type copyDoneMsg struct {
	err error
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := upload.Load(path)
		return fileLoadedMsg{file: f, err: err}
	}
}

func previewCmd(f upload.SelectedFile, width int) tea.Cmd {
	return func() tea.Msg {
		facts, err := preview.Extract(f)
		if err != nil {
			return previewMsg{err: err}
		}
		thumb, err := preview.Thumbnail(f.Data, width)
		if err != nil {
			return previewMsg{err: err}
		}
		return previewMsg{thumb: thumb, facts: facts}
	}
}

func (a *App) analyzeCmd(f upload.SelectedFile, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
		defer cancel()
		text, err := a.client.Analyze(ctx, f)
		// exactly one message per call, so the loading state always clears
		return analyzeDoneMsg{seq: seq, text: text, err: err}
	}
}

func (a *App) healthCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
		defer cancel()
		return healthMsg{err: a.client.Health(ctx)}
	}
}

func dialogCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := picker.NativeDialog(dir)
		return dialogMsg{path: path, err: err}
	}
}

func browseCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		b, err := picker.NewBrowser(dir)
		return browserMsg{browser: b, err: err}
	}
}

func (a *App) copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{err: a.clip.WriteText(text)}
	}
}
