package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/pixlens/internal/config"
	"github.com/jask/pixlens/internal/notify"
	"github.com/jask/pixlens/internal/upload"
)

type fakeAnalyzer struct {
	calls     int
	text      string
	err       error
	healthErr error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ upload.SelectedFile) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeAnalyzer) Health(context.Context) error { return f.healthErr }

type fakeClip struct {
	written []string
	err     error
}

func (f *fakeClip) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, text)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:5000", TimeoutSeconds: 5},
		Upload: config.UploadConfig{MaxBytes: 10 * 1024 * 1024},
		UI:     config.UIConfig{NotificationSeconds: 3, ThumbnailWidth: 20, BrowseDir: "."},
	}
}

func newTestApp(an *fakeAnalyzer, cb *fakeClip) *App {
	return New(context.Background(), testConfig(), an, cb, zerolog.Nop())
}

func stagedFile() upload.SelectedFile {
	return upload.SelectedFile{Name: "cat.png", MediaType: "image/png", Size: 64, Data: []byte("png")}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSelectValidFileShowsPreview(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, cmd := a.Update(fileLoadedMsg{file: stagedFile()})
	require.NotNil(t, cmd, "preview render is kicked off asynchronously")

	require.Equal(t, upload.PhasePreviewing, a.widget.Phase())
	view := a.View()
	require.Contains(t, view, "cat.png")
	require.NotContains(t, view, "Stage an image", "upload surface is hidden once a file is staged")
	require.NotContains(t, view, "Analysis", "no results before the first round trip")
}

func TestSelectInvalidFileKeepsIdle(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	bad := upload.SelectedFile{Name: "notes.txt", MediaType: "text/plain", Size: 10}
	_, _ = a.Update(fileLoadedMsg{file: bad})

	require.Equal(t, upload.PhaseIdle, a.widget.Phase())
	require.Equal(t, 1, a.notes.Len())
	require.Equal(t, notify.LevelError, a.notes.Items()[0].Level)
	require.Contains(t, a.View(), "Stage an image")
}

func TestRejectionKeepsPriorSelection(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})

	huge := upload.SelectedFile{Name: "huge.png", MediaType: "image/png", Size: 11 * 1024 * 1024}
	_, _ = a.Update(fileLoadedMsg{file: huge})

	f, ok := a.widget.File()
	require.True(t, ok)
	require.Equal(t, "cat.png", f.Name)
}

func TestAnalyzeWithoutSelectionNeverCallsServer(t *testing.T) {
	t.Parallel()

	an := &fakeAnalyzer{}
	a := newTestApp(an, &fakeClip{})
	_, _ = a.startAnalysis()

	require.Zero(t, an.calls)
	require.Equal(t, 1, a.notes.Len())
	require.Equal(t, notify.LevelError, a.notes.Items()[0].Level)
}

func TestAnalyzeSuccessShowsResult(t *testing.T) {
	t.Parallel()

	an := &fakeAnalyzer{text: "a striped cat on a sofa"}
	a := newTestApp(an, &fakeClip{})
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})

	_, _ = a.startAnalysis()
	require.Equal(t, upload.PhaseAnalyzing, a.widget.Phase())
	require.Contains(t, a.View(), "analyzing", "loading overlay visible during the call")

	_, _ = a.Update(analyzeDoneMsg{seq: a.analysisSeq, text: "a striped cat on a sofa"})
	require.Equal(t, upload.PhasePreviewing, a.widget.Phase())

	text, ok := a.widget.Result()
	require.True(t, ok)
	require.Equal(t, "a striped cat on a sofa", text)

	view := a.View()
	require.Contains(t, view, "Analysis")
	require.Contains(t, view, "a striped cat on a sofa")
	require.NotContains(t, view, "analyzing image", "loading overlay cleared")
}

func TestAnalyzeFailureKeepsPreviewNoResults(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})
	_, _ = a.startAnalysis()

	_, _ = a.Update(analyzeDoneMsg{seq: a.analysisSeq, err: errors.New("model unavailable")})
	require.Equal(t, upload.PhasePreviewing, a.widget.Phase())

	_, ok := a.widget.Result()
	require.False(t, ok)
	require.NotContains(t, a.View(), "Analysis")

	items := a.notes.Items()
	require.Len(t, items, 1)
	require.Equal(t, notify.LevelError, items[0].Level)
	require.Contains(t, items[0].Message, "model unavailable")
}

func TestSecondAnalyzeTriggerIgnoredWhileInFlight(t *testing.T) {
	t.Parallel()

	an := &fakeAnalyzer{text: "x"}
	a := newTestApp(an, &fakeClip{})
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})
	_, _ = a.startAnalysis()

	_, _ = a.startAnalysis()
	require.Equal(t, 1, a.notes.Len())
	require.Equal(t, upload.PhaseAnalyzing, a.widget.Phase())
}

func TestStaleResponseAfterResetIsDropped(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})
	_, _ = a.startAnalysis()
	seq := a.analysisSeq
	a.reset()

	_, _ = a.Update(analyzeDoneMsg{seq: seq, text: "late answer"})
	require.Equal(t, upload.PhaseIdle, a.widget.Phase())
	_, ok := a.widget.Result()
	require.False(t, ok)
}

func TestSupersededResponseNotAttributedToNewAnalysis(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})
	_, _ = a.startAnalysis()
	firstSeq := a.analysisSeq

	// reset while the first call is in flight, then stage a different image
	// and analyze again
	a.reset()
	dog := upload.SelectedFile{Name: "dog.jpg", MediaType: "image/jpeg", Size: 64, Data: []byte("jpg")}
	_, _ = a.Update(fileLoadedMsg{file: dog})
	_, _ = a.startAnalysis()

	// the first call's response lands now; it must not become dog.jpg's result
	_, _ = a.Update(analyzeDoneMsg{seq: firstSeq, text: "a striped cat on a sofa"})
	require.Equal(t, upload.PhaseAnalyzing, a.widget.Phase())
	_, ok := a.widget.Result()
	require.False(t, ok)

	_, _ = a.Update(analyzeDoneMsg{seq: a.analysisSeq, text: "a golden retriever"})
	require.Equal(t, upload.PhasePreviewing, a.widget.Phase())
	text, ok := a.widget.Result()
	require.True(t, ok)
	require.Equal(t, "a golden retriever", text)
}

func TestResetRestoresUploadSurface(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})
	_, _ = a.startAnalysis()
	_, _ = a.Update(analyzeDoneMsg{seq: a.analysisSeq, text: "result"})

	_, _ = a.Update(keyMsg("r"))
	require.Equal(t, upload.PhaseIdle, a.widget.Phase())
	require.Empty(t, a.dropInput.Value())
	require.Contains(t, a.View(), "Stage an image")
}

func TestCopyWritesExactText(t *testing.T) {
	t.Parallel()

	cb := &fakeClip{}
	a := newTestApp(&fakeAnalyzer{}, cb)
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})
	_, _ = a.startAnalysis()
	_, _ = a.Update(analyzeDoneMsg{seq: a.analysisSeq, text: "exact result text"})

	_, cmd := a.Update(keyMsg("c"))
	require.NotNil(t, cmd)
	_, _ = a.Update(cmd())

	require.Equal(t, []string{"exact result text"}, cb.written)
	items := a.notes.Items()
	require.Equal(t, notify.LevelSuccess, items[len(items)-1].Level)
}

func TestCopyFailureNotifiesError(t *testing.T) {
	t.Parallel()

	cb := &fakeClip{err: errors.New("permission denied")}
	a := newTestApp(&fakeAnalyzer{}, cb)
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})
	_, _ = a.startAnalysis()
	_, _ = a.Update(analyzeDoneMsg{seq: a.analysisSeq, text: "text"})

	_, cmd := a.Update(keyMsg("c"))
	_, _ = a.Update(cmd())

	items := a.notes.Items()
	require.Equal(t, notify.LevelError, items[len(items)-1].Level)
	require.Contains(t, items[len(items)-1].Message, "permission denied")
}

func TestCopyWithoutResultIsSafe(t *testing.T) {
	t.Parallel()

	cb := &fakeClip{}
	a := newTestApp(&fakeAnalyzer{}, cb)
	_, _ = a.Update(fileLoadedMsg{file: stagedFile()})

	_, _ = a.Update(keyMsg("c"))
	require.Empty(t, cb.written)
	require.Equal(t, notify.LevelInfo, a.notes.Items()[0].Level)
}

func TestNotificationExpiry(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, _ = a.Update(healthMsg{err: errors.New("connection refused")})
	require.Equal(t, 1, a.notes.Len())

	id := a.notes.Items()[0].ID
	_, _ = a.Update(notify.ExpiredMsg{ID: id})
	require.Zero(t, a.notes.Len())
}

func TestHealthyProbeIsQuiet(t *testing.T) {
	t.Parallel()

	a := newTestApp(&fakeAnalyzer{}, &fakeClip{})
	_, _ = a.Update(healthMsg{})
	require.Zero(t, a.notes.Len())
}
