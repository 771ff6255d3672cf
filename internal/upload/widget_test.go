package upload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validFile() SelectedFile {
	return SelectedFile{Name: "cat.png", MediaType: "image/png", Size: 2048, Data: []byte("x")}
}

func TestValidateOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mediaType string
		size      int64
		want      error
	}{
		{"png ok", "image/png", 512, nil},
		{"jpeg at limit", "image/jpeg", MaxBytes, nil},
		{"pdf rejected", "application/pdf", 512, ErrInvalidFileType},
		{"text rejected", "text/plain", 512, ErrInvalidFileType},
		{"oversized image", "image/png", MaxBytes + 1, ErrFileTooLarge},
		// media type is checked before size, so a huge non-image reports type
		{"oversized non-image", "video/mp4", MaxBytes + 1, ErrInvalidFileType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(SelectedFile{MediaType: tc.mediaType, Size: tc.size}, 0)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSelectReplacesAndClearsResult(t *testing.T) {
	t.Parallel()

	w := NewWidget(0)
	require.Equal(t, PhaseIdle, w.Phase())

	require.NoError(t, w.Select(validFile()))
	require.Equal(t, PhasePreviewing, w.Phase())

	require.NoError(t, w.BeginAnalysis())
	w.FinishAnalysis("a fluffy cat")
	_, ok := w.Result()
	require.True(t, ok)

	second := validFile()
	second.Name = "dog.jpg"
	second.MediaType = "image/jpeg"
	require.NoError(t, w.Select(second))

	f, ok := w.File()
	require.True(t, ok)
	require.Equal(t, "dog.jpg", f.Name)
	_, ok = w.Result()
	require.False(t, ok, "new selection must discard the old result")
}

func TestRejectionLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	w := NewWidget(0)
	require.NoError(t, w.Select(validFile()))

	err := w.Select(SelectedFile{Name: "notes.txt", MediaType: "text/plain", Size: 10})
	require.ErrorIs(t, err, ErrInvalidFileType)

	f, ok := w.File()
	require.True(t, ok)
	require.Equal(t, "cat.png", f.Name)
	require.Equal(t, PhasePreviewing, w.Phase())
}

func TestAnalyzeRequiresSelection(t *testing.T) {
	t.Parallel()

	w := NewWidget(0)
	require.ErrorIs(t, w.BeginAnalysis(), ErrNoFileSelected)
}

func TestAnalyzeIsNotReentrant(t *testing.T) {
	t.Parallel()

	w := NewWidget(0)
	require.NoError(t, w.Select(validFile()))
	require.NoError(t, w.BeginAnalysis())

	require.ErrorIs(t, w.BeginAnalysis(), ErrAnalysisInFlight)
	require.ErrorIs(t, w.Select(validFile()), ErrAnalysisInFlight)

	w.FinishAnalysis("done")
	require.NoError(t, w.BeginAnalysis(), "guard must lift once the call settles")
}

func TestFailAnalysisKeepsSelection(t *testing.T) {
	t.Parallel()

	w := NewWidget(0)
	require.NoError(t, w.Select(validFile()))
	require.NoError(t, w.BeginAnalysis())
	w.FailAnalysis()

	require.Equal(t, PhasePreviewing, w.Phase())
	_, ok := w.File()
	require.True(t, ok)
	_, ok = w.Result()
	require.False(t, ok)
}

func TestResetFromAnyPhase(t *testing.T) {
	t.Parallel()

	for _, prep := range []func(w *Widget){
		func(w *Widget) {},
		func(w *Widget) { _ = w.Select(validFile()) },
		func(w *Widget) { _ = w.Select(validFile()); _ = w.BeginAnalysis() },
		func(w *Widget) {
			_ = w.Select(validFile())
			_ = w.BeginAnalysis()
			w.FinishAnalysis(strings.Repeat("x", 40))
		},
	} {
		w := NewWidget(0)
		prep(w)
		w.Reset()
		require.Equal(t, PhaseIdle, w.Phase())
		_, ok := w.File()
		require.False(t, ok)
		_, ok = w.Result()
		require.False(t, ok)
	}
}
