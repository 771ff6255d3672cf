package upload

// Phase is the workflow position of the widget.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreviewing
	PhaseAnalyzing
)

func (p Phase) String() string {
	switch p {
	case PhasePreviewing:
		return "previewing"
	case PhaseAnalyzing:
		return "analyzing"
	default:
		return "idle"
	}
}

// Widget is the pure selection/analysis state machine. It owns the single
// SelectedFile and the single AnalysisResult and knows nothing about
// rendering or transport.
//
// Transitions: Idle -> Previewing (Select), Previewing -> Analyzing
// (BeginAnalysis), Analyzing -> Previewing (FinishAnalysis/FailAnalysis),
// any -> Idle (Reset).
type Widget struct {
	maxBytes  int64
	phase     Phase
	file      *SelectedFile
	result    string
	hasResult bool
}

// NewWidget creates an idle widget. maxBytes <= 0 uses MaxBytes.
func NewWidget(maxBytes int64) *Widget {
	if maxBytes <= 0 {
		maxBytes = MaxBytes
	}
	return &Widget{maxBytes: maxBytes}
}

func (w *Widget) Phase() Phase { return w.phase }

// File returns the current selection, if any.
func (w *Widget) File() (SelectedFile, bool) {
	if w.file == nil {
		return SelectedFile{}, false
	}
	return *w.file, true
}

// Result returns the analysis text from the last successful round trip.
func (w *Widget) Result() (string, bool) {
	return w.result, w.hasResult
}

// Select validates a candidate and, on acceptance, replaces the current
// selection wholesale and discards any prior result. A rejected candidate
// leaves all prior state untouched. Selection is refused while an analysis
// is in flight.
func (w *Widget) Select(f SelectedFile) error {
	if w.phase == PhaseAnalyzing {
		return ErrAnalysisInFlight
	}
	if err := Validate(f, w.maxBytes); err != nil {
		return err
	}
	file := f
	w.file = &file
	w.result = ""
	w.hasResult = false
	w.phase = PhasePreviewing
	return nil
}

// BeginAnalysis moves to the analyzing phase. It refuses when nothing is
// selected and ignores a second trigger while a request is outstanding, so
// two requests can never race on the result.
func (w *Widget) BeginAnalysis() error {
	if w.phase == PhaseAnalyzing {
		return ErrAnalysisInFlight
	}
	if w.file == nil {
		return ErrNoFileSelected
	}
	w.result = ""
	w.hasResult = false
	w.phase = PhaseAnalyzing
	return nil
}

// FinishAnalysis records a successful result and returns to previewing.
func (w *Widget) FinishAnalysis(text string) {
	w.result = text
	w.hasResult = true
	w.phase = PhasePreviewing
}

// FailAnalysis returns to previewing with no result; the selection and
// preview stay intact so the user can retry or reset.
func (w *Widget) FailAnalysis() {
	w.result = ""
	w.hasResult = false
	w.phase = PhasePreviewing
}

// Reset clears the selection and result from any phase.
func (w *Widget) Reset() {
	w.file = nil
	w.result = ""
	w.hasResult = false
	w.phase = PhaseIdle
}
