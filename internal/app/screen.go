package app

// Screen is one named mode of the UI state machine. Exactly one Screen is
// active at a time; it determines the widget set, camera framing and
// control scheme. The zero value is the pre-name-entry splash, before the
// state machine has started.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenModeSelection
	ScreenAvatarGreeting
	ScreenLanding
	ScreenMenu
	ScreenViewer
	ScreenHelp
	ScreenMiniQuiz
	ScreenMiniQuizResult
	ScreenQuiz
	ScreenQuizResult
	ScreenQuizReport
	ScreenCompletion
	ScreenCredits
)

func (s Screen) String() string {
	switch s {
	case ScreenNone:
		return "None"
	case ScreenModeSelection:
		return "ModeSelection"
	case ScreenAvatarGreeting:
		return "AvatarGreeting"
	case ScreenLanding:
		return "Landing"
	case ScreenMenu:
		return "Menu"
	case ScreenViewer:
		return "Viewer"
	case ScreenHelp:
		return "Help"
	case ScreenMiniQuiz:
		return "MiniQuiz"
	case ScreenMiniQuizResult:
		return "MiniQuizResult"
	case ScreenQuiz:
		return "Quiz"
	case ScreenQuizResult:
		return "QuizResult"
	case ScreenQuizReport:
		return "QuizReport"
	case ScreenCompletion:
		return "Completion"
	case ScreenCredits:
		return "Credits"
	}
	return "Unknown"
}

// keepsModel reports whether a transition from one Screen to another keeps
// the displayed model loaded. The viewer, its check question and the check
// result all show the same component, so swapping between them must not
// flicker the model away; every other transition unloads.
func keepsModel(from, to Screen) bool {
	if from == to {
		return true
	}
	switch {
	case from == ScreenViewer && to == ScreenMiniQuiz:
		return true
	case from == ScreenMiniQuiz && to == ScreenViewer:
		return true
	case from == ScreenViewer && to == ScreenMiniQuizResult:
		return true
	case from == ScreenMiniQuiz && to == ScreenMiniQuizResult:
		return true
	case from == ScreenMiniQuizResult && to == ScreenViewer:
		return true
	}
	return false
}
