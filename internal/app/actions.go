package app

import (
	"strconv"
	"strings"
)

// Action identifiers are the vocabulary between the input dispatcher and
// the controller. They are plain strings so screens can bind them to
// widgets without the UI layer importing transition logic.
const (
	ActionStartBrowser      = "start_browser"
	ActionStartVR           = "start_vr"
	ActionContinueToLanding = "continue_to_landing"
	ActionStartLearning     = "start_learning"
	ActionShowHelp          = "show_help"
	ActionCloseHelp         = "close_help"
	ActionBackToMenu        = "back_to_menu"
	ActionBackToLanding     = "back_to_landing"
	ActionNextComponent     = "next_component"
	ActionPrevComponent     = "prev_component"
	ActionNextDescription   = "next_description"
	ActionPrevDescription   = "prev_description"
	ActionPlayAudio         = "play_audio"
	ActionShowQuiz          = "show_quiz"
	ActionAnswerCorrect     = "answer_correct"
	ActionAnswerIncorrect   = "answer_incorrect"
	ActionNextQuestion      = "next_question"
	ActionShowQuizReport    = "show_quiz_report"
	ActionMiniQuizCorrect   = "mini_quiz_correct"
	ActionMiniQuizIncorrect = "mini_quiz_incorrect"
	ActionContinueMiniQuiz  = "continue_after_mini_quiz"
	ActionShowCredits       = "show_credits"
	ActionNextCredit        = "next_credit"
	ActionPrevCredit        = "prev_credit"

	// Handled locally by the dispatcher; never forwarded to the controller.
	ActionScrollUp   = "scroll_up"
	ActionScrollDown = "scroll_down"
	ActionLocked     = "locked"
)

const selectPrefix = "select_"

// SelectAction returns the action id that jumps straight to the viewer on
// component i (bound to unlocked menu entries).
func SelectAction(i int) string {
	return selectPrefix + strconv.Itoa(i)
}

// ParseSelect extracts the component index from a select_<i> action.
func ParseSelect(action string) (int, bool) {
	rest, ok := strings.CutPrefix(action, selectPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
