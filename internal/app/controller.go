// Package app implements the screen state machine at the heart of the lab:
// a fixed set of screens, a transition function keyed by action ids coming
// from the input dispatcher, and the session values that survive across
// transitions. All rendering, audio and model side effects go through the
// Stage interface so the machine itself stays headless and testable.
package app

import (
	"log"
	"time"

	"hardware-lab/internal/content"
)

// CameraFraming names the camera configurations screens ask for.
type CameraFraming int

const (
	// FramingIntro is the fixed close framing used by mode selection.
	FramingIntro CameraFraming = iota
	// FramingStage orbits the table's fixed look-at point.
	FramingStage
)

// Sound effect names resolved by the Stage.
const (
	SoundPress    = "press"
	SoundCorrect  = "correct"
	SoundWrong    = "wrong"
	SoundComplete = "complete"
)

// Stage is everything the controller drives but does not own: the widget
// builder, the model lifecycle manager, audio, camera and decorations.
type Stage interface {
	// ShowScreen tears down the previous widget set and builds the one for
	// the given screen from current session state.
	ShowScreen(Screen)

	// LoadModel displays the model behind ref, superseding any in-flight
	// load. Loading the reference that is already displayed is a no-op.
	LoadModel(ref string)
	UnloadModel()

	PlayNarration(ref string)
	StopNarration()
	PlaySound(name string)

	SetAvatarVisible(bool)
	FrameCamera(CameraFraming)

	StartCelebration()
	StopCelebration()

	// EnterVR switches the pointer source to the controller adapter.
	EnterVR()
}

// Controller owns the active Screen and the Session, and maps action ids
// to transitions.
type Controller struct {
	lib      *content.Library
	session  *Session
	stage    Stage
	debounce time.Duration

	screen Screen
}

// NewController wires the state machine. The library's Unlocked flags are
// mutated as the learner progresses; everything else in lib is read-only.
func NewController(lib *content.Library, session *Session, stage Stage, debounce time.Duration) *Controller {
	return &Controller{
		lib:      lib,
		session:  session,
		stage:    stage,
		debounce: debounce,
	}
}

// Screen returns the active screen.
func (c *Controller) Screen() Screen { return c.screen }

// Session exposes the session for the screen builder and tests.
func (c *Controller) Session() *Session { return c.session }

// Start enters the first screen. Name capture has already happened by the
// time this runs.
func (c *Controller) Start() {
	c.transition(ScreenModeSelection)
}

// HandleAction applies one action id to the current state. Unknown actions
// and actions that are meaningless in the current state are logged no-ops;
// the vocabulary is deliberately open so stale widgets can never crash the
// machine.
func (c *Controller) HandleAction(action string) {
	switch action {
	case ActionStartBrowser:
		c.transition(ScreenAvatarGreeting)
	case ActionStartVR:
		c.stage.EnterVR()
		c.transition(ScreenAvatarGreeting)
	case ActionContinueToLanding:
		c.transition(ScreenLanding)
	case ActionStartLearning:
		c.transition(ScreenMenu)
	case ActionShowHelp:
		c.transition(ScreenHelp)
	case ActionCloseHelp:
		c.transition(ScreenLanding)
	case ActionBackToMenu:
		c.transition(ScreenMenu)
	case ActionBackToLanding:
		c.transition(ScreenLanding)

	case ActionNextComponent:
		c.nextComponent()
	case ActionPrevComponent:
		c.prevComponent()
	case ActionNextDescription:
		c.pageDescription(1)
	case ActionPrevDescription:
		c.pageDescription(-1)
	case ActionPlayAudio:
		if comp, ok := c.component(); ok && comp.Audio != "" {
			c.stage.PlayNarration(comp.Audio)
		}

	case ActionShowQuiz:
		c.session.QuizQuestion = 0
		c.session.QuizScore = 0
		c.transition(ScreenQuiz)
	case ActionAnswerCorrect:
		c.session.LastAnswerCorrect = true
		c.session.QuizScore++
		c.stage.PlaySound(SoundCorrect)
		c.transition(ScreenQuizResult)
	case ActionAnswerIncorrect:
		c.session.LastAnswerCorrect = false
		c.stage.PlaySound(SoundWrong)
		c.transition(ScreenQuizResult)
	case ActionNextQuestion:
		c.session.QuizQuestion++
		if c.session.QuizQuestion >= len(c.lib.Quiz) {
			c.session.HasAttemptedQuiz = true
			c.transition(ScreenQuizReport)
		} else {
			c.transition(ScreenQuiz)
		}
	case ActionShowQuizReport:
		c.transition(ScreenQuizReport)

	case ActionMiniQuizCorrect:
		c.session.LastMiniQuizCorrect = true
		c.stage.PlaySound(SoundCorrect)
		c.transition(ScreenMiniQuizResult)
	case ActionMiniQuizIncorrect:
		c.session.LastMiniQuizCorrect = false
		c.stage.PlaySound(SoundWrong)
		c.transition(ScreenMiniQuizResult)
	case ActionContinueMiniQuiz:
		c.continueAfterMiniQuiz()

	case ActionShowCredits:
		c.session.CreditsPage = 0
		c.transition(ScreenCredits)
	case ActionNextCredit:
		if c.session.CreditsPage < len(c.lib.Credits)-1 {
			c.session.CreditsPage++
			c.refresh()
		}
	case ActionPrevCredit:
		if c.session.CreditsPage > 0 {
			c.session.CreditsPage--
			c.refresh()
		}

	case ActionScrollUp, ActionScrollDown, ActionLocked:
		// Local / inert affordances; nothing to do if they arrive here.

	default:
		if i, ok := ParseSelect(action); ok {
			c.selectComponent(i)
			return
		}
		log.Printf("app: ignoring unknown action %q in %s", action, c.screen)
	}
}

func (c *Controller) component() (content.Component, bool) {
	i := c.session.Component
	if i < 0 || i >= len(c.lib.Components) {
		return content.Component{}, false
	}
	return c.lib.Components[i], true
}

// selectComponent jumps to the viewer on component i. The menu never binds
// select actions to locked entries, but the controller re-checks anyway so
// a stale or forged action cannot skip the unlock progression.
func (c *Controller) selectComponent(i int) {
	if i < 0 || i >= len(c.lib.Components) {
		log.Printf("app: select index %d out of range", i)
		return
	}
	if i > c.session.HighestUnlocked {
		log.Printf("app: select_%d refused, component locked", i)
		return
	}
	c.session.SetComponent(i)
	c.transition(ScreenViewer)
}

func (c *Controller) nextComponent() {
	if !c.session.DebounceReady() {
		return
	}
	c.session.ArmDebounce(c.debounce)

	switch {
	case c.session.Component == c.session.HighestUnlocked:
		// At the frontier: the check question gates the next component.
		c.transition(ScreenMiniQuiz)
	case c.session.Component < len(c.lib.Components)-1:
		c.session.SetComponent(c.session.Component + 1)
		c.transition(ScreenViewer)
	default:
		c.transition(ScreenCompletion)
	}
}

func (c *Controller) prevComponent() {
	if !c.session.DebounceReady() {
		return
	}
	c.session.ArmDebounce(c.debounce)

	if c.session.Component <= 0 {
		return
	}
	c.session.SetComponent(c.session.Component - 1)
	c.transition(ScreenViewer)
}

func (c *Controller) continueAfterMiniQuiz() {
	if !c.session.LastMiniQuizCorrect {
		// Wrong answer: back to studying the same component.
		c.transition(ScreenViewer)
		return
	}

	next := c.session.Component + 1
	if next < len(c.lib.Components) {
		c.lib.Components[next].Unlocked = true
		c.session.Unlock(next)
	}
	if c.session.Component >= len(c.lib.Components)-1 {
		c.transition(ScreenCompletion)
		return
	}
	c.session.ArmDebounce(c.debounce)
	c.session.SetComponent(next)
	c.transition(ScreenViewer)
}

// pageDescription moves the page cursor of whichever paginated screen is
// active. Moves past either end are refused, never clamped after the fact.
func (c *Controller) pageDescription(delta int) {
	switch c.screen {
	case ScreenViewer:
		comp, ok := c.component()
		if !ok {
			return
		}
		page := c.session.DescriptionPage + delta
		if page < 0 || page >= len(comp.Description) {
			return
		}
		c.session.DescriptionPage = page
		c.refresh()
	case ScreenAvatarGreeting:
		page := c.session.GreetingPage + delta
		if page < 0 || page >= len(c.lib.Greeting) {
			return
		}
		c.session.GreetingPage = page
		c.refresh()
	}
}

// refresh rebuilds the current screen's widgets in place, for content
// changes (pagination) that are not transitions. Narration keeps playing.
func (c *Controller) refresh() {
	c.stage.ShowScreen(c.screen)
}

// transition is the single exit point for screen changes. Order matters:
// narration always stops first, the model unloads unless the transition is
// inside the viewer family, then the new widget set is built and the
// per-screen side effects are applied.
func (c *Controller) transition(next Screen) {
	prev := c.screen

	c.stage.StopNarration()

	if !keepsModel(prev, next) {
		c.stage.UnloadModel()
	}
	if prev == ScreenCompletion && next != ScreenCompletion {
		c.stage.StopCelebration()
	}

	c.screen = next

	if next == ScreenViewer {
		if comp, ok := c.component(); ok && comp.Model != "" {
			c.stage.LoadModel(comp.Model)
		} else {
			c.stage.UnloadModel()
		}
	}

	c.stage.ShowScreen(next)

	switch next {
	case ScreenLanding, ScreenQuizReport, ScreenAvatarGreeting:
		c.stage.SetAvatarVisible(true)
	default:
		c.stage.SetAvatarVisible(false)
	}

	if next == ScreenModeSelection {
		c.stage.FrameCamera(FramingIntro)
	} else {
		c.stage.FrameCamera(FramingStage)
	}

	if next == ScreenCompletion && prev != ScreenCompletion {
		c.stage.StartCelebration()
		c.stage.PlaySound(SoundComplete)
	}
}
