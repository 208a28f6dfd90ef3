package app

import "time"

// Session holds every cross-screen value the controller owns. It lives for
// the process lifetime; nothing else mutates it. Keeping the fields in one
// struct gives the screen builder a single read-only view and the tests a
// single point of inspection.
type Session struct {
	// PlayerName is captured before the state machine starts and is
	// read-only afterwards.
	PlayerName string

	// Component is the index of the component shown by the viewer-family
	// screens, or -1 when none is selected.
	Component int
	// DescriptionPage is the 0-based cursor into the current component's
	// description pages. It resets to 0 whenever Component changes.
	DescriptionPage int
	// GreetingPage and CreditsPage are the cursors for the avatar greeting
	// and credits screens.
	GreetingPage int
	CreditsPage  int

	// HighestUnlocked only ever grows; a component i is selectable from
	// the menu iff i <= HighestUnlocked.
	HighestUnlocked int

	QuizQuestion     int
	QuizScore        int
	HasAttemptedQuiz bool

	LastAnswerCorrect   bool
	LastMiniQuizCorrect bool

	now           func() time.Time
	cooldownUntil time.Time
}

// NewSession creates the session for a named player. clock is injected so
// the transition debounce is testable without real timers; pass time.Now
// in production.
func NewSession(playerName string, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		PlayerName: playerName,
		Component:  -1,
		now:        clock,
	}
}

// DebounceReady reports whether the component-change cooldown has expired.
func (s *Session) DebounceReady() bool {
	return !s.now().Before(s.cooldownUntil)
}

// ArmDebounce starts the cooldown window. Calls to DebounceReady within d
// of now return false.
func (s *Session) ArmDebounce(d time.Duration) {
	s.cooldownUntil = s.now().Add(d)
}

// Unlock raises HighestUnlocked to at least i. It never lowers it.
func (s *Session) Unlock(i int) {
	if i > s.HighestUnlocked {
		s.HighestUnlocked = i
	}
}

// SetComponent moves the component cursor and resets the description page.
func (s *Session) SetComponent(i int) {
	s.Component = i
	s.DescriptionPage = 0
}
