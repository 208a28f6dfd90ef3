// Package ui builds the lab's 3D widget sets: flat textured panels and
// buttons floating in front of the camera. Layout is computed first as
// plain data (a Plan), then rendered to engine nodes by the Builder, so
// every screen's geometry and action bindings are testable without a
// window.
package ui

import (
	"fmt"

	"hardware-lab/internal/app"
	"hardware-lab/internal/content"
)

// Shape selects the widget chrome drawn behind its text.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// RGBA is a plain color value; the builder converts it to whatever the
// rasterizer needs.
type RGBA struct {
	R, G, B, A float64
}

// Palette shared by all screens. Button and hover colors follow the
// reference deployment.
var (
	ColorButton = RGBA{0.13, 0.13, 0.13, 0.9}
	ColorHover  = RGBA{0.0, 0.48, 1.0, 0.9}
	ColorLocked = RGBA{0.28, 0.28, 0.28, 0.6}
	ColorPanel  = RGBA{0, 0, 0, 0.8}
	ColorTitle  = RGBA{0, 0, 0, 0}
)

// WidgetSpec describes one widget: its shape, placement on the UI plane
// (x right, y up, in world units), the action it fires, and its colors.
// A spec with an empty Action and no scroll region is decoration only.
type WidgetSpec struct {
	Name   string
	Shape  Shape
	Text   string
	Action string

	X, Y float64
	W, H float64

	Color      RGBA
	HoverColor RGBA

	// FontPx is the text size in texture pixels at the builder's
	// resolution. Zero means the default body size.
	FontPx int
	// Panel widgets wrap text left-aligned instead of centering a label.
	Panel bool

	// Scrollable marks a panel whose content can be taller than its
	// frame. ScrollOf names the scrollable panel a scroll button drives.
	Scrollable bool
	ScrollOf   string
}

// Plan is the full widget layout for one screen.
type Plan struct {
	Screen  app.Screen
	Widgets []WidgetSpec
}

// Planner computes screen layouts. shuffle is consulted once per question
// to decide whether the two answer buttons swap sides; inject a fixed
// function in tests and a rand-backed one in production.
type Planner struct {
	lib     *content.Library
	shuffle func() bool
}

func NewPlanner(lib *content.Library, shuffle func() bool) *Planner {
	if shuffle == nil {
		shuffle = func() bool { return false }
	}
	return &Planner{lib: lib, shuffle: shuffle}
}

// Plan lays out the widget set for a screen given the current session.
func (p *Planner) Plan(screen app.Screen, s *app.Session) Plan {
	plan := Plan{Screen: screen}
	switch screen {
	case app.ScreenModeSelection:
		plan.Widgets = p.modeSelection()
	case app.ScreenAvatarGreeting:
		plan.Widgets = p.avatarGreeting(s)
	case app.ScreenLanding:
		plan.Widgets = p.landing(s)
	case app.ScreenMenu:
		plan.Widgets = p.menu(s)
	case app.ScreenViewer:
		plan.Widgets = p.viewer(s)
	case app.ScreenHelp:
		plan.Widgets = p.help()
	case app.ScreenMiniQuiz:
		plan.Widgets = p.miniQuiz(s)
	case app.ScreenMiniQuizResult:
		plan.Widgets = p.miniQuizResult(s)
	case app.ScreenQuiz:
		plan.Widgets = p.quiz(s)
	case app.ScreenQuizResult:
		plan.Widgets = p.quizResult(s)
	case app.ScreenQuizReport:
		plan.Widgets = p.quizReport(s)
	case app.ScreenCompletion:
		plan.Widgets = p.completion(s)
	case app.ScreenCredits:
		plan.Widgets = p.credits(s)
	}
	return plan
}

func button(name, text, action string, x, y, w, h float64) WidgetSpec {
	return WidgetSpec{
		Name: name, Shape: ShapeRect, Text: text, Action: action,
		X: x, Y: y, W: w, H: h,
		Color: ColorButton, HoverColor: ColorHover,
	}
}

func circle(name, text, action string, x, y, d float64) WidgetSpec {
	return WidgetSpec{
		Name: name, Shape: ShapeCircle, Text: text, Action: action,
		X: x, Y: y, W: d, H: d,
		Color: ColorButton, HoverColor: ColorHover,
	}
}

func title(name, text string, x, y, w, h float64) WidgetSpec {
	return WidgetSpec{
		Name: name, Shape: ShapeRect, Text: text,
		X: x, Y: y, W: w, H: h,
		Color: ColorTitle, HoverColor: ColorTitle, FontPx: 48,
	}
}

func panel(name, text string, x, y, w, h float64) WidgetSpec {
	return WidgetSpec{
		Name: name, Shape: ShapeRect, Text: text, Panel: true,
		X: x, Y: y, W: w, H: h,
		Color: ColorPanel, HoverColor: ColorPanel,
	}
}

func (p *Planner) modeSelection() []WidgetSpec {
	return []WidgetSpec{
		title("title", "Pilih Mode", 0, 2.3, 3, 0.5),
		button("browser", "Browser", app.ActionStartBrowser, 0, 1.8, 1.5, 0.4),
		button("vr", "VR", app.ActionStartVR, 0, 1.3, 1.5, 0.4),
	}
}

func (p *Planner) avatarGreeting(s *app.Session) []WidgetSpec {
	page := clamp(s.GreetingPage, 0, len(p.lib.Greeting)-1)
	widgets := []WidgetSpec{
		panel("greeting", p.lib.Greeting[page], 0, 1.7, 3.5, 0.9),
	}
	if len(p.lib.Greeting) > 1 {
		widgets = append(widgets, pageRow("greeting", page, len(p.lib.Greeting),
			app.ActionPrevDescription, app.ActionNextDescription, 1.05)...)
	}
	widgets = append(widgets,
		button("continue", "Lanjut", app.ActionContinueToLanding, 0, 0.7, 1.2, 0.35))
	return widgets
}

func (p *Planner) landing(s *app.Session) []WidgetSpec {
	widgets := []WidgetSpec{}
	if s.PlayerName != "" {
		widgets = append(widgets,
			title("welcome", fmt.Sprintf("Selamat Datang, %s!", s.PlayerName), 0, 2.2, 3.5, 0.5))
	}
	widgets = append(widgets,
		button("start", "Mulai", app.ActionStartLearning, 0, 1.8, 1.5, 0.4),
		button("help", "Bantuan", app.ActionShowHelp, 0, 1.3, 1.5, 0.4),
		button("credits", "Kredit", app.ActionShowCredits, 0, 0.8, 1.5, 0.4),
	)
	return widgets
}

func (p *Planner) menu(s *app.Session) []WidgetSpec {
	const columns = 3
	const spacingX = 1.5
	const spacingY = 0.3
	const startX = -spacingX
	const startY = 2.0

	widgets := []WidgetSpec{
		title("title", "Pilih Komponen", 0, 2.5, 3, 0.55),
	}
	for i, comp := range p.lib.Components {
		row := i / columns
		col := i % columns
		w := button(fmt.Sprintf("component-%d", i), comp.Label, app.SelectAction(i),
			startX+float64(col)*spacingX, startY-float64(row)*spacingY, 1.3, 0.22)
		if i > s.HighestUnlocked {
			// Locked entries stay visible but inert and muted.
			w.Action = app.ActionLocked
			w.Color = ColorLocked
			w.HoverColor = ColorLocked
		}
		widgets = append(widgets, w)
	}

	rows := (len(p.lib.Components) + columns - 1) / columns
	bottom := startY - float64(rows)*spacingY - 0.1
	allUnlocked := s.HighestUnlocked >= len(p.lib.Components)-1
	if allUnlocked {
		widgets = append(widgets,
			button("final-quiz", "Kuis Akhir", app.ActionShowQuiz, -0.8, bottom, 1.4, 0.3))
	}
	if s.HasAttemptedQuiz {
		widgets = append(widgets,
			button("quiz-report", "Laporan Kuis", app.ActionShowQuizReport, 0.8, bottom, 1.4, 0.3))
	}
	widgets = append(widgets,
		button("back", "Kembali", app.ActionBackToLanding, 0, bottom-0.4, 1.2, 0.3))
	return widgets
}

func (p *Planner) viewer(s *app.Session) []WidgetSpec {
	i := s.Component
	if i < 0 || i >= len(p.lib.Components) {
		return nil
	}
	comp := p.lib.Components[i]
	page := clamp(s.DescriptionPage, 0, len(comp.Description)-1)

	widgets := []WidgetSpec{}

	// Component navigation arrows flank the model.
	if i > 0 {
		widgets = append(widgets, circle("prev", "<", app.ActionPrevComponent, -2.2, 1.0, 0.3))
	}
	widgets = append(widgets, circle("next", ">", app.ActionNextComponent, 2.2, 1.0, 0.3))

	const panelW = 3.0
	const panelH = 0.5
	const panelY = 0.45
	widgets = append(widgets, title("label", comp.Label, -panelW/2+0.75, panelY+panelH/2+0.2, 1.5, 0.3))

	desc := panel("description", comp.Description[page], 0, panelY, panelW, panelH)
	desc.Scrollable = true
	widgets = append(widgets, desc)

	// Scroll affordances ride the panel's right edge.
	scrollX := panelW/2 + 0.25
	up := circle("scroll-up", "^", app.ActionScrollUp, scrollX, panelY+0.12, 0.22)
	up.ScrollOf = "description"
	down := circle("scroll-down", "v", app.ActionScrollDown, scrollX, panelY-0.12, 0.22)
	down.ScrollOf = "description"
	widgets = append(widgets, up, down)

	if len(comp.Description) > 1 {
		widgets = append(widgets, pageRow("description", page, len(comp.Description),
			app.ActionPrevDescription, app.ActionNextDescription, panelY-panelH/2-0.15)...)
	}

	sideX := panelW/2 + 0.25 + 0.5
	if comp.Audio != "" {
		widgets = append(widgets, button("audio", "Audio", app.ActionPlayAudio, sideX, panelY+0.15, 0.7, 0.25))
	}
	widgets = append(widgets, button("menu", "Menu", app.ActionBackToMenu, sideX, panelY-0.15, 0.7, 0.25))
	return widgets
}

// pageRow builds the shared pagination strip: previous and next circles
// that only appear when a move in that direction is possible, plus a
// "current/total" indicator.
func pageRow(prefix string, page, total int, prevAction, nextAction string, y float64) []WidgetSpec {
	row := []WidgetSpec{}
	if page > 0 {
		row = append(row, circle(prefix+"-prev-page", "<", prevAction, -0.6, y, 0.2))
	}
	indicator := title(prefix+"-page", fmt.Sprintf("%d/%d", page+1, total), 0, y, 0.6, 0.2)
	indicator.FontPx = 26
	row = append(row, indicator)
	if page < total-1 {
		row = append(row, circle(prefix+"-next-page", ">", nextAction, 0.6, y, 0.2))
	}
	return row
}

func (p *Planner) help() []WidgetSpec {
	const helpText = "Selamat datang! Jika pakai komputer, klik tombol dengan mouse dan geser untuk memutar model. Jika pakai VR, arahkan laser dan tekan tombol pada controller untuk memilih dan memutar model."
	return []WidgetSpec{
		panel("help", helpText, 0, 1.6, 4, 0.8),
		button("close", "Tutup", app.ActionCloseHelp, 0, 0.9, 1, 0.4),
	}
}

// answerPair lays out the two answer buttons for a question, binding the
// correct answer to correctAction. The left/right placement is shuffled
// per question so the correct answer cannot be memorized by position.
func (p *Planner) answerPair(q *content.Question, correctAction, wrongAction string, y float64) []WidgetSpec {
	actions := [2]string{wrongAction, wrongAction}
	actions[q.Correct] = correctAction

	left, right := 0, 1
	if p.shuffle() {
		left, right = 1, 0
	}
	return []WidgetSpec{
		button("answer-left", q.Answers[left], actions[left], -0.9, y, 1.6, 0.35),
		button("answer-right", q.Answers[right], actions[right], 0.9, y, 1.6, 0.35),
	}
}

func (p *Planner) miniQuiz(s *app.Session) []WidgetSpec {
	comp, ok := componentAt(p.lib, s.Component)
	if !ok || comp.Check == nil {
		// Nothing to ask; offer the continue path as a pass.
		return []WidgetSpec{
			panel("question", "Tidak ada pertanyaan untuk komponen ini.", 0, 1.8, 3.5, 0.5),
			button("continue", "Lanjut", app.ActionMiniQuizCorrect, 0, 1.1, 1.2, 0.35),
		}
	}
	widgets := []WidgetSpec{
		title("title", "Cek Pemahaman", 0, 2.3, 2.5, 0.4),
		panel("question", comp.Check.Prompt, 0, 1.8, 3.5, 0.5),
	}
	return append(widgets, p.answerPair(comp.Check,
		app.ActionMiniQuizCorrect, app.ActionMiniQuizIncorrect, 1.1)...)
}

func (p *Planner) miniQuizResult(s *app.Session) []WidgetSpec {
	text := "Belum tepat. Pelajari lagi komponen ini, ya."
	if s.LastMiniQuizCorrect {
		text = "Benar! Komponen berikutnya terbuka."
	}
	return []WidgetSpec{
		panel("result", text, 0, 1.8, 3, 0.45),
		button("continue", "Lanjut", app.ActionContinueMiniQuiz, 0, 1.2, 1.2, 0.35),
	}
}

func (p *Planner) quiz(s *app.Session) []WidgetSpec {
	i := clamp(s.QuizQuestion, 0, len(p.lib.Quiz)-1)
	q := &p.lib.Quiz[i]
	widgets := []WidgetSpec{
		title("title", fmt.Sprintf("Pertanyaan %d/%d", i+1, len(p.lib.Quiz)), 0, 2.4, 2.5, 0.4),
		panel("question", q.Prompt, 0, 1.8, 3.5, 0.5),
	}
	return append(widgets, p.answerPair(q,
		app.ActionAnswerCorrect, app.ActionAnswerIncorrect, 1.1)...)
}

func (p *Planner) quizResult(s *app.Session) []WidgetSpec {
	text := "Belum tepat."
	if s.LastAnswerCorrect {
		text = "Benar!"
	}
	return []WidgetSpec{
		panel("result", text, 0, 1.8, 2.5, 0.4),
		button("continue", "Lanjut", app.ActionNextQuestion, 0, 1.2, 1.2, 0.35),
	}
}

func (p *Planner) quizReport(s *app.Session) []WidgetSpec {
	text := "Laporan belum tersedia. Kerjakan kuis akhir terlebih dahulu."
	if s.HasAttemptedQuiz {
		text = fmt.Sprintf("Hasil kuis %s: %d dari %d benar.",
			s.PlayerName, s.QuizScore, len(p.lib.Quiz))
	}
	return []WidgetSpec{
		title("title", "Laporan Kuis", 0, 2.3, 2.5, 0.45),
		panel("report", text, 0, 1.8, 3.2, 0.45),
		button("menu", "Menu", app.ActionBackToMenu, 0, 1.2, 1.2, 0.35),
	}
}

func (p *Planner) completion(s *app.Session) []WidgetSpec {
	return []WidgetSpec{
		title("title", fmt.Sprintf("Selamat, %s!", s.PlayerName), 0, 2.4, 3.5, 0.5),
		panel("body", "Kamu sudah mengenal semua komponen komputer. Coba kuis akhir dari menu untuk menguji pemahamanmu!", 0, 1.8, 3.5, 0.5),
		button("menu", "Menu", app.ActionBackToMenu, -0.7, 1.1, 1.2, 0.35),
		button("credits", "Kredit", app.ActionShowCredits, 0.7, 1.1, 1.2, 0.35),
	}
}

func (p *Planner) credits(s *app.Session) []WidgetSpec {
	page := clamp(s.CreditsPage, 0, len(p.lib.Credits)-1)
	widgets := []WidgetSpec{
		title("title", "Kredit", 0, 2.4, 2, 0.45),
		panel("credits", p.lib.Credits[page], 0, 1.7, 3.5, 0.8),
	}
	if len(p.lib.Credits) > 1 {
		widgets = append(widgets, pageRow("credits", page, len(p.lib.Credits),
			app.ActionPrevCredit, app.ActionNextCredit, 1.1)...)
	}
	widgets = append(widgets,
		button("back", "Kembali", app.ActionBackToLanding, 0, 0.7, 1.2, 0.35))
	return widgets
}

func componentAt(lib *content.Library, i int) (content.Component, bool) {
	if i < 0 || i >= len(lib.Components) {
		return content.Component{}, false
	}
	return lib.Components[i], true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
