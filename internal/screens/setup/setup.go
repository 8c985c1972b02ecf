package setup

import (
	"fmt"
	"math/rand"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/router"
	"github.com/nkapoor/mathex/internal/screen"
	sessionscreen "github.com/nkapoor/mathex/internal/screens/session"
	"github.com/nkapoor/mathex/internal/session"
	"github.com/nkapoor/mathex/internal/store"
	"github.com/nkapoor/mathex/internal/ui/components"
	"github.com/nkapoor/mathex/internal/ui/layout"
	"github.com/nkapoor/mathex/internal/ui/theme"
)

// field identifies one focusable element of the form.
type field int

const (
	fieldTypes field = iota
	fieldDifficulties
	fieldSubMode
	fieldKind
	fieldTables
	fieldRangeMin
	fieldRangeMax
	fieldAmount
)

var targetKinds = []struct {
	kind  string
	label string
}{
	{"multiplicationTable", "Multiplication tables"},
	{"squareRange", "Square range"},
	{"cubeRange", "Cube range"},
}

// SetupScreen collects session settings for one practice mode.
type SetupScreen struct {
	st   *store.Store
	prof *profile.UserProfile
	rng  *rand.Rand
	mode session.Mode

	types         components.CheckList
	difficulties  components.CheckList
	amount        components.TextInput
	tables        components.TextInput
	rangeMin      components.TextInput
	rangeMax      components.TextInput
	kindIdx       int
	adaptiveTimed bool

	focus  int
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup form for the given mode.
func New(st *store.Store, prof *profile.UserProfile, rng *rand.Rand, mode session.Mode) *SetupScreen {
	var typeLabels []string
	for _, t := range questionTypes() {
		typeLabels = append(typeLabels, t.DisplayName())
	}
	var diffLabels []string
	for _, d := range difficultyTiers() {
		diffLabels = append(diffLabels, d.DisplayName())
	}

	s := &SetupScreen{
		st:           st,
		prof:         prof,
		rng:          rng,
		mode:         mode,
		types:        components.NewCheckList(typeLabels, "Multiplication"),
		difficulties: components.NewCheckList(diffLabels, "Easy"),
		amount:       components.NewTextInput(defaultAmount(mode), true, 5),
		tables:       components.NewTextInput("e.g. 2,4-6", true, 24),
		rangeMin:     components.NewTextInput("1", true, 3),
		rangeMax:     components.NewTextInput("20", true, 3),
	}
	s.syncFocus()
	return s
}

func defaultAmount(mode session.Mode) string {
	switch mode {
	case session.ModeFixedTime:
		return "60"
	case session.ModeChallenge:
		return "60"
	default:
		return "10"
	}
}

// fields returns the focusable fields for the current mode, in tab
// order.
func (s *SetupScreen) fields() []field {
	switch s.mode {
	case session.ModeFixedQuestions, session.ModeFixedTime:
		return []field{fieldTypes, fieldDifficulties, fieldAmount}
	case session.ModeAdaptive:
		return []field{fieldTypes, fieldSubMode, fieldAmount}
	case session.ModeChallenge:
		return []field{fieldTypes, fieldAmount}
	case session.ModeTargeted:
		if targetKinds[s.kindIdx].kind == "multiplicationTable" {
			return []field{fieldKind, fieldTables, fieldAmount}
		}
		return []field{fieldKind, fieldRangeMin, fieldRangeMax, fieldAmount}
	}
	return nil
}

func (s *SetupScreen) focused() field {
	fs := s.fields()
	if s.focus >= len(fs) {
		return fs[len(fs)-1]
	}
	return fs[s.focus]
}

// syncFocus propagates the focus index into the components.
func (s *SetupScreen) syncFocus() {
	f := s.focused()
	s.types.Focused = f == fieldTypes
	s.difficulties.Focused = f == fieldDifficulties

	focusInput(&s.amount, f == fieldAmount)
	focusInput(&s.tables, f == fieldTables)
	focusInput(&s.rangeMin, f == fieldRangeMin)
	focusInput(&s.rangeMax, f == fieldRangeMax)
}

func focusInput(t *components.TextInput, on bool) {
	if on {
		t.Model.Focus()
	} else {
		t.Model.Blur()
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return s.mode.DisplayName() + " Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab":
		s.focus = (s.focus + 1) % len(s.fields())
		s.syncFocus()
		return s, nil
	case "shift+tab":
		s.focus = (s.focus - 1 + len(s.fields())) % len(s.fields())
		s.syncFocus()
		return s, nil
	case "enter":
		return s.start()
	case "left", "right":
		switch s.focused() {
		case fieldKind:
			delta := 1
			if kmsg.String() == "left" {
				delta = len(targetKinds) - 1
			}
			s.kindIdx = (s.kindIdx + delta) % len(targetKinds)
			s.focus = 0
			s.syncFocus()
			return s, nil
		case fieldSubMode:
			s.adaptiveTimed = !s.adaptiveTimed
			return s, nil
		}
	case "space", " ":
		if s.focused() == fieldSubMode {
			s.adaptiveTimed = !s.adaptiveTimed
			return s, nil
		}
	}

	var cmd tea.Cmd
	switch s.focused() {
	case fieldTypes:
		s.types, cmd = s.types.Update(msg)
	case fieldDifficulties:
		s.difficulties, cmd = s.difficulties.Update(msg)
	case fieldAmount:
		s.amount, cmd = s.amount.Update(msg)
	case fieldTables:
		s.tables, cmd = s.tables.Update(msg)
	case fieldRangeMin:
		s.rangeMin, cmd = s.rangeMin.Update(msg)
	case fieldRangeMax:
		s.rangeMax, cmd = s.rangeMax.Update(msg)
	}
	return s, cmd
}

// start builds and validates settings, then replaces this screen with
// a live session. Validation failures keep the form up with a message.
func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	settings, err := s.buildSettings()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: sessionscreen.New(s.st, s.prof, s.rng, settings),
		}
	}
}

func (s *SetupScreen) buildSettings() (session.Settings, error) {
	var settings session.Settings
	switch s.mode {
	case session.ModeFixedQuestions:
		count, err := s.amount.NumericValue()
		if err != nil {
			return nil, fmt.Errorf("enter a number of questions")
		}
		settings = session.FixedQuestions{
			Types:        selectedTypes(s.types),
			Difficulties: selectedDifficulties(s.difficulties),
			Count:        count,
		}

	case session.ModeFixedTime:
		secs, err := s.amount.NumericValue()
		if err != nil {
			return nil, fmt.Errorf("enter a time limit in seconds")
		}
		settings = session.FixedTime{
			Types:        selectedTypes(s.types),
			Difficulties: selectedDifficulties(s.difficulties),
			TimeSecs:     secs,
		}

	case session.ModeAdaptive:
		n, err := s.amount.NumericValue()
		if err != nil {
			return nil, fmt.Errorf("enter a number")
		}
		cfg := session.Adaptive{Types: selectedTypes(s.types)}
		if s.adaptiveTimed {
			cfg.TimeSecs = n
		} else {
			cfg.Count = n
		}
		settings = cfg

	case session.ModeChallenge:
		secs, err := s.amount.NumericValue()
		if err != nil {
			return nil, fmt.Errorf("enter a starting clock in seconds")
		}
		settings = session.Challenge{
			Types:    selectedTypes(s.types),
			TimeSecs: secs,
		}

	case session.ModeTargeted:
		count, err := s.amount.NumericValue()
		if err != nil {
			return nil, fmt.Errorf("enter a number of questions")
		}
		cfg := session.Targeted{Count: count}
		switch kind := targetKinds[s.kindIdx].kind; kind {
		case "multiplicationTable":
			cfg.Spec = targetTables(s.tables.Value())
		default:
			lo, err1 := s.rangeMin.NumericValue()
			hi, err2 := s.rangeMax.NumericValue()
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("enter a numeric range")
			}
			cfg.Spec = targetRange(kind, lo, hi)
		}
		settings = cfg

	default:
		return nil, fmt.Errorf("unknown mode %q", s.mode)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(s.mode.DisplayName()))
	b.WriteString("\n\n")

	var sections []string
	for _, f := range s.fields() {
		sections = append(sections, s.renderField(f))
	}
	form := strings.Join(sections, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}

func (s *SetupScreen) renderField(f field) string {
	label := func(text string, focused bool) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if focused {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}

	switch f {
	case fieldTypes:
		return label("Question types", s.types.Focused) + "\n" + s.types.View()
	case fieldDifficulties:
		return label("Difficulties", s.difficulties.Focused) + "\n" + s.difficulties.View()
	case fieldSubMode:
		mode := "by question count"
		if s.adaptiveTimed {
			mode = "by time limit"
		}
		return label("Session length  ◂ "+mode+" ▸", s.focused() == fieldSubMode) + "\n"
	case fieldKind:
		return label("Drill  ◂ "+targetKinds[s.kindIdx].label+" ▸", s.focused() == fieldKind) + "\n"
	case fieldTables:
		return label("Tables", s.focused() == fieldTables) + "\n  " + s.tables.View() + "\n"
	case fieldRangeMin:
		return label("From", s.focused() == fieldRangeMin) + "\n  " + s.rangeMin.View() + "\n"
	case fieldRangeMax:
		return label("To", s.focused() == fieldRangeMax) + "\n  " + s.rangeMax.View() + "\n"
	case fieldAmount:
		text := "Questions"
		switch {
		case s.mode == session.ModeFixedTime || s.mode == session.ModeChallenge:
			text = "Seconds"
		case s.mode == session.ModeAdaptive && s.adaptiveTimed:
			text = "Seconds"
		}
		return label(text, s.focused() == fieldAmount) + "\n  " + s.amount.View() + "\n"
	}
	return ""
}
