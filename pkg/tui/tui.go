package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/calendar"
	"github.com/unowned-ai/eduquest/pkg/flashcards"
	"github.com/unowned-ai/eduquest/pkg/notes"
	"github.com/unowned-ai/eduquest/pkg/records"
)

type screen int

const (
	screenLogin screen = iota
	screenCalendar
	screenFlashcards
	screenNotes
)

type model struct {
	ctx   context.Context
	app   *app.App
	state *app.State

	screen   screen
	width    int // Current terminal width (for layout)
	height   int // Current terminal height
	err      error
	status   string // One line of feedback shown above the footer
	quitting bool

	loginStep  int // 0 = username, 1 = password
	loginError string
	userInput  textinput.Model
	passInput  textinput.Model

	grid        calendar.Grid
	cellCursor  int // Index into the 42 grid cells, always an in-month day
	dayEvents   []records.Event
	eventCursor int
	eventsFocus bool
	upcoming    []calendar.Notice

	eventAdding           bool
	eventAddingStep       int // 0 = title, 1 = time
	eventAddingError      string
	eventTitleInput       textinput.Model
	eventTimeInput        textinput.Model
	eventDeleting         bool
	eventDeleteConfirmIdx int // 0 = "Yes" selected, 1 = "No"

	deck            *flashcards.Deck
	cardAdding      bool
	cardAddingStep  int // 0 = front, 1 = back
	cardAddingError string
	cardFrontInput  textinput.Model
	cardBackInput   textinput.Model

	searchInput textinput.Model
	noteList    []notes.Note
	noteCursor  int
	currentNote notes.Note

	// Animation state
	marqueeOffset int
	marqueeTimer  int
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

// Initialize TUI model
func initModel(ctx context.Context, a *app.App) model {
	user := newInput("Username", 64)
	user.Focus()
	pass := newInput("Password", 64)
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return model{
		ctx:    ctx,
		app:    a,
		state:  app.NewState(a.Now()),
		screen: screenLogin,

		userInput: user,
		passInput: pass,

		eventTitleInput: newInput("Event title", 500),
		eventTimeInput:  newInput("HH:MM (optional)", 5),
		cardFrontInput:  newInput("Question", 256),
		cardBackInput:   newInput("Answer", 512),
		searchInput:     newInput("Search note titles", 128),
	}
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Tick(marqueeTickDuration, func(t time.Time) tea.Msg {
			return t
		}),
	)
}

func (m model) selectedCell() calendar.Cell {
	return m.grid.Cells[m.cellCursor/calendar.Columns][m.cellCursor%calendar.Columns]
}

func (m model) selectedDate() string {
	return m.selectedCell().Day
}

// Reload whatever the current screen shows
func (m model) refresh() tea.Cmd {
	switch m.screen {
	case screenCalendar:
		return tea.Batch(loadMonth(m.ctx, m.app, m.state.Month), loadUpcoming(m.ctx, m.app))
	case screenFlashcards:
		return loadDeck(m.ctx, m.app)
	case screenNotes:
		return searchNotes(m.ctx, m.app, m.searchInput.Value())
	}
	return nil
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case gridMsg:
		sameMonth := m.grid.Year == msg.Year && m.grid.Month == msg.Month
		m.grid = calendar.Grid(msg)
		if !sameMonth {
			m.cellCursor = m.defaultCell()
		}
		m.eventsFocus = false
		return m, loadDayEvents(m.ctx, m.app, m.selectedDate())

	case dayEventsMsg:
		// Ignore answers for a day the cursor already left
		if msg.date != m.selectedDate() {
			return m, nil
		}
		m.dayEvents = msg.events
		if m.eventCursor >= len(m.dayEvents) {
			m.eventCursor = max(len(m.dayEvents)-1, 0)
		}
		if len(m.dayEvents) == 0 {
			m.eventsFocus = false
		}
		return m, nil

	case upcomingMsg:
		m.upcoming = msg
		return m, nil

	case deckMsg:
		m.deck = msg.deck
		return m, nil

	case notesMsg:
		m.noteList = msg
		if m.noteCursor >= len(m.noteList) {
			m.noteCursor = max(len(m.noteList)-1, 0)
		}
		if len(m.noteList) == 0 {
			m.currentNote = notes.Note{}
			return m, nil
		}
		return m, loadNote(m.ctx, m.app, m.noteList[m.noteCursor].ID)

	case noteMsg:
		m.currentNote = notes.Note(msg)
		return m, nil

	case statusMsg:
		m.status = msg.text
		if msg.reload {
			return m, m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenCalendar:
			return m.updateCalendar(msg)
		case screenFlashcards:
			return m.updateFlashcards(msg)
		case screenNotes:
			return m.updateNotes(msg)
		}

	case time.Time:
		// Update marquee animation every x ticks (adjust for speed)
		m.marqueeTimer++
		if m.marqueeTimer >= 10 {
			m.marqueeTimer = 0
			m.marqueeOffset++
		}
		return m, tea.Tick(marqueeTickDuration, func(t time.Time) tea.Msg {
			return t
		})
	}

	return m, nil
}

// Close a running activity so its time is kept, then leave
func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.app.ActivityOpen() {
		m.status = m.stopActivity()
	}
	// Exit alt screen before quitting so the goodbye message displays
	return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)
}

// Today's cell when it is on the grid, otherwise the 1st of the month
func (m model) defaultCell() int {
	first := -1
	for i, cell := range m.grid.Flat() {
		if !cell.InMonth {
			continue
		}
		if cell.IsToday {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return max(first, 0)
}

func (m model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.quit()

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.loginStep = 1 - m.loginStep
		m.focusLogin()
		return m, nil

	case tea.KeyEnter:
		if m.loginStep == 0 {
			m.loginStep = 1
			m.focusLogin()
			return m, nil
		}
		if err := m.state.Login(strings.TrimSpace(m.userInput.Value()), m.passInput.Value()); err != nil {
			m.loginError = err.Error()
			m.passInput.Reset()
			return m, nil
		}
		m.loginError = ""
		m.userInput.Blur()
		m.passInput.Blur()
		m.passInput.Reset()
		m.screen = screenCalendar
		m.status = "Welcome back, " + m.userInput.Value()
		return m, m.refresh()
	}

	var cmd tea.Cmd
	if m.loginStep == 0 {
		m.userInput, cmd = m.userInput.Update(msg)
	} else {
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}

func (m *model) focusLogin() {
	if m.loginStep == 0 {
		m.passInput.Blur()
		m.userInput.Focus()
		return
	}
	m.userInput.Blur()
	m.passInput.Focus()
}

func (m model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.eventAdding {
		switch msg.Type {
		case tea.KeyEnter:
			if m.eventAddingStep == 0 {
				if strings.TrimSpace(m.eventTitleInput.Value()) == "" {
					m.eventAddingError = "Event title cannot be empty"
					return m, nil
				}
				m.eventAddingError = ""
				m.eventAddingStep = 1
				m.eventTitleInput.Blur()
				m.eventTimeInput.Focus()
				return m, nil
			}
			at := strings.TrimSpace(m.eventTimeInput.Value())
			if at != "" {
				if _, err := time.Parse(records.TimeLayout, at); err != nil {
					m.eventAddingError = "Time must be HH:MM"
					return m, nil
				}
			}
			in := app.EventInput{
				Title: m.eventTitleInput.Value(),
				Date:  m.selectedDate(),
				Time:  at,
			}
			m.resetEventForm()
			return m, addEvent(m.ctx, m.app, in)

		case tea.KeyEsc:
			m.resetEventForm()
			return m, nil
		}

		var cmd tea.Cmd
		if m.eventAddingStep == 0 {
			m.eventTitleInput, cmd = m.eventTitleInput.Update(msg)
		} else {
			m.eventTimeInput, cmd = m.eventTimeInput.Update(msg)
		}
		return m, cmd
	}

	if m.eventDeleting {
		switch msg.String() {
		case "up", "k":
			m.eventDeleteConfirmIdx = 0
		case "down", "j":
			m.eventDeleteConfirmIdx = 1
		case "enter":
			m.eventDeleting = false
			if m.eventDeleteConfirmIdx == 0 {
				return m, deleteEvent(m.ctx, m.app, m.dayEvents[m.eventCursor])
			}
		case "esc":
			m.eventDeleting = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m.quit()

	case "left", "h":
		return m.moveCell(-1)
	case "right", "l":
		return m.moveCell(1)

	case "up", "k":
		if m.eventsFocus {
			if m.eventCursor > 0 {
				m.eventCursor--
			}
			return m, nil
		}
		return m.moveCell(-calendar.Columns)

	case "down", "j":
		if m.eventsFocus {
			if m.eventCursor < len(m.dayEvents)-1 {
				m.eventCursor++
			}
			return m, nil
		}
		return m.moveCell(calendar.Columns)

	case "enter", "tab":
		if len(m.dayEvents) > 0 {
			m.eventsFocus = !m.eventsFocus
		}
		return m, nil

	case "esc":
		m.eventsFocus = false
		return m, nil

	case "[", "pgup":
		m.state.PrevMonth()
		return m, m.refresh()

	case "]", "pgdown":
		m.state.NextMonth()
		return m, m.refresh()

	case "t":
		m.state.Month = calendar.FirstOfMonth(m.app.Now())
		return m, m.refresh()

	case "a":
		m.resetEventForm()
		m.eventTitleInput.Focus()
		m.eventAdding = true
		return m, nil

	case "d":
		if m.eventsFocus && len(m.dayEvents) > 0 {
			m.eventDeleteConfirmIdx = 1
			m.eventDeleting = true
		}
		return m, nil

	case "f":
		return m.openActivity(records.SessionTypeFlashcards, screenFlashcards)

	case "s":
		m.searchInput.Reset()
		m.searchInput.Focus()
		m.noteCursor = 0
		m.currentNote = notes.Note{}
		return m.openActivity(records.SessionTypeNotes, screenNotes)

	case "o":
		m.state.Logout()
		m.screen = screenLogin
		m.loginStep = 0
		m.userInput.Reset()
		m.focusLogin()
		m.status = ""
		return m, nil
	}
	return m, nil
}

// Move the day cursor, staying inside the shown month
func (m model) moveCell(delta int) (tea.Model, tea.Cmd) {
	target := m.cellCursor + delta
	if target < 0 || target >= calendar.CellCount {
		return m, nil
	}
	if !m.grid.Cells[target/calendar.Columns][target%calendar.Columns].InMonth {
		return m, nil
	}
	m.cellCursor = target
	m.eventsFocus = false
	m.eventCursor = 0
	m.dayEvents = nil
	return m, loadDayEvents(m.ctx, m.app, m.selectedDate())
}

func (m *model) resetEventForm() {
	m.eventAdding = false
	m.eventAddingStep = 0
	m.eventAddingError = ""
	m.eventTitleInput.Reset()
	m.eventTimeInput.Reset()
	m.eventTitleInput.Blur()
	m.eventTimeInput.Blur()
}

// Start timing an activity and switch to its screen
func (m model) openActivity(kind string, next screen) (tea.Model, tea.Cmd) {
	if err := m.app.OpenActivity(kind); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = kind + " session started"
	m.screen = next
	return m, m.refresh()
}

// Stop the activity and return to the calendar
func (m model) closeActivity() (tea.Model, tea.Cmd) {
	m.screen = screenCalendar
	m.searchInput.Blur()
	m.status = m.stopActivity()
	return m, m.refresh()
}

// Close the tracker from Update, never from a command goroutine
func (m model) stopActivity() string {
	summary, err := m.app.CloseActivity(m.ctx)
	if err != nil {
		return err.Error()
	}
	return summary.Message()
}

func (m model) updateFlashcards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.cardAdding {
		switch msg.Type {
		case tea.KeyEnter:
			if m.cardAddingStep == 0 {
				front := strings.TrimSpace(m.cardFrontInput.Value())
				if front == "" {
					m.cardAddingError = "Question cannot be empty"
					return m, nil
				}
				if _, err := flashcards.Encode(front, "?"); err != nil {
					m.cardAddingError = fmt.Sprintf("Question cannot contain %q", flashcards.Separator)
					return m, nil
				}
				m.cardAddingError = ""
				m.cardAddingStep = 1
				m.cardFrontInput.Blur()
				m.cardBackInput.Focus()
				return m, nil
			}
			if strings.TrimSpace(m.cardBackInput.Value()) == "" {
				m.cardAddingError = "Answer cannot be empty"
				return m, nil
			}
			in := app.FlashcardInput{Front: m.cardFrontInput.Value(), Back: m.cardBackInput.Value()}
			m.resetCardForm()
			return m, tea.Sequence(addFlashcard(m.ctx, m.app, in), loadDeck(m.ctx, m.app))

		case tea.KeyEsc:
			m.resetCardForm()
			return m, nil
		}

		var cmd tea.Cmd
		if m.cardAddingStep == 0 {
			m.cardFrontInput, cmd = m.cardFrontInput.Update(msg)
		} else {
			m.cardBackInput, cmd = m.cardBackInput.Update(msg)
		}
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		return m.closeActivity()
	case " ", "enter", "up", "down", "k", "j":
		if m.deck != nil {
			m.deck.Flip()
		}
	case "right", "l":
		if m.deck != nil {
			m.deck.Next()
		}
	case "left", "h":
		if m.deck != nil {
			m.deck.Prev()
		}
	case "a":
		m.resetCardForm()
		m.cardFrontInput.Focus()
		m.cardAdding = true
	}
	return m, nil
}

func (m *model) resetCardForm() {
	m.cardAdding = false
	m.cardAddingStep = 0
	m.cardAddingError = ""
	m.cardFrontInput.Reset()
	m.cardBackInput.Reset()
	m.cardFrontInput.Blur()
	m.cardBackInput.Blur()
}

func (m model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closeActivity()

	case tea.KeyUp:
		if m.noteCursor > 0 {
			m.noteCursor--
			return m, loadNote(m.ctx, m.app, m.noteList[m.noteCursor].ID)
		}
		return m, nil

	case tea.KeyDown:
		if m.noteCursor < len(m.noteList)-1 {
			m.noteCursor++
			return m, loadNote(m.ctx, m.app, m.noteList[m.noteCursor].ID)
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.noteCursor = 0
		return m, tea.Batch(cmd, searchNotes(m.ctx, m.app, m.searchInput.Value()))
	}
	return m, cmd
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Closing EduQuest... Study time saved.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	titleBar := titleStyle.Width(m.width).Render("EduQuest - study organizer")

	var body, footerText string
	switch m.screen {
	case screenLogin:
		body = m.loginView()
		footerText = "tab to switch field • enter to log in • esc to quit"
	case screenCalendar:
		body = m.calendarView()
		footerText = "←/→/↑/↓ to move • [/] month • t today • enter to focus events • a add • d delete • f flashcards • s notes • o log out • q quit"
	case screenFlashcards:
		body = m.flashcardsView()
		footerText = "space to flip • ←/→ to browse • a add card • esc to finish"
	case screenNotes:
		body = m.notesView()
		footerText = "type to search • ↑/↓ to navigate • esc to finish"
	}

	statusLine := ""
	if m.status != "" {
		statusLine = "\n" + TextStatusColorize(m.status, 1)
	}
	footerBar := footerStyle.Width(m.width).Render("\n" + footerText)

	return titleBar + "\n\n" + body + statusLine + footerBar
}

func (m model) loginView() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Log in") + "\n\n")
	b.WriteString(labelStyle.Render("Username: ") + m.userInput.View() + "\n")
	b.WriteString(labelStyle.Render("Password: ") + m.passInput.View() + "\n")
	if m.loginError != "" {
		b.WriteString("\n" + textRedStyle.Render(m.loginError) + "\n")
	}
	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}

func (m model) calendarView() string {
	leftWidth, rightWidth := m.columnWidths()
	panelHeight := max(m.height-6, 0)

	var left strings.Builder
	left.WriteString(subtitleStyle.Render(m.state.Month.Format("January 2006")) + "\n\n")
	for _, name := range calendar.Weekdays {
		left.WriteString(weekdayStyle.Render(fmt.Sprintf(" %-4s", name[:2])))
	}
	left.WriteString("\n")
	for i, cell := range m.grid.Flat() {
		left.WriteString(m.cellView(i, cell))
		if i%calendar.Columns == calendar.Columns-1 {
			left.WriteString("\n")
		}
	}

	left.WriteString("\n" + subtitleStyle.Render("Upcoming") + "\n")
	if len(m.upcoming) == 0 {
		left.WriteString(TextStatusColorize("Nothing today or tomorrow", 0) + "\n")
	}
	for _, n := range m.upcoming {
		left.WriteString(truncate(n.Label(), leftWidth-bordersAndPaddingWidth) + "\n")
	}

	leftPanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(leftWidth).Height(panelHeight).
		Render(left.String())

	var right strings.Builder
	switch {
	case m.eventAdding:
		right.WriteString(subtitleStyle.Render("Add event on "+m.selectedDate()) + "\n\n")
		m.eventTitleInput.Width = rightWidth - bordersAndPaddingWidth*3
		right.WriteString(labelStyle.Render("Title: ") + m.eventTitleInput.View() + "\n")
		right.WriteString(labelStyle.Render("Time:  ") + m.eventTimeInput.View() + "\n\n")
		right.WriteString("(enter to submit, esc to cancel)")
		if m.eventAddingError != "" {
			right.WriteString("\n\n" + textRedStyle.Render(m.eventAddingError) + "\n")
		}

	case m.eventDeleting:
		right.WriteString(subtitleStyle.Render("Delete event") + "\n\n")
		right.WriteString("Title: " + textRedStyle.Render(m.dayEvents[m.eventCursor].Title) + "\n\n")
		right.WriteString(confirmOptions(m.eventDeleteConfirmIdx))
		right.WriteString("(enter to confirm, esc to cancel, up/down to switch)")

	default:
		heading := "Events"
		if cell := m.selectedCell(); !cell.Date.IsZero() {
			heading = "Events on " + cell.Date.Format("Monday, January 2")
		}
		right.WriteString(subtitleStyle.Render(heading) + "\n\n")
		if len(m.dayEvents) == 0 {
			right.WriteString("No events. Press 'a' to add one.\n")
		}
		for i, ev := range m.dayEvents {
			focused := m.eventsFocus && i == m.eventCursor
			at := ev.Time
			if at == "" {
				at = "--:--"
			}
			line := truncate(at+"  "+ev.Title, rightWidth-bordersAndPaddingWidth-2)
			if focused {
				line = selectedStyle.Render(line)
			} else {
				line = inactiveStyle.Render(line)
			}
			right.WriteString(generateLinePointer(focused, 2) + line + "\n")
		}
	}

	rightPanel := lipgloss.NewStyle().Padding(0, 2).
		Width(rightWidth).Height(panelHeight).
		Render(right.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
}

// One grid cell; days outside the month stay blank
func (m model) cellView(i int, cell calendar.Cell) string {
	if !cell.InMonth {
		return strings.Repeat(" ", gridCellWidth)
	}
	mark := " "
	if len(cell.Events) > 0 {
		mark = "•"
	}
	text := fmt.Sprintf(" %2d", cell.Date.Day())
	switch {
	case i == m.cellCursor:
		return selectedStyle.Render(text+mark) + " "
	case cell.IsToday:
		return todayStyle.Render(text) + eventMarkStyle.Render(mark) + " "
	default:
		return inactiveStyle.Render(text) + eventMarkStyle.Render(mark) + " "
	}
}

func (m model) flashcardsView() string {
	var b strings.Builder
	if m.cardAdding {
		b.WriteString(subtitleStyle.Render("Add flashcard") + "\n\n")
		b.WriteString(labelStyle.Render("Question: ") + m.cardFrontInput.View() + "\n")
		b.WriteString(labelStyle.Render("Answer:   ") + m.cardBackInput.View() + "\n\n")
		b.WriteString("(enter to submit, esc to cancel)")
		if m.cardAddingError != "" {
			b.WriteString("\n\n" + textRedStyle.Render(m.cardAddingError) + "\n")
		}
		return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
	}

	deck := m.deck
	if deck == nil {
		deck = flashcards.NewDeck(nil)
	}
	side := "Question"
	if deck.ShowingBack() {
		side = "Answer"
	}
	b.WriteString(subtitleStyle.Render("Flashcards "+deck.Position()) + "\n\n")
	cardWidth := max(min(m.width-bordersAndPaddingWidth*2, 60), 20)
	b.WriteString(cardStyle.Width(cardWidth).Render(deck.Face()) + "\n")
	if !deck.Empty() {
		b.WriteString(TextStatusColorize(side, 0) + "\n")
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (m model) notesView() string {
	leftWidth, rightWidth := m.columnWidths()
	panelHeight := max(m.height-6, 0)

	var left strings.Builder
	left.WriteString(subtitleStyle.Render("Notes") + "\n\n")
	m.searchInput.Width = leftWidth - bordersAndPaddingWidth*2
	left.WriteString(m.searchInput.View() + "\n\n")
	if len(m.noteList) == 0 {
		left.WriteString("No notes found.\n")
	}
	available := leftWidth - bordersAndPaddingWidth - 3
	for i, n := range m.noteList {
		selected := i == m.noteCursor
		if selected {
			left.WriteString(generateLinePointer(true, 2) + selectedStyle.Render(m.marqueeText(n.Title, available)) + "\n")
			continue
		}
		left.WriteString(generateLinePointer(false, 2) + inactiveStyle.Render(truncate(n.Title, available)) + "\n")
	}
	leftPanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(leftWidth).Height(panelHeight).
		Render(left.String())

	var right strings.Builder
	if m.currentNote.ID == "" {
		right.WriteString("Select a note to read it.")
	} else {
		right.WriteString(labelStyle.Bold(true).Render("Title: ") + inactiveStyle.Render(m.currentNote.Title) + "\n\n")
		right.WriteString(inactiveStyle.Render(m.currentNote.Body))
	}
	rightPanel := lipgloss.NewStyle().Padding(0, 2).
		Width(rightWidth).Height(panelHeight).
		Render(right.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
}

// Create and start the Bubble Tea TUI
func ShowTUI(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(initModel(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
