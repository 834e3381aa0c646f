package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/gamification"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/session"
)

const (
	tabMoodJournal = iota
	tabTasksBadges
	tabChat
	tabBreathe
	tabCount
)

var tabNames = [tabCount]string{"Mood & Journal", "Tasks & Badges", "Chat", "Breathe"}

type model struct {
	sess       *session.Session
	dbFilename string

	tab      int
	width    int
	height   int
	status   string
	err      error
	quitting bool

	moodCursor int
	writing    bool
	noteInput  textinput.Model

	taskCursor   int
	lastUnlocked []gamification.Badge

	chatInput        textinput.Model
	suggestionCursor int
	awaitingReplies  int

	breathRunning bool
	breathRun     int
}

func initModel(sess *session.Session, dbPath string) model {
	note := textinput.New()
	note.Placeholder = "How was your day?"
	note.CharLimit = 512

	msg := textinput.New()
	msg.Placeholder = "Type a message, or pick a suggestion with up/down"
	msg.CharLimit = 512

	current := sess.Mood.Current()
	cursor := 0
	for i, md := range mood.All() {
		if md == current {
			cursor = i
		}
	}

	return model{
		sess:       sess,
		dbFilename: filepath.Base(dbPath),
		moodCursor: cursor,
		noteInput:  note,
		chatInput:  msg,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) typing() bool {
	return m.writing || m.tab == tabChat
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case moodSetMsg:
		m.err = nil
		m.status = fmt.Sprintf("Mood set to %s %s", mood.Label(mood.Mood(msg)), mood.Emoji(mood.Mood(msg)))
		return m, nil

	case entryAddedMsg:
		m.err = nil
		m.status = "Journal entry saved"
		return m, nil

	case taskCompletedMsg:
		m.err = nil
		m.lastUnlocked = msg.unlocked
		m.status = fmt.Sprintf("Completed %q (+%d points)", msg.task.Title, msg.task.Points)
		return m, nil

	case chatSentMsg:
		m.err = nil
		m.awaitingReplies++
		return m, nil

	case chatReplyMsg:
		if m.awaitingReplies > 0 {
			m.awaitingReplies--
		}
		m.suggestionCursor = 0
		return m, nil

	case breathTickMsg:
		if !m.breathRunning || msg.run != m.breathRun {
			return m, nil
		}
		m.sess.Breathing.Tick(1)
		return m, breathTick(m.breathRun)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch {
		case m.writing:
			return m.updateNote(msg)
		case m.tab == tabChat:
			return m.updateChat(msg)
		}

		switch msg.String() {
		case "q":
			return m.quit()
		case "tab":
			return m.switchTab((m.tab + 1) % tabCount)
		case "shift+tab":
			return m.switchTab((m.tab + tabCount - 1) % tabCount)
		}

		switch m.tab {
		case tabMoodJournal:
			return m.updateMoodJournal(msg)
		case tabTasksBadges:
			return m.updateTasks(msg)
		case tabBreathe:
			return m.updateBreathe(msg)
		}
	}

	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.breathRunning = false
	return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)
}

func (m model) switchTab(tab int) (tea.Model, tea.Cmd) {
	m.tab = tab
	m.status = ""
	if tab == tabChat {
		m.chatInput.Focus()
		return m, textinput.Blink
	}
	m.chatInput.Blur()
	return m, nil
}

func (m model) updateMoodJournal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	moods := mood.All()
	switch msg.String() {
	case "left", "h":
		if m.moodCursor > 0 {
			m.moodCursor--
		}
	case "right", "l":
		if m.moodCursor < len(moods)-1 {
			m.moodCursor++
		}
	case "enter":
		return m, setMood(m.sess, moods[m.moodCursor])
	case "n":
		m.writing = true
		m.noteInput.Reset()
		m.noteInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		note := strings.TrimSpace(m.noteInput.Value())
		if note == "" {
			m.status = "Journal note cannot be empty"
			return m, nil
		}
		m.writing = false
		m.noteInput.Blur()
		return m, addEntry(m.sess, note)
	case tea.KeyEsc:
		m.writing = false
		m.noteInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.sess.Game.Tasks()
	switch msg.String() {
	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j":
		if m.taskCursor < len(tasks)-1 {
			m.taskCursor++
		}
	case "enter", " ":
		if len(tasks) > 0 && !tasks[m.taskCursor].Completed {
			return m, completeTask(m.sess, tasks[m.taskCursor].ID)
		}
	}
	return m, nil
}

func (m model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	suggestions := m.sess.Bot.Transcript().Suggestions()
	switch msg.Type {
	case tea.KeyEsc:
		m.chatInput.Reset()
		return m.switchTab(tabMoodJournal)
	case tea.KeyTab:
		return m.switchTab((m.tab + 1) % tabCount)
	case tea.KeyShiftTab:
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	case tea.KeyUp:
		if m.suggestionCursor > 0 {
			m.suggestionCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.suggestionCursor < len(suggestions)-1 {
			m.suggestionCursor++
		}
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" && m.suggestionCursor < len(suggestions) {
			text = suggestions[m.suggestionCursor]
		}
		if text == "" {
			return m, nil
		}
		m.chatInput.Reset()
		return m, sendChat(m.sess, text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m model) updateBreathe(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		m.breathRunning = !m.breathRunning
		m.breathRun++
		if m.breathRunning {
			return m, breathTick(m.breathRun)
		}
	case "r":
		m.breathRunning = false
		m.breathRun++
		m.sess.Breathing.Reset()
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Take care of yourself. Progress saved.\n"
	}

	current := m.sess.Mood.Current()
	title := fmt.Sprintf("Solace %s  feeling %s", mood.Emoji(current), strings.ToLower(mood.Label(current)))
	titleBar := titleStyle(current).Width(m.width).Render(title)

	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		style := tabStyle
		if i == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch m.tab {
	case tabMoodJournal:
		body = m.viewMoodJournal()
	case tabTasksBadges:
		body = m.viewTasksBadges()
	case tabChat:
		body = m.viewChat()
	case tabBreathe:
		body = m.viewBreathe()
	}

	status := m.status
	if m.err != nil {
		status = errorStyle.Render("Error: " + m.err.Error())
	}

	score := m.sess.Score()
	info := fmt.Sprintf("Score %d (%s) • %d pts • level %d • db %s",
		score.Score, score.Band, m.sess.Game.Points(), m.sess.Game.Level(),
		TextStatusColorize(m.dbFilename, m.dbFilename != ""))

	footerText := "tab/shift+tab switch • " + m.keyHelp() + " • ctrl+c quit"
	footerBar := footerStyle.Width(m.width).Render(footerText)

	return strings.Join([]string{titleBar, tabBar, "", body, "", status, info, footerBar}, "\n")
}

func (m model) keyHelp() string {
	switch m.tab {
	case tabMoodJournal:
		if m.writing {
			return "enter save • esc cancel"
		}
		return "←/→ choose mood • enter set • n new entry • q quit"
	case tabTasksBadges:
		return "↑/↓ select • enter complete • q quit"
	case tabChat:
		return "enter send • ↑/↓ suggestion • esc leave"
	case tabBreathe:
		return "space start/pause • r reset • q quit"
	}
	return ""
}

func (m model) viewMoodJournal() string {
	leftWidth, rightWidth := splitWidth(m.width)

	var left strings.Builder
	left.WriteString(subtitleStyle.Render("How are you feeling?") + "\n\n")
	for i, md := range mood.All() {
		label := mood.Emoji(md) + " " + mood.Label(md)
		if i == m.moodCursor {
			left.WriteString(selectedStyle.Render(label) + " ")
		} else {
			left.WriteString(inactiveStyle.Render(label) + " ")
		}
		if i%2 == 1 {
			left.WriteString("\n")
		}
	}
	left.WriteString("\n" + subtitleStyle.Render("Mood trends") + "\n")
	trends := m.sess.Journal.MoodTrends()
	for _, md := range mood.All() {
		left.WriteString(fmt.Sprintf("%s %-9s %d\n", mood.Emoji(md), mood.Label(md), trends[md]))
	}

	var right strings.Builder
	right.WriteString(subtitleStyle.Render("Journal") + "\n\n")
	if m.writing {
		m.noteInput.Width = max(rightWidth-6, 10)
		right.WriteString("New entry: " + m.noteInput.View() + "\n\n")
	}
	entries := m.sess.Journal.Entries()
	if len(entries) == 0 {
		right.WriteString("No entries yet. Press 'n' to write one.\n")
	}
	for _, e := range entries {
		right.WriteString(fmt.Sprintf("%s %s  %s\n", mood.Emoji(e.Mood), e.Date, e.Note))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(leftWidth).Render(left.String()),
		lipgloss.NewStyle().Padding(0, 2).Width(rightWidth).Render(right.String()),
	)
}

func (m model) viewTasksBadges() string {
	leftWidth, rightWidth := splitWidth(m.width)

	var left strings.Builder
	left.WriteString(subtitleStyle.Render("Daily wellness tasks") + "\n\n")
	for i, t := range m.sess.Game.Tasks() {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s (+%d)", check, t.Title, t.Points)
		style := inactiveStyle
		if i == m.taskCursor {
			style = selectedStyle
		}
		left.WriteString(generateLinePointer(i == m.taskCursor, 2) + style.Render(line) + "\n")
	}
	lp := m.sess.Game.LevelProgress()
	left.WriteString(fmt.Sprintf("\nLevel %d  %d/%d\n", lp.Level, lp.PointsIntoLevel, gamification.PointsPerLevel))
	left.WriteString(progressBar(float64(lp.PointsIntoLevel)/gamification.PointsPerLevel*100, 20) + "\n")

	var right strings.Builder
	right.WriteString(subtitleStyle.Render("Badges") + "\n\n")
	for _, b := range m.sess.Game.Badges() {
		pct, _ := m.sess.Game.BadgeProgress(b.ID)
		state := "locked"
		if b.Unlocked {
			state = "unlocked"
		}
		right.WriteString(fmt.Sprintf("%s (%s, %s)\n%s %.0f%%\n\n", b.Name, b.Tier, TextStatusColorize(state, b.Unlocked), progressBar(pct, 20), pct))
	}
	for _, b := range m.lastUnlocked {
		right.WriteString(userStyle.Render("New badge: "+b.Name) + "\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(leftWidth).Render(left.String()),
		lipgloss.NewStyle().Padding(0, 2).Width(rightWidth).Render(right.String()),
	)
}

func (m model) viewChat() string {
	var b strings.Builder
	msgs := m.sess.Bot.Transcript().Messages()

	// Keep the latest messages visible above the input.
	visible := max(m.height-14, 4)
	if len(msgs) > visible {
		msgs = msgs[len(msgs)-visible:]
	}
	for _, msg := range msgs {
		if msg.Sender == chat.SenderUser {
			b.WriteString(userStyle.Render("you: ") + msg.Content + "\n")
			continue
		}
		b.WriteString(botStyle.Render("bot: ") + msg.Content + "\n")
		if msg.ShowActions {
			b.WriteString(footerStyle.Render("     [Book counselor] [Call helpline]") + "\n")
		}
	}
	if m.awaitingReplies > 0 {
		b.WriteString(botStyle.Render("bot is typing...") + "\n")
	}

	if suggestions := m.sess.Bot.Transcript().Suggestions(); len(suggestions) > 0 {
		b.WriteString("\n")
		for i, s := range suggestions {
			style := inactiveStyle
			if i == m.suggestionCursor {
				style = selectedStyle
			}
			b.WriteString(generateLinePointer(i == m.suggestionCursor, 2) + style.Render(s) + "\n")
		}
	}

	m.chatInput.Width = max(m.width-8, 10)
	b.WriteString("\n> " + m.chatInput.View())
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (m model) viewBreathe() string {
	s := m.sess.Breathing.State()

	const maxRadius = 8
	radius := int(s.Scale() * maxRadius)
	var circle strings.Builder
	for y := -radius; y <= radius; y += 2 {
		w := 0
		for x := -2 * radius; x <= 2*radius; x++ {
			if x*x/4+y*y <= radius*radius {
				w++
			}
		}
		circle.WriteString(strings.Repeat(" ", 2*maxRadius-w/2) + strings.Repeat("●", w) + "\n")
	}

	state := "paused"
	if m.breathRunning {
		state = "running"
	}
	text := fmt.Sprintf("%s\n\n%s  %ds left\nCycles completed: %d (%s)",
		circle.String(),
		subtitleStyle.Render(s.Phase.Instruction()),
		s.Remaining(),
		s.Cycles,
		state,
	)
	return lipgloss.NewStyle().Padding(0, 4).Render(text)
}

// ShowTUI runs the terminal UI over sess until the user quits.
func ShowTUI(sess *session.Session, dbPath string) error {
	p := tea.NewProgram(initModel(sess, dbPath), tea.WithAltScreen())
	sess.Bot.OnReply(func(msg chat.Message) {
		p.Send(chatReplyMsg(msg))
	})
	_, err := p.Run()
	return err
}
