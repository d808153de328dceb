// Package ui is the terminal front end: it renders the active screen and
// turns keys into hitbox activations.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/versecraft/internal/actions"
	"github.com/DaanHessen/versecraft/internal/app"
	"github.com/DaanHessen/versecraft/internal/i18n"
	"github.com/DaanHessen/versecraft/internal/loop"
	"github.com/DaanHessen/versecraft/internal/screen"
	"github.com/DaanHessen/versecraft/internal/util"
)

// doneMsg carries a finished task's completion back onto the loop.
type doneMsg struct{ done func() }

type model struct {
	ctx   context.Context
	app   *app.App
	queue *loop.Queue

	theme  string
	pal    palette
	styles struct {
		title, bar, hitbox, disabled, notice, help lipgloss.Style
	}

	notice  string
	command bool
	input   string
	width   int
	height  int
}

// newModel builds and boots a session on deps. Blocking work from the
// session is queued and run as tea commands.
func newModel(ctx context.Context, cfg util.Config, deps app.Deps) *model {
	m := &model{ctx: ctx, queue: &loop.Queue{}}
	m.setTheme(cfg.Theme)
	deps.Sched = m.queue
	deps.Notifier = actions.NotifyFunc(func(msg string) { m.notice = msg })
	deps.OnTheme = m.cycleTheme
	m.app = app.New(cfg, deps)
	m.app.Boot(ctx)
	return m
}

func (m *model) setTheme(name string) {
	m.theme = theme(name)
	m.pal = paletteFor(m.theme)
	m.styles.title = lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent)
	m.styles.bar = lipgloss.NewStyle().Bold(true).Foreground(m.pal.AccentAlt)
	m.styles.hitbox = lipgloss.NewStyle().Foreground(m.pal.Text)
	m.styles.disabled = lipgloss.NewStyle().Foreground(m.pal.Muted).Faint(true)
	m.styles.notice = lipgloss.NewStyle().Foreground(m.pal.Warning).
		Border(lipgloss.RoundedBorder()).BorderForeground(m.pal.Border).Padding(0, 1)
	m.styles.help = lipgloss.NewStyle().Foreground(m.pal.Muted)
}

func (m *model) cycleTheme() {
	m.setTheme(nextThemeName(m.theme, 1))
	m.notice = i18n.T("THEME_CHANGED", m.theme)
}

// drain turns queued tasks into commands.
func (m *model) drain() tea.Cmd {
	tasks := m.queue.Drain()
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, t := range tasks {
		task := t
		cmds = append(cmds, func() tea.Msg { return doneMsg{done: task(m.ctx)} })
	}
	return tea.Batch(cmds...)
}

func (m *model) Init() tea.Cmd { return m.drain() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case doneMsg:
		if msg.done != nil {
			msg.done()
		}
		return m, m.drain()
	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return m, tea.Quit
		}
		if m.command {
			m.commandKey(msg)
			return m, m.drain()
		}
		switch k {
		case "q":
			return m, tea.Quit
		case ":":
			m.command = true
			m.input = ""
		case "t":
			m.cycleTheme()
		case "esc":
			m.notice = ""
		default:
			if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
				m.activate(int(k[0] - '1'))
			}
		}
		return m, m.drain()
	}
	return m, nil
}

func (m *model) activate(idx int) {
	hb := m.app.Hitboxes(m.app.Router.Current())
	if idx < 0 || idx >= len(hb) {
		return
	}
	m.notice = ""
	m.app.Activate(hb[idx])
}

func (m *model) commandKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.command = false
	case tea.KeyEnter:
		m.command = false
		m.runCommand(m.input)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

// runCommand handles ":go <screen>", a bare ":<screen>" and ":<n>", which
// activates hitbox n of the current screen.
func (m *model) runCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	target := fields[0]
	if n, err := strconv.Atoi(target); err == nil {
		m.activate(n - 1)
		return
	}
	if target == "go" {
		if len(fields) < 2 {
			return
		}
		target = fields[1]
	}
	target = strings.TrimPrefix(target, "#")
	if m.app.Actions.Go(target) {
		m.notice = ""
		return
	}
	if s, ok := m.app.Router.Suggest(target); ok {
		m.notice = fmt.Sprintf("no screen %q, did you mean %q?", target, s)
		return
	}
	m.notice = fmt.Sprintf("no screen %q", target)
}

func (m *model) View() string {
	w := m.width
	if w <= 0 {
		w = 100
	}
	parts := []string{m.renderTopBar(w), m.renderBody(w), m.renderHitboxes()}
	if m.notice != "" {
		parts = append(parts, m.styles.notice.Render(m.notice))
	}
	parts = append(parts, m.renderBottomBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) renderTopBar(w int) string {
	left := "VERSECRAFT"
	if frag := m.app.Router.Location().Fragment(); frag != "" {
		left += " • #" + frag
	}
	if pack, story, ok := screen.SplitStoryID(m.app.Router.Current()); ok {
		left += " • " + pack + "/" + story
	}
	right := m.theme
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.bar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) renderBody(w int) string {
	md := screenMarkdown(m.app.Doc.ScreenElement(m.app.Router.Current()))
	if md == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(m.pal.Glamour), glamour.WithWordWrap(w-4))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *model) renderHitboxes() string {
	hb := m.app.Hitboxes(m.app.Router.Current())
	if len(hb) == 0 {
		return m.styles.disabled.Render("(nothing to select)")
	}
	var b strings.Builder
	for i, h := range hb {
		line := fmt.Sprintf("[%d] %s", i+1, h.Label)
		style := m.styles.hitbox
		if h.Disabled {
			style = m.styles.disabled
		}
		b.WriteString(style.Render(line))
		if i < len(hb)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *model) renderBottomBar() string {
	if m.command {
		return m.styles.title.Render(":" + m.input + "█")
	}
	return m.styles.help.Render("[1-9] select  [:n] select n  [:] go to screen  [T] theme  [Q] quit")
}
