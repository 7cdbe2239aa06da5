package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/corpus"
	"github.com/pressfeed/newsearch/internal/engine"
	"github.com/pressfeed/newsearch/pkg/config"
)

const maxVisibleResults = 10

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	titleStyle      = lipgloss.NewStyle().Bold(true)
	featuredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	metaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Italic(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	filterStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// debounceMsg fires after the quiet window following a keystroke. Only
// the message carrying the latest sequence number runs a query; earlier
// ones are discarded, which is the whole debounce contract.
type debounceMsg struct {
	seq int
}

// refreshDoneMsg reports the outcome of a manual corpus refresh.
type refreshDoneMsg struct {
	err error
}

// corpusUpdatedMsg arrives from the kafka watcher after an automatic
// refresh.
type corpusUpdatedMsg struct {
	event corpus.UpdateEvent
}

type model struct {
	ctx   context.Context
	eng   *engine.Engine
	cfg   config.SearchConfig
	input textinput.Model

	seq         int
	query       string
	results     []article.ScoredResult
	suggestions []string

	sections   []string
	sectionIdx int // 0 means no section filter

	status     string
	refreshing bool
	width      int
}

func newModel(ctx context.Context, eng *engine.Engine, cfg config.SearchConfig) model {
	input := textinput.New()
	input.Placeholder = "search articles..."
	input.Prompt = "/ "
	input.CharLimit = 120
	input.Focus()

	return model{
		ctx:      ctx,
		eng:      eng,
		cfg:      cfg,
		input:    input,
		sections: eng.Sections(),
		status:   "type to search",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			if m.refreshing {
				return m, nil
			}
			m.refreshing = true
			m.status = "refreshing corpus..."
			return m, m.refreshCmd()
		case "tab":
			m.sectionIdx = (m.sectionIdx + 1) % (len(m.sections) + 1)
			m.runQuery()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.query {
			m.seq++
			seq := m.seq
			return m, tea.Batch(cmd, tea.Tick(m.cfg.DebounceWindow, func(time.Time) tea.Msg {
				return debounceMsg{seq: seq}
			}))
		}
		return m, cmd

	case debounceMsg:
		if msg.seq != m.seq {
			// A newer keystroke reset the window; drop this tick.
			return m, nil
		}
		m.runQuery()
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.status = fmt.Sprintf("refresh failed: %v", msg.err)
		} else {
			m.sections = m.eng.Sections()
			m.status = "corpus refreshed"
			m.runQuery()
		}
		return m, nil

	case corpusUpdatedMsg:
		m.sections = m.eng.Sections()
		m.status = fmt.Sprintf("corpus updated (%s %s)", msg.event.Action, msg.event.ArticleID)
		m.runQuery()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) runQuery() {
	m.query = m.input.Value()
	m.results = m.eng.Search(m.ctx, m.query, m.currentFilters())
	m.suggestions = nil
	if len(m.results) == 0 && strings.TrimSpace(m.query) != "" {
		m.suggestions = m.eng.Suggest(m.ctx, m.query)
	}
	stats := m.eng.Stats()
	m.status = fmt.Sprintf("%d results over %d articles", len(m.results), stats.TotalArticles)
}

func (m *model) currentFilters() *article.Filters {
	if m.sectionIdx == 0 || m.sectionIdx > len(m.sections) {
		return nil
	}
	return &article.Filters{Section: m.sections[m.sectionIdx-1]}
}

func (m model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.eng.Refresh(m.ctx)}
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("newsearch"))
	b.WriteString("  ")
	if f := m.currentFilters(); f != nil {
		b.WriteString(filterStyle.Render("[" + f.Section + "]"))
	} else {
		b.WriteString(metaStyle.Render("[all sections]"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.results) > 0 {
		for i, res := range m.results {
			if i >= maxVisibleResults {
				b.WriteString(metaStyle.Render(fmt.Sprintf("  … %d more\n", len(m.results)-maxVisibleResults)))
				break
			}
			title := res.Title
			if res.Featured {
				title = featuredStyle.Render("★ ") + title
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", titleStyle.Render(title),
				scoreStyle.Render(fmt.Sprintf("(%.0f)", res.Score))))
			b.WriteString(metaStyle.Render(fmt.Sprintf("    %s · %s · %s\n",
				res.Section, res.Author, res.PublishedAt.Format("2006-01-02"))))
		}
	} else if len(m.suggestions) > 0 {
		b.WriteString(metaStyle.Render("  did you mean:\n"))
		for _, s := range m.suggestions {
			b.WriteString("    " + suggestionStyle.Render(s) + "\n")
		}
	} else if strings.TrimSpace(m.query) != "" {
		b.WriteString(metaStyle.Render("  no matches\n"))
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render("tab: section filter · ctrl+r: refresh · esc: quit"))
	return b.String()
}
