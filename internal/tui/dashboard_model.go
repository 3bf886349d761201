package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecoplate/internal/greenops"
	"github.com/rshade/ecoplate/internal/trends"
)

// ViewState is the dashboard's current display state.
type ViewState int

const (
	// ViewStateLoading waits for dashboard data.
	ViewStateLoading ViewState = iota
	// ViewStateReady shows the dashboard.
	ViewStateReady
	// ViewStateError shows a load failure.
	ViewStateError
	// ViewStateQuitting is set once the user quits.
	ViewStateQuitting
)

// Tab is one dashboard panel.
type Tab int

// Dashboard panels, in display order.
const (
	TabTrends Tab = iota
	TabContributors
	TabInsights
	numTabs
)

func (t Tab) String() string {
	switch t {
	case TabTrends:
		return "추세"
	case TabContributors:
		return "주요 배출원"
	case TabInsights:
		return "인사이트"
	default:
		return ""
	}
}

const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyTab   = "tab"
	keyLeft  = "left"
	keyRight = "right"
	keySlash = "/"
	keyEnter = "enter"
	keyEsc   = "esc"

	defaultWidth  = 80
	defaultHeight = 24

	filterInputCharLimit = 40
	filterInputWidth     = 30

	colWidthFood      = 24
	colWidthEmissions = 12
	colWidthFrequency = 8

	// tableChromeHeight is the space reserved for the header, tabs and help.
	tableChromeHeight = 14
)

// DashboardFetcher loads dashboard data. It should honour ctx cancellation.
type DashboardFetcher func(ctx context.Context) (trends.Dashboard, error)

type dashboardLoadedMsg struct {
	dashboard trends.Dashboard
	err       error
}

// DashboardModel is the interactive dashboard.
type DashboardModel struct {
	state     ViewState
	greeting  string
	dashboard trends.Dashboard
	tab       Tab

	table      table.Model
	filter     textinput.Model
	showFilter bool

	width  int
	height int

	fetchCmd tea.Cmd
	err      error
}

// NewDashboardModel creates a model that shows d immediately.
func NewDashboardModel(greeting string, d trends.Dashboard) *DashboardModel {
	m := newDashboardModel(greeting)
	m.state = ViewStateReady
	m.dashboard = d
	m.rebuildTable()
	return m
}

// NewDashboardModelWithLoading creates a model that starts loading with fetcher.
func NewDashboardModelWithLoading(ctx context.Context, greeting string, fetcher DashboardFetcher) *DashboardModel {
	m := newDashboardModel(greeting)
	m.state = ViewStateLoading
	m.fetchCmd = func() tea.Msg {
		d, err := fetcher(ctx)
		return dashboardLoadedMsg{dashboard: d, err: err}
	}
	return m
}

func newDashboardModel(greeting string) *DashboardModel {
	ti := textinput.New()
	ti.Placeholder = "음식 이름으로 필터..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "음식", Width: colWidthFood},
			{Title: "배출량", Width: colWidthEmissions},
			{Title: "횟수", Width: colWidthFrequency},
		}),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorBrand)
	styles.Selected = SelectedStyle
	t.SetStyles(styles)

	return &DashboardModel{
		greeting: greeting,
		table:    t,
		filter:   ti,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// State returns the current view state.
func (m *DashboardModel) State() ViewState { return m.state }

// ActiveTab returns the visible panel.
func (m *DashboardModel) ActiveTab() Tab { return m.tab }

// Err returns the load error, if any.
func (m *DashboardModel) Err() error { return m.err }

// Init starts loading when a fetcher was supplied.
func (m *DashboardModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return m.fetchCmd
	}
	return nil
}

// Update handles messages and updates the model state.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.table.SetHeight(max(1, m.height-tableChromeHeight))
		return m, nil
	}

	if loaded, ok := msg.(dashboardLoadedMsg); ok {
		if loaded.err != nil {
			m.err = loaded.err
			m.state = ViewStateError
			return m, tea.Quit
		}
		m.dashboard = loaded.dashboard
		m.state = ViewStateReady
		m.rebuildTable()
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyTab, keyRight:
		m.tab = (m.tab + 1) % numTabs
		return m, nil
	case keyLeft:
		m.tab = (m.tab + numTabs - 1) % numTabs
		return m, nil
	case keySlash:
		if m.state == ViewStateReady && m.tab == TabContributors {
			m.showFilter = true
			m.filter.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case keyEsc:
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.rebuildTable()
		}
		return m, nil
	}

	if m.tab == TabContributors {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DashboardModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.filter.Blur()
			m.rebuildTable()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// visibleContributors applies the filter text to the contributor list.
func (m *DashboardModel) visibleContributors() []trends.Contributor {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		return m.dashboard.TopContributors
	}
	var out []trends.Contributor
	for _, c := range m.dashboard.TopContributors {
		if strings.Contains(c.FoodName, query) {
			out = append(out, c)
		}
	}
	return out
}

func (m *DashboardModel) rebuildTable() {
	contributors := m.visibleContributors()
	rows := make([]table.Row, 0, len(contributors))
	for _, c := range contributors {
		rows = append(rows, table.Row{
			c.FoodName,
			greenops.FormatKg(c.TotalEmissions),
			fmt.Sprintf("%d", c.Frequency),
		})
	}
	m.table.SetRows(rows)
	m.table.SetHeight(max(1, min(len(rows)+1, m.height-tableChromeHeight)))
}

// View renders the model.
func (m *DashboardModel) View() string {
	switch m.state {
	case ViewStateLoading:
		return "대시보드를 불러오는 중...\n"
	case ViewStateError:
		return BadStyle.Render("오류: "+m.err.Error()) + "\n"
	case ViewStateQuitting:
		return ""
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("ecoplate"))
	sb.WriteString("\n")
	if m.greeting != "" {
		sb.WriteString(m.greeting)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(RenderStats(m.dashboard.Stats))
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	switch m.tab {
	case TabTrends:
		direction := trends.CompareTrend(m.dashboard.Trends)
		sb.WriteString(TrendStyle(direction).Render(string(direction)))
		sb.WriteString("\n")
		sb.WriteString(RenderSeries(m.dashboard.Trends))
	case TabContributors:
		if len(m.dashboard.TopContributors) == 0 {
			sb.WriteString(HelpStyle.Render("최근 7일간 기록된 식사가 없습니다."))
			sb.WriteString("\n")
		} else {
			sb.WriteString(m.table.View())
			sb.WriteString("\n")
		}
		if m.showFilter {
			sb.WriteString(m.filter.View())
			sb.WriteString("\n")
		}
	case TabInsights:
		if len(m.dashboard.Insights) == 0 {
			sb.WriteString(HelpStyle.Render("아직 인사이트가 없습니다."))
			sb.WriteString("\n")
		}
		sb.WriteString(RenderInsights(m.dashboard.Insights))
	}

	sb.WriteString("\n")
	sb.WriteString(HelpStyle.Render("tab/←→: 전환 • /: 필터 • q: 종료"))
	return sb.String()
}

func (m *DashboardModel) renderTabs() string {
	parts := make([]string, 0, numTabs)
	for t := range numTabs {
		if t == m.tab {
			parts = append(parts, ActiveTab.Render(t.String()))
		} else {
			parts = append(parts, InactiveTab.Render(t.String()))
		}
	}
	return strings.Join(parts, " ")
}

// Run starts the dashboard program and blocks until it exits.
func Run(ctx context.Context, m *DashboardModel) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	if dm, ok := final.(*DashboardModel); ok && dm.err != nil {
		return dm.err
	}
	return nil
}
