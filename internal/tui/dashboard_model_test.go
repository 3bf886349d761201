package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoplate/internal/trends"
)

func sampleDashboard() trends.Dashboard {
	return trends.Dashboard{
		Stats: trends.Stats{WeekEmissions: 12.5, MealsThisWeek: 4, SwapsAccepted: 1},
		Trends: []trends.DailyPoint{
			{Date: "2026-10-10", Emissions: 3.2, Count: 1},
			{Date: "2026-10-11", Emissions: 1.1, Count: 2},
		},
		TopContributors: []trends.Contributor{
			{FoodName: "소고기", TotalEmissions: 8.1, Frequency: 1},
			{FoodName: "두부", TotalEmissions: 0.4, Frequency: 2},
		},
		Insights: []trends.Insight{
			{Type: trends.InsightTip, Title: "팁", Message: "채식 한 끼를 시도해 보세요.", Icon: "💡"},
		},
	}
}

func TestDashboardModel_TabCycling(t *testing.T) {
	m := NewDashboardModel("안녕하세요", sampleDashboard())
	assert.Equal(t, ViewStateReady, m.State())
	assert.Equal(t, TabTrends, m.ActiveTab())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*DashboardModel)
	assert.Equal(t, TabContributors, m.ActiveTab())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(*DashboardModel)
	assert.Equal(t, TabInsights, m.ActiveTab())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(*DashboardModel)
	assert.Equal(t, TabTrends, m.ActiveTab())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(*DashboardModel)
	assert.Equal(t, TabInsights, m.ActiveTab())
}

func TestDashboardModel_Quit(t *testing.T) {
	m := NewDashboardModel("", sampleDashboard())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateQuitting, updated.(*DashboardModel).State())
	assert.Empty(t, updated.View())
}

func TestDashboardModel_View(t *testing.T) {
	m := NewDashboardModel("좋은 아침이에요", sampleDashboard())
	view := m.View()
	assert.Contains(t, view, "좋은 아침이에요")
	assert.Contains(t, view, "2026-10-10")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	view = updated.View()
	assert.Contains(t, view, "소고기")
	assert.Contains(t, view, "두부")

	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, updated.View(), "채식 한 끼를 시도해 보세요.")
}

func TestDashboardModel_Filter(t *testing.T) {
	m := NewDashboardModel("", sampleDashboard())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = updated.(*DashboardModel)
	require.True(t, m.showFilter)

	m.filter.SetValue("두부")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*DashboardModel)
	assert.False(t, m.showFilter)
	assert.Len(t, m.visibleContributors(), 1)
	assert.NotContains(t, m.View(), "소고기")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*DashboardModel)
	assert.Len(t, m.visibleContributors(), 2)
}

func TestDashboardModel_Loading(t *testing.T) {
	m := NewDashboardModelWithLoading(context.Background(), "", func(context.Context) (trends.Dashboard, error) {
		return sampleDashboard(), nil
	})
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Contains(t, m.View(), "불러오는 중")

	cmd := m.Init()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	assert.Equal(t, ViewStateReady, updated.(*DashboardModel).State())
}

func TestDashboardModel_LoadError(t *testing.T) {
	loadErr := errors.New("store unavailable")
	m := NewDashboardModelWithLoading(context.Background(), "", func(context.Context) (trends.Dashboard, error) {
		return trends.Dashboard{}, loadErr
	})
	updated, cmd := m.Update(m.Init()())
	require.NotNil(t, cmd)
	m = updated.(*DashboardModel)
	assert.Equal(t, ViewStateError, m.State())
	require.ErrorIs(t, m.Err(), loadErr)
	assert.Contains(t, m.View(), "store unavailable")
}

func TestDashboardModel_WindowResize(t *testing.T) {
	m := NewDashboardModel("", sampleDashboard())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(*DashboardModel)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
