package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinox/internal/storage"
)

type fakeHistory struct {
	runs []storage.RunEntry
}

func (f fakeHistory) Players() ([]string, error) {
	var players []string
	seen := map[string]bool{}
	for _, r := range f.runs {
		if !seen[r.Player] {
			seen[r.Player] = true
			players = append(players, r.Player)
		}
	}
	return players, nil
}

func (f fakeHistory) TopRuns(player string, limit int) ([]storage.RunEntry, error) {
	var out []storage.RunEntry
	for _, r := range f.runs {
		if player == "" || r.Player == player {
			out = append(out, r)
		}
	}
	return out[:min(limit, len(out))], nil
}

func (f fakeHistory) Stats(player string) (*storage.RunStats, error) {
	stats := &storage.RunStats{Player: player}
	for _, r := range f.runs {
		if r.Player == player {
			stats.RunsCount++
			stats.HighScore = max(stats.HighScore, r.Score)
		}
	}
	return stats, nil
}

func sampleHistory() fakeHistory {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return fakeHistory{runs: []storage.RunEntry{
		{ID: 2, Player: "bob", Score: 900, Coins: 12, CreatedAt: now},
		{ID: 1, Player: "alice", Score: 400, Coins: 3, CreatedAt: now},
		{ID: 3, Player: "alice", Score: 150, Coins: 1, CreatedAt: now},
	}}
}

func TestHistoryStartsOnLeaderboard(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "", 100, 30)

	if m.Selected() != "" {
		t.Errorf("Selected = %q, want the global leaderboard", m.Selected())
	}
	if len(m.players) != 3 {
		t.Errorf("players = %v, want everyone plus two players", m.players)
	}
	if len(m.table.Rows()) != 3 {
		t.Errorf("rows = %d, want 3", len(m.table.Rows()))
	}
	if m.stats != nil {
		t.Error("the leaderboard has no per-player stats")
	}
	if !strings.Contains(m.View(), "Everyone") {
		t.Error("View should name the leaderboard")
	}
}

func TestHistoryCyclesPlayers(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "", 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.Selected() != "bob" || len(m.table.Rows()) != 1 {
		t.Errorf("Selected = %q rows = %d", m.Selected(), len(m.table.Rows()))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.Selected() != "alice" {
		t.Errorf("Selected = %q, want wrap-around to alice", m.Selected())
	}
	if m.stats == nil || m.stats.RunsCount != 2 || m.stats.HighScore != 400 {
		t.Errorf("stats = %+v", m.stats)
	}
	if !strings.Contains(m.View(), "Runs: 2") {
		t.Error("View should show the player's stats")
	}
}

func TestHistoryStartsOnPlayer(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "alice", 60, 20)
	if m.Selected() != "alice" {
		t.Errorf("Selected = %q, want alice", m.Selected())
	}
	if m.showSidebar {
		t.Error("narrow terminals should hide the sidebar")
	}
	if !strings.Contains(m.View(), "< alice >") {
		t.Error("narrow layout should show the player switcher")
	}
}

func TestHistoryEmpty(t *testing.T) {
	m := NewHistoryModel(fakeHistory{}, "", 100, 30)
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty history should say so")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || next.View() != "" {
		t.Error("q should quit")
	}
}
