package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinox/internal/core"
	"github.com/vovakirdan/dinox/internal/economy"
	"github.com/vovakirdan/dinox/internal/runner"
)

// shopItem is one purchasable row: either a skin or a perk.
type shopItem struct {
	skin *economy.Skin
	perk *economy.Perk
}

// ShopModel is the shop overlay. It only talks to the run controller's
// economy commands.
type ShopModel struct {
	ctrl   *runner.Controller
	items  []shopItem
	table  table.Model
	help   help.Model
	keys   ShopKeyMap
	notice string
	failed bool
	width  int
	height int
}

// NewShopModel creates the shop for the controller's catalog.
func NewShopModel(ctrl *runner.Controller, width, height int) ShopModel {
	catalog := ctrl.Economy().Catalog()

	var items []shopItem
	for _, s := range catalog.Skins() {
		items = append(items, shopItem{skin: &s})
	}
	for _, p := range catalog.Perks() {
		items = append(items, shopItem{perk: &p})
	}

	m := ShopModel{
		ctrl:   ctrl,
		items:  items,
		help:   help.New(),
		keys:   DefaultShopKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Refresh()
	return m
}

// createTable creates the item table.
func (m *ShopModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Item", Width: 22},
		{Title: "Price", Width: 7},
		{Title: "Status", Width: 10},
		{Title: "Effect", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Clamp(m.height-10, 3, len(m.items)+1)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Refresh rebuilds the rows from the current economy state.
func (m *ShopModel) Refresh() {
	st := m.ctrl.Economy().State()
	prices := m.ctrl.Economy().Prices()

	rows := make([]table.Row, len(m.items))
	for i, it := range m.items {
		switch {
		case it.skin != nil:
			status := ""
			switch {
			case st.ActiveSkin == it.skin.ID:
				status = "wearing"
			case st.Owns(it.skin.ID):
				status = "owned"
			}
			rows[i] = table.Row{"Skin: " + it.skin.Name, fmt.Sprintf("%d", prices.Skin), status, "Cosmetic"}
		case it.perk != nil:
			status := ""
			if st.OwnedPerks.Has(it.perk.ID) {
				status = "owned"
			}
			rows[i] = table.Row{"Perk: " + it.perk.Name, fmt.Sprintf("%d", it.perk.Price), status, it.perk.Description}
		}
	}
	m.table.SetRows(rows)
}

// Confirm buys or wears the selected item.
func (m *ShopModel) Confirm() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return
	}
	it := m.items[i]

	var err error
	switch {
	case it.skin != nil:
		if m.ctrl.Economy().State().Owns(it.skin.ID) {
			err = m.ctrl.SetActiveSkin(it.skin.ID)
			m.setNotice(err, "Now wearing "+it.skin.Name)
		} else {
			_, err = m.ctrl.PurchaseSkin(it.skin.ID)
			m.setNotice(err, "Bought "+it.skin.Name)
		}
	case it.perk != nil:
		_, err = m.ctrl.PurchasePerk(it.perk.ID)
		m.setNotice(err, it.perk.Name+" unlocked")
	}
	m.Refresh()
}

func (m *ShopModel) setNotice(err error, ok string) {
	m.failed = err != nil
	switch {
	case err == nil:
		m.notice = ok
	case errors.Is(err, economy.ErrInsufficientFunds):
		m.notice = "Not enough coins"
	default:
		m.notice = err.Error()
	}
}

// Update moves the cursor. Buying and closing are handled by the caller.
func (m ShopModel) Update(msg tea.Msg) (ShopModel, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.Refresh()
		m.table.SetCursor(cursor)
		m.help.Width = wsm.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the shop.
func (m ShopModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	st := m.ctrl.Economy().State()
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("SHOP  -  %d coins", st.Coins), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	b.WriteString("\n")

	if m.notice != "" {
		color := lipgloss.Color("10")
		if m.failed {
			color = lipgloss.Color("9")
		}
		b.WriteString(centerText(lipgloss.NewStyle().Foreground(color).Render(m.notice), m.width))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Notice returns the result line of the last purchase.
func (m ShopModel) Notice() string {
	return m.notice
}

// centerText centers every line of text within the given width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
