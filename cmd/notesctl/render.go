package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/charmbracelet/lipgloss"
)

const cardWidth = 44

var now = time.Now

var (
	errorColor = lipgloss.Color("#EF4444")
	mutedColor = lipgloss.Color("#9CA3AF")

	headerStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	overdueStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	priorityColors = map[notes.Priority]lipgloss.Color{
		notes.PriorityHigh:   lipgloss.Color("#EF4444"),
		notes.PriorityMedium: lipgloss.Color("#F59E0B"),
		notes.PriorityLow:    lipgloss.Color("#10B981"),
	}

	styleBorders = map[notes.Style]lipgloss.Border{
		notes.StyleCommon:     lipgloss.NormalBorder(),
		notes.StyleChalkboard: lipgloss.ThickBorder(),
		notes.StyleGrid:       lipgloss.DoubleBorder(),
		notes.StyleStripes:    lipgloss.BlockBorder(),
		notes.StyleFolded:     lipgloss.RoundedBorder(),
	}
)

func cardBorder(style notes.Style) lipgloss.Border {
	if b, ok := styleBorders[style]; ok {
		return b
	}
	return lipgloss.NormalBorder()
}

func renderCard(card notes.CardView) string {
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(priorityColors[card.Priority]).
		Render(strings.ToUpper(string(card.Priority)))

	check := "[ ]"
	if card.Completed {
		check = "[x]"
	}

	contentStyle := lipgloss.NewStyle().Width(cardWidth - 4)
	if card.Completed {
		contentStyle = contentStyle.Strikethrough(true)
	}

	lines := []string{
		fmt.Sprintf("%s %s", check, badge),
		contentStyle.Render(card.Content),
	}
	if card.Image != "" {
		lines = append(lines, mutedStyle.Render("[image attached]"))
	}

	meta := mutedStyle.Render("created " + card.CreatedLabel)
	if card.DueLabel != "" {
		meta += mutedStyle.Render(" · due " + card.DueLabel)
	}
	lines = append(lines, meta)
	if card.Expired {
		lines = append(lines, overdueStyle.Render(fmt.Sprintf("overdue by %d day(s)", card.OverdueDays)))
	}
	lines = append(lines, mutedStyle.Render(card.ID))

	return lipgloss.NewStyle().
		Border(cardBorder(card.Style)).
		BorderForeground(lipgloss.Color(card.TextColor)).
		Background(lipgloss.Color(card.Color)).
		Foreground(lipgloss.Color(card.TextColor)).
		Width(cardWidth).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func renderListView(view notes.ListView) string {
	header := headerStyle.Render(fmt.Sprintf(
		"%s notes · total %d · completed %d · pending %d",
		view.Filter, view.Counts.Total, view.Counts.Completed, view.Counts.Pending,
	))

	if view.Empty != "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, mutedStyle.Render(view.Empty))
	}

	cards := make([]string, 0, len(view.Notes))
	for _, card := range view.Notes {
		cards = append(cards, renderCard(card))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(cards, "\n"))
}
