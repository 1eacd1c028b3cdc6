package tui

import "github.com/charmbracelet/lipgloss"

// labelWidth aligns the form labels.
const labelWidth = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	labelStyle = lipgloss.NewStyle().
			Width(labelWidth)

	focusedLabelStyle = labelStyle.
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	selectedRow = lipgloss.NewStyle().
			Bold(true)
)

// Button colors follow the original window: Add green, Update blue,
// Delete red, Clear orange, Export purple.
var buttonColors = map[Action]lipgloss.AdaptiveColor{
	ActionAdd:    {Light: "2", Dark: "10"},
	ActionUpdate: {Light: "4", Dark: "12"},
	ActionDelete: {Light: "1", Dark: "9"},
	ActionExport: {Light: "5", Dark: "13"},
}

var clearColor = lipgloss.AdaptiveColor{Light: "208", Dark: "208"}

// Button renders a command label in its action color.
func Button(label string, color lipgloss.AdaptiveColor) string {
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render("[" + label + "]")
}

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// NoticeBorder returns the border style for a notice of the given kind.
func NoticeBorder(kind NoticeKind) lipgloss.Style {
	var color lipgloss.AdaptiveColor
	switch kind {
	case NoticeWarning:
		color = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	case NoticeError:
		color = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	default:
		color = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Padding(0, 1)
}
