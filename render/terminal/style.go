package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Role colors: blue for the user, emerald for the agent.
	colorUser  = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorAgent = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorError  = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	colorNotice = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	colorPrice  = lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#5eead4"}
)

var (
	styleUserBadge  = lipgloss.NewStyle().Foreground(colorUser).Bold(true)
	styleAgentBadge = lipgloss.NewStyle().Foreground(colorAgent).Bold(true)

	styleTitle  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta   = lipgloss.NewStyle().Foreground(colorDim)
	styleError  = lipgloss.NewStyle().Foreground(colorError)
	styleNotice = lipgloss.NewStyle().Foreground(colorNotice).Italic(true)

	styleHeader       = lipgloss.NewStyle().Foreground(colorBright).Bold(true).Padding(0, 1)
	styleHeaderSorted = styleHeader.Foreground(colorAgent).Underline(true)
	styleCell         = lipgloss.NewStyle().Padding(0, 1)
	styleNumber       = styleCell.Align(lipgloss.Right)
	stylePrice        = styleNumber.Foreground(colorPrice)
	styleBorder       = lipgloss.NewStyle().Foreground(colorDim)
)
