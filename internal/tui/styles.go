package tui

import "github.com/charmbracelet/lipgloss"

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	navStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	heroTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Padding(0, 2)
	buttonBusyStyle     = lipgloss.NewStyle().Foreground(heroTextColor).Background(heroEmberColor).Padding(0, 2)
	inputBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	inputBoxActiveStyle = inputBoxStyle.BorderForeground(heroAccentColor)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	currentLineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	suggestionStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	toastSuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#a3be8c")).Padding(0, 1)
	toastErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff4d0")).Background(lipgloss.Color("#bf616a")).Padding(0, 1)
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		" ██████╗   ██╗   ██╗   █████╗   ███╗   ██╗   █████╗   ███╗   ███╗  ",
		"██╔════╝   ╚██╗ ██╔╝  ██╔══██╗  ████╗  ██║  ██╔══██╗  ████╗ ████║  ",
		"██║  ███╗   ╚████╔╝   ███████║  ██╔██╗ ██║  ███████║  ██╔████╔██║  ",
		"██║   ██║    ╚██╔╝    ██╔══██║  ██║╚██╗██║  ██╔══██║  ██║╚██╔╝██║  ",
		"╚██████╔╝     ██║     ██║  ██║  ██║ ╚████║  ██║  ██║  ██║ ╚═╝ ██║  ",
		" ╚═════╝      ╚═╝     ╚═╝  ╚═╝  ╚═╝  ╚═══╝  ╚═╝  ╚═╝  ╚═╝     ╚═╝  ",
	}
)
