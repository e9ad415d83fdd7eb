package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/figmajson/pkg/insert"
	"github.com/matzehuels/figmajson/pkg/resolve"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Summaries
// =============================================================================

type stat struct {
	n    int
	unit string
}

// statsLine joins the non-zero counts with a dim separator.
func statsLine(stats ...stat) string {
	var parts []string
	for _, st := range stats {
		if st.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", st.n, st.unit))
		}
	}
	return strings.Join(parts, " · ")
}

// printDocumentStats prints the size of a document on a single line.
func printDocumentStats(doc *scene.Document) {
	line := statsLine(
		stat{len(doc.Objects), "roots"},
		stat{doc.NodeCount(), "nodes"},
		stat{len(doc.Components), "components"},
		stat{len(doc.Styles), "styles"},
		stat{len(doc.Images), "images"},
	)
	if line != "" {
		printDetail("%s", line)
	}
}

// printInsertResult prints what an insert resolved and what it dropped.
func printInsertResult(res *insert.Result) {
	line := statsLine(
		stat{res.Fonts.Report.Count(resolve.StatusLoaded), "fonts"},
		stat{res.Fonts.Report.Count(resolve.StatusSubstituted), "fonts substituted"},
		stat{len(res.Components.Outcomes) - res.Components.Count(resolve.StatusFailed), "components"},
		stat{len(res.Styles.Outcomes) - res.Styles.Count(resolve.StatusFailed), "styles"},
		stat{len(res.Images), "images"},
		stat{len(res.Rejected), "fields rejected"},
	)
	if line != "" {
		printDetail("%s", line)
	}

	for _, o := range res.Fonts.Report.Outcomes {
		if o.Status == resolve.StatusSubstituted {
			printInfo("Font %s replaced by %s", o.Subject, o.Detail)
		}
	}
	for _, r := range []resolve.Report{res.Fonts.Report, res.Components, res.Styles} {
		for _, o := range r.Failed() {
			printWarning("%s", o)
		}
	}
	for _, s := range res.Skipped {
		printWarning("Skipped %s %s: %s", s.Type, s.NodeID, s.Reason)
	}
}
