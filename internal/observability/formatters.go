// Package observability provides formatted output for verbose CLI mode and the
// Prometheus metrics recorded by the prediction pipeline.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/salary-predictor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPrediction outputs a human-readable summary of a salary prediction.
func (p *Printer) PrintPrediction(source string, res *types.PredictionResult) {
	if res == nil {
		return
	}

	var sb strings.Builder
	in := res.InputSummary

	sb.WriteString(fmt.Sprintf("Model:    %s\n", res.ModelUsed))
	sb.WriteString(fmt.Sprintf("Salary:   %.2f\n", res.Salary))
	if ci := res.ConfidenceInterval; ci != nil {
		sb.WriteString(fmt.Sprintf("95%% CI:   %.2f - %.2f\n", ci.Lower, ci.Upper))
	} else {
		sb.WriteString("95% CI:   n/a (not an ensemble)\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Employee: %d y/o %s, %s\n", in.Age, in.JobTitle, in.EducationLevel))
	sb.WriteString(fmt.Sprintf("  Performance %d/5, %.1f h/week, %.1f h overtime\n",
		in.PerformanceScore, in.WorkHoursPerWeek, in.OvertimeHours))
	sb.WriteString(fmt.Sprintf("  %d projects, team of %d, %d promotions, %d sick days",
		in.ProjectsHandled, in.TeamSize, in.Promotions, in.SickDays))

	title := "SALARY PREDICTION"
	if source != "" {
		title += " · " + source
	}
	p.printBox(title, sb.String())
}

// PrintModelSummary outputs the loaded model and the first features of its schema.
func (p *Printer) PrintModelSummary(summary *types.ModelSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", summary.Name))
	sb.WriteString(fmt.Sprintf("Kind:     %s\n", summary.Kind))
	if summary.Members > 0 {
		sb.WriteString(fmt.Sprintf("Members:  %d\n", summary.Members))
	}
	sb.WriteString(fmt.Sprintf("Features: %d\n", len(summary.Features)))

	count := min(len(summary.Features), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", summary.Features[i]))
	}
	if len(summary.Features) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.Features)-maxItemsToShow))
	}

	p.printBox("MODEL ARTIFACT", strings.TrimSuffix(sb.String(), "\n"))
}
