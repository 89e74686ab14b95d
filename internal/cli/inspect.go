package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chronoplot/pkg/pipeline"
	"github.com/matzehuels/chronoplot/pkg/render"
	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing a timeline in the
// terminal.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		name       string
		styleFile  string
		scientific bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse a timeline's events and tracks in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}

			style, err := LoadStyle(styleFile)
			if err != nil {
				return err
			}
			popts := pipeline.Options{
				Input:        input,
				TimelineName: name,
				Scientific:   scientific,
				Logger:       c.Logger,
			}
			style.Apply(&popts)

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			tl, err := runner.Load(cmd.Context(), popts)
			if err != nil {
				return err
			}

			model := newInspectModel(tl, popts.Scientific)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "inspect a stored timeline by name instead of a file")
	cmd.Flags().StringVar(&styleFile, "style", "", "style file path (default: ./chronoplot.toml)")
	cmd.Flags().BoolVar(&scientific, "scientific", false, "use BCE/CE era labels instead of BC/AD")

	return cmd
}

// inspectRow is one display row: an event or a period, in date order.
type inspectRow struct {
	date  float64
	kind  string // "event" or "period"
	row   string // y-axis row the entry is drawn on
	title string
	span  string // era-formatted date or date range
}

// inspectModel is the bubbletea model for timeline browsing.
type inspectModel struct {
	title  string
	rows   []inspectRow
	cursor int
	height int
	offset int
}

func newInspectModel(tl *timeline.Timeline, scientific bool) inspectModel {
	var rows []inspectRow
	for _, e := range tl.Events {
		rows = append(rows, inspectRow{
			date:  e.Date,
			kind:  "event",
			row:   e.Label,
			title: e.Title,
			span:  render.FormatYear(e.Date, scientific),
		})
	}
	for i, tr := range tl.Tracks {
		for _, p := range tr.Periods {
			rows = append(rows, inspectRow{
				date:  p.Start,
				kind:  "period",
				row:   timeline.TrackID(i),
				title: p.Title,
				span: render.FormatYear(p.Start, scientific) + " " + iconArrow + " " +
					render.FormatYear(p.End, scientific),
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date < rows[j].date })

	return inspectModel{
		title:  tl.Title,
		rows:   rows,
		height: 15,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.span, r.kind, r.row, r.title})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Date", "Kind", "Row", "Title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d entries", len(m.rows))))
	b.WriteString("\n")

	return b.String()
}
