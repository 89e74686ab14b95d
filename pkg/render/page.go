package render

import (
	"bytes"
	"encoding/base64"
	"html/template"
)

// pageTemplate is the preview page served by `chronoplot show`. The chart is
// inlined as SVG; tooltip columns appear as a hoverable table under it, with
// the full row text in the title attribute (the browser's native tooltip).
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 2rem; color: #333; }
  .chart { overflow-x: auto; }
  table { border-collapse: collapse; margin-top: 1.5rem; }
  th, td { border: 1px solid #ccc; padding: 0.3rem 0.8rem; text-align: left; }
  th { background: #f5f5f5; }
  tr:hover { background: #eef6ff; }
  img.density { display: block; margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="chart">{{.Chart}}</div>
{{if .Density}}<img class="density" src="data:image/png;base64,{{.Density}}" alt="event density">{{end}}
{{if .Rows}}
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr title="{{.Hover}}">{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

// pageData feeds pageTemplate.
type pageData struct {
	Title   string
	Chart   template.HTML
	Density string
	Columns []string
	Rows    []pageRow
}

type pageRow struct {
	Cells []string
	Hover string
}

// BuildPage assembles the preview HTML: the SVG chart, an optional density
// strip, and a tooltip table with one row per event echoing the chart data's
// tooltip columns.
func BuildPage(data ChartData, svg, densityPNG []byte, scientific bool) ([]byte, error) {
	pd := pageData{
		Title:   data.Title,
		Chart:   template.HTML(svg),
		Columns: data.Tooltips,
	}
	if len(densityPNG) > 0 {
		pd.Density = base64.StdEncoding.EncodeToString(densityPNG)
	}

	columns := make([][]string, len(data.Tooltips))
	for i, name := range data.Tooltips {
		columns[i] = data.Column(name, scientific)
	}

	for i := 0; i < data.Events.Len(); i++ {
		row := pageRow{Cells: make([]string, len(columns))}
		for j, col := range columns {
			if i < len(col) {
				row.Cells[j] = col[i]
			}
		}
		hover := ""
		for _, cell := range row.Cells {
			if cell == "" {
				continue
			}
			if hover != "" {
				hover += " | "
			}
			hover += cell
		}
		row.Hover = hover
		pd.Rows = append(pd.Rows, row)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pd); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
