package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image/png"
	"io"
	"sort"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/dedupe"
)

// reportTemplate renders the component inventory. Thumbnails are embedded
// as data URIs so the report is a single self-contained file.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Component inventory</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.4em 0.8em; text-align: left; }
th { background: #eee; }
img { display: block; max-width: 480px; }
</style>
</head>
<body>
<h1>Component inventory</h1>
<p>{{.TotalCells}} cells, {{len .Rows}} unique components.</p>
<table>
<tr><th>#</th><th>Component</th><th>Label</th><th>Count</th><th>First seen</th></tr>
{{range .Rows}}
<tr>
<td>{{.Rank}}</td>
<td><img src="{{.ImageSrc}}" alt="{{.Label}}"></td>
<td>{{.Label}}</td>
<td>{{.Count}}</td>
<td>page {{.Page}}, cell {{.Index}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

type reportRow struct {
	Rank int
	// ImageSrc is a data URI built from trusted, locally encoded PNG bytes;
	// template.URL keeps html/template from rewriting the data scheme.
	ImageSrc template.URL
	Label    string
	Count    int
	Page     int
	Index    int
}

type reportData struct {
	TotalCells int
	Rows       []reportRow
}

// WriteReport writes the inventory as a self-contained HTML page, most
// frequent components first. Ties keep their discovery order.
func WriteReport(w io.Writer, groups []dedupe.Group, totalCells int) error {
	ordered := make([]dedupe.Group, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})

	data := reportData{TotalCells: totalCells, Rows: make([]reportRow, len(ordered))}
	for i, g := range ordered {
		var buf bytes.Buffer
		if err := png.Encode(&buf, g.Image); err != nil {
			return fmt.Errorf("encode representative for %q: %w", g.Label, err)
		}
		data.Rows[i] = reportRow{
			Rank:     i + 1,
			ImageSrc: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())),
			Label:    g.Label,
			Count:    g.Count,
			Page:     g.Page,
			Index:    g.Index,
		}
	}

	return reportTemplate.Execute(w, data)
}
