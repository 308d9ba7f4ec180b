package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/internal/ui/resources"
	g "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	html "maragu.dev/gomponents/html"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"

// Element ids patched over SSE.
const (
	labelSelectID = "label-select"
	statusID      = "status"
	resultsID     = "results"
)

// component adapts a gomponents node to templ so it can be patched over SSE.
func component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// Page renders the full dashboard document.
func Page(p PageData) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text("Amazon Product | salesdash")),
				html.Link(html.Rel("stylesheet"), html.Href(resources.StaticPath(resources.Stylesheet))),
				html.Script(html.Type("module"), html.Src(datastarScript)),
			),
			html.Body(
				data.Signals(map[string]any{
					"mode":    string(p.Mode),
					"label":   p.Label,
					"running": false,
				}),
				html.Main(
					html.Class("layout"),
					html.H1(html.Class("page-title"), g.Text("Amazon Product")),
					html.P(html.Class("muted"), g.Text("Select a predefined query to execute")),
					html.Div(
						html.Class("card"),
						modeSelector(p.Mode),
						html.Div(
							html.Class("controls"),
							LabelSelect(p.Labels, p.Label),
							html.Button(
								html.Type("button"),
								g.Attr("data-indicator:running"),
								g.Attr("data-attr:disabled", "$running"),
								g.Attr("data-on:click", "@post('/api/run')"),
								g.Text("Run Query"),
							),
						),
					),
					Status(StatusNone, ""),
					Results(nil),
				),
				g.If(p.IsDev, html.Div(g.Attr("data-init", "@get('/reload', {retryMaxCount: 1000, retryInterval: 20, retryMaxWaitMs: 200})"))),
			),
		),
	)
}

func modeSelector(active catalog.Mode) g.Node {
	options := make([]g.Node, 0, len(catalog.Modes()))
	for _, m := range catalog.Modes() {
		options = append(options, html.Label(
			html.Input(
				html.Type("radio"),
				html.Name("mode"),
				html.Value(string(m)),
				data.Bind("mode"),
				g.If(m == active, html.Checked()),
				g.Attr("data-on:change", "@get('/api/queries?mode=' + $mode)"),
			),
			g.Text(m.Title()),
		))
	}
	return html.FieldSet(html.Class("modes"), g.Group(options))
}

// LabelSelect renders the query dropdown for one catalog.
func LabelSelect(labels []string, selected string) g.Node {
	options := make([]g.Node, 0, len(labels))
	for _, label := range labels {
		options = append(options, html.Option(
			html.Value(label),
			g.If(label == selected, html.Selected()),
			g.Text(label),
		))
	}
	return html.Select(html.ID(labelSelectID), data.Bind("label"), g.Group(options))
}

// Status renders the status banner. An empty kind renders an empty slot.
func Status(kind StatusKind, message string) g.Node {
	if kind == StatusNone {
		return html.Div(html.ID(statusID), html.Class("status"))
	}
	return html.Div(
		html.ID(statusID),
		html.Class("status"),
		html.Div(html.Class("banner "+string(kind)), g.Text(message)),
	)
}

// Results renders the results panel. A nil view renders an empty slot.
func Results(view *ResultView) g.Node {
	if view == nil {
		return html.Div(html.ID(resultsID))
	}
	var chartNode g.Node
	if view.Chart != nil {
		chartNode = chartPanel(view.Chart)
	}
	return html.Div(
		html.ID(resultsID),
		html.Div(
			html.Class("card"),
			html.H2(g.Text("Results for: "+view.Label)),
			resultTable(view),
		),
		chartNode,
		g.If(view.ChartWarning != "", html.Div(html.Class("banner warning"), g.Text(view.ChartWarning))),
	)
}

func resultTable(view *ResultView) g.Node {
	header := make([]g.Node, len(view.Columns))
	for i, col := range view.Columns {
		header[i] = html.Th(g.Text(col))
	}

	rows := make([]g.Node, len(view.Rows))
	for i, row := range view.Rows {
		cells := make([]g.Node, len(row))
		for j, c := range row {
			cells[j] = html.Td(g.If(c.Numeric, html.Class("num")), g.Text(c.Text))
		}
		rows[i] = html.Tr(g.Group(cells))
	}

	return g.Group([]g.Node{
		html.Div(
			html.Class("table-wrap"),
			html.Table(
				html.THead(html.Tr(g.Group(header))),
				html.TBody(g.Group(rows)),
			),
		),
		html.P(html.Class("row-count"), g.Text(rowCount(view.RowCount))),
	})
}

func chartPanel(cv *ChartView) g.Node {
	bars := make([]g.Node, len(cv.Bars))
	for i, b := range cv.Bars {
		barClass := "bar"
		if b.Negative {
			barClass += " negative"
		}
		bars[i] = html.Div(
			html.Class("bar-row"),
			html.Title(b.Tooltip),
			html.Span(html.Class("bar-label"), g.Text(b.Category)),
			html.Div(
				html.Class("bar-track"),
				html.Div(html.Class(barClass), html.Style(fmt.Sprintf("width: %.1f%%", b.Width))),
			),
			html.Span(html.Class("bar-value"), g.Text(b.Value)),
		)
	}
	return html.Div(
		html.Class("card chart"),
		html.H3(g.Text(cv.Title)),
		html.Div(html.Class("bars"), g.Group(bars)),
	)
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return printer.Sprintf("%d rows", n)
}
