package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jaminalder/codex-connect-three/internal/app"
	"github.com/jaminalder/codex-connect-three/internal/domain"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

type indexData struct {
	P1, P2 string
	Error  string
}

type columnData struct {
	Index    int
	Label    string
	Playable bool
}

type boardData struct {
	ID      string
	Rows    [][]string // CSS class per cell
	Columns []columnData
	Players []domain.Player
	Current domain.Player
	Status  string
	Title   string // full page only
	Over    bool
	CanUndo bool
	Error   string
}

func newBoardData(gs app.GameState, errMsg string) boardData {
	v := gs.View
	bd := boardData{
		ID:      gs.ID,
		Rows:    make([][]string, domain.Rows),
		Columns: make([]columnData, domain.Cols),
		Players: v.Players,
		Current: v.Current,
		Status:  status(v),
		Over:    v.Over,
		CanUndo: !v.Over && v.History > 0,
		Error:   errMsg,
	}
	for r := range v.Board {
		bd.Rows[r] = make([]string, domain.Cols)
		for c, cell := range v.Board[r] {
			bd.Rows[r][c] = cellClass(v, cell)
		}
	}
	for c := range bd.Columns {
		bd.Columns[c] = columnData{
			Index:    c,
			Label:    fmt.Sprintf("Column %d", c+1),
			Playable: !v.Over && v.Board.Playable(c),
		}
	}
	return bd
}

func status(v domain.View) string {
	switch {
	case v.Winner != nil:
		return v.Winner.Name + " wins!"
	case v.Draw():
		return "It's a draw!"
	default:
		return v.Current.Name + "'s turn"
	}
}

func cellClass(v domain.View, cell domain.Cell) string {
	if p, ok := v.Player(cell); ok {
		return "chip " + string(p.Color)
	}
	return "empty"
}

func loadTemplates() *templates {
	// Inline templates; the page and board share the "board" definition.
	base := template.Must(template.New("base").Parse(baseTemplate))
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(gameTemplate))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

// sseData prefixes every line of a multi-line payload for the SSE wire format.
func sseData(b []byte) []byte {
	return bytes.ReplaceAll(bytes.TrimRight(b, "\n"), []byte("\n"), []byte("\ndata: "))
}

const baseTemplate = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>{{block "title" .}}Connect Three Game{{end}}</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.grid{display:grid;grid-template-columns:repeat(7,64px);gap:4px}
.cell{width:64px;height:64px;border:1px solid #333;box-sizing:border-box}
.chip{border-radius:50%}
.red{background:#d22}
.blue{background:#22d}
.alert{color:#b00}
</style>
</head><body>{{template "content" .}}</body></html>`

const indexTemplate = `<h1>Welcome to Connect Three!</h1>
{{if .Error}}<div class="alert">{{.Error}}</div>{{end}}
<form action="/game" method="post">
  <label>Player 1 <input name="p1" value="{{.P1}}"></label>
  <label>Player 2 <input name="p2" value="{{.P2}}"></label>
  <button>Start</button>
</form>`

const gameTemplate = `{{define "title"}}{{.Title}}{{end}}
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div id="board-container" sse-swap="board" hx-target="#board" hx-swap="outerHTML">{{template "board" .}}</div>
</div>
<aside id="instructions">
  <h2>Instructions</h2>
  <ol>
    <li>Click on a column button to drop your chip.</li>
    <li>Connect three chips in a row (horizontally, vertically, or diagonally) to win.</li>
    <li>You can undo your last move using the 'Undo' button.</li>
  </ol>
</aside>`

const boardTemplate = `<div id="board">
  <h2 class="status">{{.Status}}</h2>
  {{if .Error}}<div class="alert">{{.Error}}</div>{{end}}
  <div class="columns">
  {{range .Columns}}
    <form hx-post="/game/{{$.ID}}/drop" hx-target="#board" hx-swap="outerHTML" method="post" style="display:inline">
      <input type="hidden" name="col" value="{{.Index}}">
      <button type="submit"{{if not .Playable}} disabled{{end}}>{{.Label}}</button>
    </form>
  {{end}}
  </div>
  <div class="grid">
  {{range .Rows}}{{range .}}<div class="cell {{.}}"></div>{{end}}{{end}}
  </div>
  <div class="controls">
    <form hx-post="/game/{{.ID}}/switch" hx-target="#board" hx-swap="outerHTML" method="post" style="display:inline">
      <button type="submit"{{if .Over}} disabled{{end}}>Switch Player</button>
    </form>
    <form hx-post="/game/{{.ID}}/undo" hx-target="#board" hx-swap="outerHTML" method="post" style="display:inline">
      <button type="submit"{{if not .CanUndo}} disabled{{end}}>Undo</button>
    </form>
    <form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post" style="display:inline">
      <button type="submit">{{if .Over}}Play Again{{else}}Reset{{end}}</button>
    </form>
  </div>
  <ul class="players">{{range .Players}}<li class="{{.Color}}-text">{{.Name}} ({{.Color}})</li>{{end}}</ul>
</div>
`
