// Package view turns session state into what the page shows. The page itself
// is a thin subscriber: it renders Model values it receives from the server.
package view

import (
	_ "embed"
	"html/template"
	"io"
	"log/slog"

	"github.com/nguyenvanduocit/tradutor/pkg/prompt"
	"github.com/nguyenvanduocit/tradutor/pkg/session"
)

const Title = "Tradutor do Zé"

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Tab struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var Tabs = []Tab{
	{Label: "Tradução Geral", Icon: "translate"},
	{Label: "Definição de Termo", Icon: "book"},
	{Label: "Modo Ensino", Icon: "school"},
}

// Model is the serializable view of a session.State. It never carries the API
// key, only whether one is set.
type Model struct {
	Title        string               `json:"title"`
	Revision     uint64               `json:"revision"`
	Tab          int                  `json:"tab"`
	Mode         prompt.Mode          `json:"mode"`
	Tabs         []Tab                `json:"tabs"`
	Source       session.Language     `json:"source"`
	Target       session.Language     `json:"target"`
	Languages    []Option             `json:"languages"`
	FontSize     int                  `json:"fontSize"`
	MinFontSize  int                  `json:"minFontSize"`
	MaxFontSize  int                  `json:"maxFontSize"`
	Theme        session.Theme        `json:"theme"`
	ThemeIcon    string               `json:"themeIcon"`
	HasAPIKey    bool                 `json:"hasApiKey"`
	Input        string               `json:"input"`
	Preview      string               `json:"preview"`
	PreviewHTML  template.HTML        `json:"previewHtml"`
	Pending      bool                 `json:"pending"`
	Notification session.Notification `json:"notification"`
}

// NewModel builds the Model for st. Markdown that fails to render is shown
// as escaped text.
func NewModel(st session.State) Model {
	previewHTML, err := RenderMarkdown(st.Preview)
	if err != nil {
		slog.Warn("render preview", "error", err)
		previewHTML = template.HTML(template.HTMLEscapeString(st.Preview))
	}

	languages := make([]Option, 0, len(session.Languages))
	for _, l := range session.Languages {
		languages = append(languages, Option{Value: string(l), Label: l.Label()})
	}

	return Model{
		Title:        Title,
		Revision:     st.Revision,
		Tab:          session.TabForMode(st.Mode),
		Mode:         st.Mode,
		Tabs:         Tabs,
		Source:       st.Settings.Source,
		Target:       st.Settings.Target,
		Languages:    languages,
		FontSize:     st.Settings.FontSize,
		MinFontSize:  session.MinFontSize,
		MaxFontSize:  session.MaxFontSize,
		Theme:        st.Settings.Theme,
		ThemeIcon:    st.Settings.Theme.Icon(),
		HasAPIKey:    st.Settings.HasAPIKey(),
		Input:        st.Input,
		Preview:      st.Preview,
		PreviewHTML:  previewHTML,
		Pending:      st.Pending,
		Notification: st.Notification,
	}
}

//go:embed templates/page.html
var pageSource string

var page = template.Must(template.New("page").Parse(pageSource))

// RenderPage writes the full single page for m.
func RenderPage(w io.Writer, m Model) error {
	return page.Execute(w, m)
}
