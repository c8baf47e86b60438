package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/torosvacas/internal/web/templates/layout"
)

// ErrorData is the view model for error pages
type ErrorData struct {
	layout.PageData
	Message string
}

// Error renders a message with a link back to the leaderboard
func Error(data ErrorData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>`+templ.EscapeString(data.Title)+`</h1><p class="error">`+
			templ.EscapeString(data.Message)+`</p><p><a href="/leaderboard">Back to the ranking</a></p>`)
		return err
	}))
}
