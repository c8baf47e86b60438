// Package layout holds the page chrome shared by every web page.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/torosvacas/internal/model"
)

// PageData carries the values every page needs
type PageData struct {
	Title string
	User  *model.User
}

// Base wraps body in the document shell
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(data.Title)+" | Toros y Vacas</title></head><body>"); err != nil {
			return err
		}
		if err := nav(data.User).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func nav(user *model.User) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := `<nav><a href="/leaderboard" class="brand">Toros y Vacas</a>`
		if user != nil {
			out += `<span class="user" data-user-id="` + templ.EscapeString(string(user.ID)) + `">` + templ.EscapeString(user.Name) + `</span>`
		}
		out += `</nav>`
		_, err := io.WriteString(w, out)
		return err
	})
}
