package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/torosvacas/internal/web/templates/layout"
)

// LoginData is the view model for the login page
type LoginData struct {
	layout.PageData
	Email string
	Error string
}

// Login renders the email and password form
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := `<h1>Sign in</h1>`
		if data.Error != "" {
			out += `<p class="error">` + templ.EscapeString(data.Error) + `</p>`
		}
		out += `<form method="post" action="/login">` +
			`<label>Email <input type="email" name="email" value="` + templ.EscapeString(data.Email) + `" required></label>` +
			`<label>Password <input type="password" name="password" required></label>` +
			`<button type="submit">Sign in</button></form>`
		_, err := io.WriteString(w, out)
		return err
	}))
}
