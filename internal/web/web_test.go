package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/torosvacas/internal/api/response"
	"github.com/mcoot/torosvacas/internal/factory"
	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/testutil"
	"github.com/mcoot/torosvacas/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	router := web.NewRouter(web.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		GameController: app.GameController,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	ts.cookies.extract(rr)

	return rr
}

func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// createGame creates a session with a known secret directly via the controller
func (ts *webTestServer) createGame(owner, secret string) *model.GameSession {
	ts.t.Helper()
	ts.app.QueueSecret(secret)
	g, err := ts.app.GameController.CreateGame(ts.t.Context(), owner, 30)
	require.NoError(ts.t, err)
	return g
}

func (ts *webTestServer) guess(id model.GameID, combination string) {
	ts.t.Helper()
	_, err := ts.app.GameController.SubmitGuess(ts.t.Context(), id, &combination)
	require.NoError(ts.t, err)
}

// signIn registers an account and logs in through the form
func (ts *webTestServer) signIn() {
	ts.t.Helper()
	_, err := ts.app.AuthService.Register(ts.t.Context(), "Ana", "ana@example.com", "password123")
	require.NoError(ts.t, err)

	rr := ts.post("/login", url.Values{"email": {"ana@example.com"}, "password": {"password123"}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	require.True(ts.t, ts.cookies.hasSession())
}

func parseHTML(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	require.NoError(t, err)
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies[response.SessionCookieName]
	return ok
}

func TestRootRedirectsToLeaderboard(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/leaderboard", rr.Header().Get("Location"))
}

func TestLeaderboardEmpty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/leaderboard")

	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(t, rr.Body)
	assert.Equal(t, "No games yet.", doc.Find("p.empty").Text())
	assert.Equal(t, 0, doc.Find("#ranking").Length())
}

func TestLeaderboardOrdersFinishedFirst(t *testing.T) {
	ts := newWebTestServer(t)
	playing := ts.createGame("ana", "1234")
	winner := ts.createGame("ben", "5678")
	ts.guess(playing.ID, "1243")
	ts.guess(winner.ID, "5678")

	rr := ts.get("/leaderboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	rows := doc.Find("#ranking tbody tr")
	require.Equal(t, 2, rows.Length())

	first := rows.Eq(0)
	assert.Equal(t, "1", first.Find(".position").Text())
	assert.Equal(t, "ben", first.Find(".player").Text())
	assert.True(t, first.HasClass("finished"))

	second := rows.Eq(1)
	assert.Equal(t, "ana", second.Find(".player").Text())
	assert.Equal(t, "1", second.Find(".attempts").Text())
	assert.Equal(t, "1.0", second.Find(".score").Text())

	href, ok := second.Find(".game a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/games/"+playing.ID.String(), href)
}

func TestLeaderboardEscapesOwner(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("<b>eve</b>", "1234")

	rr := ts.get("/leaderboard")

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, "<b>eve</b>", doc.Find("#ranking .player").Text())
	assert.Equal(t, 0, doc.Find("#ranking .player b").Length())
}

func TestGamePageHidesSecretWhilePlaying(t *testing.T) {
	ts := newWebTestServer(t)
	g := ts.createGame("ana", "1234")
	ts.guess(g.ID, "1243")

	rr := ts.get("/games/" + g.ID.String())
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, 0, doc.Find(".secret").Length())

	row := doc.Find("#history tbody tr").First()
	assert.Equal(t, "1243", row.Find(".combination").Text())
	assert.Equal(t, "2", row.Find(".toros").Text())
	assert.Equal(t, "2", row.Find(".vacas").Text())
}

func TestGamePageShowsSecretWhenOver(t *testing.T) {
	ts := newWebTestServer(t)
	g := ts.createGame("ana", "1234")
	ts.guess(g.ID, "1234")

	rr := ts.get("/games/" + g.ID.String())
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, "1234", doc.Find(".secret").Text())
	state, _ := doc.Find("dl.game").Attr("data-state")
	assert.Equal(t, string(model.GameStateWon), state)
}

func TestGamePageNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/games/42", "/games/nope"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		doc := parseHTML(t, rr.Body)
		assert.Equal(t, "Game not found.", doc.Find("p.error").Text())
	}
}

func TestLoginShowsUserInNav(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()

	rr := ts.get("/leaderboard")

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, "Ana", doc.Find("nav .user").Text())
}

func TestLoginPageRedirectsWhenSignedIn(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()

	rr := ts.get("/login")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts := newWebTestServer(t)
	_, err := ts.app.AuthService.Register(t.Context(), "Ana", "ana@example.com", "password123")
	require.NoError(t, err)

	rr := ts.post("/login", url.Values{"email": {"ana@example.com"}, "password": {"nope-nope"}})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, ts.cookies.hasSession())
	doc := parseHTML(t, rr.Body)
	assert.Equal(t, "Invalid email or password", doc.Find("p.error").Text())
	value, _ := doc.Find(`input[name="email"]`).Attr("value")
	assert.Equal(t, "ana@example.com", value)
}

func TestLogoutClearsSession(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn()

	rr := ts.post("/logout", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	doc := parseHTML(t, ts.get("/leaderboard").Body)
	assert.Equal(t, 0, doc.Find("nav .user").Length())
}
