package app

import (
	"bitwise74/game-api/db"
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/model"
	"bitwise74/game-api/pkg/security"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const password = "factory_foo!"

type document struct {
	Data     json.RawMessage `json:"data"`
	Included []resource      `json:"included"`
	Error    string          `json:"error"`
	Errors   []string        `json:"errors"`
}

type resource struct {
	ID            string                     `json:"id"`
	Type          string                     `json:"type"`
	Attributes    map[string]any             `json:"attributes"`
	Relationships map[string]json.RawMessage `json:"relationships"`
}

type APISuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *APISuite) SetupTest() {
	conn, err := db.NewMemory(gonanoid.Must())
	s.Require().NoError(err)
	s.db = conn

	d, err := internal.NewDeps(conn, &security.ArgonHash{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	s.Require().NoError(err)

	s.router = NewRouter(d, RouterConfig{})
}

func (s *APISuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *APISuite) request(method, path string, body any, setup func(*http.Request)) (*httptest.ResponseRecorder, document) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if setup != nil {
		setup(req)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var doc document
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())
	}

	return w, doc
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func basic(email, password string) func(*http.Request) {
	return func(req *http.Request) {
		req.SetBasicAuth(email, password)
	}
}

func (s *APISuite) resource(doc document) resource {
	var res resource
	s.Require().NoError(json.Unmarshal(doc.Data, &res))
	return res
}

func (s *APISuite) count(m any) int64 {
	var n int64
	s.Require().NoError(s.db.Model(m).Count(&n).Error)
	return n
}

func (s *APISuite) signup(email string) resource {
	w, doc := s.request(http.MethodPost, "/api/v1/users", gin.H{"email": email, "password": password}, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.resource(doc)
}

// login returns the session id and token
func (s *APISuite) login(email string) (string, string) {
	w, doc := s.request(http.MethodPost, "/api/v1/sessions", nil, basic(email, password))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	res := s.resource(doc)
	token, ok := res.Attributes["token"].(string)
	s.Require().True(ok)
	return res.ID, token
}

func (s *APISuite) storedToken(sessionID string) *string {
	var sess model.Session
	s.Require().NoError(s.db.First(&sess, sessionID).Error)
	return sess.Token
}

func (s *APISuite) TestHeartbeat() {
	w, _ := s.request(http.MethodHead, "/api/v1/heartbeat", nil, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestSignup() {
	user := s.signup("Alice@Example.com")

	s.Equal("user", user.Type)
	s.Equal("alice@example.com", user.Attributes["email"])
	s.NotContains(user.Attributes, "password_hash")
	s.Equal(int64(1), s.count(&model.User{}))
	s.Equal(int64(1), s.count(&model.Session{}))
}

func (s *APISuite) TestSignupValidation() {
	s.signup("alice@example.com")

	w, doc := s.request(http.MethodPost, "/api/v1/users", gin.H{"email": "ALICE@example.com", "password": password}, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal([]string{"Email has already been taken"}, doc.Errors)

	w, doc = s.request(http.MethodPost, "/api/v1/users", gin.H{"email": "malformed", "password": "2short"}, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal([]string{"Email format not recognized", "Password is too short (minimum is 8 characters)"}, doc.Errors)

	s.Equal(int64(1), s.count(&model.User{}))
	s.Equal(int64(1), s.count(&model.Session{}))
}

func (s *APISuite) TestLoginRotatesToken() {
	s.signup("alice@example.com")

	sessionID, first := s.login("alice@example.com")
	_, second := s.login("alice@example.com")

	s.NotEqual(first, second)
	s.Equal(second, *s.storedToken(sessionID))
	s.Equal(int64(1), s.count(&model.Session{}))

	w, doc := s.request(http.MethodGet, "/api/v1/games", nil, bearer(first))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token authentication failed", doc.Error)

	w, _ = s.request(http.MethodGet, "/api/v1/games", nil, bearer(second))
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestLoginResponseIncludesUser() {
	user := s.signup("alice@example.com")

	w, doc := s.request(http.MethodPost, "/api/v1/sessions", nil, basic("alice@example.com", password))
	s.Require().Equal(http.StatusCreated, w.Code)

	res := s.resource(doc)
	s.Equal("session", res.Type)
	s.Contains(res.Relationships, "user")
	s.Require().Len(doc.Included, 1)
	s.Equal("user", doc.Included[0].Type)
	s.Equal(user.ID, doc.Included[0].ID)
	s.Equal("alice@example.com", doc.Included[0].Attributes["email"])
}

func (s *APISuite) TestLoginAfterLogoutIssuesToken() {
	s.signup("alice@example.com")
	sessionID, token := s.login("alice@example.com")

	w, _ := s.request(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil, bearer(token))
	s.Require().Equal(http.StatusNoContent, w.Code)
	s.Nil(s.storedToken(sessionID))

	_, fresh := s.login("alice@example.com")
	s.NotEmpty(fresh)
	s.NotEqual(token, fresh)
}

func (s *APISuite) TestLoginWithoutAuthorizationHeader() {
	s.signup("alice@example.com")

	w, doc := s.request(http.MethodPost, "/api/v1/sessions",
		gin.H{"session": gin.H{"email": "alice@example.com", "password": password}}, nil)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("authorization header is missing", doc.Error)
	s.Equal(int64(1), s.count(&model.Session{}))
}

func (s *APISuite) TestLoginWithInvalidCredentials() {
	s.signup("alice@example.com")
	_, token := s.login("alice@example.com")

	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"token instead of credentials", bearer(token)},
		{"unknown email", basic("invalid@invalid.com", password)},
		{"wrong password", basic("alice@example.com", "changeme")},
		{"malformed email", basic("malformed", password)},
		{"short password", basic("alice@example.com", "2short")},
	}

	for _, tt := range tests {
		w, doc := s.request(http.MethodPost, "/api/v1/sessions", nil, tt.setup)

		s.Equal(http.StatusUnauthorized, w.Code, tt.name)
		s.Equal("invalid email or password", doc.Error, tt.name)
	}

	s.Equal(int64(1), s.count(&model.Session{}))
}

func (s *APISuite) TestFetchSession() {
	user := s.signup("alice@example.com")
	sessionID, token := s.login("alice@example.com")

	w, doc := s.request(http.MethodGet, "/api/v1/sessions/"+sessionID, nil, bearer(token))
	s.Require().Equal(http.StatusOK, w.Code)

	res := s.resource(doc)
	s.Equal(sessionID, res.ID)
	s.Equal(token, res.Attributes["token"])
	s.Require().Len(doc.Included, 1)
	s.Equal(user.ID, doc.Included[0].ID)
}

func (s *APISuite) TestFetchSessionFailures() {
	s.signup("alice@example.com")
	s.signup("bob@example.com")
	sessionID, token := s.login("alice@example.com")
	bobSessionID, bobToken := s.login("bob@example.com")

	w, doc := s.request(http.MethodGet, "/api/v1/sessions/"+bobSessionID, nil, bearer(token))
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("cannot fetch another user session", doc.Error)

	for _, id := range []string{"1000", "nope"} {
		w, doc = s.request(http.MethodGet, "/api/v1/sessions/"+id, nil, bearer(token))
		s.Equal(http.StatusUnprocessableEntity, w.Code)
		s.Equal("session not found", doc.Error)
	}

	w, doc = s.request(http.MethodGet, "/api/v1/sessions/"+sessionID, nil, bearer("invalid"))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token authentication failed", doc.Error)

	s.Equal(token, *s.storedToken(sessionID))
	s.Equal(bobToken, *s.storedToken(bobSessionID))
}

func (s *APISuite) TestLogout() {
	s.signup("alice@example.com")
	sessionID, token := s.login("alice@example.com")

	w, _ := s.request(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil, bearer(token))
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())
	s.Nil(s.storedToken(sessionID))
	s.Equal(int64(1), s.count(&model.Session{}))

	// the token is gone, so a second logout can't authenticate
	w, doc := s.request(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil, bearer(token))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token authentication failed", doc.Error)
}

func (s *APISuite) TestLogoutFailures() {
	s.signup("alice@example.com")
	s.signup("bob@example.com")
	sessionID, token := s.login("alice@example.com")
	bobSessionID, bobToken := s.login("bob@example.com")

	w, doc := s.request(http.MethodDelete, "/api/v1/sessions/"+bobSessionID, nil, bearer(token))
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("cannot logout another user", doc.Error)
	s.Equal(bobToken, *s.storedToken(bobSessionID))

	w, doc = s.request(http.MethodDelete, "/api/v1/sessions/1000", nil, bearer(token))
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("session not found", doc.Error)

	// token sent in the body instead of the header
	w, doc = s.request(http.MethodDelete, "/api/v1/sessions/"+sessionID,
		gin.H{"session": gin.H{"token": token, "id": sessionID}}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token authentication failed", doc.Error)

	w, doc = s.request(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil, bearer("invalid"))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token authentication failed", doc.Error)

	s.Equal(token, *s.storedToken(sessionID))
	s.Equal(int64(2), s.count(&model.Session{}))
}

func (s *APISuite) TestTokenHeaderScheme() {
	s.signup("alice@example.com")
	_, token := s.login("alice@example.com")

	w, _ := s.request(http.MethodGet, "/api/v1/games", nil, func(req *http.Request) {
		req.Header.Set("Authorization", `Token token="`+token+`"`)
	})
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestCreateGame() {
	user := s.signup("alice@example.com")
	_, token := s.login("alice@example.com")

	w, doc := s.request(http.MethodPost, "/api/v1/games", nil, bearer(token))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	game := s.resource(doc)
	s.Equal("game", game.Type)
	s.Equal("New game", game.Attributes["name"])
	s.Equal(false, game.Attributes["started"])
	s.Contains(game.Relationships, "players")
	s.Contains(game.Relationships, "creator")

	s.Require().Len(doc.Included, 1)
	player := doc.Included[0]
	s.Equal("player", player.Type)
	s.Equal(user.ID, jsonNumber(player.Attributes["user_id"]))
	s.Equal(game.ID, jsonNumber(player.Attributes["game_id"]))

	s.Equal(int64(1), s.count(&model.Game{}))
	s.Equal(int64(1), s.count(&model.Player{}))
}

func (s *APISuite) TestCreateGameWithName() {
	s.signup("alice@example.com")
	_, token := s.login("alice@example.com")

	w, doc := s.request(http.MethodPost, "/api/v1/games", gin.H{"name": "Friday night"}, bearer(token))
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Equal("Friday night", s.resource(doc).Attributes["name"])
}

func (s *APISuite) TestCreateGameInvalidName() {
	s.signup("alice@example.com")
	_, token := s.login("alice@example.com")

	w, doc := s.request(http.MethodPost, "/api/v1/games", gin.H{"name": strings.Repeat("x", 51)}, bearer(token))
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("Name is too long (maximum is 50 characters)", doc.Error)
	s.Equal(int64(0), s.count(&model.Game{}))
	s.Equal(int64(0), s.count(&model.Player{}))
}

func (s *APISuite) TestCreateGameInvalidToken() {
	w, doc := s.request(http.MethodPost, "/api/v1/games", nil, bearer("gibberish"))

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token authentication failed", doc.Error)
	s.Equal(int64(0), s.count(&model.Game{}))
	s.Equal(int64(0), s.count(&model.Player{}))
}

func (s *APISuite) TestListGames() {
	s.signup("alice@example.com")
	_, token := s.login("alice@example.com")

	for range 3 {
		w, _ := s.request(http.MethodPost, "/api/v1/games", nil, bearer(token))
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w, doc := s.request(http.MethodGet, "/api/v1/games", nil, bearer(token))
	s.Require().Equal(http.StatusOK, w.Code)

	var games []resource
	s.Require().NoError(json.Unmarshal(doc.Data, &games))
	s.Len(games, 3)

	ids := map[string]bool{}
	for _, g := range games {
		s.Equal("game", g.Type)
		s.IsType("", g.Attributes["name"])
		ids[g.ID] = true
	}
	s.Len(ids, 3)
}

func (s *APISuite) TestListGamesOnlyOwn() {
	s.signup("alice@example.com")
	s.signup("bob@example.com")
	_, aliceToken := s.login("alice@example.com")
	_, bobToken := s.login("bob@example.com")

	w, _ := s.request(http.MethodPost, "/api/v1/games", nil, bearer(bobToken))
	s.Require().Equal(http.StatusCreated, w.Code)

	w, doc := s.request(http.MethodGet, "/api/v1/games", nil, bearer(aliceToken))
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", string(doc.Data))

	w, doc = s.request(http.MethodGet, "/api/v1/games", nil, bearer("gibberish"))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("token authentication failed", doc.Error)
}

func (s *APISuite) TestDeleteUser() {
	alice := s.signup("alice@example.com")
	bob := s.signup("bob@example.com")
	_, token := s.login("alice@example.com")

	w, doc := s.request(http.MethodDelete, "/api/v1/users/"+bob.ID, nil, bearer(token))
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("cannot delete another user", doc.Error)

	w, doc = s.request(http.MethodDelete, "/api/v1/users/1000", nil, bearer(token))
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("user not found", doc.Error)

	w, _ = s.request(http.MethodDelete, "/api/v1/users/"+alice.ID, nil, bearer(token))
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal(int64(1), s.count(&model.User{}))
	s.Equal(int64(1), s.count(&model.Session{}))

	w, _ = s.request(http.MethodGet, "/api/v1/games", nil, bearer(token))
	s.Equal(http.StatusUnauthorized, w.Code)
}

// jsonNumber formats a decoded JSON number the way resource ids are written
func jsonNumber(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
