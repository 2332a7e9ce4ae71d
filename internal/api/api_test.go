package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shadowhunt/shadowhunt-go/internal/api"
	"github.com/shadowhunt/shadowhunt-go/internal/api/response"
	"github.com/shadowhunt/shadowhunt-go/internal/factory"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
	"github.com/shadowhunt/shadowhunt-go/internal/services/oracle"
	"github.com/shadowhunt/shadowhunt-go/internal/testutil"
)

const externalOrigin = "https://escape.example.com"

// winningOracle answers every question with a winning verdict
type winningOracle struct{}

func (winningOracle) Ask(_ context.Context, _ *oracle.AskRequest) (*oracle.AskResponse, error) {
	return &oracle.AskResponse{Answer: "Yes.", GameOver: true}, nil
}

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp(winningOracle{})

	router := api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		AuthService:        s.app.AuthService,
		LedgerService:      s.app.LedgerService,
		PuzzleService:      s.app.PuzzleService,
		OracleService:      s.app.OracleService,
		HuntService:        s.app.HuntService,
		LeaderboardService: s.app.LeaderboardService,
		ExternalOrigin:     externalOrigin,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) seedUser(username string, faction model.Faction) *model.User {
	hash, err := auth.HashPassword("hunter2")
	s.Require().NoError(err)

	user := &model.User{
		ID:           model.UserID("u-" + username),
		Username:     username,
		PasswordHash: hash,
		Faction:      faction,
		Stage:        1,
		CreatedAt:    s.app.MockClock.Now(),
	}
	s.Require().NoError(s.app.Storage.SaveUser(context.Background(), user))
	return user
}

// do performs a request against the test server, decoding the JSON body
// into out when it is non-nil. token is sent as a Bearer header when set.
func (s *APISuite) do(method, path, token string, body, out any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp
}

func (s *APISuite) login(username string) string {
	var result response.LoginResponse
	resp := s.do(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": username, "password": "hunter2"}, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NotEmpty(result.Token)
	return result.Token
}

func (s *APISuite) TestHealth() {
	resp := s.do(http.MethodGet, "/api/v1/health", "", nil, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *APISuite) TestLoginSetsCookieAndReturnsUser() {
	s.seedUser("ada", model.FactionHeirs)

	var result response.LoginResponse
	resp := s.do(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "ada", "password": "hunter2"}, &result)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(result.OK)
	s.Equal("ada", result.User.Username)
	s.Equal(1, result.User.Stage)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			sessionCookie = c
		}
	}
	s.Require().NotNil(sessionCookie)
	s.Equal(result.Token, sessionCookie.Value)
	s.True(sessionCookie.HttpOnly)
	s.True(sessionCookie.Secure)
}

func (s *APISuite) TestLoginWrongPassword() {
	s.seedUser("ada", model.FactionHeirs)

	resp := s.do(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "ada", "password": "wrong"}, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestMeWithoutSession() {
	var result response.MeResponse
	resp := s.do(http.MethodGet, "/api/v1/auth/me", "", nil, &result)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.False(result.LoggedIn)
	s.Nil(result.User)
}

func (s *APISuite) TestMeWithBearerToken() {
	s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")

	var result response.MeResponse
	resp := s.do(http.MethodGet, "/api/v1/auth/me", token, nil, &result)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(result.LoggedIn)
	s.Require().NotNil(result.User)
	s.Equal("ada", result.User.Username)
}

func (s *APISuite) TestProtectedRouteRequiresAuth() {
	resp := s.do(http.MethodPost, "/api/v1/progress/score", "",
		map[string]any{"scoreToAdd": 10}, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// The whole on-site sequence over HTTP: riddle, four oracle rounds, the
// keypad checkpoint, and the faction branch puzzle, ending at 130 points.
func (s *APISuite) TestFullEventFlow() {
	s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")

	// Riddle
	var result response.PuzzleResultResponse
	resp := s.do(http.MethodPost, "/api/v1/puzzles/riddle/submit", token,
		map[string]string{"answer": "shadow"}, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(result.Correct)
	s.Equal(20, result.NewScore)
	s.Equal(2, result.Stage)

	// Oracle rounds
	var ask response.OracleAskResponse
	for i := 0; i < 4; i++ {
		resp = s.do(http.MethodPost, "/api/v1/oracle/ask", token,
			map[string]string{"question": "Is it a key?"}, &ask)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		s.True(ask.RoundWon)
	}
	s.True(ask.Completed)
	s.Equal(100, ask.NewScore)
	s.Equal(6, ask.Stage)

	// A fifth question is rejected
	resp = s.do(http.MethodPost, "/api/v1/oracle/ask", token,
		map[string]string{"question": "Again?"}, nil)
	s.Equal(http.StatusConflict, resp.StatusCode)

	// Keypad checkpoint: no points, stage drops back down
	resp = s.do(http.MethodPost, "/api/v1/puzzles/keypad/submit", token,
		map[string]string{"answer": "2234"}, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(100, result.NewScore)
	s.Equal(3, result.Stage)

	// Faction branch
	var route response.FactionRouteResponse
	resp = s.do(http.MethodGet, "/api/v1/puzzles/branch", token, nil, &route)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("game3a", route.PuzzleID)

	resp = s.do(http.MethodPost, "/api/v1/puzzles/game3a/submit", token,
		map[string]string{"answer": "27"}, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(130, result.NewScore)
	s.Equal(4, result.Stage)

	// Leaderboard reflects the final tally
	var board response.LeaderboardResponse
	resp = s.do(http.MethodGet, "/api/v1/leaderboard", "", nil, &board)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(board.Success)
	s.Require().Len(board.IndividualLeaderboard, 1)
	s.Equal("ada", board.IndividualLeaderboard[0].Username)
	s.Equal(130, board.IndividualLeaderboard[0].Score)
	s.Len(board.FactionLeaderboard, 4)
}

func (s *APISuite) TestWrongAnswerIsNotAnError() {
	s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")

	var result response.PuzzleResultResponse
	resp := s.do(http.MethodPost, "/api/v1/puzzles/riddle/submit", token,
		map[string]string{"answer": "lantern"}, &result)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.False(result.Correct)
	s.Equal(0, result.NewScore)
}

func (s *APISuite) TestUnknownPuzzle() {
	s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")

	resp := s.do(http.MethodPost, "/api/v1/puzzles/game99/submit", token,
		map[string]string{"answer": "27"}, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestUpdateScoreWithStage() {
	user := s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")

	stage := 2
	var result response.UpdateScoreResponse
	resp := s.do(http.MethodPost, "/api/v1/progress/score", token,
		map[string]any{"scoreToAdd": 15, "nextStage": stage}, &result)

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(result.OK)
	s.Equal(15, result.NewScore)
	s.Equal(2, result.Stage)

	saved, err := s.app.Storage.GetUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Equal(15, saved.Score)
	s.Equal(2, saved.Stage)
}

func (s *APISuite) TestExternalScoreRoundTrip() {
	user := s.seedUser("ada", model.FactionHeirs)

	roundToken, err := s.app.LedgerService.IssueRoundToken(user.ID, "shadow-hunt")
	s.Require().NoError(err)

	var result response.SubmitExternalScoreResponse
	resp := s.do(http.MethodPost, "/api/v1/scores/external", "",
		map[string]any{"token": roundToken, "score": 55, "gameType": "shadow-hunt"}, &result)

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(result.Success)
	s.Equal(55, result.ScoreAdded)
	s.Equal(55, result.NewTotalScore)

	// Replay is rejected
	resp = s.do(http.MethodPost, "/api/v1/scores/external", "",
		map[string]any{"token": roundToken, "score": 55, "gameType": "shadow-hunt"}, nil)
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *APISuite) TestExternalScoreGameTypeMismatchSpendsNothing() {
	user := s.seedUser("ada", model.FactionHeirs)

	roundToken, err := s.app.LedgerService.IssueRoundToken(user.ID, "shadow-hunt")
	s.Require().NoError(err)

	resp := s.do(http.MethodPost, "/api/v1/scores/external", "",
		map[string]any{"token": roundToken, "score": 55, "gameType": "twenty-questions"}, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Neither the score nor the token was spent
	saved, err := s.app.Storage.GetUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Equal(0, saved.Score)

	var result response.SubmitExternalScoreResponse
	resp = s.do(http.MethodPost, "/api/v1/scores/external", "",
		map[string]any{"token": roundToken, "score": 55, "gameType": "shadow-hunt"}, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(55, result.NewTotalScore)
}

func (s *APISuite) TestIssueRoundTokenOverHTTP() {
	s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")

	var issued response.RoundTokenResponse
	resp := s.do(http.MethodPost, "/api/v1/progress/round-token", token,
		map[string]any{"gameType": "escape-room"}, &issued)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("escape-room", issued.GameType)
	s.NotEmpty(issued.Token)

	// The issued token is redeemable exactly once
	var result response.SubmitExternalScoreResponse
	resp = s.do(http.MethodPost, "/api/v1/scores/external", "",
		map[string]any{"token": issued.Token, "score": 40, "gameType": "escape-room"}, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(40, result.NewTotalScore)

	resp = s.do(http.MethodPost, "/api/v1/progress/round-token", token,
		map[string]any{"gameType": ""}, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestExternalScoreRejectsForeignOrigin() {
	user := s.seedUser("ada", model.FactionHeirs)
	roundToken, err := s.app.LedgerService.IssueRoundToken(user.ID, "shadow-hunt")
	s.Require().NoError(err)

	body, err := json.Marshal(map[string]any{"token": roundToken, "score": 55})
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/v1/scores/external", bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://evil.example.com")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *APISuite) TestExternalScoreAllowsConfiguredOrigin() {
	user := s.seedUser("ada", model.FactionHeirs)
	roundToken, err := s.app.LedgerService.IssueRoundToken(user.ID, "shadow-hunt")
	s.Require().NoError(err)

	body, err := json.Marshal(map[string]any{"token": roundToken, "score": 55})
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/v1/scores/external", bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", externalOrigin)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(externalOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
}

func (s *APISuite) TestHuntSessionOverHTTP() {
	s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")
	s.app.MockRandom.QueueString("hunt-http-1")

	var state response.HuntStateResponse
	resp := s.do(http.MethodPost, "/api/v1/hunt/sessions", token,
		map[string]any{"deviceId": "dev-1", "room": 0}, &state)

	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Equal("hunt-http-1", state.SessionID)
	s.Equal(model.HuntPhaseRoomActive, state.Phase)
	s.Equal("Entrance Hall", state.RoomName)
	s.Len(state.Items, 11)
	s.Equal(int64(5*60*1000), state.TimeRemainingMs)

	// Pan the camera, then read the state back
	resp = s.do(http.MethodPost, fmt.Sprintf("/api/v1/hunt/sessions/%s/pan", state.SessionID), token,
		map[string]any{"lon": 45.0, "lat": 10.0}, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, fmt.Sprintf("/api/v1/hunt/sessions/%s", state.SessionID), token, nil, &state)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(45.0, state.Camera.Lon)
	s.Equal(10.0, state.Camera.Lat)

	// A drag gesture is unscored
	var click response.HuntClickResponse
	resp = s.do(http.MethodPost, fmt.Sprintf("/api/v1/hunt/sessions/%s/click", state.SessionID), token,
		map[string]any{
			"downX": 100.0, "downY": 100.0, "upX": 400.0, "upY": 400.0,
			"viewportWidth": 1920.0, "viewportHeight": 1080.0,
		}, &click)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(model.ClickVerdictDrag, click.Verdict)
	s.Equal(0, click.Delta)

	// Requesting a locked room fails
	resp = s.do(http.MethodPost, "/api/v1/hunt/sessions", token,
		map[string]any{"deviceId": "dev-1", "room": 2}, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	// Summary before the hunt ends is rejected
	resp = s.do(http.MethodGet, fmt.Sprintf("/api/v1/hunt/sessions/%s/summary", state.SessionID), token, nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestHuntDeviceProgress() {
	s.seedUser("ada", model.FactionHeirs)
	token := s.login("ada")

	// An unseen device starts with a single unlocked room
	var progress response.HuntProgressResponse
	resp := s.do(http.MethodGet, "/api/v1/hunt/progress/fresh-device", token, nil, &progress)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("fresh-device", progress.DeviceID)
	s.Equal(1, progress.RoomsUnlocked)

	resp = s.do(http.MethodGet, "/api/v1/hunt/progress/fresh-device", "", nil, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
