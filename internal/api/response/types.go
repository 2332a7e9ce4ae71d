package response

import (
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/hunt"
	"github.com/shadowhunt/shadowhunt-go/internal/services/leaderboard"
	"github.com/shadowhunt/shadowhunt-go/internal/services/oracle"
)

// User represents a user in API responses. The password hash never leaves
// the server.
type User struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Score    int           `json:"score"`
	Faction  model.Faction `json:"faction"`
	Stage    int           `json:"stage"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Score:    u.Score,
		Faction:  u.Faction,
		Stage:    u.Stage,
	}
}

// LoginResponse is the response for a successful login. The token is also
// set as an http-only cookie; the body copy serves non-browser clients.
type LoginResponse struct {
	OK    bool   `json:"ok"`
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MeResponse reports the authenticated user, if any
type MeResponse struct {
	LoggedIn bool  `json:"loggedIn"`
	User     *User `json:"user,omitempty"`
}

// UpdateScoreResponse is the response for a direct score/stage update
type UpdateScoreResponse struct {
	OK       bool `json:"ok"`
	NewScore int  `json:"newScore"`
	Stage    int  `json:"stage"`
}

// RoundTokenResponse carries a freshly minted round token
type RoundTokenResponse struct {
	Token    string `json:"token"`
	GameType string `json:"gameType"`
}

// SubmitExternalScoreResponse is the response for redeeming a round token
type SubmitExternalScoreResponse struct {
	Success       bool `json:"success"`
	ScoreAdded    int  `json:"scoreAdded"`
	NewTotalScore int  `json:"newTotalScore"`
}

// LeaderboardResponse carries both leaderboard views
type LeaderboardResponse struct {
	Success               bool                          `json:"success"`
	IndividualLeaderboard []leaderboard.Entry           `json:"individualLeaderboard"`
	FactionLeaderboard    []leaderboard.FactionStanding `json:"factionLeaderboard"`
}

// PuzzleResponse describes a puzzle without revealing its answer
type PuzzleResponse struct {
	ID    string `json:"id"`
	Timed bool   `json:"timed"`
}

// PuzzleResultResponse is the response for a correct puzzle submission
type PuzzleResultResponse struct {
	Correct   bool   `json:"correct"`
	Tier      string `json:"tier,omitempty"`
	NewScore  int    `json:"newScore"`
	Stage     int    `json:"stage"`
	NextRoute string `json:"nextRoute"`
}

// PuzzleResultFromModel converts a model.PuzzleResult
func PuzzleResultFromModel(res *model.PuzzleResult) PuzzleResultResponse {
	return PuzzleResultResponse{
		Correct:   res.Won,
		Tier:      string(res.Tier),
		NewScore:  res.NewScore,
		Stage:     res.Stage,
		NextRoute: res.NextRoute,
	}
}

// KeypadLayoutResponse is the current shuffled keypad layout
type KeypadLayoutResponse struct {
	Symbols []string `json:"symbols"`
}

// FactionRouteResponse names the puzzle a faction is routed to
type FactionRouteResponse struct {
	PuzzleID string `json:"puzzleId"`
}

// OracleStatusResponse is the per-user deduction game state
type OracleStatusResponse struct {
	Round       int              `json:"round"`
	TotalRounds int              `json:"totalRounds"`
	PastAnswers []model.OracleQA `json:"pastAnswers"`
	Completed   bool             `json:"completed"`
}

// OracleStatusFromModel converts a model.OracleRound
func OracleStatusFromModel(round *model.OracleRound) OracleStatusResponse {
	answers := round.PastAnswers
	if answers == nil {
		answers = []model.OracleQA{}
	}
	return OracleStatusResponse{
		Round:       round.Round,
		TotalRounds: round.TotalRounds,
		PastAnswers: answers,
		Completed:   round.Completed,
	}
}

// OracleAskResponse is the outcome of one oracle question
type OracleAskResponse struct {
	Answer      string `json:"answer"`
	Hint        string `json:"hint,omitempty"`
	RoundWon    bool   `json:"roundWon"`
	Round       int    `json:"round"`
	TotalRounds int    `json:"totalRounds"`
	Completed   bool   `json:"completed"`
	NewScore    int    `json:"newScore,omitempty"`
	Stage       int    `json:"stage,omitempty"`
}

// OracleAskFromOutcome converts an oracle.AskOutcome
func OracleAskFromOutcome(out *oracle.AskOutcome) OracleAskResponse {
	return OracleAskResponse{
		Answer:      out.Answer,
		Hint:        out.Hint,
		RoundWon:    out.RoundWon,
		Round:       out.Round,
		TotalRounds: out.TotalRounds,
		Completed:   out.Completed,
		NewScore:    out.NewScore,
		Stage:       out.Stage,
	}
}

// SceneItem is a placed scene object in API responses
type SceneItem struct {
	Name     string     `json:"name"`
	Image    string     `json:"image"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Position model.Vec3 `json:"position"`
	Rotation model.Vec3 `json:"rotation"`
	Scale    model.Vec3 `json:"scale"`
}

// HuntStateResponse is the renderable snapshot of a hunt session
type HuntStateResponse struct {
	SessionID       string          `json:"sessionId"`
	Phase           model.HuntPhase `json:"phase"`
	RoomIndex       int             `json:"roomIndex"`
	RoomName        string          `json:"roomName"`
	Background      string          `json:"background"`
	Clue            string          `json:"clue"`
	TargetIndex     int             `json:"targetIndex"`
	TotalTargets    int             `json:"totalTargets"`
	Score           int             `json:"score"`
	RoomScores      []int           `json:"roomScores"`
	Camera          model.Camera    `json:"camera"`
	TimeRemainingMs int64           `json:"timeRemainingMs"`
	RoomsUnlocked   int             `json:"roomsUnlocked"`
	Jumpscare       bool            `json:"jumpscare"`
	Items           []SceneItem     `json:"items"`
}

// HuntStateFromView converts a hunt.StateView
func HuntStateFromView(view *hunt.StateView) HuntStateResponse {
	items := make([]SceneItem, len(view.Items))
	for i, item := range view.Items {
		items[i] = SceneItem{
			Name:     item.Name,
			Image:    item.Image,
			Width:    item.Width,
			Height:   item.Height,
			Position: item.Position,
			Rotation: item.Rotation,
			Scale:    item.Scale,
		}
	}
	return HuntStateResponse{
		SessionID:       string(view.SessionID),
		Phase:           view.Phase,
		RoomIndex:       view.RoomIndex,
		RoomName:        view.RoomName,
		Background:      view.Background,
		Clue:            view.Clue,
		TargetIndex:     view.TargetIndex,
		TotalTargets:    view.TotalTargets,
		Score:           view.Score,
		RoomScores:      view.RoomScores,
		Camera:          view.Camera,
		TimeRemainingMs: view.TimeRemaining.Milliseconds(),
		RoomsUnlocked:   view.RoomsUnlocked,
		Jumpscare:       view.Jumpscare,
		Items:           items,
	}
}

// HuntClickResponse is the outcome of one pointer gesture
type HuntClickResponse struct {
	Verdict    model.ClickVerdict `json:"verdict"`
	ObjectName string             `json:"objectName,omitempty"`
	Delta      int                `json:"delta"`
	Score      int                `json:"score"`
	Clue       string             `json:"clue"`
	Phase      model.HuntPhase    `json:"phase"`
	RoomIndex  int                `json:"roomIndex"`
}

// HuntClickFromResult converts a hunt.ClickResult
func HuntClickFromResult(res *hunt.ClickResult) HuntClickResponse {
	return HuntClickResponse{
		Verdict:    res.Verdict,
		ObjectName: res.ObjectName,
		Delta:      res.Delta,
		Score:      res.Score,
		Clue:       res.Clue,
		Phase:      res.Phase,
		RoomIndex:  res.RoomIndex,
	}
}

// HuntProgressResponse reports a device's room unlocks
type HuntProgressResponse struct {
	DeviceID      string `json:"deviceId"`
	RoomsUnlocked int    `json:"roomsUnlocked"`
}

// HuntSummaryResponse is the frozen result of a finished hunt
type HuntSummaryResponse struct {
	FinalScore int      `json:"finalScore"`
	RoomScores []int    `json:"roomScores"`
	RoomNames  []string `json:"roomNames"`
	NextRoute  string   `json:"nextRoute"`
	RoundToken string   `json:"roundToken"`
}

// HuntSummaryFromModel converts a model.HuntSummary
func HuntSummaryFromModel(s *model.HuntSummary) HuntSummaryResponse {
	return HuntSummaryResponse{
		FinalScore: s.FinalScore,
		RoomScores: s.RoomScores,
		RoomNames:  s.RoomNames,
		NextRoute:  s.NextRoute,
		RoundToken: s.RoundToken,
	}
}
