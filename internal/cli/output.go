package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case LoginResult:
		o.printUser(v.User)
	case MeResult:
		o.printMeResult(v)
	case ScoreResult:
		o.printScoreResult(v)
	case PuzzleResult:
		o.printPuzzleResult(v)
	case KeypadLayout:
		o.printKeypadLayout(v)
	case OracleStatus:
		o.printOracleStatus(v)
	case OracleAnswer:
		o.printOracleAnswer(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HuntState:
		o.printHuntState(v)
	case HuntClick:
		o.printHuntClick(v)
	case HuntSummary:
		o.printHuntSummary(v)
	case HuntProgress:
		fmt.Printf("Device: %s\n", v.DeviceID)
		fmt.Printf("Rooms unlocked: %d\n", v.RoomsUnlocked)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Faction  string `json:"faction"`
	Stage    int    `json:"stage"`
}

// LoginResult response type
type LoginResult struct {
	OK    bool   `json:"ok"`
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MeResult response type
type MeResult struct {
	LoggedIn bool  `json:"loggedIn"`
	User     *User `json:"user"`
}

// ScoreResult response type
type ScoreResult struct {
	OK       bool `json:"ok"`
	NewScore int  `json:"newScore"`
	Stage    int  `json:"stage"`
}

// PuzzleResult response type
type PuzzleResult struct {
	Correct   bool   `json:"correct"`
	Tier      string `json:"tier"`
	NewScore  int    `json:"newScore"`
	Stage     int    `json:"stage"`
	NextRoute string `json:"nextRoute"`
}

// KeypadLayout response type
type KeypadLayout struct {
	Symbols []string `json:"symbols"`
}

// OracleQA response type
type OracleQA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// OracleStatus response type
type OracleStatus struct {
	Round       int        `json:"round"`
	TotalRounds int        `json:"totalRounds"`
	PastAnswers []OracleQA `json:"pastAnswers"`
	Completed   bool       `json:"completed"`
}

// OracleAnswer response type
type OracleAnswer struct {
	Answer      string `json:"answer"`
	Hint        string `json:"hint"`
	RoundWon    bool   `json:"roundWon"`
	Round       int    `json:"round"`
	TotalRounds int    `json:"totalRounds"`
	Completed   bool   `json:"completed"`
	NewScore    int    `json:"newScore"`
	Stage       int    `json:"stage"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Faction  string `json:"faction"`
}

// FactionStanding response type
type FactionStanding struct {
	Faction      string  `json:"faction"`
	TotalScore   int     `json:"totalScore"`
	MemberCount  int     `json:"memberCount"`
	AverageScore float64 `json:"averageScore"`
}

// Leaderboard response type
type Leaderboard struct {
	Success               bool               `json:"success"`
	IndividualLeaderboard []LeaderboardEntry `json:"individualLeaderboard"`
	FactionLeaderboard    []FactionStanding  `json:"factionLeaderboard"`
}

// HuntState response type
type HuntState struct {
	SessionID       string `json:"sessionId"`
	Phase           string `json:"phase"`
	RoomIndex       int    `json:"roomIndex"`
	RoomName        string `json:"roomName"`
	Clue            string `json:"clue"`
	TargetIndex     int    `json:"targetIndex"`
	TotalTargets    int    `json:"totalTargets"`
	Score           int    `json:"score"`
	TimeRemainingMs int64  `json:"timeRemainingMs"`
	RoomsUnlocked   int    `json:"roomsUnlocked"`
	Jumpscare       bool   `json:"jumpscare"`
}

// HuntClick response type
type HuntClick struct {
	Verdict    string `json:"verdict"`
	ObjectName string `json:"objectName"`
	Delta      int    `json:"delta"`
	Score      int    `json:"score"`
	Clue       string `json:"clue"`
	Phase      string `json:"phase"`
	RoomIndex  int    `json:"roomIndex"`
}

// HuntSummary response type
type HuntSummary struct {
	FinalScore int      `json:"finalScore"`
	RoomScores []int    `json:"roomScores"`
	RoomNames  []string `json:"roomNames"`
	NextRoute  string   `json:"nextRoute"`
	RoundToken string   `json:"roundToken"`
}

// HuntProgress response type
type HuntProgress struct {
	DeviceID      string `json:"deviceId"`
	RoomsUnlocked int    `json:"roomsUnlocked"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Faction: %s\n", u.Faction)
	fmt.Printf("Score: %d\n", u.Score)
	fmt.Printf("Stage: %d\n", u.Stage)
}

func (o *Output) printMeResult(m MeResult) {
	if !m.LoggedIn || m.User == nil {
		fmt.Println("Not logged in")
		return
	}
	o.printUser(*m.User)
}

func (o *Output) printScoreResult(s ScoreResult) {
	fmt.Printf("New score: %d\n", s.NewScore)
	fmt.Printf("Stage: %d\n", s.Stage)
}

func (o *Output) printPuzzleResult(p PuzzleResult) {
	if !p.Correct {
		fmt.Println("Wrong answer")
		return
	}
	fmt.Println("Correct!")
	if p.Tier != "" {
		fmt.Printf("Tier: %s\n", p.Tier)
	}
	fmt.Printf("New score: %d\n", p.NewScore)
	fmt.Printf("Stage: %d\n", p.Stage)
	if p.NextRoute != "" {
		fmt.Printf("Next: %s\n", p.NextRoute)
	}
}

func (o *Output) printKeypadLayout(k KeypadLayout) {
	// The keypad renders as a 4x3 grid
	for i, symbol := range k.Symbols {
		fmt.Printf(" %s ", symbol)
		if (i+1)%3 == 0 {
			fmt.Println()
		}
	}
}

func (o *Output) printOracleStatus(s OracleStatus) {
	fmt.Printf("Round: %d/%d\n", s.Round, s.TotalRounds)
	if s.Completed {
		fmt.Println("All rounds complete")
	}
	for _, qa := range s.PastAnswers {
		fmt.Printf("  Q: %s\n  A: %s\n", qa.Question, qa.Answer)
	}
}

func (o *Output) printOracleAnswer(a OracleAnswer) {
	fmt.Printf("Oracle: %s\n", a.Answer)
	if a.Hint != "" {
		fmt.Printf("Hint: %s\n", a.Hint)
	}
	if a.RoundWon {
		fmt.Printf("Round %d won! Score: %d, stage: %d\n", a.Round, a.NewScore, a.Stage)
	}
	if a.Completed {
		fmt.Println("All rounds complete")
	}
}

func (o *Output) printHuntState(h HuntState) {
	fmt.Printf("Session: %s\n", h.SessionID)
	fmt.Printf("Phase: %s\n", h.Phase)
	fmt.Printf("Room %d: %s\n", h.RoomIndex, h.RoomName)
	fmt.Printf("Clue: %s\n", h.Clue)
	fmt.Printf("Targets: %d/%d\n", h.TargetIndex, h.TotalTargets)
	fmt.Printf("Score: %d\n", h.Score)
	fmt.Printf("Time remaining: %.1fs\n", float64(h.TimeRemainingMs)/1000)
	if h.Jumpscare {
		fmt.Println("Jumpscare!")
	}
}

func (o *Output) printHuntClick(h HuntClick) {
	fmt.Printf("Verdict: %s", h.Verdict)
	if h.ObjectName != "" {
		fmt.Printf(" (%s)", h.ObjectName)
	}
	fmt.Println()
	fmt.Printf("Delta: %+d, score: %d\n", h.Delta, h.Score)
	fmt.Printf("Clue: %s\n", h.Clue)
}

func (o *Output) printHuntSummary(h HuntSummary) {
	fmt.Printf("Final score: %d\n", h.FinalScore)
	for i, score := range h.RoomScores {
		name := ""
		if i < len(h.RoomNames) {
			name = h.RoomNames[i]
		}
		fmt.Printf("  %-20s %d\n", name, score)
	}
	if h.NextRoute != "" {
		fmt.Printf("Next: %s\n", h.NextRoute)
	}
	if h.RoundToken != "" {
		fmt.Printf("Round token: %s\n", h.RoundToken)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Println("Individual:")
	for _, e := range l.IndividualLeaderboard {
		fmt.Printf("  %2d. %-20s %5d (%s)\n", e.Rank, e.Username, e.Score, e.Faction)
	}
	fmt.Println("Factions:")
	for _, f := range l.FactionLeaderboard {
		fmt.Printf("  %-14s total %5d, members %d, avg %.1f\n",
			f.Faction, f.TotalScore, f.MemberCount, f.AverageScore)
	}
}
