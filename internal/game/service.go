package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"escape-game-backend/internal/models"
	"escape-game-backend/internal/puzzles"
	"escape-game-backend/internal/storage"
	"escape-game-backend/internal/ws"

	"github.com/google/uuid"
)

const (
	// DefaultStageDurationSec is the countdown for stages missing from the
	// duration table.
	DefaultStageDurationSec = 90
	// MaxFailsPerStage forces a zero-score advancement once reached.
	MaxFailsPerStage = 2

	playerBatchSize = 4
)

// stageDurations maps stage index to countdown seconds.
var stageDurations = map[int]int{0: 180, 1: 120, 2: 180, 3: 180}

// stagePenaltiesSec maps stage index to the time deducted on a wrong answer.
var stagePenaltiesSec = map[int]int{1: 30}

// Broadcaster fans a room-scoped event out to every subscriber.
type Broadcaster interface {
	Broadcast(roomCode string, message ws.Message)
}

// SignalBridge drives the room's physical feedback channel. Implementations
// must never block or return errors into the game.
type SignalBridge interface {
	SetLED(roomCode string, on bool)
	Buzz(roomCode string, durationMS int)
	SetChronoColor(roomCode string, color string)
}

type ChatPayload struct {
	System bool   `json:"system"`
	Msg    string `json:"msg"`
}

type HintsPayload struct {
	Stage int `json:"stage"`
	Used  int `json:"used"`
	Total int `json:"total"`
}

type ScorePayload struct {
	Total     int   `json:"total"`
	ByStage   []int `json:"by_stage"`
	FailsLeft int   `json:"fails_left"`
}

// StatePayload is the derived room snapshot broadcast after every
// state-affecting action.
type StatePayload struct {
	Stage     int             `json:"stage"`
	Total     int             `json:"total"`
	Prompt    *puzzles.Prompt `json:"prompt"`
	Remaining int             `json:"remaining"`
	Finished  bool            `json:"finished"`
	Success   bool            `json:"success"`
	Hints     HintsPayload    `json:"hints"`
	RoomLabel string          `json:"room_label"`
	Score     ScorePayload    `json:"score"`
}

type SummaryPayload struct {
	Items []SummaryItem `json:"items"`
	Score ScorePayload  `json:"score"`
}

type AuthResult struct {
	OK    bool   `json:"ok"`
	Msg   string `json:"msg"`
	Token string `json:"token,omitempty"`
}

// Service is the room session state machine. It owns stage progression,
// timers, attempt and score bookkeeping, and emits snapshots through the
// broadcaster after every transition.
type Service struct {
	store         storage.Store
	registry      *puzzles.Registry
	sessions      *Sessions
	hub           Broadcaster
	bridge        SignalBridge
	watchInterval time.Duration
}

func NewService(store storage.Store, registry *puzzles.Registry, hub Broadcaster, bridge SignalBridge, watchInterval time.Duration) *Service {
	if watchInterval <= 0 {
		watchInterval = 1500 * time.Millisecond
	}
	return &Service{
		store:         store,
		registry:      registry,
		sessions:      NewSessions(),
		hub:           hub,
		bridge:        bridge,
		watchInterval: watchInterval,
	}
}

func durationFor(stage int) int {
	if d, ok := stageDurations[stage]; ok {
		return d
	}
	return DefaultStageDurationSec
}

// Remaining computes the seconds left on the current stage, floored at zero.
// A stage that has not started yet shows the full countdown.
func (s *Service) Remaining(r *models.Room) int {
	if r.StageStartedAt == nil {
		return r.StageDurationSec
	}
	elapsed := int(time.Now().UTC().Sub(*r.StageStartedAt).Seconds())
	if rem := r.StageDurationSec - elapsed; rem > 0 {
		return rem
	}
	return 0
}

// EnterRoom looks a room up by code, creating it together with its batch of
// player join codes on first visit. An empty code gets a generated one.
func (s *Service) EnterRoom(code string) (*models.Room, []models.Player, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		generated, err := s.generateRoomCode()
		if err != nil {
			return nil, nil, err
		}
		code = generated
	}

	room, err := s.store.GetRoom(code)
	if errors.Is(err, storage.ErrNotFound) {
		room = &models.Room{
			Code:             code,
			CreatedAt:        time.Now().UTC(),
			StageDurationSec: durationFor(0),
		}
		if err := s.store.CreateRoom(room); err != nil {
			return nil, nil, err
		}
		batch := make([]models.Player, playerBatchSize)
		for i := range batch {
			batch[i] = models.Player{
				RoomCode: code,
				Code:     generatePlayerCode(),
				JoinedAt: time.Now().UTC(),
			}
		}
		if err := s.store.CreatePlayers(batch); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	s.sessions.get(code)

	players, err := s.store.ListPlayers(code)
	if err != nil {
		return nil, nil, err
	}
	return room, players, nil
}

// Room returns a room and its players without creating anything.
func (s *Service) Room(code string) (*models.Room, []models.Player, error) {
	room, err := s.store.GetRoom(code)
	if err != nil {
		return nil, nil, err
	}
	players, err := s.store.ListPlayers(code)
	if err != nil {
		return nil, nil, err
	}
	return room, players, nil
}

func (s *Service) Rooms() ([]models.Room, error) {
	return s.store.ListRooms()
}

// Start begins the mission. Starting an in-progress room is a silent no-op;
// starting a finished room restarts it.
func (s *Service) Start(code string) {
	ctx := s.sessions.get(code)
	ctx.opMu.Lock()
	defer ctx.opMu.Unlock()

	r, err := s.store.GetRoom(code)
	if err != nil {
		return
	}

	if r.IsFinished {
		s.startRun(r, ctx, "🔁 New mission!")
		return
	}
	if r.StartedAt != nil {
		return
	}
	s.startRun(r, ctx, "The mission begins!")
}

// Replay force-resets a session to stage 0 and starts it, whatever state it
// was in.
func (s *Service) Replay(code string) {
	ctx := s.sessions.get(code)
	ctx.opMu.Lock()
	defer ctx.opMu.Unlock()

	r, err := s.store.GetRoom(code)
	if err != nil {
		return
	}

	s.startRun(r, ctx, "🔁 New mission!")
}

// startRun re-initializes the room to IN_PROGRESS(stage 0). Caller holds opMu.
func (s *Service) startRun(r *models.Room, ctx *sessionContext, notice string) {
	now := time.Now().UTC()
	r.StartedAt = &now
	r.StageStartedAt = &now
	r.CurrentStage = 0
	r.IsFinished = false
	r.Success = false
	r.MissedCount = 0
	r.Score = 0
	r.StageDurationSec = durationFor(0)
	if err := s.store.SaveRoom(r); err != nil {
		log.Printf("game: save room %s: %v", r.Code, err)
		return
	}
	ctx.resetAll(0)
	s.StartWatcher(r.Code)
	s.broadcastChat(r.Code, true, notice)
	s.broadcastState(r)
}

// ResetRoom puts a room back to NOT_STARTED and clears player identities
// (the host-side full reset).
func (s *Service) ResetRoom(code string) error {
	r, err := s.store.GetRoom(code)
	if err != nil {
		return err
	}

	ctx := s.sessions.get(code)
	ctx.opMu.Lock()
	defer ctx.opMu.Unlock()

	r.StartedAt = nil
	r.StageStartedAt = nil
	r.CurrentStage = 0
	r.IsFinished = false
	r.Success = false
	r.MissedCount = 0
	r.Score = 0
	r.StageDurationSec = durationFor(0)
	if err := s.store.SaveRoom(r); err != nil {
		return err
	}
	ctx.resetAll(0)
	if err := s.store.ResetPlayers(code); err != nil {
		return err
	}
	s.broadcastState(r)
	return nil
}

// DeleteRoom removes a room; its watcher notices on the next tick and winds
// itself down.
func (s *Service) DeleteRoom(code string) error {
	if err := s.store.DeleteRoom(code); err != nil {
		return err
	}
	s.sessions.drop(code)
	return nil
}

// Authenticate binds a display name to a player join code. The returned
// result and snapshot are for the caller only; the join notice goes to the
// whole room.
func (s *Service) Authenticate(code, playerCode, name string) (AuthResult, *StatePayload) {
	playerCode = strings.ToUpper(strings.TrimSpace(playerCode))
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Agent"
	}

	p, err := s.store.GetPlayer(code, playerCode)
	if err != nil {
		return AuthResult{OK: false, Msg: "Invalid player code."}, nil
	}

	p.Name = name
	p.Authenticated = true
	p.WebToken = uuid.NewString()
	if err := s.store.SavePlayer(p); err != nil {
		log.Printf("game: save player %s/%s: %v", code, playerCode, err)
		return AuthResult{OK: false, Msg: "Could not save player."}, nil
	}

	s.broadcastChat(code, true, fmt.Sprintf("%s joined the mission.", name))

	var snapshot *StatePayload
	if r, err := s.store.GetRoom(code); err == nil {
		snap := s.Snapshot(r)
		snapshot = &snap
	}
	return AuthResult{OK: true, Msg: fmt.Sprintf("Welcome %s!", name), Token: p.WebToken}, snapshot
}

// RequestHint reveals the next unused hint for the active stage, or a
// "none left" notice once exhausted.
func (s *Service) RequestHint(code string) {
	r, err := s.store.GetRoom(code)
	if err != nil || r.IsFinished {
		return
	}

	ctx := s.sessions.get(code)
	used := ctx.hints(r.CurrentStage)
	if hint, ok := s.registry.Hint(r.CurrentStage, used); ok {
		n := ctx.useHint(r.CurrentStage)
		s.broadcastChat(code, true, fmt.Sprintf("🧩 Hint %d: %s", n, hint))
	} else {
		s.broadcastChat(code, true, "No more hints available.")
	}
	s.broadcastState(r)
}

// Chat relays a player message to the room verbatim. No state effect.
func (s *Service) Chat(code, name, text string) {
	text = strings.TrimSpace(text)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Agent"
	}
	if code == "" || text == "" {
		return
	}
	s.broadcastChat(code, false, fmt.Sprintf("%s: %s", name, text))
}

// Submit validates a payload against the stage the client was looking at.
// The room is loaded under the operation lock, so a submission that raced a
// concurrent advancement (another submission, the watcher's timeout) sees the
// already-advanced stage and becomes a no-op. Submissions racing an expired
// deadline are dropped too; the watcher's timeout advancement is the
// authoritative outcome then.
func (s *Service) Submit(code string, stage int, payload map[string]any) {
	ctx := s.sessions.get(code)
	ctx.opMu.Lock()
	defer ctx.opMu.Unlock()

	r, err := s.store.GetRoom(code)
	if err != nil || r.IsFinished {
		return
	}
	if stage != r.CurrentStage {
		return
	}
	if s.Remaining(r) <= 0 {
		return
	}

	cur := r.CurrentStage
	puzzle := s.registry.At(cur)
	if puzzle == nil {
		return
	}

	if puzzle.Validate(payload) {
		s.bridge.SetLED(code, true)
		s.bridge.Buzz(code, 120)

		if debrief := puzzle.Debrief(); debrief != "" {
			ctx.appendSummary(SummaryItem{
				Stage:   cur,
				Title:   puzzle.Prompt().Title,
				Debrief: debrief,
			})
			s.broadcastChat(code, true, "🎓 Debrief: "+debrief)
		}

		if err := s.advanceStage(r, ctx, puzzle.Points()); err != nil {
			log.Printf("game: advance room %s: %v", code, err)
			return
		}
		s.broadcastChat(code, true, fmt.Sprintf("✅ Puzzle solved! (+%d pts)", puzzle.Points()))
	} else {
		fails := ctx.recordFail(cur)
		s.bridge.Buzz(code, 300)

		if penalty := stagePenaltiesSec[cur]; penalty > 0 && r.StageStartedAt != nil {
			shifted := r.StageStartedAt.Add(-time.Duration(penalty) * time.Second)
			r.StageStartedAt = &shifted
			if err := s.store.SaveRoom(r); err != nil {
				log.Printf("game: save room %s: %v", code, err)
				return
			}
			s.broadcastChat(code, true, fmt.Sprintf("❌ Wrong answer (−%ds).", penalty))
		} else {
			s.broadcastChat(code, true, "❌ Wrong answer.")
		}

		if fails >= MaxFailsPerStage {
			if err := s.advanceStage(r, ctx, 0); err != nil {
				log.Printf("game: advance room %s: %v", code, err)
				return
			}
			s.broadcastChat(code, true, "⚠️ No attempts left. 0 points, moving to the next puzzle.")
		}
	}

	s.broadcastState(r)
	if r.IsFinished {
		s.broadcastSummary(code)
	}
}

// advanceStage is the single advancement routine shared by the success,
// max-fails and timeout paths. Point recording is idempotent per stage, so a
// duplicate advancement attempt for the same stage cannot double-count.
// Caller holds opMu.
func (s *Service) advanceStage(r *models.Room, ctx *sessionContext, points int) error {
	ctx.addPoints(r.CurrentStage, points)

	r.CurrentStage++
	if r.CurrentStage >= s.registry.Total() {
		r.IsFinished = true
		total, _ := ctx.score()
		r.Success = total > 0
	} else {
		now := time.Now().UTC()
		r.StageStartedAt = &now
		r.StageDurationSec = durationFor(r.CurrentStage)
		ctx.resetStage(r.CurrentStage)
	}

	total, _ := ctx.score()
	r.Score = total
	return s.store.SaveRoom(r)
}

// Snapshot derives the broadcastable state of a room.
func (s *Service) Snapshot(r *models.Room) StatePayload {
	ctx := s.sessions.get(r.Code)

	var prompt *puzzles.Prompt
	hintsTotal := 0
	if p := s.registry.At(r.CurrentStage); p != nil {
		hintsTotal = len(p.Hints())
		if !r.IsFinished {
			pr := p.Prompt()
			prompt = &pr
		}
	}

	total, byStage := ctx.score()
	return StatePayload{
		Stage:     r.CurrentStage,
		Total:     s.registry.Total(),
		Prompt:    prompt,
		Remaining: s.Remaining(r),
		Finished:  r.IsFinished,
		Success:   r.Success,
		Hints: HintsPayload{
			Stage: r.CurrentStage,
			Used:  ctx.hints(r.CurrentStage),
			Total: hintsTotal,
		},
		RoomLabel: r.Code,
		Score: ScorePayload{
			Total:     total,
			ByStage:   byStage,
			FailsLeft: ctx.failsLeft(r.CurrentStage),
		},
	}
}

func (s *Service) broadcastChat(code string, system bool, msg string) {
	s.hub.Broadcast(code, ws.Message{Type: "chat", Data: ChatPayload{System: system, Msg: msg}})
}

func (s *Service) broadcastState(r *models.Room) {
	s.hub.Broadcast(r.Code, ws.Message{Type: "state", Data: s.Snapshot(r)})
}

func (s *Service) broadcastSummary(code string) {
	ctx := s.sessions.get(code)
	total, byStage := ctx.score()
	s.hub.Broadcast(code, ws.Message{Type: "summary", Data: SummaryPayload{
		Items: ctx.summaryItems(),
		Score: ScorePayload{Total: total, ByStage: byStage},
	}})
}

func (s *Service) generateRoomCode() (string, error) {
	for {
		n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
		code := fmt.Sprintf("%06d", n.Int64())
		_, err := s.store.GetRoom(code)
		if errors.Is(err, storage.ErrNotFound) {
			return code, nil
		}
		// A collision retries; a store failure must not.
		if err != nil {
			return "", err
		}
	}
}

func generatePlayerCode() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return strings.ToUpper(hex.EncodeToString(buf))
}
