package main

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DEFAULT_ROUND_DELAY is the cosmetic pause between a non-goal round win and
// the next question.
const DEFAULT_ROUND_DELAY = 600 * time.Millisecond

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// RoomManager owns every live room and serializes all room mutations behind a
// single mutex. The first-correct-answer-wins guarantee rests on the
// roundLocked check-and-set in SubmitAnswer happening under this lock; the
// pacing timer callback re-resolves the room by code so a timer that fires
// after a disconnect-triggered deletion is a no-op.
//
// Invalid or stale intents (unknown code, non-member connection, action in
// the wrong state) are silently absorbed; the only surfaced failures are
// ErrRoomNotFound and ErrRoomFull, delivered to the requesting connection.
type RoomManager struct {
	notifier          Notifier
	announcer         *ResultAnnouncer // optional, nil disables announcements
	rooms             map[string]*Room
	mu                sync.Mutex
	roundDelay        time.Duration
	barrierEveryRound bool
	closed            bool
}

// NewRoomManager creates a manager. roundDelay is the pause before
// auto-advancing after a non-goal win; with barrierEveryRound set, every
// round instead requires a fresh two-party ready barrier.
func NewRoomManager(notifier Notifier, roundDelay time.Duration, barrierEveryRound bool) *RoomManager {
	return &RoomManager{
		notifier:          notifier,
		rooms:             make(map[string]*Room),
		roundDelay:        roundDelay,
		barrierEveryRound: barrierEveryRound,
	}
}

// SetAnnouncer enables posting match results to Slack. Must be called before
// the manager starts receiving intents.
func (m *RoomManager) SetAnnouncer(a *ResultAnnouncer) {
	m.announcer = a
}

// CreateRoom registers a new room with connID as player 0 and returns its
// code, resampling until the code is unique among live rooms.
func (m *RoomManager) CreateRoom(connID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ""
	}

	code := genRoomCode()
	for m.rooms[code] != nil {
		code = genRoomCode()
	}
	m.rooms[code] = NewRoom(code, connID)

	m.notifier.Unicast(connID, NewCreatedEvent(code))
	slog.Info("Room created", "code", code, "owner", connID)
	return code
}

// JoinRoom adds connID as player 1 and re-arms the start barrier. The two
// registry errors are also delivered to the joiner as error events.
func (m *RoomManager) JoinRoom(code, connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrRoomNotFound
	}

	room, ok := m.rooms[code]
	if !ok {
		m.notifier.Unicast(connID, NewErrorEvent("Spielcode nicht gefunden."))
		return ErrRoomNotFound
	}
	if len(room.players) >= roomCapacity {
		m.notifier.Unicast(connID, NewErrorEvent("Raum ist bereits voll."))
		return ErrRoomFull
	}

	room.players = append(room.players, connID)

	m.notifier.Unicast(connID, NewJoinedEvent(code, 1))
	m.notifier.Broadcast(room.players, NewReadyEvent("Beide Spieler sind da."))

	// Both players must press start before the first round.
	room.waitingForNext = true
	room.nextReady = make(map[string]struct{})
	room.gameOver = false
	m.notifier.Broadcast(room.players, NewWaitingNextEvent("Start: Beide Spieler müssen bereit sein."))
	m.notifier.Broadcast(room.players, NewBallEvent(room.ball))

	slog.Info("Player joined", "code", code, "player", connID)
	return nil
}

// SubmitReady records a ready signal for the pending barrier. When both
// players have signaled, the barrier resolves: after a goal the ball returns
// to the center first, then a new round starts.
func (m *RoomManager) SubmitReady(code, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok || !room.isMember(connID) {
		return
	}

	room.nextReady[connID] = struct{}{}
	m.notifier.Broadcast(room.players, NewReadyCountEvent(len(room.nextReady)))

	if len(room.nextReady) < roomCapacity {
		return
	}

	if room.gameOver {
		room.ball = ballStart
		room.gameOver = false
		m.notifier.Broadcast(room.players, NewBallEvent(room.ball))
	}
	room.waitingForNext = false
	room.nextReady = make(map[string]struct{})
	m.startRoundLocked(room)
}

// SubmitAnswer checks connID's answer against the current question. The
// submitter always gets private correctness feedback; only the first correct
// answer of a round moves the ball. Answers arriving after the round lock
// never affect scoring.
func (m *RoomManager) SubmitAnswer(code, connID string, selected int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok || room.currentQ == nil || !room.isMember(connID) {
		return
	}
	if room.waitingForNext || room.gameOver {
		return
	}

	correct := selected == room.currentQ.Answer
	m.notifier.Unicast(connID, NewAnswerResultEvent(correct))
	if !correct {
		return
	}
	if room.roundLocked {
		// A concurrent opponent already won this round.
		return
	}
	room.roundLocked = true

	winner := room.playerIndex(connID)
	if winner == 0 {
		room.ball = min(ballMax, room.ball+ballStep)
	} else {
		room.ball = max(ballMin, room.ball-ballStep)
	}

	m.notifier.Broadcast(room.players, NewBallEvent(room.ball))
	m.notifier.Broadcast(room.players, NewRoundWinnerEvent(winner))
	slog.Info("Round won", "code", code, "winner", winner, "ball", room.ball,
		"elapsed", time.Since(room.roundStartedAt))

	if room.ball <= ballMin || room.ball >= ballMax {
		m.finishGameLocked(room, winner)
		return
	}

	if m.barrierEveryRound {
		room.currentQ = nil
		room.waitingForNext = true
		room.nextReady = make(map[string]struct{})
		m.notifier.Broadcast(room.players, NewWaitingNextEvent("Nächste Runde: Beide Spieler müssen bereit sein."))
		return
	}

	// Short pause before the next question. The callback resolves the room
	// by code again: the room may be gone by then.
	room.roundTimer = time.AfterFunc(m.roundDelay, func() {
		m.advanceRound(code)
	})
}

// Disconnect deletes every room connID is a member of and notifies the
// remaining player. There is no rejoin path; the match is terminated.
func (m *RoomManager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for code, room := range m.rooms {
		if !room.isMember(connID) {
			continue
		}
		if room.roundTimer != nil {
			room.roundTimer.Stop()
		}
		delete(m.rooms, code)
		m.notifier.Broadcast(room.players, NewErrorEvent("Ein Spieler hat das Spiel verlassen."))
		slog.Info("Room closed", "code", code, "reason", "player left", "player", connID)
	}
}

// RoomCount returns the number of live rooms.
func (m *RoomManager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// Shutdown stops all pacing timers, drops every room and refuses all further
// intents. Used at process exit only.
func (m *RoomManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for code, room := range m.rooms {
		if room.roundTimer != nil {
			room.roundTimer.Stop()
		}
		delete(m.rooms, code)
	}
}

// startRoundLocked posts a fresh question. No-op unless the room is full,
// unblocked and mid-game. Caller must hold m.mu.
func (m *RoomManager) startRoundLocked(room *Room) {
	if len(room.players) < roomCapacity || room.waitingForNext || room.gameOver {
		return
	}

	room.roundLocked = false
	q := newQuestion()
	room.currentQ = &q
	room.roundStartedAt = time.Now()

	m.notifier.Broadcast(room.players, NewRoundEvent(q, room.ball))
}

// advanceRound is the pacing timer callback: clear the round lock and post
// the next question, unless the room vanished or was put behind a barrier in
// the meantime.
func (m *RoomManager) advanceRound(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok {
		return
	}
	room.roundTimer = nil
	if room.waitingForNext || room.gameOver {
		return
	}
	room.roundLocked = false
	m.startRoundLocked(room)
}

// finishGameLocked enters the game-over state after a goal and arms the
// new-game barrier. Caller must hold m.mu.
func (m *RoomManager) finishGameLocked(room *Room, winner int) {
	room.gameOver = true
	room.waitingForNext = true
	room.nextReady = make(map[string]struct{})
	room.currentQ = nil

	m.notifier.Broadcast(room.players, NewGameOverEvent(winner, room.ball))
	m.notifier.Broadcast(room.players, NewWaitingNextEvent("Tor! Für die neue Runde müssen beide auf „Neue Runde“ drücken."))
	slog.Info("Game over", "code", room.code, "winner", winner, "ball", room.ball)

	if m.announcer != nil {
		// Slack I/O must not run under the room lock.
		go m.announcer.AnnounceResult(room.code, winner, room.ball)
	}
}
