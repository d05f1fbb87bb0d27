package main

import (
	"math/rand"
	"slices"
	"time"
)

const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no I/O/0/1
	roomCodeLength   = 5

	roomCapacity = 2

	ballStart = 50
	ballMin   = 0
	ballMax   = 100
	ballStep  = 10
)

// Room is one two-player match session. Player index 0 pushes the ball
// toward 100, index 1 toward 0; the creator is always index 0. All fields
// are guarded by the RoomManager's mutex, rooms are only ever reachable
// through the manager's registry by code.
type Room struct {
	code           string
	players        []string // connection ids, insertion order
	ball           int
	currentQ       *Question
	roundLocked    bool
	waitingForNext bool
	nextReady      map[string]struct{}
	gameOver       bool
	roundStartedAt time.Time
	roundTimer     *time.Timer // pacing timer between rounds, nil when idle
}

func NewRoom(code, owner string) *Room {
	return &Room{
		code:           code,
		players:        []string{owner},
		ball:           ballStart,
		waitingForNext: true, // nothing starts before both players are ready
		nextReady:      make(map[string]struct{}),
	}
}

func (r *Room) isMember(connID string) bool {
	return slices.Contains(r.players, connID)
}

// playerIndex returns the position of connID in the room, -1 for non-members.
func (r *Room) playerIndex(connID string) int {
	return slices.Index(r.players, connID)
}

// genRoomCode returns a 5-character code over an alphabet that avoids
// visually ambiguous characters. Uniqueness is the registry's concern.
func genRoomCode() string {
	buf := make([]byte, roomCodeLength)
	for i := range buf {
		buf[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(buf)
}
