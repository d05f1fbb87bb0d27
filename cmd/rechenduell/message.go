package main

// Event is one outbound notification, delivered as JSON to the member
// connections of a room (or privately to a single connection).
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	EventCreated      = "created"      // private: room created, requester is player 0
	EventJoined       = "joined"       // private: join succeeded, requester is player 1
	EventReady        = "ready"        // both players are present
	EventWaitingNext  = "waitingNext"  // barrier armed, waiting for both ready signals
	EventReadyCount   = "readyCount"   // number of ready signals received so far
	EventRound        = "round"        // new question posted
	EventAnswerResult = "answerResult" // private: correctness of own answer
	EventBall         = "ball"         // ball position changed
	EventRoundWinner  = "roundWinner"  // which player locked the round
	EventGameOver     = "gameover"     // goal reached
	EventError        = "errorMsg"     // user-facing error / opponent-left notice
)

type roomRefPayload struct {
	Code        string `json:"code"`
	PlayerIndex int    `json:"playerIndex"`
}

type messagePayload struct {
	Message string `json:"message"`
}

type readyCountPayload struct {
	Count int `json:"count"`
}

type roundPayload struct {
	Question string `json:"question"`
	Options  []int  `json:"options"`
	Ball     int    `json:"ball"`
}

type answerResultPayload struct {
	Correct bool `json:"correct"`
}

type ballPayload struct {
	Ball int `json:"ball"`
}

type roundWinnerPayload struct {
	WinnerPlayerIndex int `json:"winnerPlayerIndex"`
}

type gameOverPayload struct {
	WinnerPlayerIndex int `json:"winnerPlayerIndex"`
	Ball              int `json:"ball"`
}

func NewCreatedEvent(code string) Event {
	return Event{Type: EventCreated, Data: roomRefPayload{Code: code, PlayerIndex: 0}}
}

func NewJoinedEvent(code string, playerIndex int) Event {
	return Event{Type: EventJoined, Data: roomRefPayload{Code: code, PlayerIndex: playerIndex}}
}

func NewReadyEvent(message string) Event {
	return Event{Type: EventReady, Data: messagePayload{Message: message}}
}

func NewWaitingNextEvent(message string) Event {
	return Event{Type: EventWaitingNext, Data: messagePayload{Message: message}}
}

func NewReadyCountEvent(count int) Event {
	return Event{Type: EventReadyCount, Data: readyCountPayload{Count: count}}
}

func NewRoundEvent(q Question, ball int) Event {
	return Event{Type: EventRound, Data: roundPayload{Question: q.Text, Options: q.Options, Ball: ball}}
}

func NewAnswerResultEvent(correct bool) Event {
	return Event{Type: EventAnswerResult, Data: answerResultPayload{Correct: correct}}
}

func NewBallEvent(ball int) Event {
	return Event{Type: EventBall, Data: ballPayload{Ball: ball}}
}

func NewRoundWinnerEvent(winnerIndex int) Event {
	return Event{Type: EventRoundWinner, Data: roundWinnerPayload{WinnerPlayerIndex: winnerIndex}}
}

func NewGameOverEvent(winnerIndex, ball int) Event {
	return Event{Type: EventGameOver, Data: gameOverPayload{WinnerPlayerIndex: winnerIndex, Ball: ball}}
}

func NewErrorEvent(message string) Event {
	return Event{Type: EventError, Data: messagePayload{Message: message}}
}
