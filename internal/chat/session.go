package chat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// TurnInput is one user turn. Exactly one of Text, ImageDataURL or ActionID
// drives the turn; Text may accompany ImageDataURL but the image wins.
type TurnInput struct {
	Text         string `json:"text"`
	ImageDataURL string `json:"imageDataUrl,omitempty"`
	ActionID     string `json:"actionId,omitempty"`
}

// TurnResult carries the out-of-band outcome of a turn. Notice is a short
// status line for the client to surface outside the message log.
type TurnResult struct {
	Notice string `json:"notice,omitempty"`
}

// TurnHandler runs one conversation turn against a session.
type TurnHandler interface {
	HandleTurn(ctx context.Context, s *Session, in TurnInput) TurnResult
}

// Session is one conversation. Turns run one at a time: turnMu is held for
// the whole turn, so handler code reads and writes draft state without
// further locking. mu guards the message log, which is read concurrently
// by snapshot requests.
type Session struct {
	ID        string
	CreatedAt time.Time

	handler TurnHandler
	turnMu  sync.Mutex

	mu       sync.Mutex
	messages []Message
	nextID   int

	// Turn state, accessed only with turnMu held.
	draft            *ProductDraft
	awaitingFeatures bool
}

func newSession(id string, handler TurnHandler) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		handler:   handler,
		nextID:    1,
	}
	s.appendAgentMessage(KindWelcome, formatText(welcomeText), nil, welcomeActions()...)
	return s
}

// Submit runs one turn to completion and returns its result. Concurrent
// submissions to the same session queue up behind each other.
func (s *Session) Submit(ctx context.Context, in TurnInput) (result TurnResult) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("sessionId", s.ID).Interface("panic", r).Msg("turn panicked")
			s.appendAgentMessage(KindError, "Sorry, something went wrong. Please try again.", nil)
			result = TurnResult{}
		}
	}()

	return s.handler.HandleTurn(ctx, s, in)
}

// Messages returns a snapshot of the conversation log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) appendMessage(m Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextID
	s.nextID++
	m.Timestamp = time.Now()
	s.messages = append(s.messages, m)
	return m
}

func (s *Session) appendAgentMessage(kind Kind, text string, payload any, actions ...Action) Message {
	return s.appendMessage(Message{
		Text:    text,
		Sender:  SenderAgent,
		Kind:    kind,
		Payload: payload,
		Actions: actions,
	})
}

func (s *Session) appendUserMessage(text, imageDataURL string) Message {
	m := Message{
		Text:   text,
		Sender: SenderUser,
	}
	if imageDataURL != "" {
		m.Kind = KindUserImageUpload
		m.Payload = map[string]string{"imageDataUrl": imageDataURL, "text": text}
	}
	return s.appendMessage(m)
}

// lastAgentKind returns the kind of the most recent agent message, or ""
// when the log holds none.
func (s *Session) lastAgentKind() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == SenderAgent {
			return s.messages[i].Kind
		}
	}
	return ""
}
