package gate

import (
	"context"
	"fmt"
	"sync"
)

// Prompt is a yes/no question put to the operator.
type Prompt struct {
	Title  string
	Detail string
}

func (p Prompt) String() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + "\n" + p.Detail
}

// Confirmer answers prompts. Implementations must honor ctx cancellation.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

type always bool

// Always returns a Confirmer that gives the same answer to every prompt.
func Always(answer bool) Confirmer {
	return always(answer)
}

func (a always) Confirm(ctx context.Context, _ Prompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(a), nil
}

// Scripted replays a fixed sequence of answers and records every prompt it
// was shown. Running out of answers is an error.
type Scripted struct {
	mu      sync.Mutex
	answers []bool
	Asked   []Prompt
}

func NewScripted(answers ...bool) *Scripted {
	return &Scripted{answers: answers}
}

func (s *Scripted) Confirm(ctx context.Context, p Prompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Asked = append(s.Asked, p)
	if len(s.answers) == 0 {
		return false, fmt.Errorf("no scripted answer for prompt %q", p.Title)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}
