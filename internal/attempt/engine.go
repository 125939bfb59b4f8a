package attempt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quizquest/internal/domain"
	"quizquest/internal/dto"
	"quizquest/internal/logger"

	"go.uber.org/zap"
)

// State is the lifecycle state of an attempt session.
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateResult     State = "result"
	StateError      State = "error"
)

// ChallengeFetcher is the external collaborator that loads a challenge.
type ChallengeFetcher interface {
	FetchChallenge(ctx context.Context, id string) (*domain.Challenge, error)
}

// AttemptSubmitter is the external collaborator that grades a submission and
// returns the authoritative score and reward breakdown.
type AttemptSubmitter interface {
	SubmitAttempt(ctx context.Context, req *dto.CreateAttemptRequest) (*dto.AttemptResponse, error)
}

// Engine drives a user through a challenge: it walks the question sequence,
// keeps the current question's draft answer apart from the committed answers,
// and hands the finished submission to the attempt service. The committed
// answers survive a failed submission so a retry resends the same payload.
//
// Navigation commits on forward motion only: pressing Previous discards the
// current page's uncommitted edits. This mirrors the product's established
// behavior and is covered by tests; see DESIGN.md for the decision record.
type Engine struct {
	fetcher   ChallengeFetcher
	submitter AttemptSubmitter
	identity  domain.Identity
	clock     func() time.Time

	mu            sync.Mutex
	state         State
	challenge     *domain.Challenge
	index         int
	draft         domain.Answer
	committed     []domain.Answer
	answered      []bool
	formatErrors  map[int]error
	startedAt     time.Time
	frozenElapsed int
	pending       *dto.CreateAttemptRequest
	result        *domain.AttemptResult
	errMsg        string
}

// NewEngine creates an attempt engine for one session. The identity is opaque
// and passed through to the submission unchanged.
func NewEngine(fetcher ChallengeFetcher, submitter AttemptSubmitter, identity domain.Identity) *Engine {
	return &Engine{
		fetcher:   fetcher,
		submitter: submitter,
		identity:  identity,
		clock:     time.Now,
		state:     StateIdle,
	}
}

// StartAttempt fetches the challenge and enters InProgress at question 0.
// A fetch failure is terminal for the attempt.
func (e *Engine) StartAttempt(ctx context.Context, challengeID string) error {
	e.mu.Lock()
	e.state = StateLoading
	e.mu.Unlock()

	challenge, err := e.fetcher.FetchChallenge(ctx, challengeID)
	if err != nil {
		e.mu.Lock()
		e.state = StateError
		e.errMsg = errorMessage(err, "Failed to load challenge")
		e.frozenElapsed = 0
		e.mu.Unlock()
		return domain.NewFetchFailedError(challengeID, err)
	}
	if len(challenge.Questions) == 0 {
		e.mu.Lock()
		e.state = StateError
		e.errMsg = "No questions found in this challenge"
		e.mu.Unlock()
		return domain.NewFetchFailedError(challengeID, errors.New("challenge has no questions"))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.challenge = challenge
	e.committed = make([]domain.Answer, len(challenge.Questions))
	e.answered = make([]bool, len(challenge.Questions))
	e.formatErrors = make(map[int]error)
	for i, q := range challenge.Questions {
		if err := q.Validate(); err != nil {
			// Contained to this question; the session keeps running and the
			// question may be skipped.
			e.formatErrors[i] = err
			logger.Get().Warn("Question failed format validation",
				zap.String("challenge_id", challenge.ID),
				zap.String("question_id", q.ID),
				zap.Error(err))
		}
	}
	e.index = 0
	e.draft = domain.EmptyAnswerFor(challenge.Questions[0])
	e.startedAt = e.clock()
	e.frozenElapsed = 0
	e.pending = nil
	e.result = nil
	e.errMsg = ""
	e.state = StateInProgress
	return nil
}

// CurrentState returns the lifecycle state.
func (e *Engine) CurrentState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Challenge returns the read-only challenge under attempt.
func (e *Engine) Challenge() *domain.Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.challenge
}

// CurrentIndex returns the zero-based index of the displayed question.
func (e *Engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// QuestionCount returns the number of questions in the challenge.
func (e *Engine) QuestionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.challenge == nil {
		return 0
	}
	return len(e.challenge.Questions)
}

// CurrentQuestion returns the displayed question. The error is non-nil when
// the question failed format validation; the host should render a placeholder
// and allow skipping it via GoNext.
func (e *Engine) CurrentQuestion() (domain.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.challenge == nil || e.state != StateInProgress {
		return domain.Question{}, domain.NewInvalidInputError("no question is being displayed")
	}
	return e.challenge.Questions[e.index], e.formatErrors[e.index]
}

// Draft returns the in-progress answer for the displayed question.
func (e *Engine) Draft() domain.Answer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// SubmitDraft replaces the draft answer for the displayed question. The
// answer's variant must match the question's.
func (e *Engine) SubmitDraft(a domain.Answer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateInProgress {
		return domain.NewInvalidInputError(fmt.Sprintf("cannot capture answers in state %s", e.state))
	}
	q := e.challenge.Questions[e.index]
	if a.Type != q.Type {
		return domain.NewInvalidInputError(fmt.Sprintf("answer variant %s does not match question variant %s", a.Type, q.Type))
	}
	e.draft = a.Clone()
	return nil
}

// GoNext commits the draft and advances, or submits from the last question.
// It refuses to advance past an unanswered valid question; questions with
// format errors may be skipped without an answer.
func (e *Engine) GoNext(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateInProgress {
		e.mu.Unlock()
		return domain.NewInvalidInputError(fmt.Sprintf("cannot navigate in state %s", e.state))
	}

	q := e.challenge.Questions[e.index]
	if _, broken := e.formatErrors[e.index]; !broken && !q.IsAnswered(e.draft) {
		e.mu.Unlock()
		return domain.NewInvalidInputError("current question is unanswered")
	}

	e.committed[e.index] = e.draft.Clone()
	e.answered[e.index] = true

	if e.index < len(e.challenge.Questions)-1 {
		e.index++
		next := e.challenge.Questions[e.index]
		if e.answered[e.index] {
			e.draft = e.committed[e.index].Clone()
		} else {
			e.draft = domain.EmptyAnswerFor(next)
		}
		e.mu.Unlock()
		return nil
	}

	// Last question: build the payload once so a retry resends it verbatim.
	e.state = StateSubmitting
	e.pending = &dto.CreateAttemptRequest{
		UserUID:          e.identity.UID,
		Email:            e.identity.Email,
		DisplayName:      e.identity.DisplayName,
		ChallengeID:      e.challenge.ID,
		SubmittedAnswers: BuildSubmission(e.challenge, e.committed),
		TotalTime:        e.elapsedLocked(),
	}
	e.mu.Unlock()

	return e.submitPending(ctx)
}

// GoPrevious steps back one question, reloading that question's committed
// answer into the draft. The current page's uncommitted edits are discarded.
// Disallowed at question 0.
func (e *Engine) GoPrevious() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateInProgress {
		return domain.NewInvalidInputError(fmt.Sprintf("cannot navigate in state %s", e.state))
	}
	if e.index == 0 {
		return domain.NewInvalidInputError("already at the first question")
	}
	e.index--
	if e.answered[e.index] {
		e.draft = e.committed[e.index].Clone()
	} else {
		e.draft = domain.EmptyAnswerFor(e.challenge.Questions[e.index])
	}
	return nil
}

// Resubmit retries a failed submission with the identical payload. Only valid
// after a submission failure; the committed answers are untouched.
func (e *Engine) Resubmit(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateError || e.pending == nil {
		e.mu.Unlock()
		return domain.NewInvalidInputError(fmt.Sprintf("nothing to resubmit in state %s", e.state))
	}
	e.state = StateSubmitting
	e.errMsg = ""
	e.mu.Unlock()

	return e.submitPending(ctx)
}

func (e *Engine) submitPending(ctx context.Context) error {
	e.mu.Lock()
	req := e.pending
	e.mu.Unlock()

	resp, err := e.submitter.SubmitAttempt(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = StateError
		e.errMsg = errorMessage(err, "Failed to submit challenge")
		e.frozenElapsed = e.elapsedLocked()
		logger.Get().Warn("Attempt submission failed",
			zap.String("challenge_id", req.ChallengeID),
			zap.Error(err))
		return err
	}

	e.frozenElapsed = e.elapsedLocked()
	e.result = &domain.AttemptResult{
		AttemptID:   resp.ID,
		ChallengeID: resp.ChallengeID,
		Score:       resp.Score,
		Breakdown: domain.XPBreakdown{
			BaseXP:               resp.XPBreakdown.BaseXP,
			DifficultyMultiplier: resp.XPBreakdown.DifficultyMultiplier,
			FirstTimeBonus:       resp.XPBreakdown.FirstTimeBonus,
			PerfectBonus:         resp.XPBreakdown.PerfectBonus,
			TotalXP:              resp.XPBreakdown.TotalXP,
		},
		ElapsedSeconds: e.frozenElapsed,
	}
	e.state = StateResult
	return nil
}

// Result returns the server-authoritative outcome, available in StateResult.
func (e *Engine) Result() *domain.AttemptResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// ErrorMessage returns the surfaced failure message, available in StateError.
func (e *Engine) ErrorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// CommittedAnswers returns a snapshot of the committed answer slots; slots for
// questions never advanced past hold the variant's empty answer.
func (e *Engine) CommittedAnswers() []domain.Answer {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Answer, len(e.committed))
	for i, a := range e.committed {
		out[i] = a.Clone()
	}
	return out
}

// EstimatedScore returns the advisory client-side percentage for the committed
// answers. The server score in Result is authoritative whenever present.
func (e *Engine) EstimatedScore() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.challenge == nil {
		return 0
	}
	return EstimateScore(e.challenge, e.committed)
}

// ElapsedSeconds reports whole seconds since the attempt started. The value
// freezes on entering Result or Error.
func (e *Engine) ElapsedSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsedLocked()
}

func (e *Engine) elapsedLocked() int {
	switch e.state {
	case StateInProgress, StateSubmitting:
		return int(e.clock().Sub(e.startedAt) / time.Second)
	case StateResult, StateError:
		return e.frozenElapsed
	}
	return 0
}

// StartTicker runs a periodic elapsed-time callback for display purposes. The
// loop ends when stop is called or when the attempt reaches Result or Error,
// so a torn-down host cannot leave a timer observing a discarded attempt.
func (e *Engine) StartTicker(interval time.Duration, onTick func(seconds int)) (stop func()) {
	done := make(chan struct{})
	var once sync.Once
	stop = func() { once.Do(func() { close(done) }) }

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				state := e.CurrentState()
				if state != StateInProgress && state != StateSubmitting {
					return
				}
				onTick(e.ElapsedSeconds())
			}
		}
	}()
	return stop
}

// errorMessage prefers the service's message and falls back to a generic one.
func errorMessage(err error, fallback string) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
