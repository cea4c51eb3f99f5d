// Package quiz drives a learner through one topic: viewing it, answering a
// generated quiz, and submitting the result to the learner's profile.
//
// The Engine is a state machine:
//
//	Idle -> TopicViewing -> Generating -> InProgress -> Submitting -> Results
//
// Results leads back to Idle (ReturnToTopics) or to TopicViewing (Retry).
// ReturnToTopics is accepted from any state and discards the session.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/literacyhub/internal/catalog"
	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/quizgen"
	"github.com/abhisek/literacyhub/internal/scoring"
	"github.com/abhisek/literacyhub/internal/store"
)

const tracerName = "github.com/abhisek/literacyhub/internal/quiz"

// TopicSource looks topics up by ID. *catalog.Catalog implements it.
type TopicSource interface {
	Get(id string) (catalog.Topic, bool)
}

// inflight names the suspending call currently outstanding, if any.
type inflight int

const (
	opNone inflight = iota
	opLoad
	opGenerate
	opSubmit
)

// Engine runs quiz sessions for a single learner. It is safe for concurrent
// use; at most one suspending operation runs at a time and any other call
// made meanwhile returns ErrBusy.
type Engine struct {
	topics    TopicSource
	generator quizgen.Generator
	profiles  store.ProfileStore
	learnerID string

	notifier Notifier
	now      func() time.Time
	loc      *time.Location
	logger   *slog.Logger
	tracer   trace.Tracer
	count    int

	mu       sync.Mutex
	state    State
	session  *Session
	outcome  *Outcome
	inflight inflight
	cancel   context.CancelFunc

	// epoch changes whenever the session is replaced or discarded, so a
	// call that suspended can tell whether its session is still current.
	epoch uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the event sink.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone that decides calendar days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithQuestionCount requests n questions for every topic instead of each
// topic's own count. Values below 1 are ignored.
func WithQuestionCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.count = n
		}
	}
}

// New creates an Engine in StateIdle for learnerID.
func New(topics TopicSource, gen quizgen.Generator, profiles store.ProfileStore, learnerID string, opts ...Option) *Engine {
	e := &Engine{
		topics:    topics,
		generator: gen,
		profiles:  profiles,
		learnerID: learnerID,
		notifier:  nopNotifier{},
		now:       time.Now,
		loc:       time.Local,
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("learner", learnerID)
	return e
}

// LearnerID returns the learner this engine serves.
func (e *Engine) LearnerID() string { return e.learnerID }

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Session returns a copy of the current session, or nil in StateIdle.
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	return e.session.clone()
}

// Outcome returns the last submission's outcome while in StateResults.
func (e *Engine) Outcome() *Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateResults {
		return nil
	}
	return e.outcome
}

// SelectTopic opens topicID in the given mode.
//
// In normal mode the learner's profile is loaded first, and a topic already
// completed today is refused with ErrAlreadyCompletedToday. A failed load
// returns a *StoreError and leaves the engine idle. Practice mode never
// touches the store.
func (e *Engine) SelectTopic(ctx context.Context, topicID string, mode ledger.Mode) error {
	e.mu.Lock()
	if err := e.checkLocked(StateIdle, "select a topic"); err != nil {
		e.mu.Unlock()
		return err
	}
	topic, ok := e.topics.Get(topicID)
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}

	if mode == ledger.ModePractice {
		e.startSessionLocked(topic, mode)
		e.mu.Unlock()
		e.logger.Debug("topic selected", "topic", topic.ID, "mode", mode)
		return nil
	}

	epoch := e.epoch
	loadCtx, cancel := context.WithCancel(ctx)
	e.inflight, e.cancel = opLoad, cancel
	e.mu.Unlock()

	profile, err := e.loadProfile(loadCtx)
	cancel()

	e.mu.Lock()
	if e.epoch != epoch {
		e.mu.Unlock()
		return ErrDiscarded
	}
	e.inflight, e.cancel = opNone, nil

	if err != nil {
		e.mu.Unlock()
		e.logger.Warn("profile load failed", "topic", topic.ID, "error", err)
		return &StoreError{Op: OpLoad, Err: err}
	}

	if ledger.CompletedOn(profile, topic.ID, e.today()) {
		e.mu.Unlock()
		e.logger.Info("topic already completed today", "topic", topic.ID)
		e.notify(ctx, Event{
			Kind:    EventAlreadyCompletedToday,
			TopicID: topic.ID,
			Mode:    mode.String(),
			Message: ErrAlreadyCompletedToday.Error(),
		})
		return ErrAlreadyCompletedToday
	}

	e.startSessionLocked(topic, mode)
	e.mu.Unlock()
	e.logger.Debug("topic selected", "topic", topic.ID, "mode", mode)
	return nil
}

// Generate requests the quiz for the selected topic. On failure it returns
// a *GenerationError and the engine goes back to StateTopicViewing so the
// learner can try again.
func (e *Engine) Generate(ctx context.Context) error {
	e.mu.Lock()
	if err := e.checkLocked(StateTopicViewing, "generate a quiz"); err != nil {
		e.mu.Unlock()
		return err
	}
	sess := e.session
	epoch := e.epoch
	genCtx, cancel := context.WithCancel(ctx)
	e.state, e.inflight, e.cancel = StateGenerating, opGenerate, cancel
	e.mu.Unlock()
	defer cancel()

	topic := sess.Topic
	genCtx, span := e.tracer.Start(genCtx, "quiz.generate", trace.WithAttributes(
		attribute.String("topic.id", topic.ID),
		attribute.String("quiz.mode", sess.Mode.String()),
		attribute.Int("quiz.requested_questions", e.questionCount(topic)),
	))

	started := time.Now()
	qs, err := e.generator.Generate(quizgen.WithQuestionCount(genCtx, e.questionCount(topic)), topic.Title, topic.Content)
	if err == nil && len(qs) == 0 {
		err = quizgen.ErrNoQuestions
	}
	endSpan(span, err, attribute.Int("quiz.questions", len(qs)))

	e.mu.Lock()
	if e.epoch != epoch {
		e.mu.Unlock()
		e.logger.Debug("dropping generation result for discarded session", "session", sess.ID)
		return ErrDiscarded
	}
	e.inflight, e.cancel = opNone, nil

	if err != nil {
		e.state = StateTopicViewing
		e.mu.Unlock()

		gerr := &GenerationError{TopicID: topic.ID, Err: err}
		e.logger.Warn("quiz generation failed", "topic", topic.ID, "error", err)
		e.notify(ctx, Event{
			Kind:      EventGenerationFailed,
			SessionID: sess.ID,
			TopicID:   topic.ID,
			Mode:      sess.Mode.String(),
			Message:   gerr.Error(),
		})
		return gerr
	}

	sess.Questions = slices.Clone(qs)
	sess.Answers = unanswered(len(qs))
	sess.CurrentIndex = 0
	e.state = StateInProgress
	e.mu.Unlock()

	e.logger.Debug("quiz ready", "topic", topic.ID, "questions", len(qs), "elapsed", time.Since(started))
	e.notify(ctx, Event{
		Kind:      EventQuizReady,
		SessionID: sess.ID,
		TopicID:   topic.ID,
		Mode:      sess.Mode.String(),
		Questions: len(qs),
	})
	return nil
}

// SelectAnswer records option as the answer to the current question
// without advancing. It may be called again to change the answer.
func (e *Engine) SelectAnswer(option int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkLocked(StateInProgress, "select an answer"); err != nil {
		return err
	}
	q, _ := e.session.CurrentQuestion()
	if option < 0 || option >= len(q.Options) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidOption, option, len(q.Options))
	}
	e.session.Answers[e.session.CurrentIndex] = option
	return nil
}

// Advance moves to the next question, or to StateSubmitting after the last
// one. The current question must be answered.
func (e *Engine) Advance() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkLocked(StateInProgress, "advance"); err != nil {
		return err
	}
	if e.session.CurrentAnswer() == scoring.Unanswered {
		return ErrUnanswered
	}
	if e.session.IsLast() {
		e.state = StateSubmitting
		return nil
	}
	e.session.CurrentIndex++
	return nil
}

// Submit scores the session and, in normal mode, records the completion
// through the ledger with a single profile update.
//
// A store failure does not lose the score: Submit returns the Outcome
// together with a *StoreError, and the engine still moves to StateResults.
func (e *Engine) Submit(ctx context.Context) (*Outcome, error) {
	e.mu.Lock()
	if err := e.checkLocked(StateSubmitting, "submit"); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	sess := e.session
	epoch := e.epoch
	e.inflight = opSubmit
	e.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "quiz.submit", trace.WithAttributes(
		attribute.String("topic.id", sess.Topic.ID),
		attribute.String("quiz.mode", sess.Mode.String()),
	))

	res := scoring.Score(sess.Questions, sess.Answers, sess.Topic.Points)
	out := &Outcome{
		SessionID: sess.ID,
		Topic:     sess.Topic,
		Mode:      sess.Mode,
		Result:    res,
		Questions: slices.Clone(sess.Questions),
		Answers:   slices.Clone(sess.Answers),
	}

	var err error
	if sess.Mode == ledger.ModeNormal {
		err = e.persist(ctx, out)
	}
	endSpan(span, err,
		attribute.Float64("quiz.score_percent", res.ScorePercent),
		attribute.Int("quiz.points_earned", res.PointsEarned),
		attribute.Bool("quiz.persisted", out.Persisted),
	)

	e.mu.Lock()
	e.inflight = opNone
	if e.epoch == epoch {
		e.state = StateResults
		e.outcome = out
	}
	e.mu.Unlock()

	ev := Event{
		Kind:         EventSubmissionSucceeded,
		SessionID:    sess.ID,
		TopicID:      sess.Topic.ID,
		Mode:         sess.Mode.String(),
		ScorePercent: res.ScorePercent,
		PointsEarned: res.PointsEarned,
		StreakCount:  out.StreakCount(),
	}
	if err != nil {
		ev.Kind = EventSubmissionPersistenceFailed
		ev.Message = "Your score is correct, but points and streak may not have been saved. Please retry."
		e.logger.Warn("submission not persisted", "topic", sess.Topic.ID, "error", err)
	} else {
		e.logger.Info("quiz submitted",
			"topic", sess.Topic.ID,
			"mode", sess.Mode,
			"score", res.DisplayPercent(),
			"points", res.PointsEarned,
			"persisted", out.Persisted,
		)
	}
	e.notify(ctx, ev)

	return out, err
}

// persist runs the read-modify-write of the learner's profile.
func (e *Engine) persist(ctx context.Context, out *Outcome) error {
	before, err := e.loadProfile(ctx)
	if err != nil {
		return &StoreError{Op: OpLoad, Err: err}
	}

	upd := ledger.RecordCompletion(before, out.Topic.ID, e.today(), out.Result.ScorePercent, out.Result.PointsEarned, out.Mode)
	if !upd.Apply {
		return nil
	}
	if err := e.profiles.UpdateProfile(ctx, e.learnerID, upd.Profile); err != nil {
		return &StoreError{Op: OpUpdate, Err: err}
	}

	out.Persisted = true
	out.FirstToday = upd.FirstToday
	out.Previous = &before
	out.Profile = &upd.Profile
	return nil
}

// Retry starts a fresh session for the same topic and mode. The same-day
// guard is not applied; a normal-mode retry replaces the day's record.
func (e *Engine) Retry() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkLocked(StateResults, "retry"); err != nil {
		return err
	}
	e.startSessionLocked(e.session.Topic, e.session.Mode)
	return nil
}

// ReturnToTopics discards the session from any state and goes back to
// StateIdle. An outstanding profile load or generation is cancelled and its
// result dropped. An outstanding submission still finishes its write, and
// other operations keep returning ErrBusy until it does.
func (e *Engine) ReturnToTopics() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inflight == opLoad || e.inflight == opGenerate {
		e.cancel()
		e.inflight, e.cancel = opNone, nil
	}
	e.epoch++
	e.state = StateIdle
	e.session = nil
	e.outcome = nil
}

func (e *Engine) checkLocked(want State, op string) error {
	if e.inflight != opNone {
		return ErrBusy
	}
	if e.state != want {
		return &TransitionError{Op: op, From: e.state}
	}
	return nil
}

func (e *Engine) startSessionLocked(topic catalog.Topic, mode ledger.Mode) {
	e.epoch++
	e.session = &Session{
		ID:    uuid.NewString(),
		Topic: topic,
		Mode:  mode,
	}
	e.outcome = nil
	e.state = StateTopicViewing
}

// loadProfile treats a missing profile as a new learner's zero profile.
func (e *Engine) loadProfile(ctx context.Context) (ledger.Profile, error) {
	p, err := e.profiles.LoadProfile(ctx, e.learnerID)
	if err != nil {
		return ledger.Profile{}, err
	}
	if p == nil {
		return ledger.Profile{}, nil
	}
	return *p, nil
}

// Today returns the learner's current calendar day.
func (e *Engine) Today() civil.Date {
	return e.today()
}

func (e *Engine) questionCount(t catalog.Topic) int {
	if e.count > 0 {
		return e.count
	}
	return t.QuestionCount
}

func (e *Engine) today() civil.Date {
	return ledger.Today(e.now(), e.loc)
}

func (e *Engine) notify(ctx context.Context, ev Event) {
	ev.Time = e.now()
	ev.LearnerID = e.learnerID
	e.notifier.Notify(context.WithoutCancel(ctx), ev)
}

func endSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
