// Package relay runs one incoming message through direction resolution,
// translation, formatting and delivery.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sachnun/translator-bot/internal/chunker"
	"github.com/sachnun/translator-bot/internal/direction"
	"github.com/sachnun/translator-bot/internal/provider"
	"github.com/sachnun/translator-bot/internal/replychain"
	"github.com/sachnun/translator-bot/internal/types"
)

// State is a step of a unit of work.
type State string

const (
	StateReceived           State = "RECEIVED"
	StateResolvingDirection State = "RESOLVING_DIRECTION"
	StateTranslating        State = "TRANSLATING"
	StateFormatting         State = "FORMATTING"
	StateSending            State = "SENDING"
	StateDone               State = "DONE"
	StateFailed             State = "FAILED"
)

// Sender delivers one payload to a chat and returns the id of the sent message.
// replyTo is zero when the payload is not a reply.
type Sender interface {
	Send(ctx context.Context, chatID int64, p types.Payload, replyTo int) (int, error)
}

// Reporter receives a Record for every finished unit of work.
type Reporter interface {
	Report(ctx context.Context, rec Record) error
}

// Record describes a finished unit of work. It never carries message text.
type Record struct {
	Unit         string             `json:"unit"`
	ChatID       int64              `json:"chat_id"`
	MessageID    int                `json:"message_id"`
	Source       types.LanguageCode `json:"source,omitempty"`
	Target       types.LanguageCode `json:"target,omitempty"`
	TargetForced bool               `json:"target_forced"`
	Provider     string             `json:"provider,omitempty"`
	Chunks       int                `json:"chunks"`
	SentIDs      []int              `json:"sent_ids,omitempty"`
	State        State              `json:"state"`
	FailedIn     State              `json:"failed_in,omitempty"`
	Error        string             `json:"error,omitempty"`
	StartedAt    time.Time          `json:"started_at"`
	LatencyMS    int64              `json:"latency_ms"`
}

// Config tunes the relay.
type Config struct {
	ChunkSize     int    `mapstructure:"chunk_size"`
	FailureNotice string `mapstructure:"failure_notice"`
}

// Relay handles incoming messages. Units of work share nothing but read-only
// collaborators, so Handle may run concurrently.
type Relay struct {
	cfg        Config
	resolver   *direction.Resolver
	translator provider.Translator
	detector   provider.Detector
	formatter  *replychain.Formatter
	sender     Sender
	reporter   Reporter
	logger     *zap.Logger
	now        func() time.Time
}

// Deps are the collaborators of a Relay. Reporter and Logger are optional.
type Deps struct {
	Resolver   *direction.Resolver
	Translator provider.Translator
	Detector   provider.Detector
	Formatter  *replychain.Formatter
	Sender     Sender
	Reporter   Reporter
	Logger     *zap.Logger
}

// New returns a Relay.
func New(cfg Config, deps Deps) *Relay {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunker.DefaultChunkSize
	}
	if cfg.ChunkSize > chunker.MessageLimit {
		cfg.ChunkSize = chunker.MessageLimit
	}
	if strings.TrimSpace(cfg.FailureNotice) == "" {
		cfg.FailureNotice = replychain.DefaultFailureNotice
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Relay{
		cfg:        cfg,
		resolver:   deps.Resolver,
		translator: deps.Translator,
		detector:   deps.Detector,
		formatter:  deps.Formatter,
		sender:     deps.Sender,
		reporter:   deps.Reporter,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// unit is the state of one handling cycle.
type unit struct {
	msg    types.IncomingMessage
	log    *zap.Logger
	state  State
	record Record
}

func (u *unit) enter(s State) {
	u.log.Debug("state transition", zap.String("from", string(u.state)), zap.String("to", string(s)))
	u.state = s
}

// Handle runs msg to DONE or FAILED. A message without text is ignored.
// The returned error wraps one of the types.Err* kinds.
func (r *Relay) Handle(ctx context.Context, msg types.IncomingMessage) error {
	if strings.TrimSpace(msg.Text) == "" {
		return nil
	}

	id := uuid.NewString()
	u := &unit{
		msg: msg,
		log: r.logger.With(
			zap.String("unit", id),
			zap.Int64("chat_id", msg.ChatID),
			zap.Int("message_id", msg.ID),
		),
		state: StateReceived,
		record: Record{
			Unit:      id,
			ChatID:    msg.ChatID,
			MessageID: msg.ID,
			StartedAt: r.now(),
		},
	}

	u.enter(StateResolvingDirection)
	decision, err := r.resolver.Resolve(ctx, msg, r.detect)
	if err != nil {
		return r.fail(ctx, u, err)
	}
	u.record.Source = decision.SourceLanguage
	u.record.Target = decision.TargetLanguage
	u.record.TargetForced = decision.TargetForced

	u.enter(StateTranslating)
	res, err := r.translator.Translate(ctx, msg.Text, decision.SourceLanguage, decision.TargetLanguage)
	if err != nil {
		if !errors.Is(err, types.ErrTranslationFailed) {
			err = fmt.Errorf("%w: %w", types.ErrTranslationFailed, err)
		}
		return r.fail(ctx, u, err)
	}
	u.record.Provider = res.Provider

	u.enter(StateFormatting)
	chunks := r.split(decision, msg.Text, res.Text)
	payloads := make([]types.Payload, len(chunks))
	payloads[0] = r.formatter.Header(decision, msg.Text, chunks[0], msg.SenderID)
	for i := 1; i < len(chunks); i++ {
		payloads[i] = r.formatter.Continuation(chunks[i])
	}
	u.record.Chunks = len(chunks)

	u.enter(StateSending)
	replyTo := msg.ID
	for i, p := range payloads {
		sentID, err := r.sender.Send(ctx, msg.ChatID, p, replyTo)
		if err != nil {
			if i == 0 {
				err = fmt.Errorf("%w: %w", types.ErrSendFailed, err)
			} else {
				err = fmt.Errorf("%w: chunk %d of %d: %w", types.ErrChunkLinkFailed, i+1, len(payloads), err)
			}
			return r.fail(ctx, u, err)
		}
		u.record.SentIDs = append(u.record.SentIDs, sentID)
		replyTo = sentID
	}

	u.enter(StateDone)
	u.record.State = StateDone
	u.record.LatencyMS = r.now().Sub(u.record.StartedAt).Milliseconds()
	u.log.Info("translation delivered",
		zap.String("source", decision.SourceLanguage),
		zap.String("target", decision.TargetLanguage),
		zap.Bool("target_forced", decision.TargetForced),
		zap.String("provider", res.Provider),
		zap.Int("chunks", len(chunks)),
		zap.Int64("latency_ms", u.record.LatencyMS),
	)
	r.report(ctx, u)
	return nil
}

// split cuts text into chunks of at most ChunkSize runes. The first chunk
// shrinks further when needed so the header carrying it stays within
// chunker.MessageLimit.
func (r *Relay) split(d types.DirectionDecision, original, text string) []string {
	first := r.cfg.ChunkSize
	if budget := chunker.MessageLimit - r.formatter.HeaderOverhead(d, original); budget < first {
		first = max(budget, 1)
	}
	head := chunker.Split(text, first)[0]
	rest := text[len(head):]
	if rest == "" {
		return []string{head}
	}
	chunks := make([]string, 0, 1+chunker.Count(rest, r.cfg.ChunkSize))
	chunks = append(chunks, head)
	return append(chunks, chunker.Split(rest, r.cfg.ChunkSize)...)
}

func (r *Relay) detect(ctx context.Context, text string) (types.LanguageCode, error) {
	if r.detector == nil {
		return "", errors.New("no language detector configured")
	}
	return r.detector.Detect(ctx, text)
}

// fail moves u to FAILED, sends the failure notice and reports the outcome.
func (r *Relay) fail(ctx context.Context, u *unit, cause error) error {
	failedIn := u.state
	u.enter(StateFailed)
	u.log.Error("unit of work failed", zap.String("failed_in", string(failedIn)), zap.Error(cause))

	if _, err := r.sender.Send(ctx, u.msg.ChatID, replychain.FailureNotice(r.cfg.FailureNotice), u.msg.ID); err != nil {
		u.log.Error("failed to send failure notice", zap.Error(err))
	}

	u.record.State = StateFailed
	u.record.FailedIn = failedIn
	u.record.Error = cause.Error()
	u.record.LatencyMS = r.now().Sub(u.record.StartedAt).Milliseconds()
	r.report(ctx, u)
	return cause
}

func (r *Relay) report(ctx context.Context, u *unit) {
	if r.reporter == nil {
		return
	}
	if err := r.reporter.Report(ctx, u.record); err != nil {
		u.log.Warn("failed to write delivery record", zap.Error(err))
	}
}
