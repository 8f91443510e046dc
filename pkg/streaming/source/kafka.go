package source

import (
	"context"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// MessageReader is the part of *kafka.Reader a topic source uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaConfig configures a Kafka topic source.
type KafkaConfig struct {
	// Reader fetches the messages. It is not closed by the source; closing it ends
	// the stream.
	Reader MessageReader

	// Commit commits each message once the pipeline pulls the next one, and the
	// last pulled message when the evaluation ends. Leave it false for readers
	// without a consumer group.
	Commit bool
}

// NewKafkaReader returns a reader of topic starting at the oldest offset, in the
// consumer group groupID when it is not empty.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	cfg := kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	}
	if groupID != "" {
		cfg.StartOffset = kafka.FirstOffset
	}
	return kafka.NewReader(cfg)
}

// KafkaTopic returns the infinite stream of messages fetched from r. Bound it with
// Limit, a short-circuiting terminal or a context deadline.
func KafkaTopic(r MessageReader, commit bool) (stream.Stream[kafka.Message], error) {
	return KafkaTopicWithConfig(KafkaConfig{Reader: r, Commit: commit})
}

// KafkaTopicWithConfig is KafkaTopic with an explicit configuration.
func KafkaTopicWithConfig(cfg KafkaConfig) (stream.Stream[kafka.Message], error) {
	if err := validation.ValidateNotNil(module, "reader", cfg.Reader); err != nil {
		return nil, err
	}
	return stream.DeferredInfinite(func(context.Context) (stream.Source[kafka.Message], error) {
		return &kafkaSource{cfg: cfg}, nil
	}), nil
}

type kafkaSource struct {
	cfg     KafkaConfig
	ctx     context.Context
	pending *kafka.Message
}

func (s *kafkaSource) Next(ctx context.Context) (kafka.Message, bool, error) {
	s.ctx = ctx
	if err := s.commit(ctx); err != nil {
		return kafka.Message{}, false, err
	}

	msg, err := s.cfg.Reader.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return kafka.Message{}, false, ctx.Err()
		}
		if errors.Is(err, io.EOF) {
			return kafka.Message{}, false, nil
		}
		return kafka.Message{}, false, sferrors.NewIOError(module, "FetchMessage", "", err)
	}
	if s.cfg.Commit {
		s.pending = &msg
	}
	return msg, true, nil
}

func (s *kafkaSource) commit(ctx context.Context) error {
	if s.pending == nil {
		return nil
	}
	msg := *s.pending
	s.pending = nil
	if err := s.cfg.Reader.CommitMessages(ctx, msg); err != nil {
		return sferrors.NewIOError(module, "CommitMessages", msg.Topic, err)
	}
	return nil
}

func (s *kafkaSource) Close() error {
	if s.pending == nil || s.ctx == nil {
		return nil
	}
	// The evaluation context may already be canceled; the last commit still runs.
	return s.commit(context.WithoutCancel(s.ctx))
}
