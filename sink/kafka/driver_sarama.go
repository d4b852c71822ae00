package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"e2esource/internal/protocol"
	"e2esource/sink"
)

type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Acks    int16    `yaml:"required_acks"` // 0,1,-1
	Version string   `yaml:"version"`
}

const stateKey = "state"

type driver struct {
	cfg Config
	p   sarama.SyncProducer
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if cfg.Topic == "" {
		return fmt.Errorf("kafka-sink: topic is required")
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	if cfg.Version != "" {
		ver, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return err
		}
		sc.Version = ver
	}
	var err error
	d.p, err = sarama.NewSyncProducer(cfg.Brokers, sc)
	return err
}

// Push blocks until the broker acknowledged the message, so a state message
// handed back as accepted is durable on the topic.
func (d *driver) Push(m protocol.Message) error {
	val, err := json.Marshal(m)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(messageKey(m)),
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(m.Type)},
		},
	}
	if _, _, err := d.p.SendMessage(msg); err != nil {
		return fmt.Errorf("kafka-sink: send %s: %w", m.Type, err)
	}
	return nil
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	p := d.p
	d.p = nil
	return p.Close()
}

func messageKey(m protocol.Message) string {
	if m.Record != nil {
		return m.Record.Stream
	}
	return stateKey
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
