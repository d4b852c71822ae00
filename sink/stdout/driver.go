// Package stdout writes every message as one JSON line, the way the
// orchestrator expects to read a source's output.
package stdout

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"e2esource/internal/protocol"
	"e2esource/sink"
)

/* ────────── public YAML config ────────── */
type Config struct {
	DelayMS int       `yaml:"delay_ms"` // artificial per-message delay
	Writer  io.Writer `yaml:"-"`        // nil → os.Stdout
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config

	mu  sync.Mutex // guards enc
	enc *protocol.Encoder
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	if c.Writer == nil {
		c.Writer = os.Stdout
	}
	d.cfg = c
	d.enc = protocol.NewEncoder(c.Writer)
	return nil
}

func (d *driver) Push(m protocol.Message) error {
	if d.cfg.DelayMS > 0 {
		time.Sleep(time.Duration(d.cfg.DelayMS) * time.Millisecond)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enc == nil {
		return fmt.Errorf("stdout-sink: not configured")
	}
	return d.enc.Encode(m)
}

func (d *driver) Close() error { return nil }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
