package pipeline

import (
	"fmt"

	"e2esource/internal/checkpoint"
	"e2esource/internal/config"
	"e2esource/sink"
	kafkasink "e2esource/sink/kafka"
	"e2esource/sink/stdout"
	"e2esource/source/e2etest"
)

const sourceKind = "e2e_test"

func Compile(path string) (*Runner, error) {
	r := NewRunner()
	if err := LoadYAML(path, r); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func LoadYAML(path string, r *Runner) error {
	cfg, err := config.LoadPipelineSpec(path)
	if err != nil {
		return err
	}

	if cfg.Source.Kind != sourceKind {
		return fmt.Errorf("unsupported source %q", cfg.Source.Kind)
	}
	sc, err := config.LoadSourceConfig(cfg.Source.Config)
	if err != nil {
		return err
	}
	driver := cfg.Source.Driver
	if driver == "" {
		driver = e2etest.DriverExceptionAfterN
	}
	src, err := e2etest.NewAdapter(driver)
	if err != nil {
		return err
	}
	if err = src.Configure(sc); err != nil {
		return err
	}
	r.SetSource(src)

	if cfg.State.Path != "" {
		r.SetStore(checkpoint.NewFileStore(cfg.State.Path))
	}

	for _, name := range cfg.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return err
		}

		switch name {
		case "stdout":
			err = sDrv.Configure(stdout.Config{DelayMS: cfg.SinkConfigs.Stdout.DelayMS})
		case "kafka":
			k := cfg.SinkConfigs.Kafka
			err = sDrv.Configure(kafkasink.Config{
				Brokers: k.Brokers,
				Topic:   k.Topic,
				Acks:    k.Acks,
				Version: k.Version,
			})
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return fmt.Errorf("sink %s: %w", name, err)
		}
		r.AddSink(sDrv)
	}
	if len(r.sinks) == 0 {
		return fmt.Errorf("pipeline %s: no sinks (have %v)", path, sink.Names())
	}
	return nil
}
