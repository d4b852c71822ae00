package spec

type KafkaSink struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Acks    int16    `yaml:"required_acks"`
	Version string   `yaml:"version"`
}

type StdoutSink struct {
	DelayMS int `yaml:"delay_ms"`
}

type sinkConfigs struct {
	Kafka  KafkaSink  `yaml:"kafka"`
	Stdout StdoutSink `yaml:"stdout"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Source struct {
		Kind   string `yaml:"kind"`   // "e2e_test"
		Driver string `yaml:"driver"` // "exception_after_n"
		Config string `yaml:"config"` // source config file, YAML or JSON
	} `yaml:"source"`

	// State is where the last state message is persisted between runs.
	// Empty disables persistence.
	State struct {
		Path string `yaml:"path"`
	} `yaml:"state"`

	Sinks       []string    `yaml:"sinks"`
	SinkConfigs sinkConfigs `yaml:"sink_configs"`
}
