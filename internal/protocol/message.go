// Package protocol holds the messages exchanged with the replication
// orchestrator. Every message travels as one JSON object per line.
package protocol

type Type string

const (
	TypeRecord           Type = "RECORD"
	TypeState            Type = "STATE"
	TypeConnectionStatus Type = "CONNECTION_STATUS"
	TypeCatalog          Type = "CATALOG"
	TypeSpec             Type = "SPEC"
)

type Status string

const (
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

type SyncMode string

const (
	SyncModeFullRefresh SyncMode = "full_refresh"
	SyncModeIncremental SyncMode = "incremental"
)

// ColumnData is the payload carried by both records and state messages.
type ColumnData struct {
	Column1 int64 `json:"column1"`
}

type RecordMessage struct {
	Stream    string     `json:"stream"`
	Data      ColumnData `json:"data"`
	EmittedAt int64      `json:"emitted_at"`
}

type StateMessage struct {
	Data ColumnData `json:"data"`
}

type ConnectionStatus struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Stream struct {
	Name                string         `json:"name"`
	JSONSchema          map[string]any `json:"json_schema"`
	SupportedSyncModes  []SyncMode     `json:"supported_sync_modes"`
	SourceDefinedCursor bool           `json:"source_defined_cursor"`
}

type Catalog struct {
	Streams []Stream `json:"streams"`
}

type ConnectorSpec struct {
	DocumentationURL        string         `json:"documentationUrl,omitempty"`
	ConnectionSpecification map[string]any `json:"connectionSpecification"`
	SupportsIncremental     bool           `json:"supportsIncremental"`
}

// Message is the envelope; exactly one payload field is set, matching Type.
type Message struct {
	Type             Type              `json:"type"`
	Record           *RecordMessage    `json:"record,omitempty"`
	State            *StateMessage     `json:"state,omitempty"`
	ConnectionStatus *ConnectionStatus `json:"connectionStatus,omitempty"`
	Catalog          *Catalog          `json:"catalog,omitempty"`
	Spec             *ConnectorSpec    `json:"spec,omitempty"`
}

func NewRecord(stream string, value, emittedAt int64) Message {
	return Message{
		Type:   TypeRecord,
		Record: &RecordMessage{Stream: stream, Data: ColumnData{Column1: value}, EmittedAt: emittedAt},
	}
}

func NewState(value int64) Message {
	return Message{
		Type:  TypeState,
		State: &StateMessage{Data: ColumnData{Column1: value}},
	}
}
