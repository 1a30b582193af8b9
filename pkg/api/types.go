package api

import (
	"encoding/json"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ParseRequest carries one record line to be parsed
type ParseRequest struct {
	Line string `json:"line"`
}

// ParseResponse describes a parsed record: the canonical serialization plus
// a typed view of every field in insertion order
type ParseResponse struct {
	Canonical string  `json:"canonical"`
	Fields    []Field `json:"fields"`
}

// SerializeRequest carries a typed field list to be serialized into a line
type SerializeRequest struct {
	Fields []FieldInput `json:"fields"`
}

// SerializeResponse carries the serialized record line
type SerializeResponse struct {
	Line string `json:"line"`
}

// Field is the JSON rendering of one record field. Raw payloads appear in
// their packed Z85 text form.
type Field struct {
	Key   string      `json:"key"`
	Tag   string      `json:"tag"`
	Array bool        `json:"array,omitempty"`
	Value interface{} `json:"value"`
}

// FieldInput is the write-side twin of Field; the value stays raw JSON until
// the tag tells us how to decode it.
type FieldInput struct {
	Key   string          `json:"key"`
	Tag   string          `json:"tag"`
	Array bool            `json:"array,omitempty"`
	Value json.RawMessage `json:"value"`
}

// RecordRequest carries one record line for archive writes
type RecordRequest struct {
	Line string `json:"line"`
}

// RecordResponse carries one archived record line and its index
type RecordResponse struct {
	Index int    `json:"index"`
	Line  string `json:"line"`
}

// StatsResponse summarizes the archive contents
type StatsResponse struct {
	Records int `json:"records"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}

// IArchive defines the archive operations the server depends on
type IArchive interface {
	Put(index int, rec *fon.Record) error
	Get(index int) (*fon.Record, bool, error)
	Delete(index int) error
	Len() (int, error)
}
