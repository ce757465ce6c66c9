package host

import (
	"fmt"
	"io"

	"github.com/gogo/protobuf/proto"

	"github.com/ferrochain/evmrt"
)

// CheckpointWriter appends one wire-encoded Substate record per Append call
// to an underlying log, which ReadAll decodes again. Nothing in this module
// calls it automatically: a caller chooses when to record a Substate.
// Adapted from the teacher's async-call state checkpointing
// (arwen/host/asyncComposability.go persists in-flight async call state
// across shard round-trips); this runtime has no cross-shard boundary, so
// the same "serialize the accumulator, append it" idea is repurposed as a
// plain debugging/replay journal for Substate snapshots.
type CheckpointWriter struct {
	w io.Writer
}

// NewCheckpointWriter wraps w for sequential Append calls.
func NewCheckpointWriter(w io.Writer) *CheckpointWriter {
	return &CheckpointWriter{w: w}
}

// Append encodes sub as a length-prefixed protobuf record and writes it.
func (c *CheckpointWriter) Append(depth int, sub *evmrt.Substate) error {
	rec := toProto(depth, sub)
	buf := proto.NewBuffer(nil)
	if err := buf.EncodeMessage(rec); err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}
	_, err := c.w.Write(buf.Bytes())
	return err
}

// ReadAll decodes every record from r until EOF.
func ReadAll(r io.Reader) ([]*SubstateCheckpoint, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf := proto.NewBuffer(raw)
	var out []*SubstateCheckpoint
	for buf.Index() < len(raw) {
		rec := &SubstateCheckpoint{}
		if err := buf.DecodeMessage(rec); err != nil {
			return nil, fmt.Errorf("checkpoint: decode: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// SubstateCheckpoint is the wire record for one completed frame's Substate,
// hand-written against the gogo/protobuf proto.Message contract (Reset,
// String, ProtoMessage) rather than protoc-generated, since no .proto
// compilation step runs in this build.
type SubstateCheckpoint struct {
	Depth            int32                 `protobuf:"varint,1,opt,name=depth,proto3" json:"depth,omitempty"`
	Logs             []*LogEntryCheckpoint `protobuf:"bytes,2,rep,name=logs,proto3" json:"logs,omitempty"`
	Suicides         [][]byte              `protobuf:"bytes,3,rep,name=suicides,proto3" json:"suicides,omitempty"`
	ContractsCreated [][]byte              `protobuf:"bytes,4,rep,name=contracts_created,proto3" json:"contracts_created,omitempty"`
	SstoreClears     uint64                `protobuf:"varint,5,opt,name=sstore_clears,proto3" json:"sstore_clears,omitempty"`
}

func (m *SubstateCheckpoint) Reset()         { *m = SubstateCheckpoint{} }
func (m *SubstateCheckpoint) String() string { return proto.CompactTextString(m) }
func (*SubstateCheckpoint) ProtoMessage()    {}

// LogEntryCheckpoint mirrors evmrt.LogEntry on the wire.
type LogEntryCheckpoint struct {
	Address []byte   `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	Topics  [][]byte `protobuf:"bytes,2,rep,name=topics,proto3" json:"topics,omitempty"`
	Data    []byte   `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *LogEntryCheckpoint) Reset()         { *m = LogEntryCheckpoint{} }
func (m *LogEntryCheckpoint) String() string { return proto.CompactTextString(m) }
func (*LogEntryCheckpoint) ProtoMessage()    {}

func toProto(depth int, sub *evmrt.Substate) *SubstateCheckpoint {
	rec := &SubstateCheckpoint{
		Depth:        int32(depth),
		SstoreClears: sub.SstoreClears,
	}
	for _, l := range sub.Logs {
		topics := make([][]byte, len(l.Topics))
		for i, t := range l.Topics {
			tc := t
			topics[i] = tc[:]
		}
		rec.Logs = append(rec.Logs, &LogEntryCheckpoint{
			Address: l.Address.Bytes(),
			Topics:  topics,
			Data:    l.Data,
		})
	}
	for addr := range sub.Suicides {
		a := addr
		rec.Suicides = append(rec.Suicides, a.Bytes())
	}
	for _, addr := range sub.ContractsCreated {
		a := addr
		rec.ContractsCreated = append(rec.ContractsCreated, a.Bytes())
	}
	return rec
}
