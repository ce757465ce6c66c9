// Package schedule loads evmrt.Schedule overrides from TOML configuration
// (spec.md §4.1: "protocol fee schedule constants are supplied from
// outside"). Kept as its own package so evmrt itself never depends on a
// config-file format.
package schedule

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"

	"github.com/ferrochain/evmrt"
)

// raw mirrors evmrt.Schedule field-for-field but with TOML-friendly tags,
// so an override file only needs to name the constants it changes.
type raw struct {
	TierGas [8]uint64 `toml:"tier_gas" mapstructure:"tier_gas"`

	StackLimit int `toml:"stack_limit" mapstructure:"stack_limit"`

	MemoryGasCoefficient uint64 `toml:"memory_gas_coefficient" mapstructure:"memory_gas_coefficient"`
	MemoryGasQuadDivisor uint64 `toml:"memory_gas_quad_divisor" mapstructure:"memory_gas_quad_divisor"`

	LogGas      uint64 `toml:"log_gas" mapstructure:"log_gas"`
	LogDataGas  uint64 `toml:"log_data_gas" mapstructure:"log_data_gas"`
	LogTopicGas uint64 `toml:"log_topic_gas" mapstructure:"log_topic_gas"`

	CallDataGas     uint64 `toml:"call_data_gas" mapstructure:"call_data_gas"`
	CreateDataGas   uint64 `toml:"create_data_gas" mapstructure:"create_data_gas"`
	CreateDataLimit int    `toml:"create_data_limit" mapstructure:"create_data_limit"`

	ExceptionalFailedCodeDeposit bool   `toml:"exceptional_failed_code_deposit" mapstructure:"exceptional_failed_code_deposit"`
	EIP150CallGasRetention       uint64 `toml:"eip150_call_gas_retention" mapstructure:"eip150_call_gas_retention"`

	CleanDust int `toml:"clean_dust_mode" mapstructure:"clean_dust_mode"`

	CallGas                uint64 `toml:"call_gas" mapstructure:"call_gas"`
	CreateGas              uint64 `toml:"create_gas" mapstructure:"create_gas"`
	SstoreSetGas           uint64 `toml:"sstore_set_gas" mapstructure:"sstore_set_gas"`
	SstoreResetGas         uint64 `toml:"sstore_reset_gas" mapstructure:"sstore_reset_gas"`
	SstoreRefundGas        uint64 `toml:"sstore_refund_gas" mapstructure:"sstore_refund_gas"`
	SuicideGas             uint64 `toml:"suicide_gas" mapstructure:"suicide_gas"`
	SuicideToNewAccountGas uint64 `toml:"suicide_to_new_account_gas" mapstructure:"suicide_to_new_account_gas"`
}

func fromSchedule(s *evmrt.Schedule) raw {
	return raw{
		TierGas:                      s.TierGas,
		StackLimit:                   s.StackLimit,
		MemoryGasCoefficient:         s.MemoryGasCoefficient,
		MemoryGasQuadDivisor:         s.MemoryGasQuadDivisor,
		LogGas:                       s.LogGas,
		LogDataGas:                   s.LogDataGas,
		LogTopicGas:                  s.LogTopicGas,
		CallDataGas:                  s.CallDataGas,
		CreateDataGas:                s.CreateDataGas,
		CreateDataLimit:              s.CreateDataLimit,
		ExceptionalFailedCodeDeposit: s.ExceptionalFailedCodeDeposit,
		EIP150CallGasRetention:       s.EIP150CallGasRetention,
		CleanDust:                    int(s.CleanDust),
		CallGas:                      s.CallGas,
		CreateGas:                    s.CreateGas,
		SstoreSetGas:                 s.SstoreSetGas,
		SstoreResetGas:               s.SstoreResetGas,
		SstoreRefundGas:              s.SstoreRefundGas,
		SuicideGas:                   s.SuicideGas,
		SuicideToNewAccountGas:       s.SuicideToNewAccountGas,
	}
}

func (r raw) toSchedule() *evmrt.Schedule {
	return &evmrt.Schedule{
		TierGas:                      r.TierGas,
		StackLimit:                   r.StackLimit,
		MemoryGasCoefficient:         r.MemoryGasCoefficient,
		MemoryGasQuadDivisor:         r.MemoryGasQuadDivisor,
		LogGas:                       r.LogGas,
		LogDataGas:                   r.LogDataGas,
		LogTopicGas:                  r.LogTopicGas,
		CallDataGas:                  r.CallDataGas,
		CreateDataGas:                r.CreateDataGas,
		CreateDataLimit:              r.CreateDataLimit,
		ExceptionalFailedCodeDeposit: r.ExceptionalFailedCodeDeposit,
		EIP150CallGasRetention:       r.EIP150CallGasRetention,
		CleanDust:                    evmrt.CleanDustMode(r.CleanDust),
		CallGas:                      r.CallGas,
		CreateGas:                    r.CreateGas,
		SstoreSetGas:                 r.SstoreSetGas,
		SstoreResetGas:               r.SstoreResetGas,
		SstoreRefundGas:              r.SstoreRefundGas,
		SuicideGas:                   r.SuicideGas,
		SuicideToNewAccountGas:       r.SuicideToNewAccountGas,
	}
}

// LoadFile parses a TOML schedule override file, overlaying it onto
// evmrt.DefaultSchedule() so the file only needs to name the constants it
// changes.
func LoadFile(path string) (*evmrt.Schedule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schedule: read %s: %w", path, err)
	}
	return LoadBytes(b)
}

// LoadBytes parses raw TOML content the same way LoadFile does.
func LoadBytes(b []byte) (*evmrt.Schedule, error) {
	tree, err := toml.LoadBytes(b)
	if err != nil {
		return nil, fmt.Errorf("schedule: parse toml: %w", err)
	}

	r := fromSchedule(evmrt.DefaultSchedule())
	if err := mapstructure.Decode(tree.ToMap(), &r); err != nil {
		return nil, fmt.Errorf("schedule: decode: %w", err)
	}
	return r.toSchedule(), nil
}
