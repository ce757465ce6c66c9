package wasmvm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrochain/evmrt"
)

func TestMeter_UseGasDecrementsGasLeft(t *testing.T) {
	t.Parallel()
	m := NewMeter(evmrt.DefaultSchedule(), 100)
	require.NoError(t, m.UseGas(40))
	require.EqualValues(t, 60, m.GasLeft())
}

func TestMeter_UseGasOutOfGasExhaustsBudget(t *testing.T) {
	t.Parallel()
	m := NewMeter(evmrt.DefaultSchedule(), 10)
	err := m.UseGas(20)
	require.ErrorIs(t, err, evmrt.ErrOutOfGas)
	require.EqualValues(t, 0, m.GasLeft())
}

func TestMeter_ChargeTierUsesScheduleTierGas(t *testing.T) {
	t.Parallel()
	sched := evmrt.DefaultSchedule()
	m := NewMeter(sched, 100)
	require.NoError(t, m.ChargeTier(evmrt.TierHigh))
	require.EqualValues(t, 100-sched.TierGas[evmrt.TierHigh], m.GasLeft())
}

func TestMeter_ChargeMemoryGrowthOnlyChargesAboveHighWaterMark(t *testing.T) {
	t.Parallel()
	m := NewMeter(evmrt.DefaultSchedule(), 1_000_000)
	require.NoError(t, m.ChargeMemoryGrowth(1))
	afterFirst := m.GasLeft()

	require.NoError(t, m.ChargeMemoryGrowth(1))
	require.Equal(t, afterFirst, m.GasLeft(), "re-requesting an already-paid page must be free")

	require.NoError(t, m.ChargeMemoryGrowth(2))
	require.Less(t, m.GasLeft(), afterFirst)
}

func TestMeter_ChargeMemoryGrowthCanExhaustGas(t *testing.T) {
	t.Parallel()
	m := NewMeter(evmrt.DefaultSchedule(), 1)
	err := m.ChargeMemoryGrowth(1000)
	require.ErrorIs(t, err, evmrt.ErrOutOfGas)
}
