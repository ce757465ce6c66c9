// Package host implements the concrete Ext capability surface a frame
// executes against, and the nested dispatch that turns Ext.Call/Create
// into a recursive child execution (spec.md §4.2, §2 item 10).
package host

import "github.com/ferrochain/evmrt"

// OriginInfo is the per-frame transaction snapshot carried alongside the
// borrowed state/substate/environment, grounded on Parity's
// externalities::OriginInfo.
type OriginInfo struct {
	Address  evmrt.Address
	Origin   evmrt.Address
	GasPrice evmrt.Word
	Value    evmrt.Word
}

// OriginInfoFrom populates an OriginInfo from a frame's action params.
func OriginInfoFrom(params evmrt.ActionParams) OriginInfo {
	return OriginInfo{
		Address:  params.Address,
		Origin:   params.Origin,
		GasPrice: params.GasPrice,
		Value:    params.Value.Val,
	}
}
