// Package calltrace renders a call tree recorded through Tree.Begin/End as
// a Graphviz DOT document, for debugging a transaction's call structure.
// evmrt/host.Executor does not record frames into a Tree itself; the
// cmd/evmruntest harness records only the outermost frame. Grounded on the
// teacher's unexercised go.mod dependency
// github.com/awalterschulze/gographviz.
package calltrace

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/ferrochain/evmrt"
)

// Node is one frame in the call tree, recorded by a caller that invokes
// Begin/End around the frame.
type Node struct {
	ID       int
	ParentID int // -1 for the root frame
	Address  evmrt.Address
	CallType evmrt.CallType
	Gas      uint64
	GasLeft  uint64
	Reverted bool
}

// Tree accumulates Nodes as a transaction's frames complete.
type Tree struct {
	nodes []Node
	next  int
}

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// Begin allocates a new frame under parentID (-1 for the root call) and
// returns its ID.
func (t *Tree) Begin(parentID int, addr evmrt.Address, callType evmrt.CallType, gas uint64) int {
	id := t.next
	t.next++
	t.nodes = append(t.nodes, Node{ID: id, ParentID: parentID, Address: addr, CallType: callType, Gas: gas})
	return id
}

// End records the outcome of the frame identified by id.
func (t *Tree) End(id int, gasLeft uint64, reverted bool) {
	for i := range t.nodes {
		if t.nodes[i].ID == id {
			t.nodes[i].GasLeft = gasLeft
			t.nodes[i].Reverted = reverted
			return
		}
	}
}

// Render produces a DOT-format graph of the call tree, one node per frame
// labeled with its address, call type, and gas usage, edges from caller to
// callee.
func (t *Tree) Render() (string, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName("calltrace"); err != nil {
		return "", err
	}
	if err := graph.SetDir(true); err != nil {
		return "", err
	}

	for _, n := range t.nodes {
		name := nodeName(n.ID)
		label := fmt.Sprintf("\"%s\\n%s\\ngas %d->%d%s\"",
			n.Address, callTypeName(n.CallType), n.Gas, n.GasLeft, revertSuffix(n.Reverted))
		attrs := map[string]string{"label": label}
		if n.Reverted {
			attrs["color"] = "red"
		}
		if err := graph.AddNode("calltrace", name, attrs); err != nil {
			return "", err
		}
	}
	for _, n := range t.nodes {
		if n.ParentID < 0 {
			continue
		}
		if err := graph.AddEdge(nodeName(n.ParentID), nodeName(n.ID), true, nil); err != nil {
			return "", err
		}
	}

	return graph.String(), nil
}

func nodeName(id int) string {
	return "n" + strconv.Itoa(id)
}

func revertSuffix(reverted bool) string {
	if reverted {
		return "\\n(reverted)"
	}
	return ""
}

func callTypeName(c evmrt.CallType) string {
	switch c {
	case evmrt.CallNone:
		return "create"
	case evmrt.CallCall:
		return "call"
	case evmrt.CallCallCode:
		return "callcode"
	case evmrt.CallDelegateCall:
		return "delegatecall"
	case evmrt.CallStaticCall:
		return "staticcall"
	default:
		return "unknown"
	}
}
