// Command evmruntest runs a single contract-creation or message-call frame
// against an in-memory state backend, printing the resulting gas and
// return data. It replaces the teacher's Mandos-scenario CLI
// (cmd/mandostestcli) with a format-free harness driven directly by flags,
// since this module has no external scenario corpus to parse.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ferrochain/evmrt"
	"github.com/ferrochain/evmrt/envsnapshot"
	"github.com/ferrochain/evmrt/factory"
	"github.com/ferrochain/evmrt/host"
	"github.com/ferrochain/evmrt/schedule"
	"github.com/ferrochain/evmrt/wasmvm/calltrace"
)

func main() {
	app := &cli.App{
		Name:  "evmruntest",
		Usage: "run a single frame of WASM contract code against an in-memory host",
		Commands: []*cli.Command{
			runCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "evmruntest:", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "execute a call or create frame",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Required: true, Usage: "path to the WASM module bytes"},
			&cli.StringFlag{Name: "data", Usage: "hex-encoded call data"},
			&cli.Uint64Flag{Name: "gas", Value: 1_000_000},
			&cli.BoolFlag{Name: "create", Usage: "run as contract creation instead of a call"},
			&cli.StringFlag{Name: "schedule", Usage: "path to a TOML schedule override"},
			&cli.StringFlag{Name: "graph", Usage: "write a call-tree DOT file to this path"},
		},
		Action: func(c *cli.Context) error {
			code, err := os.ReadFile(c.String("code"))
			if err != nil {
				return fmt.Errorf("reading code: %w", err)
			}

			var data []byte
			if hexData := c.String("data"); hexData != "" {
				data, err = hex.DecodeString(hexData)
				if err != nil {
					return fmt.Errorf("decoding data: %w", err)
				}
			}

			sched := evmrt.DefaultSchedule()
			if path := c.String("schedule"); path != "" {
				sched, err = schedule.LoadFile(path)
				if err != nil {
					return err
				}
			}

			interp, err := factory.Create(evmrt.VMTypeWASM)
			if err != nil {
				return err
			}

			backend := newMemoryBackend()
			builder := envsnapshot.NewBuilder()
			env := builder.Snapshot(1, evmrt.ZeroAddress, 0, evmrt.Word{}, evmrt.Word{})

			vm := &host.VM{
				Interpreter: interp,
				State:       backend,
				MaxDepth:    1024,
				Tracer:      noopTracer{},
				VMTracer:    noopVMTracer{},
				Schedule:    sched,
			}

			params := evmrt.ActionParams{
				Address: evmrt.Address{1},
				Sender:  evmrt.Address{2},
				Gas:     c.Uint64("gas"),
				Code:    code,
				Data:    data,
				Value:   evmrt.Transfer(evmrt.Word{}),
			}

			var fin evmrt.Finalization
			var sub *evmrt.Substate
			if c.Bool("create") {
				params.CallType = evmrt.CallNone
				fin, sub, err = vm.RunCreate(env.Number, env, params)
			} else {
				params.CallType = evmrt.CallCall
				out := make([]byte, 4096)
				fin, sub, err = vm.RunCall(env.Number, env, params, out)
			}

			if err != nil {
				return fmt.Errorf("execution failed: %w", err)
			}

			fmt.Printf("gas left: %d\n", fin.GasLeft)
			if fin.Kind == evmrt.FinalizationNeedsReturn {
				fmt.Printf("return data: %x\n", fin.Data.Bytes())
			}
			fmt.Printf("logs: %d, suicides: %d\n", len(sub.Logs), len(sub.Suicides))

			if path := c.String("graph"); path != "" {
				tree := calltrace.NewTree()
				id := tree.Begin(-1, params.Address, params.CallType, params.Gas)
				tree.End(id, fin.GasLeft, fin.Kind == evmrt.FinalizationNeedsReturn && !fin.ApplyState)
				dot, err := tree.Render()
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

type noopTracer struct{}

func (noopTracer) TraceSuicide(evmrt.Address, evmrt.Word, evmrt.Address) {}

type noopVMTracer struct{}

func (noopVMTracer) TraceNextInstruction(uint64, byte) bool                               { return false }
func (noopVMTracer) TracePrepareExecute(uint64, byte, uint64)                             {}
func (noopVMTracer) TraceExecuted(uint64, []evmrt.Word, *evmrt.MemDiff, *evmrt.StoreDiff) {}
