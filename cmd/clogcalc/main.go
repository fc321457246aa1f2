package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/oisee/clogcalc/pkg/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clogcalc",
		Short: "Exact real arithmetic over continued-logarithm streams",
	}

	var egests uint32

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive stack-expression calculator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(egests)
		},
	}
	replCmd.Flags().Uint32Var(&egests, "egests", 24, "Terms to egest before reporting a rational bracket")

	var format string
	evalCmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate a single stack expression and print its result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			r, err := evalExpr(expr, egests)
			if err != nil {
				return err
			}
			printExport(expr, r.ToExport(), format)
			return nil
		},
	}
	evalCmd.Flags().Uint32Var(&egests, "egests", 24, "Terms to egest before reporting a rational bracket")
	evalCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	verifyCmd := &cobra.Command{
		Use:   "verify [checkpoint]",
		Short: "Re-evaluate every expression in a saved checkpoint and diff against its recorded result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyCheckpoint(args[0])
		},
	}

	rootCmd.AddCommand(replCmd, evalCmd, verifyCmd)
	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("clogcalc: %v", err)
		os.Exit(1)
	}
}

// evalExpr compiles and runs a single stack expression for the given
// egest budget. Parse/build errors are returned, never fatal: a REPL
// loop surfacing one is expected to keep reading the next line.
func evalExpr(expr string, egests uint32) (session.Result, error) {
	p, err := session.Compile(expr)
	if err != nil {
		return session.Result{}, err
	}
	return session.Run(p, egests), nil
}

func printExport(expr string, exp session.Export, format string) {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(exp); err != nil {
			glog.Errorf("encode export for %q: %v", expr, err)
		}
	default:
		fmt.Printf("terms: %s\n", exp.Terms)
		fmt.Printf("trunc=%s floor=%s ceil=%s round=%s\n",
			deref(exp.Trunc), deref(exp.Floor), deref(exp.Ceil), deref(exp.Round))
		fmt.Printf("bracket: [%s/%s, %s/%s]\n",
			exp.Ends[0].Num, exp.Ends[0].Den, exp.Ends[1].Num, exp.Ends[1].Den)
	}
}

func deref(s *string) string {
	if s == nil {
		return "?"
	}
	return *s
}

// runREPL reads stack expressions from stdin, one per line, and prints
// their evaluated result until EOF or "quit". "cfg egests N" changes the
// egest budget for subsequent lines; "save PATH" and "load PATH" persist
// or restore the evaluation history via session.Checkpoint.
func runREPL(egests uint32) error {
	ledger := session.NewLedger()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("clogcalc — type an expression, \"cfg egests N\", \"save PATH\", \"load PATH\", or \"quit\"")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if rest, ok := strings.CutPrefix(line, "cfg egests "); ok {
			n, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 32)
			if err != nil {
				glog.Errorf("cfg egests: %v", err)
				continue
			}
			egests = uint32(n)
			continue
		}
		if path, ok := strings.CutPrefix(line, "save "); ok {
			ckpt := &session.Checkpoint{Entries: ledger.Entries(), Egests: egests}
			if err := session.SaveCheckpoint(strings.TrimSpace(path), ckpt); err != nil {
				glog.Errorf("save: %v", err)
			}
			continue
		}
		if path, ok := strings.CutPrefix(line, "load "); ok {
			ckpt, err := session.LoadCheckpoint(strings.TrimSpace(path))
			if err != nil {
				glog.Errorf("load: %v", err)
				continue
			}
			egests = ckpt.Egests
			ledger = session.NewLedger()
			for _, e := range ckpt.Entries {
				ledger.Add(e)
			}
			fmt.Printf("loaded %d entries, egests=%d\n", len(ckpt.Entries), egests)
			continue
		}

		r, err := evalExpr(line, egests)
		if err != nil {
			glog.Errorf("parse %q: %v", line, err)
			continue
		}
		exp := r.ToExport()
		ledger.Add(session.Entry{Expr: line, Export: exp})
		printExport(line, exp, "text")
	}
	return scanner.Err()
}

// verifyCheckpoint re-runs every expression recorded in a saved
// checkpoint and reports whether it still settles on the same trunc
// readout, catching regressions in the transducer graph the way the
// teacher's own verify command re-checks saved rules.
func verifyCheckpoint(path string) error {
	ckpt, err := session.LoadCheckpoint(path)
	if err != nil {
		return err
	}

	mismatches := 0
	for i, e := range ckpt.Entries {
		r, err := evalExpr(e.Expr, ckpt.Egests)
		if err != nil {
			fmt.Printf("  [%d] %s: error: %v\n", i+1, e.Expr, err)
			mismatches++
			continue
		}
		got := r.ToExport()
		if deref(got.Trunc) != deref(e.Export.Trunc) {
			fmt.Printf("  [%d] %s: trunc mismatch: had %s, now %s\n", i+1, e.Expr, deref(e.Export.Trunc), deref(got.Trunc))
			mismatches++
			continue
		}
		fmt.Printf("  [%d] %s: OK\n", i+1, e.Expr)
	}

	fmt.Printf("\nverified %d entries, %d mismatches\n", len(ckpt.Entries), mismatches)
	if mismatches > 0 {
		return fmt.Errorf("%d entries failed verification", mismatches)
	}
	return nil
}
