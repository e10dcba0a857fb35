package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracing keys of the chartparse packages
var traceKeys = []string{
	"chartparse.cli",
	"chartparse.grammar",
	"chartparse.earley",
	"chartparse.tree",
	"chartparse.scanner",
	"chartparse.ebnf",
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	var tlevel string
	rootCmd := &cobra.Command{
		Use:           "chartparse",
		Short:         "Earley parsing workbench for EBNF grammars",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setTraceLevel(tracing.TraceLevelFromString(tlevel))
			tracer().Infof("Trace level is %s", tlevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&tlevel, "trace", "Error", "Trace level [Debug|Info|Error]")
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newReplCmd())
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level tracing.TraceLevel) {
	gtrace.SyntaxTracer.SetTraceLevel(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}
