package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/erc7824/nitrolite/cryptokit/pkg/config"
	"github.com/erc7824/nitrolite/cryptokit/pkg/log"
	"github.com/erc7824/nitrolite/cryptokit/pkg/toolkit"
)

func main() {
	bootLogger := log.NewZapLogger(log.Config{Format: "console", Level: log.LevelWarn, Output: "stderr"})

	conf, err := config.Load(bootLogger)
	if err != nil {
		bootLogger.Fatal("failed to load configuration", "error", err)
	}
	logger := log.NewZapLogger(conf.Log).WithName("cryptokit")

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	svc, err := toolkit.NewServiceFromConfig(conf, logger)
	if err != nil {
		logger.Fatal("failed to initialise toolkit", "error", err)
	}

	result, err := runCli(svc, os.Args[1], os.Args[2:])
	if err != nil {
		logger.Fatal("command failed", "command", os.Args[1], "error", err)
	}
	if err := writeJSON(os.Stdout, result); err != nil {
		logger.Fatal("failed to write result", "error", err)
	}

	if conf.Metrics {
		logMetrics(logger)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func logMetrics(logger log.Logger) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		logger.Error("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			kv := []any{"value", m.GetCounter().GetValue()}
			for _, label := range m.GetLabel() {
				kv = append(kv, label.GetName(), label.GetValue())
			}
			logger.Info(mf.GetName(), kv...)
		}
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: cryptokit <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, config.Usage())
}
