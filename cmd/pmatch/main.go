/*
Command pmatch matches values against a table of cases.

Usage:

    pmatch [--dump] [--trace] CASEFILE

A case file is a YAML document listing cases, source values and the
values to match:

    sources:
      limit: 10
    cases:
      - name: Diagonal
        pattern: {deconstruct: Point, args: [{bind: x}, {bind: y}]}
        guard: "x == y && x < limit"
        requires: [limit]
      - name: Anything
        pattern: _
    values:
      - {_type: Point, x: 3, y: 3}
      - [1, 2, 3]

Patterns use the interchange format of package pattern, guards are
JavaScript expressions. Mappings carrying a key '_type' are records of
that type; their other keys are fields, in order. pmatch prints, for
every value, the first case it matches and the captures of that case.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/npillmayer/pmatch/pattern"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/urfave/cli.v1"
)

var (
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "print the pattern tree of every case",
	}
	traceFlag = cli.BoolFlag{
		Name:  "trace",
		Usage: "trace compilation and matching",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "pmatch"
	app.Usage = "match values against a table of pattern cases"
	app.ArgsUsage = "CASEFILE"
	app.Flags = []cli.Flag{dumpFlag, traceFlag}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("expecting exactly one case file", 2)
	}
	if ctx.Bool(traceFlag.Name) {
		for _, key := range []string{"pmatch", "pmatch.compiler", "pmatch.pattern", "pmatch.unapply", "pmatch.guard"} {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}
	filename := ctx.Args().First()
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	return process(os.Stdout, filename, src, ctx.Bool(dumpFlag.Name))
}

// process loads a case table, matches all of its values and writes a
// report to w.
func process(w io.Writer, filename string, src []byte, dump bool) error {
	table, err := loadTable(filename, src)
	if err != nil {
		return err
	}
	if dump {
		for i, c := range table.cases {
			fmt.Fprintf(w, "case %s:\n%s\n", table.units[i].Name(), pattern.Dump(c))
		}
	}
	results, err := table.matchAll()
	if err != nil {
		return err
	}
	report(w, results)
	return nil
}
