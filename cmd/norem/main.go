package main

import (
	"flag"
	"fmt"
	"os"

	norem "github.com/AntonPing/norem"
)

const appName = "norem"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(norem.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`norem %s

Usage:
  %s run [file.nrm] [-trace]    Run a program (default: entry from norem.toml).
  %s repl                       Start the REPL.
  %s version                    Print the version.

`, norem.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	trace := fs.Bool("trace", false, "print the native call trace after the run")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	file := ""
	if fs.NArg() > 0 {
		file = fs.Arg(0)
	} else {
		man, err := LoadManifest(manifestName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: no file argument and no %s: %v\n", appName, manifestName, err)
			return 2
		}
		file = man.Project.Entry
		if man.Run.Trace {
			*trace = true
		}
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	prog, perr := norem.Parse(string(src))
	if perr != nil {
		printEngineError(file, string(src), perr)
		return 1
	}

	eng := norem.NewEngine()
	registerHostExterns(eng, os.Stdout)

	res, rerr := eng.Run(prog)
	if *trace {
		for _, c := range res.Effects {
			fmt.Fprintln(os.Stderr, "trace: "+norem.FormatCall(c))
		}
	}
	if rerr != nil {
		printEngineError(file, string(src), rerr)
		return 1
	}
	if res.Value.Tag != norem.VTUnit {
		fmt.Println(norem.FormatValue(res.Value))
	}
	return 0
}

// registerHostExterns installs the standard host vocabulary: print renders
// any value to out followed by a newline and returns unit.
func registerHostExterns(eng *norem.Engine, out *os.File) {
	eng.RegisterExtern("print", func(args []norem.Value) (norem.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = norem.FormatValue(a)
		}
		for i, p := range parts {
			if i > 0 {
				fmt.Fprint(out, " ")
			}
			fmt.Fprint(out, p)
		}
		fmt.Fprintln(out)
		return norem.UnitVal(), nil
	})
}
