package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	norem "github.com/AntonPing/norem"
)

const (
	historyFile = ".norem_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("norem %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", norem.Version)

func cmdRepl(_ []string) int {
	fmt.Println(banner)
	norem.EnableColor = true

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		src := asProgram(code)
		prog, perr := norem.Parse(src)
		if perr != nil {
			fmt.Fprintln(os.Stderr, norem.WrapErrorWithSource(perr, src).Error())
			continue
		}

		eng := norem.NewEngine()
		registerHostExterns(eng, os.Stdout)
		res, rerr := eng.Run(prog)
		if rerr != nil {
			fmt.Fprintln(os.Stderr, norem.WrapErrorWithSource(rerr, src).Error())
			continue
		}
		fmt.Println(norem.FormatValue(res.Value))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// asProgram wraps a bare expression in the program frame so `@iadd(1, 2)`
// works at the prompt; input already starting with `begin` is left alone.
func asProgram(code string) string {
	if strings.HasPrefix(strings.TrimSpace(code), "begin") {
		return code
	}
	return "begin\nin\n" + code + ";\nend\n"
}

// readByParseProbe accumulates lines until the input parses or fails with an
// error that more input cannot fix.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := norem.Parse(asProgram(src))
		if perr == nil || !isIncomplete(perr) {
			return src, true
		}
	}
}

// isIncomplete reports whether a parse error is an unexpected end of input,
// the signal that the user is mid-expression.
func isIncomplete(err error) bool {
	pe, ok := err.(*norem.ParseError)
	return ok && strings.Contains(pe.Msg, "end of input")
}
