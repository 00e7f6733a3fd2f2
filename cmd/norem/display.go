package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	norem "github.com/AntonPing/norem"
)

var (
	ErrorColorFG = pterm.FgRed
	ErrorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG  = pterm.FgLightGreen
	InfoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
)

// PrintErrorMessage prints a tagged error banner to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// printEngineError renders an engine error with its caret snippet when the
// error carries a position, or as a plain banner otherwise.
func printEngineError(srcName, src string, err error) {
	wrapped := norem.WrapErrorWithName(err, srcName, src)
	if wrapped != err {
		fmt.Fprintln(os.Stderr, wrapped.Error())
		return
	}
	PrintErrorMessage("Error", err)
}
