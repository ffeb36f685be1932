// rf1a is a CLI tool for comparing, inspecting and converting RF1A radio
// register configurations.
package main

import (
	"fmt"
	"os"

	"github.com/mash-protocol/rf1a-go/cmd/rf1a/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "diff":
		exitCode = commands.RunDiff(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "edit":
		exitCode = commands.RunEdit(args, os.Stdin, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "--version":
		fmt.Printf("rf1a version %s\n", version)
		exitCode = exitSuccess
	default:
		// Two bare paths behave like the original comparison script.
		if len(args) == 1 && fileExists(cmd) {
			exitCode = commands.RunDiff(os.Args[1:], os.Stdout, os.Stderr)
			break
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func printUsage() {
	fmt.Println(`rf1a - RF1A register configuration tool

Usage:
  rf1a <command> [options] [files...]
  rf1a <a> <b>                 Same as "rf1a diff <a> <b>"

Commands:
  diff       Print the registers that differ between two configurations
  show       Display every register, derived radio parameters and load trace
  convert    Convert between formats (header, yaml, hex, cbor snapshot)
  edit       Edit a configuration interactively

Options:
  -h, --help     Show this help message
  --version      Show version information

Input formats:
  SmartRF Studio headers (#define SMARTRF_SETTING_<REG> <value>),
  YAML register profiles, bare 116-digit hex records and .rfs snapshots.

Examples:
  rf1a diff radio_868_ch1.h radio_868_ch5.h
  rf1a show --params radio.h
  rf1a convert --to yaml -o radio.yaml radio.h
  rf1a edit radio.h

For command-specific help, run:
  rf1a <command> --help`)
}
