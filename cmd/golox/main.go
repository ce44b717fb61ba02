// Command golox is the reference driver for the language: it reads a
// script file or runs an interactive REPL, routes diagnostics to stderr,
// and selects an exit code.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/chzyer/readline"

	"golox/ast"
	"golox/interpreter"
	"golox/parser"
	"golox/resolver"
	"golox/scanner"
)

const (
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
)

var (
	cmd      = flag.String("c", "", "Program passed in as a string")
	printAST = flag.Bool("p", false, "Print the parsed AST instead of running it")

	cpuProfile = flag.String("cpuprofile", "", "Write a CPU profile to the specified file before exiting")
	memProfile = flag.String("memprofile", "", "Write an allocation profile to the specified file before exiting")
	traceFile  = flag.String("trace", "", "Write an execution trace to the specified file before exiting")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: golox [options] [script]\n\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	stopProfiling := startProfiling()
	defer stopProfiling()

	if *cmd != "" {
		os.Exit(runSourceUnit([]byte(*cmd), "", interpreter.New()))
		return
	}

	switch len(flag.Args()) {
	case 0:
		runREPL()
	case 1:
		os.Exit(runFile(flag.Arg(0)))
	default:
		usage()
		os.Exit(exitUsage)
	}
}

func startProfiling() func() {
	var stops []func()
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("failed to create CPU profile: %s", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("failed to start CPU profile: %s", err)
		}
		stops = append(stops, func() { pprof.StopCPUProfile(); f.Close() })
	}
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("failed to create memory profile: %s", err)
		}
		stops = append(stops, func() {
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatalf("failed to write memory profile: %s", err)
			}
			f.Close()
		})
	}
	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			log.Fatalf("failed to create trace output file: %s", err)
		}
		if err := trace.Start(f); err != nil {
			log.Fatalf("failed to start trace: %s", err)
		}
		stops = append(stops, func() { trace.Stop(); f.Close() })
	}
	return func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}
}

// runSourceUnit scans, parses, resolves, and interprets one source unit
// (a whole file, the -c string, or a single REPL line), printing any
// diagnostics to stderr, and returns the exit code: 65 if a static error
// was raised (scanning, parsing, or resolving), 70 if a runtime error was
// raised, 0 otherwise. A static error takes priority: when one occurs,
// resolving/interpreting are skipped entirely.
func runSourceUnit(src []byte, filename string, interp *interpreter.Interpreter) int {
	tokens, _, scanErr := scanner.Scan(src, filename)
	stmts, parseErr := parser.Parse(tokens)
	staticErr := errors.Join(scanErr, parseErr)

	if *printAST {
		fmt.Println(ast.Sprint(stmts))
	}

	if staticErr != nil {
		fmt.Fprintln(os.Stderr, staticErr)
		return exitStatic
	}
	if *printAST {
		return 0
	}

	depths, resolveErr := resolver.Resolve(stmts)
	if resolveErr != nil {
		fmt.Fprintln(os.Stderr, resolveErr)
		return exitStatic
	}

	if err := interp.Interpret(stmts, depths); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	return 0
}

func runFile(name string) int {
	src, err := os.ReadFile(name)
	if err != nil {
		log.Printf("failed to read %s: %s", name, err)
		return exitStatic
	}
	return runSourceUnit(src, filepath.Base(name), interpreter.New())
}

func runREPL() {
	cfg := &readline.Config{Prompt: ">>> "}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(homeDir, ".golox_history")
	} else {
		fmt.Fprintf(os.Stderr, "can't get home directory (%s); command history won't be saved\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		log.Fatalf("failed to start REPL: %s", err)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "Welcome to Lox!")

	interp := interpreter.New()
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("unexpected error reading input: %s", err)
		}
		// Every line is its own source unit: a compile error doesn't end the
		// session, and static/runtime error state from one line never carries
		// over to the next. The interpreter itself (globals, declared
		// functions/classes) persists across lines.
		runSourceUnit([]byte(line), "", interp)
	}
}
