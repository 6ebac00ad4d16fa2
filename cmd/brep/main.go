// Command brep evaluates a modeling script and prints what it built.
//
// Usage:
//
//	brep [-config path] [-json] [-model] [script]
//
// With no script the built-in demo runs; "-" reads the script from stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chazu/brep/pkg/config"
)

// demoScript builds a chord, a unit square face and an intersection.
const demoScript = `
; two vertices joined by a chord
(def v0 (vertex 10 20 30))
(def v1 (vertex 40 50 60))
(def e (chord v0 v1))
(report "chord:" e)

; a unit square, closed into a face
(def a (vertex 0 0 0))
(def b (vertex 1 0 0))
(def c (vertex 1 1 0))
(def d (vertex 0 1 0))
(def sq (extend-chain (start-chain a b c) d a))
(report sq (close-chain sq))

; the square's diagonals cross at its centre
(report (intersect (chord a c) (chord b d) :tol 0.001))
`

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (default: $BREP_CONFIG or ./brep.yaml)")
		jsonOut    = flag.Bool("json", false, "print the result as JSON")
		showModel  = flag.Bool("model", false, "also list every vertex and edge")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("brep: ")

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if path != "" {
		log.Printf("Loaded config from %s", path)
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}

	result := NewApp(cfg).Evaluate(source)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
	} else {
		printResult(os.Stdout, result, *showModel)
	}

	if !result.OK() {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// readSource returns the script named by arg: the demo when empty, stdin
// for "-", otherwise the file's contents.
func readSource(arg string) (string, error) {
	switch arg {
	case "":
		return demoScript, nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	default:
		data, err := os.ReadFile(arg)
		return string(data), err
	}
}

func printResult(w io.Writer, r EvalResult, showModel bool) {
	for _, line := range r.Output {
		fmt.Fprintln(w, line)
	}
	if showModel {
		for _, line := range r.Model {
			fmt.Fprintln(w, line)
		}
	}
	for _, f := range r.Faces {
		fmt.Fprintf(w, "%s area=%g perimeter=%g normal=(%g, %g, %g)\n",
			f.Text, f.Area, f.Perimeter, f.Normal[0], f.Normal[1], f.Normal[2])
	}
	for _, e := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", e.Message)
	}
	for _, e := range r.Errors {
		switch {
		case e.Line > 0 && e.Kind != "":
			fmt.Fprintf(w, "error: line %d: %s (%s)\n", e.Line, e.Message, e.Kind)
		case e.Line > 0:
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		case e.Kind != "":
			fmt.Fprintf(w, "error: %s (%s)\n", e.Message, e.Kind)
		default:
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
}
