package main

import (
	"log"

	"github.com/samber/lo"

	"github.com/chazu/brep/pkg/config"
	"github.com/chazu/brep/pkg/diag"
	"github.com/chazu/brep/pkg/engine"
	"github.com/chazu/brep/pkg/kernel"
	"github.com/chazu/brep/pkg/kernel/sdfx"
	"github.com/chazu/brep/pkg/topo"
)

// App ties the script engine to the face analysis kernel.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// FaceData is the JSON-serializable description of one closed face.
type FaceData struct {
	kernel.Analysis
	Text string `json:"text"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// EvalResult is the full result of evaluating one script.
type EvalResult struct {
	Output   []string        `json:"output"`
	Model    []string        `json:"model"`
	Faces    []FaceData      `json:"faces"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// OK reports whether evaluation produced no errors.
func (r EvalResult) OK() bool { return len(r.Errors) == 0 }

// NewApp creates an App configured by cfg, using the sdfx kernel.
func NewApp(cfg *config.Config) *App {
	return &App{
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.EvalTimeout.Duration()),
			engine.WithModelOptions(cfg.ModelOptions()...),
		),
		kernel: sdfx.New(),
	}
}

// Evaluate runs a script and returns its report, the rendered model, the
// measured faces and any errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Output:   []string{},
		Model:    []string{},
		Faces:    []FaceData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a model.
	sess, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the output format.
	if len(evalErrs) > 0 {
		result.Errors = lo.Map(evalErrs, func(e engine.EvalError, _ int) EvalErrorData {
			d := EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message}
			if e.Kind != 0 {
				d.Kind = e.Kind.String()
			}
			return d
		})
		return result
	}

	result.Output = append(result.Output, sess.Output...)

	// Step 3: Render the model and check it structurally.
	m := sess.Model
	for _, v := range m.Vertices() {
		result.Model = append(result.Model, diag.Vertex(v))
	}
	for _, e := range m.Edges() {
		result.Model = append(result.Model, diag.ChordEdge(e))
	}
	checked := topo.Split(topo.Validate(m))
	result.Errors = append(result.Errors, lo.Map(checked.Errors, findingData)...)
	result.Warnings = append(result.Warnings, lo.Map(checked.Warnings, findingData)...)

	// Step 4: Measure every face.
	for _, f := range m.Faces() {
		an, err := kernel.Analyze(a.kernel, f)
		if err != nil {
			log.Printf("Analyze error: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: "analysis failed: " + err.Error()})
			continue
		}
		result.Faces = append(result.Faces, FaceData{Analysis: an, Text: diag.Face(f)})
	}

	return result
}

func findingData(f topo.ValidationError, _ int) EvalErrorData {
	return EvalErrorData{Message: f.Error()}
}
