package datarecording

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// RunInfoTable is the table that RunRecorder writes into.
const RunInfoTable = "run_info"

type runInfo struct {
	Property string
	Value    string
}

// RunRecorder records how a simulation was launched: wall-clock start and
// end, the command line and arbitrary parameters.
type RunRecorder struct {
	recorder DataRecorder
	entries  []runInfo
}

// NewRunRecorder creates the run_info table and returns a recorder writing
// into it.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(RunInfoTable, runInfo{})

	return &RunRecorder{recorder: recorder}
}

// Start records the start time and the command line.
func (e *RunRecorder) Start() {
	e.entries = append(e.entries,
		runInfo{"Start Time", wallClock()},
		runInfo{"Command", strings.Join(os.Args, " ")},
	)
}

// Param records a parameter of the simulation.
func (e *RunRecorder) Param(name string, value any) {
	e.entries = append(e.entries, runInfo{name, fmt.Sprint(value)})
}

// Params records a set of parameters in name order.
func (e *RunRecorder) Params(params map[string]any) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		e.Param(name, params[name])
	}
}

// End writes the collected entries along with the end time.
func (e *RunRecorder) End() {
	e.entries = append(e.entries, runInfo{"End Time", wallClock()})

	for _, entry := range e.entries {
		e.recorder.InsertData(RunInfoTable, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}

func wallClock() string {
	return time.Now().Format("2006-01-02 15:04:05.000000000")
}
