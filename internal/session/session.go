// Package session replays scripted viewer sessions headlessly.
//
// A script uploads files and then runs steps against a controller driven by a
// manual clock, so replays are deterministic and finish instantly:
//
//	files: [lower_jaw.stl, upper_jaw.stl]
//	steps:
//	  - action: upload
//	  - wait: 1.5s
//	  - action: jaw-offset
//	    value: 8
//	  - action: settle
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/dentaview/internal/clock"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/logger"
	"github.com/Faultbox/dentaview/internal/ui"
	"github.com/Faultbox/dentaview/internal/viewer"
)

// ActionSettle advances the clock until no timer is pending.
const ActionSettle = "settle"

// ErrUnknownStep is returned for a step with neither an action nor a wait.
var ErrUnknownStep = errors.New("session: unknown step")

// settleLimit bounds the virtual time a settle step may consume.
const settleLimit = 10 * time.Minute

// Step is one script entry. Wait is applied after Action.
type Step struct {
	Action string        `yaml:"action,omitempty"`
	Value  any           `yaml:"value,omitempty"`
	Wait   time.Duration `yaml:"wait,omitempty"`
}

// Script is a parsed session.
type Script struct {
	Files []string `yaml:"files"`
	Steps []Step   `yaml:"steps"`

	dir string // base for relative file paths
}

// Load reads a script from path. Relative file paths resolve against the
// script's directory.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a script. dir is the base for relative file paths.
func Parse(data []byte, dir string) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Action == "" && st.Wait <= 0 {
			return nil, fmt.Errorf("%w: step %d", ErrUnknownStep, i)
		}
	}
	s.dir = dir
	return &s, nil
}

func (s *Script) paths(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if filepath.IsAbs(n) || s.dir == "" {
			out[i] = n
		} else {
			out[i] = filepath.Join(s.dir, n)
		}
	}
	return out
}

// Record is the outcome of one step.
type Record struct {
	Index  int           `yaml:"index"`
	Action string        `yaml:"action,omitempty"`
	Wait   time.Duration `yaml:"wait,omitempty"`
	Err    string        `yaml:"error,omitempty"`
	State  viewer.State  `yaml:"state"`
}

// Runner replays scripts.
type Runner struct {
	ctrl ui.Controller
	clk  *clock.Manual
	log  *zap.Logger

	// Strict aborts the replay on the first rejected action.
	Strict bool
}

// NewRunner creates a runner over ctrl. clk must be the clock ctrl was built with.
func NewRunner(ctrl ui.Controller, clk *clock.Manual) *Runner {
	return &Runner{ctrl: ctrl, clk: clk, log: logger.Named("session")}
}

// Run replays s and returns one record per executed step.
func (r *Runner) Run(ctx context.Context, s *Script) ([]Record, error) {
	records := make([]Record, 0, len(s.Steps))
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		rec := Record{Index: i, Action: step.Action, Wait: step.Wait}
		if step.Action != "" {
			if err := r.act(s, step); err != nil {
				rec.Err = err.Error()
				r.log.Info("step rejected", zap.Int("step", i), zap.String("action", step.Action), zap.Error(err))
				if r.Strict || errors.Is(err, ui.ErrUnknownAction) {
					rec.State = r.ctrl.State()
					records = append(records, rec)
					return records, fmt.Errorf("step %d (%s): %w", i, step.Action, err)
				}
			}
		}
		if step.Wait > 0 {
			r.clk.Advance(step.Wait)
		}

		rec.State = r.ctrl.State()
		records = append(records, rec)
		r.log.Debug("step", zap.Int("step", i), zap.String("action", step.Action), zap.Duration("wait", step.Wait))
	}
	return records, nil
}

func (r *Runner) act(s *Script, step Step) error {
	switch step.Action {
	case ActionSettle:
		return Settle(r.clk)
	case string(ui.ActionUpload):
		files, err := r.uploadFiles(s, step.Value)
		if err != nil {
			return err
		}
		return ui.Dispatch(r.ctrl, ui.ActionUpload, files)
	}
	return ui.Dispatch(r.ctrl, ui.ActionID(step.Action), step.Value)
}

// uploadFiles reads the step's file list, or the script's when the step names none.
func (r *Runner) uploadFiles(s *Script, value any) ([]loader.File, error) {
	names := s.Files
	switch v := value.(type) {
	case nil:
	case string:
		names = []string{v}
	case []any:
		names = names[:0:0]
		for _, x := range v {
			n, ok := x.(string)
			if !ok {
				return nil, fmt.Errorf("%w: upload wants file names, got %T", ui.ErrBadValue, x)
			}
			names = append(names, n)
		}
	default:
		return nil, fmt.Errorf("%w: upload wants file names, got %T", ui.ErrBadValue, value)
	}
	return loader.ReadFiles(s.paths(names)...)
}

// Settle advances clk until no timer is pending.
func Settle(clk *clock.Manual) error {
	var spent time.Duration
	const quantum = 50 * time.Millisecond
	for clk.Pending() > 0 {
		if spent >= settleLimit {
			return fmt.Errorf("session: not idle after %s", settleLimit)
		}
		clk.Advance(quantum)
		spent += quantum
	}
	return nil
}
