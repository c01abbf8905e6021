// Package script runs the level's tengo rating script when a level is won.
package script

import (
	"errors"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rollball/levels"
)

const MaxStars = 3

var ErrNoStars = errors.New("script: rating script did not define stars")

// Rater evaluates a compiled rating script. The script reads the globals
// tries (int) and elapsed (float seconds) and must define stars.
type Rater struct {
	name     string
	compiled *tengo.Compiled
}

// NewRater loads name through levels.LoadScript, so a script on disk wins
// over the embedded copy.
func NewRater(name string) (*Rater, error) {
	src, err := levels.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*Rater, error) {
	s := tengo.NewScript(src)
	_ = s.Add("tries", 0)
	_ = s.Add("elapsed", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Rater{name: name, compiled: compiled}, nil
}

func (r *Rater) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// Rate returns 0..MaxStars for a won attempt.
func (r *Rater) Rate(tries int, elapsed time.Duration) (int, error) {
	if r == nil || r.compiled == nil {
		return 0, fmt.Errorf("script: nil rater")
	}
	if err := r.compiled.Set("tries", tries); err != nil {
		return 0, err
	}
	if err := r.compiled.Set("elapsed", elapsed.Seconds()); err != nil {
		return 0, err
	}
	if err := r.compiled.Run(); err != nil {
		return 0, fmt.Errorf("script: run %s: %w", r.name, err)
	}
	if !r.compiled.IsDefined("stars") {
		return 0, ErrNoStars
	}
	stars := r.compiled.Get("stars").Int()
	return min(max(stars, 0), MaxStars), nil
}
