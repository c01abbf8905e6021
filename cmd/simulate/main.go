// Command simulate plays a level with a saved layout headlessly and reports
// whether the ball ends up in the bucket.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/play"
	"github.com/milk9111/rollball/script"
)

type result struct {
	Won     bool
	Elapsed time.Duration
	Stars   int
	BallX   float64
	BallY   float64
}

type simClock struct {
	t time.Time
}

func (c *simClock) now() time.Time { return c.t }

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	layoutPath := flag.String("layout", "", "layout YAML produced by the copy layout key")
	seconds := flag.Float64("seconds", 10, "simulated seconds before giving up")
	flag.Parse()

	lvl, err := levels.LoadLevel(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	var layout *levels.Layout
	if *layoutPath != "" {
		layout, err = levels.LoadLayoutFile(*layoutPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	res, err := run(lvl, layout, time.Duration(*seconds*float64(time.Second)))
	if err != nil {
		log.Fatal(err)
	}
	if !res.Won {
		fmt.Printf("no win after %.1fs, ball at (%.0f, %.0f)\n", *seconds, res.BallX, res.BallY)
		os.Exit(1)
	}
	fmt.Printf("won in %.2fs", res.Elapsed.Seconds())
	if res.Stars >= 0 {
		fmt.Printf(", %d stars", res.Stars)
	}
	fmt.Println()
}

// run places layout, presses play and steps at the fixed timestep on a
// simulated clock, polling for a win on the level's interval.
func run(lvl *levels.Level, layout *levels.Layout, limit time.Duration) (result, error) {
	clock := &simClock{t: time.Unix(0, 0)}
	opts := play.Options{Now: clock.now}
	if lvl.Rating != "" {
		r, err := script.NewRater(lvl.Rating)
		if err != nil {
			log.Printf("rating disabled: %v", err)
		} else {
			opts.Rater = r
		}
	}

	c := play.New(lvl, opts)
	if layout != nil {
		if err := c.Session.ApplyLayout(layout); err != nil {
			return result{}, err
		}
	}
	if !c.Play() {
		return result{}, fmt.Errorf("simulate: could not start the run")
	}

	step := common.StepDuration
	poll := lvl.Win.PollInterval()
	var sincePoll time.Duration
	res := result{Stars: -1}
	for elapsed := time.Duration(0); elapsed < limit; elapsed += step {
		c.Update()
		clock.t = clock.t.Add(step)
		sincePoll += step
		if sincePoll < poll {
			continue
		}
		sincePoll = 0
		if c.PollWin() {
			won, _ := c.Session.LastWin()
			res.Won = true
			res.Elapsed = elapsed + step
			res.Stars = won.Stars
			break
		}
	}
	res.BallX, res.BallY = c.Session.World.VecToPixels(c.Session.Ball.Position())
	return res, nil
}
