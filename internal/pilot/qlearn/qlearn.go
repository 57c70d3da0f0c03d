// Package qlearn provides a tabular Q-learning pilot trained on the per-tick reward.
package qlearn

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/pilot"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

// Name is the registry name.
const Name = "qlearn"

// Defaults for options left at zero.
const (
	DefaultLearningRate = 0.1
	DefaultDiscount     = 0.9
	DefaultEpsilon      = 1.0
	DefaultMinEpsilon   = 0.01
	DefaultEpsilonDecay = 0.995
)

func init() {
	pilot.Register(Name, "tabular Q-learning agent, explores then exploits a learned table",
		func(opts pilot.Options) pilot.Pilot { return New(opts) })
}

// Table maps a state key to one value per action, in sim.Actions order.
type Table map[string][]float64

// Agent is an epsilon-greedy Q-learning pilot.
type Agent struct {
	Table        Table
	LearningRate float64
	Discount     float64
	Epsilon      float64
	MinEpsilon   float64
	EpsilonDecay float64

	rng *rand.Rand
}

// New creates an agent with an empty table. Zero options take the package defaults.
func New(opts pilot.Options) *Agent {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Agent{
		Table:        make(Table),
		LearningRate: orDefault(opts.LearningRate, DefaultLearningRate),
		Discount:     orDefault(opts.Discount, DefaultDiscount),
		Epsilon:      orDefault(opts.Epsilon, DefaultEpsilon),
		MinEpsilon:   orDefault(opts.MinEpsilon, DefaultMinEpsilon),
		EpsilonDecay: orDefault(opts.EpsilonDecay, DefaultEpsilonDecay),
		rng:          rand.New(rand.NewSource(seed)),
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func (a *Agent) Name() string { return Name }

// Choose explores with probability Epsilon and otherwise takes the best known
// action. Reversing onto the committed heading is never chosen.
func (a *Agent) Choose(snap sim.Snapshot) sim.Action {
	allowed := allowedActions(snap.LastAction)
	if a.rng.Float64() < a.Epsilon {
		return allowed[a.rng.Intn(len(allowed))]
	}
	return a.best(StateKey(snap), allowed)
}

// Observe applies one Q-learning update for the transition.
func (a *Agent) Observe(prev sim.Snapshot, act sim.Action, res sim.StepResult, next sim.Snapshot) {
	i := actionIndex(act)
	if i < 0 {
		return
	}

	q := a.values(StateKey(prev))
	target := res.Reward
	if !res.Event.Fatal() {
		target += a.Discount * maxOf(a.values(StateKey(next)))
	}
	q[i] += a.LearningRate * (target - q[i])
}

// EndEpisode decays the exploration rate.
func (a *Agent) EndEpisode(sim.Episode) {
	a.Epsilon = max(a.MinEpsilon, a.Epsilon*a.EpsilonDecay)
}

// Exploit switches exploration down to MinEpsilon, for playing a trained table.
func (a *Agent) Exploit() {
	a.Epsilon = a.MinEpsilon
}

func (a *Agent) best(key string, allowed []sim.Action) sim.Action {
	q := a.values(key)
	best := allowed[0]
	for _, act := range allowed[1:] {
		if q[actionIndex(act)] > q[actionIndex(best)] {
			best = act
		}
	}
	return best
}

func (a *Agent) values(key string) []float64 {
	q, ok := a.Table[key]
	if !ok {
		q = make([]float64, len(sim.Actions))
		a.Table[key] = q
	}
	return q
}

type tableFile struct {
	Epsilon float64 `json:"epsilon"`
	Table   Table   `json:"table"`
}

// Save writes the table and the current exploration rate as JSON.
func (a *Agent) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("qlearn: cannot create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(tableFile{Epsilon: a.Epsilon, Table: a.Table}, "", "  ")
	if err != nil {
		return fmt.Errorf("qlearn: cannot encode table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("qlearn: cannot write table: %w", err)
	}
	return nil
}

// Load replaces the table and exploration rate with the contents of path.
func (a *Agent) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("qlearn: cannot read table: %w", err)
	}

	var f tableFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("qlearn: cannot decode table: %w", err)
	}
	for key, q := range f.Table {
		if len(q) != len(sim.Actions) {
			return fmt.Errorf("qlearn: state %q has %d values, expected %d", key, len(q), len(sim.Actions))
		}
	}
	if f.Table == nil {
		f.Table = make(Table)
	}

	a.Table = f.Table
	a.Epsilon = f.Epsilon
	return nil
}

// StateKey encodes what the agent sees: danger straight ahead, to the left and to
// the right of the heading, the sign of the fruit offset, and the heading itself.
// A stopped snake is treated as heading up.
func StateKey(snap sim.Snapshot) string {
	heading := snap.LastAction
	if heading == sim.ActionNone {
		heading = sim.ActionUp
	}

	_, ahead := snap.Next(heading)
	_, left := snap.Next(turnLeft(heading))
	_, right := snap.Next(turnLeft(heading).Opposite())

	d := snap.Delta(snap.Player, snap.Fruit)
	return fmt.Sprintf("%d%d%d:%d,%d:%s",
		bit(ahead), bit(left), bit(right), sign(d.X), sign(d.Y), snap.LastAction)
}

func turnLeft(a sim.Action) sim.Action {
	switch a {
	case sim.ActionUp:
		return sim.ActionLeft
	case sim.ActionLeft:
		return sim.ActionDown
	case sim.ActionDown:
		return sim.ActionRight
	case sim.ActionRight:
		return sim.ActionUp
	default:
		return sim.ActionNone
	}
}

func allowedActions(last sim.Action) []sim.Action {
	out := make([]sim.Action, 0, len(sim.Actions))
	for _, a := range sim.Actions {
		if last != sim.ActionNone && a == last.Opposite() {
			continue
		}
		out = append(out, a)
	}
	return out
}

func actionIndex(a sim.Action) int {
	for i, b := range sim.Actions {
		if a == b {
			return i
		}
	}
	return -1
}

func maxOf(q []float64) float64 {
	m := q[0]
	for _, v := range q[1:] {
		m = max(m, v)
	}
	return m
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sign(v int) int {
	return core.Clamp(v, -1, 1)
}
