// Package registry maps scenario IDs to game factories.
// Scenarios register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-chase/internal/core"
)

// Game is what the platform drives. Implementations contain pure logic with
// no Bubble Tea dependency; the platform handles input, timing and output.
type Game interface {
	// ID returns the scenario identifier (e.g., "classic", "swarm").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds and places a fresh world.
	// The RuntimeConfig provides the seed, config path and difficulty.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current world into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns score, health and the terminal flags.
	State() core.GameState

	// TickInterval is how often the platform should call Step.
	TickInterval() time.Duration
}

// Saver is implemented by games that can write their state to a file.
type Saver interface {
	SaveFile(path string) error
}

// Ticker is implemented by games that count simulated ticks.
type Ticker interface {
	Ticks() uint64
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
