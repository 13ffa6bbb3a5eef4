package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/dinox/internal/config"
)

// Spawner decides when obstacles and coins enter the field. Each kind has
// its own countdown timer in milliseconds; when it runs out one entity is
// emitted at the right edge and the timer is redrawn from its window.
type Spawner struct {
	cfg        config.SpawnerConfig
	field      config.FieldConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	obstacleTimer float64
	coinTimer     float64
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(cfg config.RunnerConfig, diff *config.DifficultyManager, seed int64) *Spawner {
	s := &Spawner{
		cfg:        cfg.Spawner,
		field:      cfg.Field,
		difficulty: diff,
		rng:        rand.New(rand.NewSource(seed)),
	}
	s.Reset()
	return s
}

// Reset restores the initial spawn delays. The RNG keeps its sequence so
// consecutive runs differ.
func (s *Spawner) Reset() {
	s.obstacleTimer = s.cfg.Obstacle.InitialDelay
	s.coinTimer = s.cfg.Coin.InitialDelay
}

// Update advances both timers by dt milliseconds and returns what spawned.
// At most one obstacle and one coin are emitted per call.
func (s *Spawner) Update(dt float64, score int) (obstacle *Obstacle, coin *Coin) {
	s.obstacleTimer -= dt
	if s.obstacleTimer <= 0 {
		low, high := s.difficulty.ObstacleWindow(score)
		s.obstacleTimer = s.uniform(low, high)
		o := s.newObstacle()
		obstacle = &o
	}

	s.coinTimer -= dt
	if s.coinTimer <= 0 {
		s.coinTimer = s.uniform(s.cfg.Coin.IntervalMin, s.cfg.Coin.IntervalMax)
		c := s.newCoin()
		coin = &c
	}
	return obstacle, coin
}

// Timers returns the remaining obstacle and coin delays in milliseconds.
func (s *Spawner) Timers() (obstacle, coin float64) {
	return s.obstacleTimer, s.coinTimer
}

func (s *Spawner) newObstacle() Obstacle {
	o := s.cfg.Obstacle
	w := math.Round(s.uniform(o.MinWidth, o.MaxWidth))
	h := math.Round(s.uniform(o.MinHeight, o.MaxHeight))
	return Obstacle{
		X: s.spawnX(),
		Y: s.field.GroundY() - h,
		W: w,
		H: h,
	}
}

func (s *Spawner) newCoin() Coin {
	c := s.cfg.Coin
	groundY := s.field.GroundY()
	return Coin{
		X:      s.spawnX(),
		Y:      math.Round(s.uniform(groundY-c.MaxLift, groundY-c.MinLift)),
		Radius: c.Radius,
	}
}

func (s *Spawner) spawnX() float64 {
	return s.field.Width + s.field.SpawnOffset
}

// uniform draws from [low, high). A collapsed window returns low.
func (s *Spawner) uniform(low, high float64) float64 {
	if high <= low {
		return low
	}
	return low + s.rng.Float64()*(high-low)
}
