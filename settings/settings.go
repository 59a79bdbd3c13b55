package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/locomotion"
	"github.com/pelletier/go-toml"
)

// Settings contains all tuning values of the play mode and the diagnostics of the host running it.
type Settings struct {
	Player struct {
		// Speed is the walking speed of the player in units per second.
		Speed float32
		// WalkScale multiplies every walking step on top of Speed.
		WalkScale float32
		EyeHeight float32
		FovyDeg   float32
		Near      float32
	}
	Walk struct {
		MaxIterations int
		Restitution   float32
		WallBias      float32
	}
	Bullets struct {
		// Capacity is the maximum amount of bullets alive at once. Shooting with a full magazine retires the
		// oldest bullet.
		Capacity int
		Lift     float32
		Forward  float32
		Lifetime float32
		Extent   float32
	}
	Enemies struct {
		Cap           int
		SpawnInterval float32
		Step          float32
		ArrivalFactor float32
		Extent        float32
	}
	Cargo struct {
		Extent float32
	}
	Robot struct {
		Health        int
		Invincibility float32
		Extent        Extent
	}
	Diagnostics Diagnostics
}

// Extent is a half-extent of a bounding box along each axis.
type Extent struct {
	X, Y, Z float32
}

// Diagnostics configure how the host reports on the simulation.
type Diagnostics struct {
	// LogLevel is the logrus level of the host's logger.
	LogLevel string
	// SentryDSN enables crash reporting if not empty.
	SentryDSN string
	// StatsviewAddr is the address the runtime statistics viewer listens on when enabled.
	StatsviewAddr string
}

// DefaultSettings returns the default settings of the play mode.
func DefaultSettings() Settings {
	s := Settings{}
	s.Player.Speed = game.PlayerSpeed
	s.Player.WalkScale = game.PlayerWalkScale
	s.Player.EyeHeight = game.PlayerEyeHeight
	s.Player.FovyDeg = game.CameraFovyDeg
	s.Player.Near = game.CameraNear

	s.Walk.MaxIterations = locomotion.DefaultMaxIterations
	s.Walk.Restitution = locomotion.DefaultRestitution
	s.Walk.WallBias = locomotion.DefaultWallBias

	s.Bullets.Capacity = game.MaxBullets
	s.Bullets.Lift = game.BulletLift
	s.Bullets.Forward = game.BulletForward
	s.Bullets.Lifetime = game.BulletLifetime
	s.Bullets.Extent = game.BulletExtent

	s.Enemies.Cap = game.SpawnCap
	s.Enemies.SpawnInterval = game.SpawnInterval
	s.Enemies.Step = game.EnemyStep
	s.Enemies.ArrivalFactor = game.EnemyArrivalFactor
	s.Enemies.Extent = game.EnemyExtent

	s.Cargo.Extent = game.CargoExtent

	s.Robot.Health = game.RobotHealth
	s.Robot.Invincibility = game.RobotInvincibility
	s.Robot.Extent = Extent{X: game.RobotExtent[0], Y: game.RobotExtent[1], Z: game.RobotExtent[2]}

	s.Diagnostics.LogLevel = "info"
	s.Diagnostics.StatsviewAddr = "localhost:18066"
	return s
}

// Validate checks that the settings describe a playable mode.
func (s Settings) Validate() error {
	switch {
	case s.Walk.MaxIterations <= 0:
		return fmt.Errorf(game.ErrorInvalidSettings, "Walk.MaxIterations must be positive")
	case s.Bullets.Capacity <= 0:
		return fmt.Errorf(game.ErrorInvalidSettings, "Bullets.Capacity must be positive")
	case s.Enemies.Cap < 0:
		return fmt.Errorf(game.ErrorInvalidSettings, "Enemies.Cap must not be negative")
	case s.Robot.Health <= 0:
		return fmt.Errorf(game.ErrorInvalidSettings, "Robot.Health must be positive")
	case s.Player.FovyDeg <= 0 || s.Player.FovyDeg >= 180:
		return fmt.Errorf(game.ErrorInvalidSettings, "Player.FovyDeg must be in (0, 180)")
	}
	return nil
}

// LocomotionOptions returns the resolver options described by the settings.
func (s Settings) LocomotionOptions() locomotion.Options {
	opts := locomotion.DefaultOptions()
	opts.MaxIterations = s.Walk.MaxIterations
	opts.Restitution = s.Walk.Restitution
	opts.WallBias = s.Walk.WallBias
	return opts
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	return Save(path, DefaultSettings())
}

// Save encodes the settings passed into a file at path, replacing it if it exists.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist. Values
// missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	s := DefaultSettings()
	if err = toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
