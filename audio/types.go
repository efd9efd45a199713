// Package audio synthesizes the game's sound effects with beep
package audio

// SoundType identifies an effect
type SoundType int

const (
	SoundFire SoundType = iota
	SoundExplosion
	SoundHit
	SoundGameOver
	soundCount
)

func (s SoundType) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundExplosion:
		return "explosion"
	case SoundHit:
		return "hit"
	case SoundGameOver:
		return "game_over"
	}
	return "unknown"
}

// Nop is a silent sound sink for headless runs and tests
type Nop struct{}

func (Nop) PlayFire()        {}
func (Nop) PlayExplosion()   {}
func (Nop) PlayHit()         {}
func (Nop) PlayGameOver()    {}
func (Nop) ToggleMute() bool { return true }
