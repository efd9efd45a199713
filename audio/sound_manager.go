package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(44100)

	// minSoundGap throttles repeats of the same effect
	minSoundGap = 40 * time.Millisecond
)

// SoundManager plays effects through a single speaker mixer
// All Play methods are no-ops until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	lastPlayed  [soundCount]time.Time
	now         func() time.Time
	log         *zap.Logger
}

// NewSoundManager creates a manager with the given master volume in [0, 1]
func NewSoundManager(volume float64, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		now:    time.Now,
		log:    log,
	}
}

// Initialize opens the speaker. Safe to call twice
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Cleanup silences the mixer and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// PlayFire plays the volley blip
func (sm *SoundManager) PlayFire() { sm.play(SoundFire) }

// PlayExplosion plays the enemy destroyed burst
func (sm *SoundManager) PlayExplosion() { sm.play(SoundExplosion) }

// PlayHit plays the player hit buzz
func (sm *SoundManager) PlayHit() { sm.play(SoundHit) }

// PlayGameOver plays the falling jingle
func (sm *SoundManager) PlayGameOver() { sm.play(SoundGameOver) }

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Muted reports whether effects are muted
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

func (sm *SoundManager) play(t SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	now := sm.now()
	if now.Sub(sm.lastPlayed[t]) < minSoundGap {
		return
	}
	sm.lastPlayed[t] = now

	s := GetSoundEffect(t, sampleRate, sm.volume)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
