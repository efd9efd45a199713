package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Effect timing
const (
	fireDuration      = 60 * time.Millisecond
	explosionDuration = 300 * time.Millisecond
	hitDuration       = 150 * time.Millisecond
	gameOverNote      = 220 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a bounded raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates an oscillator that stops after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000), uint64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay applies an exponential fade to a stream
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	k        float64
	position int
}

// NewDecay fades s out with the given time constant factor
func NewDecay(s beep.Streamer, k float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, rate: rate, k: k}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.rate)
		env := math.Exp(-t * d.k)
		samples[i][0] *= env
		samples[i][1] *= env
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps s with a linear volume, 0 is silent
// math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateFireSound is a short high blip for a volley
func CreateFireSound(rate beep.SampleRate, volume float64) beep.Streamer {
	tone, err := generators.SineTone(rate, 880)
	if err != nil {
		tone = NewOscillator(880, fireDuration, WaveSine, rate)
	}
	blip := NewDecay(beep.Take(rate.N(fireDuration), tone), 30, rate)
	return newVolume(blip, volume*0.5)
}

// CreateExplosionSound is a noise burst over a low rumble for a destroyed enemy
func CreateExplosionSound(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewOscillator(0, explosionDuration, WaveNoise, rate)
	rumble := NewOscillator(80, explosionDuration, WaveSine, rate)
	mixed := beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.4))
	return newVolume(NewDecay(mixed, 8, rate), volume)
}

// CreateHitSound is a harsh low buzz for the player being hit
func CreateHitSound(rate beep.SampleRate, volume float64) beep.Streamer {
	saw := NewOscillator(120, hitDuration, WaveSaw, rate)
	return newVolume(NewDecay(saw, 6, rate), volume*0.6)
}

// CreateGameOverSound is a falling three-note square sequence
func CreateGameOverSound(rate beep.SampleRate, volume float64) beep.Streamer {
	notes := []float64{392.00, 311.13, 196.00}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		seq[i] = NewDecay(NewOscillator(f, gameOverNote, WaveSquare, rate), 4, rate)
	}
	return newVolume(beep.Seq(seq...), volume*0.4)
}

// GetSoundEffect builds the streamer for a sound type
func GetSoundEffect(t SoundType, rate beep.SampleRate, volume float64) beep.Streamer {
	switch t {
	case SoundFire:
		return CreateFireSound(rate, volume)
	case SoundExplosion:
		return CreateExplosionSound(rate, volume)
	case SoundHit:
		return CreateHitSound(rate, volume)
	case SoundGameOver:
		return CreateGameOverSound(rate, volume)
	}
	return nil
}
