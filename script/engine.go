// Package script lets a Lua file lay out enemy waves
//
// The file defines a global function wave(ctx) where ctx carries the wave
// number and field size. It returns an array of {x=, y=, speed=} tables, the
// sign of speed being the initial direction. Any error or an empty result
// falls back to the built-in layout.
package script

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/yR-DEV/space-invaders/engine"
	"github.com/yR-DEV/space-invaders/entity"
)

const waveFunc = "wave"

// Engine wraps a single gopher-lua VM
// Single-goroutine access only (game loop)
type Engine struct {
	vm       *lua.LState
	name     string
	fallback engine.WaveSource
	log      *zap.Logger
}

// Open loads a wave script from a file
func Open(path string, fallback engine.WaveSource, log *zap.Logger) (*Engine, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return New(string(src), path, fallback, log)
}

// New loads a wave script from source. name is used in errors and logs
func New(src, name string, fallback engine.WaveSource, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}

	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	if fn, ok := vm.GetGlobal(waveFunc).(*lua.LFunction); !ok || fn == nil {
		vm.Close()
		return nil, fmt.Errorf("load script %s: function %s not defined", name, waveFunc)
	}

	log.Debug("loaded lua script", zap.String("file", name))
	return &Engine{vm: vm, name: name, fallback: fallback, log: log}, nil
}

// Wave calls wave(ctx) and converts the result
func (e *Engine) Wave(n int, field entity.Field) []engine.Spawn {
	ctx := e.vm.NewTable()
	ctx.RawSetString("wave", lua.LNumber(n))
	ctx.RawSetString("width", lua.LNumber(field.Width))
	ctx.RawSetString("height", lua.LNumber(field.Height))

	if err := e.vm.CallByParam(lua.P{
		Fn:      e.vm.GetGlobal(waveFunc),
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		e.log.Error("lua wave error", zap.String("file", e.name), zap.Int("wave", n), zap.Error(err))
		return e.fallbackWave(n, field)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua wave returned non-table", zap.String("file", e.name), zap.String("type", result.Type().String()))
		return e.fallbackWave(n, field)
	}

	spawns := make([]engine.Spawn, 0, rt.Len())
	skipped := 0
	for i := 1; i <= rt.Len(); i++ {
		st, ok := rt.RawGetInt(i).(*lua.LTable)
		if !ok {
			skipped++
			continue
		}
		s := engine.Spawn{
			X:     float64(lua.LVAsNumber(st.RawGetString("x"))),
			Y:     float64(lua.LVAsNumber(st.RawGetString("y"))),
			Speed: float64(lua.LVAsNumber(st.RawGetString("speed"))),
		}
		// A still enemy never bounces and would never leave
		if s.Speed == 0 {
			skipped++
			continue
		}
		spawns = append(spawns, s)
	}
	if skipped > 0 {
		e.log.Warn("lua wave entries skipped", zap.String("file", e.name), zap.Int("skipped", skipped))
	}

	if len(spawns) == 0 {
		return e.fallbackWave(n, field)
	}
	return spawns
}

// Close releases the VM
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) fallbackWave(n int, field entity.Field) []engine.Spawn {
	if e.fallback == nil {
		return nil
	}
	return e.fallback.Wave(n, field)
}
