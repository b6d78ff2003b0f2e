package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tuning formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core scripts first so feature scripts can override their defaults.
	for _, sub := range []string{"core", "laser", "spawn"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ImpulseContext holds the numbers a split impulse formula may use.
type ImpulseContext struct {
	Power float64
	MassA float64
	MassB float64
	AreaA float64
	AreaB float64
}

// CalcSplitImpulse calls Lua calc_split_impulse(ctx) and returns the impulse
// magnitude applied to each fragment. Falls back to the raw laser power.
func (e *Engine) CalcSplitImpulse(ctx ImpulseContext) float64 {
	fn := e.vm.GetGlobal("calc_split_impulse")
	if fn == lua.LNil {
		return ctx.Power
	}

	t := e.vm.NewTable()
	t.RawSetString("power", lua.LNumber(ctx.Power))
	t.RawSetString("mass_a", lua.LNumber(ctx.MassA))
	t.RawSetString("mass_b", lua.LNumber(ctx.MassB))
	t.RawSetString("area_a", lua.LNumber(ctx.AreaA))
	t.RawSetString("area_b", lua.LNumber(ctx.AreaB))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_split_impulse error", zap.Error(err))
		return ctx.Power
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_split_impulse returned non-number")
		return ctx.Power
	}
	return float64(n)
}

// CalcSpawnBudget calls Lua calc_spawn_budget(active, target) and returns
// how many planetoids to spawn this wave. Without a script the arena is
// topped up to target.
func (e *Engine) CalcSpawnBudget(active, target int) int {
	if e.vm.GetGlobal("calc_spawn_budget") == lua.LNil {
		if active >= target {
			return 0
		}
		return target - active
	}
	n := e.callIntFunc("calc_spawn_budget", active, target)
	if n < 0 {
		return 0
	}
	return n
}

// callIntFunc calls a Lua function with int args and returns an int result.
func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
