package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// newState creates an isolated Lua state with only safe standard libraries
// open. io, os, debug, and package stay closed: configuration scripts define
// variables, they do not touch the host.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	return L
}

// baselineGlobals is the set of global names present in a pristine state.
// Captured namespaces exclude these, so only bindings a script actually
// created survive.
var baselineGlobals = pristineGlobals()

func pristineGlobals() map[string]struct{} {
	L := newState()
	defer L.Close()

	set := make(map[string]struct{})
	L.Get(lua.GlobalsIndex).(*lua.LTable).ForEach(func(k, _ lua.LValue) {
		if name, ok := k.(lua.LString); ok {
			set[string(name)] = struct{}{}
		}
	})
	return set
}

// captureGlobals converts the non-baseline, non-excluded globals of an
// executed state into a Namespace. Functions and userdata are not data and
// are dropped.
func captureGlobals(L *lua.LState, exclude func(string) bool) Namespace {
	ns := make(Namespace)
	L.Get(lua.GlobalsIndex).(*lua.LTable).ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok {
			return
		}
		s := string(name)
		if _, builtin := baselineGlobals[s]; builtin {
			return
		}
		if exclude != nil && exclude(s) {
			return
		}
		if v.Type() == lua.LTFunction || v.Type() == lua.LTUserData {
			return
		}
		ns[s] = toGoValue(v, make(map[*lua.LTable]bool))
	})
	return ns
}

// toGoValue converts a Lua value to a plain Go value. Integral numbers become
// int64, other numbers float64. Tables become []any when their keys form a
// contiguous 1..n sequence, map[string]any otherwise. Circular tables are cut.
func toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isArray := true
	maxN := 0
	count := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) < 1 {
			isArray = false
			return
		}
		if int(kn) > maxN {
			maxN = int(kn)
		}
	})

	if isArray && maxN > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGoValue(v, visited)
	})
	return m
}
