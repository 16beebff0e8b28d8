package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/skirmish/internal/game/arena"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/entity"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// RegisterModules registers the "arena" and "log" Lua tables into L.
//
// Entity arguments accept either an entity name or an entity ID; names win.
// Arena errors (unknown entity, negative amount, bad weapon) raise Lua errors.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: arena and log globals are defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	L.SetGlobal("arena", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"spawn_character": m.luaSpawnCharacter,
		"spawn_prop":      m.luaSpawnProp,
		"id":              m.luaID,
		"attack":          m.luaAttack,
		"heal":            m.luaHeal,
		"move":            m.luaMove,
		"join":            m.luaJoin,
		"leave":           m.luaLeave,
		"level_up":        m.luaLevelUp,
		"status":          m.luaStatus,
		"health":          m.luaHealth,
		"alive":           m.luaAlive,
		"level":           m.luaLevel,
	}))

	L.SetGlobal("log", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": m.luaLog(zap.DebugLevel),
		"info":  m.luaLog(zap.InfoLevel),
		"warn":  m.luaLog(zap.WarnLevel),
		"error": m.luaLog(zap.ErrorLevel),
	}))
}

// resolve maps a name-or-ID argument to an entity ID.
func (m *Manager) resolve(ref string) string {
	if id, ok := m.arena.Lookup(ref); ok {
		return id
	}
	return ref
}

func fieldString(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func fieldNumber(t *lua.LTable, key string) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

func fieldStrings(t *lua.LTable, key string) []string {
	list, ok := t.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	out := make([]string, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		out = append(out, lua.LVAsString(list.RawGetInt(i)))
	}
	return out
}

// arena.spawn_character{name=, weapon=, level=, x=, y=, factions={...}} -> id
func (m *Manager) luaSpawnCharacter(L *lua.LState) int {
	t := L.CheckTable(1)
	kind := weapon.Melee
	if w := fieldString(t, "weapon"); w != "" {
		k, err := weapon.ParseKind(w)
		if err != nil {
			L.RaiseError("arena.spawn_character: %s", err.Error())
			return 0
		}
		kind = k
	}
	id, err := m.arena.SpawnCharacter(arena.CharacterSpec{
		Name:     fieldString(t, "name"),
		Weapon:   kind,
		Level:    int(fieldNumber(t, "level")),
		Position: entity.Position{X: fieldNumber(t, "x"), Y: fieldNumber(t, "y")},
		Factions: fieldStrings(t, "factions"),
	})
	if err != nil {
		L.RaiseError("arena.spawn_character: %s", err.Error())
		return 0
	}
	L.Push(lua.LString(id))
	return 1
}

// arena.spawn_prop{name=, health=, x=, y=} -> id
func (m *Manager) luaSpawnProp(L *lua.LState) int {
	t := L.CheckTable(1)
	id, err := m.arena.SpawnProp(arena.PropSpec{
		Name:     fieldString(t, "name"),
		Health:   int(fieldNumber(t, "health")),
		Position: entity.Position{X: fieldNumber(t, "x"), Y: fieldNumber(t, "y")},
	})
	if err != nil {
		L.RaiseError("arena.spawn_prop: %s", err.Error())
		return 0
	}
	L.Push(lua.LString(id))
	return 1
}

// arena.id(name) -> id or nil
func (m *Manager) luaID(L *lua.LState) int {
	id, ok := m.arena.Lookup(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(id))
	return 1
}

func pushResult(L *lua.LState, res combat.Result) int {
	L.Push(lua.LString(res.Outcome.String()))
	L.Push(lua.LNumber(res.Amount))
	return 2
}

// arena.attack(attacker, target, damage) -> outcome, amount
func (m *Manager) luaAttack(L *lua.LState) int {
	res, err := m.arena.Attack(m.resolve(L.CheckString(1)), m.resolve(L.CheckString(2)), L.CheckInt(3))
	if err != nil {
		L.RaiseError("arena.attack: %s", err.Error())
		return 0
	}
	return pushResult(L, res)
}

// arena.heal(healer, target, amount) -> outcome, amount
func (m *Manager) luaHeal(L *lua.LState) int {
	res, err := m.arena.Heal(m.resolve(L.CheckString(1)), m.resolve(L.CheckString(2)), L.CheckInt(3))
	if err != nil {
		L.RaiseError("arena.heal: %s", err.Error())
		return 0
	}
	return pushResult(L, res)
}

// arena.move(entity, x, y)
func (m *Manager) luaMove(L *lua.LState) int {
	x, y := float64(L.CheckNumber(2)), float64(L.CheckNumber(3))
	if err := m.arena.Move(m.resolve(L.CheckString(1)), x, y); err != nil {
		L.RaiseError("arena.move: %s", err.Error())
	}
	return 0
}

// arena.join(character, faction)
func (m *Manager) luaJoin(L *lua.LState) int {
	if err := m.arena.JoinFaction(m.resolve(L.CheckString(1)), L.CheckString(2)); err != nil {
		L.RaiseError("arena.join: %s", err.Error())
	}
	return 0
}

// arena.leave(character, faction)
func (m *Manager) luaLeave(L *lua.LState) int {
	if err := m.arena.LeaveFaction(m.resolve(L.CheckString(1)), L.CheckString(2)); err != nil {
		L.RaiseError("arena.leave: %s", err.Error())
	}
	return 0
}

// arena.level_up(character) -> new level
func (m *Manager) luaLevelUp(L *lua.LState) int {
	lvl, err := m.arena.LevelUp(m.resolve(L.CheckString(1)))
	if err != nil {
		L.RaiseError("arena.level_up: %s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(lvl))
	return 1
}

func (m *Manager) status(L *lua.LState, fn string) arena.Status {
	st, err := m.arena.Status(m.resolve(L.CheckString(1)))
	if err != nil {
		L.RaiseError("arena.%s: %s", fn, err.Error())
	}
	return st
}

// arena.status(entity) -> table
func (m *Manager) luaStatus(L *lua.LState) int {
	st := m.status(L, "status")
	t := L.NewTable()
	t.RawSetString("id", lua.LString(st.ID))
	t.RawSetString("name", lua.LString(st.Name))
	t.RawSetString("kind", lua.LString(st.Kind.String()))
	t.RawSetString("health", lua.LNumber(st.Health))
	t.RawSetString("max_health", lua.LNumber(st.MaxHealth))
	t.RawSetString("alive", lua.LBool(st.Alive))
	t.RawSetString("x", lua.LNumber(st.Position.X))
	t.RawSetString("y", lua.LNumber(st.Position.Y))
	if st.Kind == arena.KindCharacter {
		t.RawSetString("level", lua.LNumber(st.Level))
		t.RawSetString("weapon", lua.LString(st.Weapon.String()))
		factions := L.NewTable()
		for _, f := range st.Factions {
			factions.Append(lua.LString(f))
		}
		t.RawSetString("factions", factions)
	}
	L.Push(t)
	return 1
}

// arena.health(entity) -> number
func (m *Manager) luaHealth(L *lua.LState) int {
	L.Push(lua.LNumber(m.status(L, "health").Health))
	return 1
}

// arena.alive(entity) -> bool
func (m *Manager) luaAlive(L *lua.LState) int {
	L.Push(lua.LBool(m.status(L, "alive").Alive))
	return 1
}

// arena.level(character) -> number; nil for props
func (m *Manager) luaLevel(L *lua.LState) int {
	st := m.status(L, "level")
	if st.Kind != arena.KindCharacter {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(st.Level))
	return 1
}

// log.<level>(msg [, fields]) writes msg to the manager's logger. Entries of
// the optional fields table become string fields.
func (m *Manager) luaLog(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)
		fields := []zap.Field{zap.String("source", "lua")}
		if t, ok := L.Get(2).(*lua.LTable); ok {
			t.ForEach(func(k, v lua.LValue) {
				fields = append(fields, zap.String(k.String(), v.String()))
			})
		}
		if ce := m.logger.Check(level, msg); ce != nil {
			ce.Write(fields...)
		}
		return 0
	}
}
