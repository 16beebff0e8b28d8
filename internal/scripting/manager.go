package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/arena"
)

// Manager runs scenario scripts against one arena.
//
// Each run gets a fresh sandboxed LState, so runs share arena state but no
// Lua globals. Concurrent runs are safe because the arena serializes actions.
type Manager struct {
	arena     *arena.Arena
	logger    *zap.Logger
	instLimit int
}

// NewManager creates a Manager bound to a.
//
// Precondition: a and logger must be non-nil; instLimit >= 0 (0 = DefaultInstructionLimit).
// Postcondition: Returns a non-nil Manager.
func NewManager(a *arena.Arena, logger *zap.Logger, instLimit int) *Manager {
	return &Manager{arena: a, logger: logger, instLimit: instLimit}
}

// RunFile executes the Lua scenario at path.
//
// Precondition: path must be a readable .lua file.
// Postcondition: Returns nil if the script ran to completion, or a non-nil
// error for read failures, Lua errors, arena errors, or limit/cancel aborts.
func (m *Manager) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return m.RunString(ctx, filepath.Base(path), string(src))
}

// RunString executes src as a scenario called name.
//
// Postcondition: Returns nil if the script ran to completion, or a non-nil error.
func (m *Manager) RunString(ctx context.Context, name, src string) error {
	L, cancel := NewSandboxedState(ctx, m.instLimit)
	defer cancel()
	defer L.Close()

	m.RegisterModules(L)

	m.logger.Info("scripting: scenario started", zap.String("script", name))
	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("scripting: compiling %q: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		m.logger.Warn("scripting: scenario failed",
			zap.String("script", name),
			zap.Error(err),
		)
		return fmt.Errorf("scripting: running %q: %w", name, err)
	}
	m.logger.Info("scripting: scenario finished", zap.String("script", name))
	return nil
}
