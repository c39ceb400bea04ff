package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const table = `
[[context]]
name = "gameplay"

[[context.action]]
name = "jump"

[[context.action.binding]]
control = "space"
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bindings.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRegistersContexts(t *testing.T) {
	a, err := New(Options{BindingsPath: writeTable(t, table)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Shutdown()

	stack := a.registry.Stack("player")
	if len(stack) != 1 || stack[0].Context.Name != "gameplay" {
		t.Errorf("registered stack = %v, want the gameplay context", stack)
	}
}

func TestNewRequiresBindingsPath(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() without a binding table should fail")
	}
}

func TestNewRejectsBrokenTable(t *testing.T) {
	path := writeTable(t, `
[[context]]
name = "c"

[[context.action]]
name = "a"
kind = "matrix4"
`)
	if _, err := New(Options{BindingsPath: path}); err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Errorf("New() error = %v, want the kind failure", err)
	}
}

func TestReloadSwapsContexts(t *testing.T) {
	path := writeTable(t, table)
	a, err := New(Options{BindingsPath: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Shutdown()

	replacement := `
[[context]]
name = "menu"

[[context.action]]
name = "confirm"

[[context.action.binding]]
control = "enter"
`
	if err := os.WriteFile(path, []byte(replacement), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.loadTable(); err != nil {
		t.Fatalf("loadTable() error = %v", err)
	}

	stack := a.registry.Stack("player")
	if len(stack) != 1 || stack[0].Context.Name != "menu" {
		t.Errorf("stack after reload = %v, want the menu context", stack)
	}
}

func TestReloadFailureKeepsOldTable(t *testing.T) {
	path := writeTable(t, table)
	a, err := New(Options{BindingsPath: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Shutdown()

	if err := os.WriteFile(path, []byte("version = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.loadTable(); err == nil {
		t.Fatal("loadTable() accepted a broken file")
	}

	stack := a.registry.Stack("player")
	if len(stack) != 1 || stack[0].Context.Name != "gameplay" {
		t.Errorf("stack after failed reload = %v, want the original context", stack)
	}
}

func TestScriptedTypesAvailableToTable(t *testing.T) {
	script := filepath.Join(t.TempDir(), "types.lua")
	src := `
tactile.modifier("half", function(params)
	return function(x, y, z, dt)
		return x * 0.5, y * 0.5, z * 0.5
	end
end)
`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	path := writeTable(t, `
[[context]]
name = "gameplay"

[[context.action]]
name = "move"
kind = "axis2d"

[[context.action.binding]]
control = "pad:left_stick"

[[context.action.binding.modifier]]
type = "half"
`)

	a, err := New(Options{BindingsPath: path, ScriptPaths: []string{script}})
	if err != nil {
		t.Fatalf("New() with scripted modifier error = %v", err)
	}
	a.Shutdown()
}
