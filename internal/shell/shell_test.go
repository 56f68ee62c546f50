package shell

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"procwatch/internal/errkind"
)

func stubLookPath(t *testing.T, paths map[string]string) {
	t.Helper()
	old := LookPath
	LookPath = func(name string) (string, error) {
		if p, ok := paths[name]; ok {
			return p, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { LookPath = old })
}

func TestResolve_NoShellTokenizes(t *testing.T) {
	t.Setenv("SHELL", "")
	inv, err := Resolve("kubectl get pod", Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Invocation{Argv: []string{"kubectl", "get", "pod"}}
	if !reflect.DeepEqual(inv, want) {
		t.Errorf("Resolve() = %+v, want %+v", inv, want)
	}
}

func TestResolve_QuotedWords(t *testing.T) {
	t.Setenv("SHELL", "")
	inv, err := Resolve(`grep -c "two words" 'a file'`, Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"grep", "-c", "two words", "a file"}
	if !reflect.DeepEqual(inv.Argv, want) {
		t.Errorf("Argv = %q, want %q", inv.Argv, want)
	}
}

func TestResolve_ShellIsFile(t *testing.T) {
	dir := t.TempDir()
	sh := filepath.Join(dir, "shell")
	if err := os.WriteFile(sh, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHELL", sh)

	inv, err := Resolve("kubectl get pod", Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Invocation{Argv: []string{sh, "-c", "kubectl get pod"}}
	if !reflect.DeepEqual(inv, want) {
		t.Errorf("Resolve() = %+v, want %+v", inv, want)
	}
}

func TestResolve_ShellOnPath(t *testing.T) {
	stubLookPath(t, map[string]string{"procwatch-test-shell": "/usr/bin/procwatch-test-shell"})
	t.Setenv("SHELL", "procwatch-test-shell")

	inv, err := Resolve("kubectl get pod", Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"/usr/bin/procwatch-test-shell", "-c", "kubectl get pod"}
	if !reflect.DeepEqual(inv.Argv, want) {
		t.Errorf("Argv = %q, want %q", inv.Argv, want)
	}
}

func TestResolve_MissingShell(t *testing.T) {
	stubLookPath(t, nil)
	t.Setenv("SHELL", "missing-shell")

	_, err := Resolve("kubectl get pod", Options{})
	if !errors.Is(err, errkind.ErrEnvironment) {
		t.Fatalf("error = %v, want ErrEnvironment", err)
	}
	if got, want := err.Error(), "environment error: failed to determine shell, tried missing-shell"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestResolve_OptionShellOverridesEnv(t *testing.T) {
	stubLookPath(t, map[string]string{"zsh": "/bin/zsh"})
	t.Setenv("SHELL", "missing-shell")

	inv, err := Resolve("date", Options{Shell: "zsh"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if inv.Argv[0] != "/bin/zsh" {
		t.Errorf("Argv = %q, want /bin/zsh first", inv.Argv)
	}
}

func TestResolve_Direct(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	inv, err := Resolve("ls -la", Options{Direct: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Invocation{Argv: []string{"ls", "-la"}}
	if !reflect.DeepEqual(inv, want) {
		t.Errorf("Resolve() = %+v, want %+v", inv, want)
	}
}

func TestResolve_InvalidCommand(t *testing.T) {
	t.Setenv("SHELL", "")
	for _, cmd := range []string{"", `echo "unterminated`} {
		if _, err := Resolve(cmd, Options{}); !errors.Is(err, errkind.ErrInvalidArgument) {
			t.Errorf("Resolve(%q) error = %v, want ErrInvalidArgument", cmd, err)
		}
	}
}
