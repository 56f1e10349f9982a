package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// commandFinder turns command lines into argv slices whose first element is
// a resolved executable path.
type commandFinder struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

func systemFinder() commandFinder {
	return commandFinder{goos: runtime.GOOS, getenv: os.Getenv, lookPath: exec.LookPath}
}

func (f commandFinder) windows() bool {
	return strings.EqualFold(f.goos, "windows")
}

// resolve splits line and looks up its executable.
func (f commandFinder) resolve(line string) ([]string, bool) {
	args := splitCommandLine(line)
	if len(args) == 0 {
		return nil, false
	}
	path, err := f.lookPath(args[0])
	if err != nil || path == "" {
		return nil, false
	}
	args[0] = path
	return args, true
}

// first returns the first candidate whose executable exists.
func (f commandFinder) first(candidates [][]string) ([]string, bool) {
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		if path, err := f.lookPath(expandUserPath(c[0])); err == nil && path != "" {
			return append([]string{path}, c[1:]...), true
		}
	}
	return nil, false
}

// clipboard picks the command that receives yanked paths on stdin. A
// configured command wins when it can be found.
func (f commandFinder) clipboard(configured string) ([]string, bool) {
	if cmd, ok := f.resolve(configured); ok {
		return cmd, true
	}
	var candidates [][]string
	if f.windows() {
		candidates = append(candidates, []string{"clip.exe"}, []string{"clip"})
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			candidates = append(candidates, []string{ps, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"})
		}
	}
	for _, name := range []string{"pbcopy", "xclip", "wl-copy", "xsel"} {
		candidates = append(candidates, []string{name})
	}
	return f.first(candidates)
}

// editor picks the command assets are opened with: the configured one, then
// VISUAL, then EDITOR, then a platform default.
func (f commandFinder) editor(configured string) ([]string, bool) {
	for _, line := range []string{configured, f.getenv("VISUAL"), f.getenv("EDITOR")} {
		if cmd, ok := f.resolve(line); ok {
			return cmd, true
		}
	}
	if f.windows() {
		return f.first([][]string{{"code", "--wait"}, {"notepad++.exe"}, {"notepad.exe"}})
	}
	return f.first([][]string{{"vim"}, {"nano"}})
}

// splitCommandLine splits cmd on unquoted whitespace. Single and double quotes
// group words and are removed. A leading ~ in the program is expanded.
func splitCommandLine(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	var quote rune

	for _, r := range cmd {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

// expandUserPath expands "~" and "~/..." to the current user's home. Other
// users' homes are left alone.
func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
