package shellsetup

import (
	"path"
	"strings"
)

// shellAliases folds executable names onto the names snippetFor knows.
var shellAliases = map[string]string{
	"powershell": "pwsh",
	"csh":        "tcsh",
}

// detectShell guesses the user's shell from SHELL, then from the parent
// process. On Windows COMSPEC is consulted for cmd before settling on pwsh.
func detectShell(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := shellName(getenv("SHELL")); shell != "" {
		return shell
	}
	if parent != nil {
		if shell := shellName(parent()); shell != "" {
			return shell
		}
	}
	if !strings.EqualFold(goos, "windows") {
		return "bash"
	}
	if shell := shellName(getenv("COMSPEC")); shell == "cmd" || shell == "pwsh" {
		return shell
	}
	return "pwsh"
}

// shellName reduces a path or command line to a lower-case shell name, or ""
// when value names nothing. Login shells reported as "-zsh" lose the dash.
func shellName(value string) string {
	exe := strings.ReplaceAll(programOf(value), `\`, "/")
	if exe == "" {
		return ""
	}
	base := strings.ToLower(path.Base(exe))
	base = strings.TrimSuffix(base, ".exe")
	base = strings.TrimPrefix(base, "-")
	if base == "" || base == "." || base == "/" {
		return ""
	}
	if alias, ok := shellAliases[base]; ok {
		return alias
	}
	return base
}

// programOf returns the first word of a command line. A word may be wrapped
// in single or double quotes.
func programOf(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if q := value[0]; q == '"' || q == '\'' {
		rest := value[1:]
		if i := strings.IndexByte(rest, q); i >= 0 {
			return rest[:i]
		}
		return rest
	}
	if i := strings.IndexAny(value, " \t"); i >= 0 {
		return value[:i]
	}
	return value
}
