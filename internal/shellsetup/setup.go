// Package shellsetup prints the shell function that lets "quit and change"
// move the calling shell into the folder chosen in rhist.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"text/template"
)

// CommandName is the name of the generated shell function.
const CommandName = "rhist"

const resultFilePrefix = "rhist_result_"

// ResultFileName returns the file a process with the given pid leaves its
// chosen folder in. The wrapper functions read and remove it.
func ResultFileName(pid int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s%d.txt", resultFilePrefix, pid))
}

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the path baked into the snippet. Defaults to the
	// running binary.
	Executable string
}

type snippetData struct {
	Name   string
	Exe    string // quoted
	RawExe string
	Prefix string
}

// Write renders the integration snippet for shellOverride, or for the
// detected shell when shellOverride is empty.
func Write(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := shellName(shellOverride)
	if shell == "" {
		shell = detectShell(runtime.GOOS, os.Getenv, parent)
	}

	exe := cfg.Executable
	if exe == "" {
		if p, err := os.Executable(); err == nil {
			exe = p
		} else {
			exe = CommandName
		}
	}

	data := snippetData{
		Name:   CommandName,
		Exe:    strconv.Quote(exe),
		RawExe: exe,
		Prefix: resultFilePrefix,
	}
	if err := snippetFor(shell).Execute(w, data); err != nil {
		return fmt.Errorf("render %s snippet: %w", shell, err)
	}
	return nil
}

func snippetFor(shell string) *template.Template {
	switch shell {
	case "fish":
		return fishSnippet
	case "pwsh":
		return pwshSnippet
	case "tcsh":
		return cshSnippet
	case "cmd":
		return cmdSnippet
	default:
		return posixSnippet
	}
}

var posixSnippet = template.Must(template.New("posix").Parse(`{{.Name}}() {
    if [ "$#" -gt 0 ]; then
        command {{.Exe}} "$@"
        return $?
    fi

    command {{.Exe}} &
    rhist_pid=$!
    wait $rhist_pid

    result_file="${TMPDIR:-/tmp}/{{.Prefix}}$rhist_pid.txt"
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        rm -f "$result_file"
        if [ -d "$dest" ] 2>/dev/null; then
            cd "$dest"
        fi
    else
        rm -f "$result_file" 2>/dev/null
    fi
}
`))

var fishSnippet = template.Must(template.New("fish").Parse(`function {{.Name}}
    if test (count $argv) -gt 0
        command {{.Exe}} $argv
        return $status
    end

    command {{.Exe}} &
    set rhist_pid $last_pid
    wait $rhist_pid

    set tmp $TMPDIR
    test -n "$tmp"; or set tmp /tmp
    set result_file "$tmp/{{.Prefix}}$rhist_pid.txt"
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set dest (cat "$result_file" 2>/dev/null)
        if test -d "$dest" 2>/dev/null
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
end
`))

var pwshSnippet = template.Must(template.New("pwsh").Parse(`function {{.Name}} {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Args)
    if ($Args.Count -gt 0) {
        & {{.Exe}} @Args
        return
    }

    $process = Start-Process -FilePath {{.Exe}} -NoNewWindow -PassThru
    $process.WaitForExit()

    $resultFile = Join-Path $env:TEMP "{{.Prefix}}$($process.Id).txt"
    try {
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue | ForEach-Object { $_.Trim() }
            if ((Test-Path $dest -PathType Container) -and -not [string]::IsNullOrEmpty($dest)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`))

// csh and cmd cannot learn the child's pid, so they capture --print output.
var cshSnippet = template.Must(template.New("csh").Parse("alias {{.Name}} 'set d=`{{.RawExe}} --print` && test -n \"$d\" && cd \"$d\"'\n"))

var cmdSnippet = template.Must(template.New("cmd").Parse(`:: Save as {{.Name}}.cmd and run "call {{.Name}}.cmd" from cmd.exe sessions.
@echo off
if "%~1"=="" (
    for /f "delims=" %%d in ('{{.Exe}} --print') do (
        if not "%%d"=="" cd /d "%%d"
    )
    exit /b 0
) else (
    {{.Exe}} %*
    exit /b %errorlevel%
)
`))
