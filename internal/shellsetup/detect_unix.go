//go:build !windows

package shellsetup

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// DetectParentShellName names the process that started rhist, read from
// /proc when available and from ps otherwise.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 1 {
		return ""
	}

	if data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", ppid)); err == nil {
		return strings.TrimPrefix(strings.TrimSpace(string(data)), "-")
	}

	out, err := exec.Command("ps", "-o", "comm=", "-p", strconv.Itoa(ppid)).Output()
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(string(out)), "-")
}
