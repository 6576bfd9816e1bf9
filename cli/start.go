package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// targets maps a command argument to the servers it covers.
func targets(arg string) []string {
	if arg == "all" {
		return []string{"app", "api"}
	}
	return []string{arg}
}

func pidFile(name string) string {
	return fmt.Sprintf("devfolio-%s.pid", name)
}

func logFile(name string) string {
	return fmt.Sprintf("devfolio-%s.log", name)
}

var startCmd = &cobra.Command{
	Use:       "start {app|api|all}",
	Short:     "Start servers in the background",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"app", "api", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range targets(args[0]) {
			if err := startServer(name); err != nil {
				return err
			}
		}
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:       "stop {app|api|all}",
	Short:     "Stop background servers",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"app", "api", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range targets(args[0]) {
			if err := stopServer(name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
}

func startServer(name string) error {
	if pid, ok := readPid(name); ok && processAlive(pid) {
		return fmt.Errorf("%s already running (pid %d)", name, pid)
	}

	exe, err := os.Executable()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(logFile(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	child := exec.Command(exe, "serve", name)
	child.Stdout = out
	child.Stderr = out
	child.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := child.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}

	pid := child.Process.Pid
	if err := os.WriteFile(pidFile(name), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return err
	}
	// The child outlives this process; Release just drops our handle.
	child.Process.Release()

	fmt.Printf("%s started (pid %d)\n", name, pid)
	return nil
}

func stopServer(name string) error {
	pid, ok := readPid(name)
	if !ok {
		fmt.Printf("%s not running\n", name)
		return nil
	}

	if processAlive(pid) {
		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			return fmt.Errorf("stopping %s (pid %d): %w", name, pid, err)
		}
		fmt.Printf("%s stopped (pid %d)\n", name, pid)
	} else {
		fmt.Printf("%s not running (stale pid %d)\n", name, pid)
	}

	return os.Remove(pidFile(name))
}

func readPid(name string) (int, bool) {
	data, err := os.ReadFile(pidFile(name))
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func processAlive(pid int) bool {
	// Signal 0 probes the process without touching it.
	return syscall.Kill(pid, 0) == nil
}
