package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension attempts to find and execute an external pcs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The global flags are passed to the extension as environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	env := map[string]string{
		EnvLedgerFile:      *ledgerFile,
		EnvDefaultCurrency: *defaultCurrency,
		EnvVerbose:         strconv.FormatBool(*Verbose),
	}
	return runExtension(subcommand, args, env, os.Stdin, os.Stdout, os.Stderr)
}

func runExtension(subcommand string, args []string, env map[string]string, stdin io.Reader, stdout, stderr io.Writer) (bool, int) {
	externalCmdName := "pcs-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	cmd.Env = os.Environ()
	for k, v := range env {
		if v != "" {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
