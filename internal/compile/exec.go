// Package compile provides a Compiler backed by an external command, so the
// CLI can drive a real component compiler out of process.
package compile

import (
	"bytes"
	"fmt"
	"os/exec"

	"inlay"
)

// ExecCompiler invokes an external compiler command. The resolved markup is
// written to stdin, the synthetic filename and target options are appended
// as arguments, and the generated module source is read from stdout.
type ExecCompiler struct {
	Command []string
}

// Error carries the external compiler's own output for a failed invocation.
type Error struct {
	Filename string
	Output   string
	Err      error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("compile %s: %s", e.Filename, e.Output)
	}
	return fmt.Sprintf("compile %s: %v", e.Filename, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (c *ExecCompiler) Compile(markup string, opts inlay.CompileOptions) (inlay.CompiledOutput, error) {
	if len(c.Command) == 0 {
		return inlay.CompiledOutput{}, fmt.Errorf("no compiler command configured")
	}

	args := append(append([]string(nil), c.Command[1:]...),
		"--generate", opts.Generate,
		"--css", opts.CSS,
		"--filename", opts.Filename,
	)
	cmd := exec.Command(c.Command[0], args...)
	cmd.Stdin = bytes.NewReader([]byte(markup))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return inlay.CompiledOutput{}, &Error{
			Filename: opts.Filename,
			Output:   stderr.String(),
			Err:      err,
		}
	}
	return inlay.CompiledOutput{Code: stdout.String()}, nil
}
