package exec

import (
	"context"
	"errors"
	"strings"
	"time"
)

// SandboxLimits caps one run of candidate code.
type SandboxLimits struct {
	WallTime time.Duration
	MemoryB  int64
	NanoCPUs int64
}

// DefaultLimits is what the "Run" affordance uses: enough to exercise a
// snippet, nowhere near enough to mine bitcoin.
func DefaultLimits() SandboxLimits {
	return SandboxLimits{
		WallTime: 10 * time.Second,
		MemoryB:  128 << 20,
		NanoCPUs: 500_000_000,
	}
}

// RunOutput is the captured result of one execution.
type RunOutput struct {
	Stdout   string
	Stderr   string
	Exit     int
	TimedOut bool
}

// CodeRunner is what the run handler depends on.
type CodeRunner interface {
	RunOnce(ctx context.Context, language, code string, limits SandboxLimits) (RunOutput, error)
}

type langSpec struct {
	image    string
	fileName string
	runCmd   []string
}

var ErrUnsupportedLanguage = errors.New("unsupported language")

func specFor(language string) (langSpec, error) {
	switch strings.ToLower(language) {
	case "javascript":
		return langSpec{
			image:    "node:20-slim",
			fileName: "main.js",
			runCmd:   []string{"node", "main.js"},
		}, nil
	case "python":
		return langSpec{
			image:    "python:3.11-slim",
			fileName: "main.py",
			runCmd:   []string{"python3", "main.py"},
		}, nil
	default:
		return langSpec{}, ErrUnsupportedLanguage
	}
}

// Runner executes candidate code in one-shot sandboxed containers.
type Runner struct{}

func NewRunner() *Runner { return &Runner{} }

func (r *Runner) RunOnce(ctx context.Context, language, code string, limits SandboxLimits) (RunOutput, error) {
	spec, err := specFor(language)
	if err != nil {
		return RunOutput{}, err
	}

	sbx, err := NewSandbox(spec.image, limits)
	if err != nil {
		return RunOutput{}, err
	}

	var out, errS strings.Builder
	exit, timedOut, runErr := sbx.Run(ctx, spec.fileName, []byte(code), spec.runCmd,
		func(p []byte) { out.Write(p) },
		func(p []byte) { errS.Write(p) },
	)
	if runErr != nil && !timedOut {
		return RunOutput{}, runErr
	}

	return RunOutput{
		Stdout:   out.String(),
		Stderr:   errS.String(),
		Exit:     exit,
		TimedOut: timedOut,
	}, nil
}
