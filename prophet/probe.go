package prophet

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/goccy/go-json"
)

// DefaultProbeTimeout bounds a probe when the config carries no timeout
const DefaultProbeTimeout = 30 * time.Second

// Diagnostics reports whether the Prophet toolchain can serve forecasts
type Diagnostics struct {
	PythonFound        bool   `json:"python_found" yaml:"python_found"`
	Python             string `json:"python,omitempty" yaml:"python,omitempty"`
	ProphetImported    bool   `json:"prophet_imported" yaml:"prophet_imported"`
	ProphetFunctional  bool   `json:"prophet_functional" yaml:"prophet_functional"`
	ProphetError       string `json:"prophet_error,omitempty" yaml:"prophet_error,omitempty"`
	ProphetImportError string `json:"prophet_import_error,omitempty" yaml:"prophet_import_error,omitempty"`
	CmdstanpyAvailable bool   `json:"cmdstanpy_available" yaml:"cmdstanpy_available"`
	CmdstanInstalled   bool   `json:"cmdstan_installed" yaml:"cmdstan_installed"`
	CmdstanPath        string `json:"cmdstan_path,omitempty" yaml:"cmdstan_path,omitempty"`
	Error              string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Available reports whether a forecast is expected to succeed
func (d Diagnostics) Available() bool {
	return d.PythonFound && d.ProphetFunctional
}

// Probe inspects the interpreter named by the config. It only reads the environment, holds no
// state between calls and never fails: problems are reported in the diagnostics.
func Probe(ctx context.Context, cfg *Config) Diagnostics {
	return probe(ctx, cfg, ExecRunner{}, exec.LookPath)
}

func probe(ctx context.Context, cfg *Config, runner Runner, lookPath func(string) (string, error)) Diagnostics {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	var diag Diagnostics
	path, err := lookPath(cfg.Python)
	if err != nil {
		diag.Error = fmt.Sprintf("python interpreter %q not found: %v", cfg.Python, err)
		return diag
	}
	diag.PythonFound = true
	diag.Python = path

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := runner.Run(ctx, path, []string{"-c", probeScript}, nil)
	if err != nil {
		diag.Error = fmt.Sprintf("unable to run probe: %v", err)
		return diag
	}
	if err := json.Unmarshal(out, &diag); err != nil {
		diag.Error = fmt.Sprintf("unable to decode probe output: %v", err)
		return diag
	}
	// the probe output cannot clear what was observed here
	diag.PythonFound = true
	diag.Python = path
	return diag
}
