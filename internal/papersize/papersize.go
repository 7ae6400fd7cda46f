// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papersize resolves the target paper size for the document class.
//
// Resolution tries, in order: the host paperconf utility, the PAPERSIZE
// environment variable, and finally the literal default "a4". The first
// non-empty answer wins, so resolution never fails.
package papersize

import (
	"os"
	"os/exec"
	"strings"
)

const (
	binPaperconf = "paperconf"
	envPaperSize = "PAPERSIZE"
	defaultSize  = "a4"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunOutput(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

var defaultExec = &osExecutor{}

// Resolve returns the paper size token (e.g. "a4", "letter"). Errors from
// the paperconf query are treated as "no output" and resolution moves on to
// the next tier silently.
func Resolve() string {
	return resolve(defaultExec, os.Getenv)
}

func resolve(exec executor, getenv func(string) string) string {
	if size := queryPaperconf(exec); size != "" {
		return size
	}
	if size := strings.TrimSpace(getenv(envPaperSize)); size != "" {
		return size
	}
	return defaultSize
}

// queryPaperconf asks the host for its configured paper size. A missing
// binary, non-zero exit, or empty output all yield "".
func queryPaperconf(exec executor) string {
	if _, err := exec.LookPath(binPaperconf); err != nil {
		return ""
	}
	out, err := exec.RunOutput(binPaperconf)
	if err != nil {
		return ""
	}
	return strings.TrimRight(out, " \t\r\n")
}

// ClassOption converts a size token into its document-class option form:
// "a4" becomes "a4paper".
func ClassOption(size string) string {
	return size + "paper"
}
