package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// versionConfig holds parsed version command configuration
type versionConfig struct {
	format string
}

// versionInfo is reported by the version command
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

// versionsYAML represents the versions.yaml file structure
type versionsYAML struct {
	Project struct {
		Version string `yaml:"version"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
	} `yaml:"git"`
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseVersionFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	info := getVersionInfo([]string{".", "..", filepath.Join("..", "..")})

	if cfg.format == OutputFormatJSON {
		if err := writeJSON(stdout, info); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}
	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline, info.Version, info.Commit, info.GoVersion)
	return ExitCodeSuccess
}

func parseVersionFlags(args []string) (*versionConfig, error) {
	fs := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &versionConfig{}
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}
	return cfg, nil
}

// getVersionInfo reads the first versions.yaml found in dirs
func getVersionInfo(dirs []string) *versionInfo {
	info := &versionInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		GoVersion: runtime.Version(),
	}

	for _, dir := range dirs {
		data, err := os.ReadFile(filepath.Join(dir, VersionsFileName))
		if err != nil {
			continue
		}
		var vy versionsYAML
		if err := yaml.Unmarshal(data, &vy); err != nil {
			continue
		}
		if vy.Project.Version != "" {
			info.Version = vy.Project.Version
		}
		if vy.Git.Commit != "" {
			info.Commit = vy.Git.Commit
		}
		break
	}
	return info
}
