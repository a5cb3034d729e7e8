// Package genconfig prints or writes kiln's configuration file.
package genconfig

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kiln/pkg/config"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/filesystem"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/types"
)

// Options holds options for the config command
type Options struct {
	// Config is the effective configuration. When nil the commented
	// defaults are produced instead.
	Config *config.Config
	// Write stores the commented defaults at Path instead of returning the
	// effective configuration.
	Write bool
	// Path is where Write stores the file, the user config path when empty.
	Path string
	// FileSystem defaults to the OS filesystem.
	FileSystem types.FS
}

// Result is the outcome of the config command
type Result struct {
	Content      string
	FilesWritten []string
}

// GenConfig renders the effective configuration, or writes a commented
// defaults file for the user to edit.
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	if !opts.Write {
		if opts.Config == nil {
			return &Result{Content: commentOutConfigValues(config.DefaultsContent())}, nil
		}
		data, err := config.Marshal(opts.Config)
		if err != nil {
			return nil, err
		}
		logger.Debug().Msg("Outputting effective config")
		return &Result{Content: string(data)}, nil
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	path := opts.Path
	if path == "" {
		path = config.UserConfigPath()
	}

	content := commentOutConfigValues(config.DefaultsContent())
	result := &Result{Content: content}

	if _, err := fsys.Stat(path); err == nil {
		logger.Warn().Str("path", path).Msg("Config file already exists, skipping")
		return result, nil
	}

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", path)
	}

	logger.Info().Str("path", path).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, path)
	return result, nil
}

// commentOutConfigValues comments out every assignment. Comments, blank
// lines and section headers are kept as they are.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}
