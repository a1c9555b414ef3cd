package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for DecodeConfig
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cjeanneret/cardcam/internal/debug"
)

// OutputPlaceholder is replaced in command arguments by the target file path.
const OutputPlaceholder = "{output}"

// Command delegates capture to an external tool such as libcamera-still,
// fswebcam or gphoto2. The tool is expected to write one image to the path
// substituted for {output}.
type Command struct {
	name    string
	argv    []string
	dir     string
	ext     string
	timeout time.Duration
}

// CommandConfig describes the external capture tool.
type CommandConfig struct {
	Name      string
	Argv      []string      // e.g. ["libcamera-still", "-n", "-o", "{output}"]
	OutputDir string        // where captures are written; defaults to os.TempDir()
	Extension string        // file extension including dot; defaults to ".jpg"
	Timeout   time.Duration // 0 = rely on the caller's context
}

// NewCommand validates the argv and returns a command camera.
func NewCommand(cfg CommandConfig) (*Command, error) {
	if len(cfg.Argv) == 0 {
		return nil, errors.New("capture command is empty")
	}
	found := false
	for _, a := range cfg.Argv[1:] {
		if strings.Contains(a, OutputPlaceholder) {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("capture command must reference %s", OutputPlaceholder)
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = os.TempDir()
	}
	ext := cfg.Extension
	if ext == "" {
		ext = ".jpg"
	}
	name := cfg.Name
	if name == "" {
		name = filepath.Base(cfg.Argv[0])
	}
	return &Command{name: name, argv: cfg.Argv, dir: dir, ext: ext, timeout: cfg.Timeout}, nil
}

func (c *Command) Name() string { return c.name }

func (c *Command) Capture(ctx context.Context) (Photo, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return Photo{}, fmt.Errorf("create output dir: %w", err)
	}

	p := newPhoto(c.name)
	path := filepath.Join(c.dir, "capture-"+p.ID+c.ext)
	args := make([]string, len(c.argv)-1)
	for i, a := range c.argv[1:] {
		args[i] = strings.ReplaceAll(a, OutputPlaceholder, path)
	}

	debug.Trace("Camera %s: exec %s %s", c.name, c.argv[0], strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(path)
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return Photo{}, fmt.Errorf("run %s: %w: %s", c.argv[0], err, msg)
		}
		return Photo{}, fmt.Errorf("run %s: %w", c.argv[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Photo{}, fmt.Errorf("read capture: %w", err)
	}
	if len(data) == 0 {
		_ = os.Remove(path)
		return Photo{}, ErrNoImage
	}

	p.URI = "file://" + path
	p.Data = data
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		p.Width, p.Height = cfg.Width, cfg.Height
		p.MIMEType = "image/" + format
	} else {
		debug.Verbose("Camera %s: could not decode image header: %v", c.name, err)
		p.MIMEType = "application/octet-stream"
	}
	return p, nil
}
