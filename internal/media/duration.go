package media

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// FFProbe shells out to ffprobe for media durations. A missing binary or a
// file ffprobe cannot read just yields no duration.
type FFProbe struct {
	// Binary is the ffprobe executable, "ffprobe" when empty.
	Binary  string
	Timeout time.Duration
	Log     *zap.Logger
}

type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration returns the playable length of path in seconds.
func (f FFProbe) Duration(path string) (float64, bool) {
	bin := f.Binary
	if bin == "" {
		bin = "ffprobe"
	}
	timeout := f.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin,
		"-v", "quiet", "-print_format", "json", "-show_format", path).Output()
	if err != nil {
		f.logger().Debug("ffprobe failed", zap.String("path", path), zap.Error(err))
		return 0, false
	}
	var pf probeFormat
	if err := json.Unmarshal(out, &pf); err != nil {
		return 0, false
	}
	secs, err := strconv.ParseFloat(pf.Format.Duration, 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return secs, true
}

func (f FFProbe) logger() *zap.Logger {
	if f.Log != nil {
		return f.Log
	}
	return zap.NewNop()
}
