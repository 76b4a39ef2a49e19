package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/vista/internal/domain"
)

// Launcher opens gallery media in an external player or the system viewer
type Launcher struct {
	command   string   // configured player command, empty for auto-detect
	args      []string // additional arguments for the player
	startFlag string   // offset flag prefix, e.g., "--start=" or "-ss "
	logger    *slog.Logger

	goos     string
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// offsetFlags maps known players to their start offset flag
var offsetFlags = map[string]string{
	"mpv":       "--start=",
	"vlc":       "--start-time=",
	"celluloid": "--mpv-start=",
	"haruna":    "--mpv-start=",
	"iina":      "--mpv-start=",
	"potplayer": "/seek=",
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"vlc", "mpv", "potplayer"},
}

// NewLauncher creates a Launcher, detecting the offset flag of known players
func NewLauncher(command string, args []string, startFlag string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	resolvedFlag := startFlag
	if resolvedFlag == "" && command != "" {
		if flag, ok := offsetFlags[playerName(command)]; ok {
			resolvedFlag = flag
			logger.Debug("auto-detected player offset flag", "player", playerName(command), "flag", flag)
		}
	}

	return &Launcher{
		command:   command,
		args:      args,
		startFlag: resolvedFlag,
		logger:    logger,
		goos:      runtime.GOOS,
		lookPath:  exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// playerName normalizes "/usr/bin/VLC.exe" to "vlc"
func playerName(command string) string {
	base := filepath.Base(command)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Open shows an item. Videos start at offset; images and web pages such as
// YouTube go to the system viewer.
func (l *Launcher) Open(item domain.GalleryItem, offset time.Duration) error {
	source := item.SourceOrPlaceholder()

	if item.Type == domain.ItemTypeImage {
		return l.openDefault(source)
	}
	if isWebPage(source) {
		return l.openDefault(withStartParam(source, offset))
	}
	return l.Launch(source, offset)
}

// Launch plays a media URL or path in the configured player, a detected
// player, or the system default, in that order.
func (l *Launcher) Launch(url string, offset time.Duration) error {
	if l.command != "" {
		args := append(append([]string{}, l.args...), offsetArgs(l.startFlag, offset)...)
		if offset > 0 && l.startFlag == "" {
			l.logger.Warn("cannot set start offset - unknown player, configure start_flag in config",
				"command", l.command, "offset", offset)
		}
		l.logger.Info("launching player", "command", l.command, "args", args, "url", url)
		return l.start(l.command, append(args, url)...)
	}

	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}
	for _, name := range candidates {
		path, err := l.lookPath(name)
		if err != nil {
			l.logger.Debug("player not available", "player", name, "error", err)
			continue
		}
		args := append(offsetArgs(offsetFlags[name], offset), url)
		if err := l.start(path, args...); err == nil {
			l.logger.Info("launched with detected player", "player", name, "path", path)
			return nil
		}
	}

	l.logger.Info("no candidate players found, using system default")
	return l.openDefault(url)
}

// openDefault opens the URL using the system default handler
func (l *Launcher) openDefault(url string) error {
	l.logger.Info("launching with system default", "os", l.goos, "url", url)

	var err error
	switch l.goos {
	case "darwin":
		err = l.start("open", url)
	case "windows":
		err = l.start("cmd", "/c", "start", "", url)
	default:
		err = l.start("xdg-open", url)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// offsetArgs renders the start flag. A flag ending in a space ("-ss ") takes
// the seconds as a separate argument.
func offsetArgs(flag string, offset time.Duration) []string {
	if offset <= 0 || flag == "" {
		return nil
	}
	secs := fmt.Sprintf("%.0f", offset.Seconds())
	if strings.HasSuffix(flag, " ") {
		return []string{strings.TrimSuffix(flag, " "), secs}
	}
	return []string{flag + secs}
}

func isWebPage(source string) bool {
	return strings.Contains(source, "youtube.com/") || strings.Contains(source, "youtu.be/")
}

// withStartParam adds YouTube's start parameter for a non-zero offset
func withStartParam(url string, offset time.Duration) string {
	if offset <= 0 {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sstart=%.0f", url, sep, offset.Seconds())
}
