// Package notify carries operator-visible notices out of the sync core.
// The core never decides how a notice is displayed; it only emits them.
package notify

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a single operator-visible message.
type Notice struct {
	ID    uuid.UUID
	Level Level
	Text  string
}

// Notifier receives operator-visible notices.
type Notifier interface {
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Errorf(format string, args ...any)
}

// LogNotifier writes notices to the process log.
type LogNotifier struct{}

func (LogNotifier) Infof(format string, args ...any) {
	log.Info().Str("notice_id", uuid.New().String()).Msg(fmt.Sprintf(format, args...))
}

func (LogNotifier) Successf(format string, args ...any) {
	log.Info().Str("notice_id", uuid.New().String()).Str("level", string(LevelSuccess)).Msg(fmt.Sprintf(format, args...))
}

func (LogNotifier) Errorf(format string, args ...any) {
	log.Error().Str("notice_id", uuid.New().String()).Msg(fmt.Sprintf(format, args...))
}

// Recorder collects notices in memory. Intended for tests.
type Recorder struct {
	Notices []Notice
}

func (r *Recorder) add(level Level, format string, args ...any) {
	r.Notices = append(r.Notices, Notice{
		ID:    uuid.New(),
		Level: level,
		Text:  fmt.Sprintf(format, args...),
	})
}

func (r *Recorder) Infof(format string, args ...any)    { r.add(LevelInfo, format, args...) }
func (r *Recorder) Successf(format string, args ...any) { r.add(LevelSuccess, format, args...) }
func (r *Recorder) Errorf(format string, args ...any)   { r.add(LevelError, format, args...) }

// ByLevel returns the recorded notices matching level.
func (r *Recorder) ByLevel(level Level) []Notice {
	var out []Notice
	for _, n := range r.Notices {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}
