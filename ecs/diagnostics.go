package ecs

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// NoticeKind classifies a diagnostic notice.
type NoticeKind uint8

const (
	NoticeTypeRegistered NoticeKind = iota
	NoticeTypeUnregistered
	NoticeEntityCreated
	NoticeEntityDestroyed
	NoticeComponentAdded
	NoticeComponentRemoved
	NoticeWorldCleared

	// Warnings: the call was a no-op or was deferred, but not an error.
	NoticeDuplicateAdd
	NoticeRedundantRemove
	NoticeDestroyInvalid
	NoticeCopyInvalid
	NoticeDeferredDestroy
)

var noticeNames = [...]string{
	NoticeTypeRegistered:   "type registered",
	NoticeTypeUnregistered: "type unregistered",
	NoticeEntityCreated:    "entity created",
	NoticeEntityDestroyed:  "entity destroyed",
	NoticeComponentAdded:   "component added",
	NoticeComponentRemoved: "component removed",
	NoticeWorldCleared:     "world cleared",
	NoticeDuplicateAdd:     "component already present",
	NoticeRedundantRemove:  "component already absent",
	NoticeDestroyInvalid:   "entity already non-existent",
	NoticeCopyInvalid:      "copying an invalid entity",
	NoticeDeferredDestroy:  "destroy deferred until after update",
}

func (k NoticeKind) String() string {
	if int(k) < len(noticeNames) {
		return noticeNames[k]
	}
	return "unknown notice"
}

// Warning reports whether the notice describes a tolerated misuse rather than
// a normal lifecycle event.
func (k NoticeKind) Warning() bool {
	return k >= NoticeDuplicateAdd
}

// Notice describes something the World did or declined to do.
type Notice struct {
	Kind   NoticeKind
	World  uuid.UUID
	Entity EntityID
	Type   string
}

// Sink receives diagnostic notices.
type Sink interface {
	Notice(n Notice)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(n Notice)

func (f SinkFunc) Notice(n Notice) {
	f(n)
}

type sinkHolder struct {
	sink Sink
}

var diagnostics atomic.Pointer[sinkHolder]

// EnableDiagnostics installs s as the process-wide diagnostic sink.
// Passing nil is the same as DisableDiagnostics.
func EnableDiagnostics(s Sink) {
	if s == nil {
		DisableDiagnostics()
		return
	}
	diagnostics.Store(&sinkHolder{sink: s})
}

// DisableDiagnostics removes the diagnostic sink. Notices are then dropped.
func DisableDiagnostics() {
	diagnostics.Store(nil)
}

func notify(n Notice) {
	if h := diagnostics.Load(); h != nil {
		h.sink.Notice(n)
	}
}

type logSink struct {
	logger *slog.Logger
}

// NewLogSink returns a Sink writing warnings at Warn level and everything else
// at Debug level.
func NewLogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return logSink{logger: logger.With("component", "ecs")}
}

func (s logSink) Notice(n Notice) {
	level := slog.LevelDebug
	if n.Kind.Warning() {
		level = slog.LevelWarn
	}

	args := []any{"world", n.World.String(), "entity", n.Entity}
	if n.Type != "" {
		args = append(args, "type", n.Type)
	}
	s.logger.Log(context.Background(), level, n.Kind.String(), args...)
}
