package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

//nolint:gochecknoglobals
var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	levelStyle  = map[slog.Level]lipgloss.Style{
		slog.LevelError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		slog.LevelWarn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		slog.LevelInfo:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
)

func styleLevel(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return levelStyle[slog.LevelError]
	case level >= slog.LevelWarn:
		return levelStyle[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return levelStyle[slog.LevelInfo]
	default:
		return levelStyle[slog.LevelDebug]
	}
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	level := h.replace(slog.Any(slog.LevelKey, r.Level))
	if level.Key != "" {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(styleLevel(r.Level).Render(level.Value.String()))
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(
				slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}

		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := strings.Join(h.groups, ".")
	qualified := make([]slog.Attr, len(attrs))

	for i, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}

		qualified[i] = a
	}

	return &prettyTextHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		attrs:  append(h.attrs[:len(h.attrs):len(h.attrs)], qualified...),
		groups: h.groups,
	}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &prettyTextHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		attrs:  h.attrs,
		groups: append(h.groups[:len(h.groups):len(h.groups)], name),
	}
}

func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Key == "" {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			member.Key = a.Key + "." + member.Key
			h.writeAttr(buf, member)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(keyStyle.Render(a.Key + "="))
	h.writeValue(buf, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		buf.WriteString(numberStyle.Render(v.String()))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(trueStyle.Render("true"))
		} else {
			buf.WriteString(falseStyle.Render("false"))
		}

	case slog.KindDuration, slog.KindTime:
		buf.WriteString(timeStyle.Render(v.String()))

	default:
		buf.WriteString(stringStyle.Render(v.String()))
	}
}

// prettyJSONHandler indents the output of a standard JSON handler.
type prettyJSONHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	buf   *bytes.Buffer
	inner slog.Handler
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	buf := new(bytes.Buffer)

	return &prettyJSONHandler{
		mu:    &sync.Mutex{},
		w:     w,
		buf:   buf,
		inner: slog.NewJSONHandler(buf, opts),
	}
}

func (h *prettyJSONHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *prettyJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()

	err := h.inner.Handle(ctx, r)
	if err != nil {
		return err
	}

	var out bytes.Buffer

	err = json.Indent(&out, bytes.TrimSpace(h.buf.Bytes()), "", "  ")
	if err != nil {
		return fmt.Errorf("indent log record: %w", err)
	}

	out.WriteByte('\n')

	_, err = h.w.Write(out.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{
		mu:    h.mu,
		w:     h.w,
		buf:   h.buf,
		inner: h.inner.WithAttrs(attrs),
	}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{
		mu:    h.mu,
		w:     h.w,
		buf:   h.buf,
		inner: h.inner.WithGroup(name),
	}
}
