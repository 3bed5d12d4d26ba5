package dragserver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dragkit/pkg/drag"
	"github.com/vango-dev/dragkit/pkg/protocol"
	"github.com/vango-dev/dragkit/pkg/vdom"
)

// Session is one websocket connection with its document and controller.
// All of its state is owned by the read loop.
type Session struct {
	id      string
	conn    *websocket.Conn
	doc     *vdom.Document
	ctrl    *drag.Controller
	targets *drag.MapRegistry
	rec     *recorder
	cfg     Config
	logger  *slog.Logger
}

func newSession(conn *websocket.Conn, cfg Config) *Session {
	id := uuid.NewString()
	s := &Session{
		id:      id,
		conn:    conn,
		doc:     vdom.NewDocument(nil),
		targets: drag.NewMapRegistry(),
		rec:     &recorder{},
		cfg:     cfg,
		logger:  cfg.Logger.With("session", id),
	}

	opts := []drag.Option{drag.WithLogger(s.logger)}
	opts = append(opts, cfg.DragOptions...)
	opts = append(opts,
		drag.WithRegistry(s.targets),
		drag.WithVisual(s.rec),
		drag.WithScroller(s.rec),
	)
	s.ctrl = drag.New(s.doc, opts...)
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Document returns the session document.
func (s *Session) Document() *vdom.Document { return s.doc }

// Controller returns the drag controller bound to the document.
func (s *Session) Controller() *drag.Controller { return s.ctrl }

// Targets returns the drop target registry of the session.
func (s *Session) Targets() *drag.MapRegistry { return s.targets }

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// SetStyle sets an inline style on n and sends it to the client with the
// reply to the current event. Drop targets use it for hover feedback.
func (s *Session) SetStyle(n *vdom.VNode, property, value string) {
	n.SetStyle(property, value)
	s.rec.add(protocol.NewSetStyleCommand(n.HID, property, value))
}

// mount builds the document and starts recording mutations. Nodes added by
// the build function are part of the initial page and are not replayed.
func (s *Session) mount(build BuildFunc) {
	if build != nil {
		build(s)
	}
	s.rec.drain()
	s.doc.SetObserver(s.rec)
}

// readLoop reads frames until the connection fails or is closed.
func (s *Session) readLoop() {
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		msgType, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.cfg.Metrics.error(errorRead)
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			s.reject(errorFrame, protocol.ErrInvalidFrame, "expected a binary message")
			continue
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.reject(errorFrame, protocol.ErrInvalidFrame, err.Error())
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
			s.reject(errorFrame, protocol.ErrInvalidFrame, "unexpected frame type "+frame.Type.String())
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Warn("event decode error", "error", err)
		s.reject(errorEvent, protocol.ErrInvalidEvent, err.Error())
		return
	}
	s.handleEvent(ev)
}

// handleEvent applies ev to the document. Pointer and drag events are
// dispatched and answered with the commands they produced.
func (s *Session) handleEvent(ev *protocol.Event) {
	_, span := s.cfg.Tracer.Start(context.Background(), "dragserver."+ev.Type.String(),
		trace.WithAttributes(
			attribute.String("dragkit.session_id", s.id),
			attribute.String("dragkit.hid", ev.HID),
			attribute.Int64("dragkit.seq", int64(ev.Seq)),
		))
	defer span.End()

	node := s.doc.FindByHID(ev.HID)
	if node == nil {
		span.SetStatus(codes.Error, "element not found")
		s.reject(errorTarget, protocol.ErrHandlerNotFound, "no element "+ev.HID)
		return
	}
	s.cfg.Metrics.event(ev.Type.String())

	if ev.Type == protocol.EventLayout {
		box := ev.Payload.(*protocol.LayoutEventData)
		node.Layout = vdom.Rect{
			X:      float64(box.X),
			Y:      float64(box.Y),
			Width:  float64(box.Width),
			Height: float64(box.Height),
		}
		return
	}

	p := ev.Payload.(*protocol.PointerEventData)
	vev := &vdom.Event{
		Type:    ev.Type.DOMName(),
		Target:  node,
		ClientX: float64(p.ClientX),
		ClientY: float64(p.ClientY),
	}
	if ev.Type == protocol.EventDragStart {
		vev.DataTransfer = s.rec
	}

	if err := s.dispatch(vev); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.rec.drain()
		s.reject(errorPanic, protocol.ErrHandlerPanic, err.Error())
		return
	}
	if vev.DefaultPrevented() {
		s.rec.add(protocol.NewPreventDefaultCommand(node.HID))
	}
	span.SetAttributes(
		attribute.Bool("dragkit.prevented", vev.DefaultPrevented()),
		attribute.Int("dragkit.commands", len(s.rec.pending)),
	)
	s.flush(ev.Seq)
}

func (s *Session) dispatch(ev *vdom.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"event", ev.Type,
				"hid", ev.Target.HID,
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	vdom.Dispatch(ev)
	return nil
}

// flush sends the queued commands as one or more command frames. Only the
// last frame carries FlagFinal. A command too large for any frame is
// reported with an error frame ahead of the final frame.
func (s *Session) flush(seq uint64) {
	batches, dropped := splitCommands(seq, s.rec.drain())
	for _, cmd := range dropped {
		s.logger.Error("command exceeds frame limit", "seq", seq, "op", cmd.Op, "hid", cmd.HID)
		s.reject(errorOversize, protocol.ErrCommandTooLarge,
			fmt.Sprintf("%s for %s exceeds the frame limit", cmd.Op, cmd.HID))
	}
	for i, payload := range batches {
		frame := protocol.NewFrame(protocol.FrameCommands, payload)
		if i == len(batches)-1 {
			frame.Flags = protocol.FlagFinal
		}
		if err := s.write(frame); err != nil {
			s.logger.Error("write error", "error", err)
			s.cfg.Metrics.error(errorWrite)
			return
		}
	}
}

// splitCommands encodes cmds into payloads that fit a frame. A batch that
// is too large is halved until it fits. Single commands that cannot fit are
// returned in dropped. At least one payload is always returned.
func splitCommands(seq uint64, cmds []protocol.Command) (batches [][]byte, dropped []protocol.Command) {
	var split func(cmds []protocol.Command)
	split = func(cmds []protocol.Command) {
		payload := protocol.EncodeCommands(&protocol.CommandsFrame{Seq: seq, Commands: cmds})
		switch {
		case len(payload) <= protocol.MaxPayloadSize:
			batches = append(batches, payload)
		case len(cmds) == 1:
			dropped = append(dropped, cmds[0])
		default:
			mid := len(cmds) / 2
			split(cmds[:mid])
			split(cmds[mid:])
		}
	}
	split(cmds)
	if len(batches) == 0 {
		batches = [][]byte{protocol.EncodeCommands(&protocol.CommandsFrame{Seq: seq})}
	}
	return batches, dropped
}

func (s *Session) reject(kind string, code protocol.ErrorCode, msg string) {
	s.cfg.Metrics.error(kind)
	frame := protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(protocol.NewError(code, msg)))
	if err := s.write(frame); err != nil {
		s.logger.Error("error frame write failed", "error", err)
		s.cfg.Metrics.error(errorWrite)
	}
}

func (s *Session) write(frame *protocol.Frame) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	w, err := s.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := protocol.WriteFrame(w, frame); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *Session) close() {
	s.conn.Close()
}
