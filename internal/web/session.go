package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/san-kum/motionlab/internal/sim"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Command is a client request on the websocket. Op is one of start, pause,
// resume, toggle, reset or set; set also carries Name and Value.
type Command struct {
	Op    string  `json:"op"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// Message is everything the server sends: a frame per tick or an error reply.
type Message struct {
	Type    string     `json:"type"`
	Frame   *sim.Frame `json:"frame,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Session couples one websocket connection to one controller. The controller is
// only touched from run.
type Session struct {
	conn *websocket.Conn
	ctrl *sim.Controller
	fps  int
	cmds chan Command
	done chan struct{}
}

func (s *Server) stream(c *gin.Context) {
	name := c.Param("name")
	ctrl, err := s.build(name)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WEB] upgrade failed for %s: %v", name, err)
		return
	}
	log.Printf("[WEB] session opened: demo=%s remote=%s", name, c.Request.RemoteAddr)

	session := &Session{
		conn: conn,
		ctrl: ctrl,
		fps:  s.fps,
		cmds: make(chan Command, 16),
		done: make(chan struct{}),
	}
	go session.readPump()
	session.run()
	log.Printf("[WEB] session closed: demo=%s remote=%s", name, c.Request.RemoteAddr)
}

// readPump decodes commands until the connection fails.
func (s *Session) readPump() {
	defer close(s.done)

	s.conn.SetReadLimit(readLimit)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WEB] read error: %v", err)
			}
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			cmd = Command{Op: "invalid", Name: err.Error()}
		}
		select {
		case s.cmds <- cmd:
		case <-time.After(writeWait):
			log.Printf("[WEB] dropping command %q: session busy", cmd.Op)
		}
	}
}

// run owns the controller: it applies commands, ticks at the session frame rate
// and writes every frame.
func (s *Session) run() {
	frames := time.NewTicker(time.Second / time.Duration(s.fps))
	ping := time.NewTicker(pingPeriod)
	defer func() {
		frames.Stop()
		ping.Stop()
		s.conn.Close()
	}()

	if err := s.send(Message{Type: "frame", Frame: ptr(s.ctrl.Snapshot())}); err != nil {
		return
	}

	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.cmds:
			if err := applyCommand(s.ctrl, cmd); err != nil {
				if err := s.send(Message{Type: "error", Message: err.Error()}); err != nil {
					return
				}
			}
		case <-frames.C:
			if err := s.send(Message{Type: "frame", Frame: ptr(s.ctrl.Tick())}); err != nil {
				return
			}
		case <-ping.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WEB] ping error: %v", err)
				return
			}
		}
	}
}

func (s *Session) send(msg Message) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		log.Printf("[WEB] write error: %v", err)
		return err
	}
	return nil
}

func applyCommand(ctrl *sim.Controller, cmd Command) error {
	switch cmd.Op {
	case "start":
		ctrl.Start()
	case "pause":
		ctrl.Pause()
	case "resume":
		ctrl.Resume()
	case "toggle":
		ctrl.TogglePause()
	case "reset":
		ctrl.Reset()
	case "set":
		return ctrl.SetParameter(cmd.Name, cmd.Value)
	case "invalid":
		return fmt.Errorf("malformed command: %s", cmd.Name)
	default:
		return fmt.Errorf("unknown command %q", cmd.Op)
	}
	return nil
}

func ptr(f sim.Frame) *sim.Frame { return &f }
