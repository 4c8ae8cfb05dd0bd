package session

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts the page session websocket.
func RegisterRoutes(r chi.Router, deps Deps) {
	r.Get("/ws/session", handleWebSocket(deps))
}

func handleWebSocket(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		height, _ := strconv.Atoi(r.URL.Query().Get("height"))

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("session: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		sess := New(deps, height)
		sess.deps.Recorder.SessionStarted()
		defer sess.deps.Recorder.SessionEnded()
		log.Printf("session: %s connected", sess.ID())

		ctx := r.Context()
		if !send(conn, sess.State(ctx)) {
			return
		}

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("session: %s websocket read: %v", sess.ID(), err)
				}
				return
			}

			var in Inbound
			if err := json.Unmarshal(msg, &in); err != nil {
				if !send(conn, Frame{Type: "error", Session: sess.ID(), Message: "invalid message format"}) {
					return
				}
				continue
			}
			if !send(conn, sess.Handle(ctx, in)) {
				return
			}
		}
	}
}

func send(conn *websocket.Conn, f Frame) bool {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("session: set write deadline: %v", err)
		return false
	}
	if err := conn.WriteJSON(f); err != nil {
		log.Printf("session: websocket write: %v", err)
		return false
	}
	return true
}
