// Package api builds the HTTP surface: the WebSocket endpoint and
// read-only room snapshots.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"qerplunk/garin-draw/types"
)

// RoomLister serves room snapshots. Implemented by the coordinator.
type RoomLister interface {
	Rooms() []types.RoomInfo
	Room(roomID string) (types.RoomInfo, bool)
}

// NewRouter mounts ws at /ws and the room snapshots under /rooms.
func NewRouter(ws http.HandlerFunc, rooms RoomLister) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ws", ws)
	router.HandleFunc("/rooms", listRooms(rooms)).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{id}", getRoom(rooms)).Methods(http.MethodGet)

	return router
}

// Wrap adds CORS, panic recovery and access logging around the router.
// An empty allowedOrigins allows any origin.
func Wrap(router http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	return handlers.LoggingHandler(os.Stdout, handlers.RecoveryHandler()(c.Handler(router)))
}

func listRooms(rooms RoomLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rooms.Rooms())
	}
}

func getRoom(rooms RoomLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, ok := rooms.Room(mux.Vars(r)["id"])
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"error":   true,
				"message": "room not found",
			})
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}
