package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kyisaiah47/springforge/internal/realtime"
	"github.com/kyisaiah47/springforge/internal/types"
	"github.com/kyisaiah47/springforge/internal/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	frameBuffer    = 64
)

type wsFrame struct {
	Type    string       `json:"type"`
	Table   string       `json:"table,omitempty"`
	Event   string       `json:"event,omitempty"`
	New     realtime.Row `json:"new,omitempty"`
	Message string       `json:"message,omitempty"`
	OrgID   string       `json:"org_id,omitempty"`
}

// wsDomains maps topic domains to the tables whose changes they carry.
var wsDomains = map[string]string{
	"standups":    types.TableStandups,
	"pr_insights": types.TablePRInsights,
	"arcade_runs": types.TableArcadeRuns,
	"members":     types.TableMembers,
}

// WebSocket streams org-scoped change-feed events to a connected client.
// Each connection gets its own adapter over the shared hub, so one client's
// topics never collide with another's. The connection's subscriptions are
// released synchronously before the socket closes, so no event is dispatched
// to a stale connection.
func WebSocket(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		adapter := realtime.NewAdapter(hub)
		orgID := c.Param("org_id")

		if orgID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Organization ID is required"})
			return
		}

		currentMember, err := utils.GetCurrentMember(c)

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if currentMember.OrgID != orgID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organization"})
			return
		}

		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				for _, allowed := range types.AllowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		// Set up connection parameters
		conn.SetReadLimit(maxMessageSize)
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set initial read deadline: %v", err)
			conn.Close()
			return
		}
		conn.SetPongHandler(func(string) error {
			if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				log.Printf("Failed to set read deadline in pong handler: %v", err)
			}
			return nil
		})

		frames := make(chan wsFrame, frameBuffer)
		done := make(chan struct{})

		subscriptions := make([]*realtime.Subscription, 0, len(wsDomains))

		for domain, table := range wsDomains {
			specs := []realtime.SubscriptionSpec{
				{
					Table:    table,
					Event:    realtime.EventInsert,
					Filter:   realtime.OrgFilter(orgID),
					Callback: enqueueFrame(frames, table, realtime.EventInsert),
				},
				{
					Table:    table,
					Event:    realtime.EventUpdate,
					Filter:   realtime.OrgFilter(orgID),
					Callback: enqueueFrame(frames, table, realtime.EventUpdate),
				},
			}

			sub, err := adapter.Subscribe(realtime.TopicKey(domain, orgID), specs, true)
			if err != nil {
				log.Printf("Failed to subscribe %s for org %s: %v", domain, orgID, err)
				continue
			}
			subscriptions = append(subscriptions, sub)
		}

		// Clean up when connection closes
		defer func() {
			// Release subscriptions before the socket so no callback fires
			// against a closed connection.
			for _, sub := range subscriptions {
				sub.Close()
			}

			close(done)
			conn.Close()

			log.Printf("WebSocket connection closed for org %s", orgID)
		}()

		// Send welcome message
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for welcome message: %v", err)
			return
		}

		err = conn.WriteJSON(wsFrame{
			Type:    "connected",
			Message: "WebSocket connection established",
			OrgID:   orgID,
		})

		if err != nil {
			log.Printf("Failed to send welcome message: %v", err)
			return
		}

		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()

			for {
				select {
				case <-done:
					return
				case frame := <-frames:
					if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
						log.Printf("Failed to set write deadline for org %s: %v", orgID, err)
						return
					}
					if err := conn.WriteJSON(frame); err != nil {
						log.Printf("Failed to write frame for org %s: %v", orgID, err)
						return
					}
				case <-ticker.C:
					if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
						log.Printf("Failed to set write deadline for org %s: %v", orgID, err)
						return
					}
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						log.Printf("Ping failed for org %s: %v", orgID, err)
						return
					}
				}
			}
		}()

		for {
			// Set read deadline for each message
			if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				log.Printf("Failed to set read deadline for org %s: %v", orgID, err)
				break
			}

			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket error for org %s: %v", orgID, err)
				}
				break
			}

			if messageType == websocket.TextMessage {
				log.Printf("Received message from client in org %s: %s", orgID, string(message))
			}
		}
	}
}

// enqueueFrame builds the subscription callback for one (table, event) pair.
// The send never blocks the publisher; a client that cannot keep up loses
// frames rather than stalling writes.
func enqueueFrame(frames chan<- wsFrame, table string, event realtime.EventType) func(realtime.Row) {
	return func(row realtime.Row) {
		frame := wsFrame{
			Type:  "change",
			Table: table,
			Event: string(event),
			New:   row,
		}

		select {
		case frames <- frame:
		default:
			log.Printf("Dropping %s %s frame for slow client", table, event)
		}
	}
}
