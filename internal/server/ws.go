package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"academy/internal/academyapi"
	"academy/internal/api"
	"academy/internal/api/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// stalePong reports whether the client missed the whole pong window and
// the connection should be dropped.
func stalePong(lastPong time.Time, timeout time.Duration) bool {
	return time.Since(lastPong) > timeout
}

func wsHandler(c *gin.Context) {
	// Extract token from query
	token := c.DefaultQuery("token", "")
	user := academyapi.User{}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	userId, email, _, err := jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	// Upgrade Connection
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to set websocket upgrade: %+v", err)
		return
	}
	defer conn.Close()
	// Find User
	app := c.MustGet("app").(*academyapi.App)
	appConfigRaw, _ := app.Rdb.Get(c, "app_config").Result()
	if len(appConfigRaw) > 0 {
		_ = json.Unmarshal([]byte(appConfigRaw), &academyapi.CurrentAppConfig)
	}
	// Set a pong handler to update the connection's last pong time
	lastPong := time.Now()
	conn.SetPongHandler(func(string) error {
		lastPong = time.Now()
		return nil
	})
	pingPeriod := 3 * time.Second
	timeout := 9 * time.Second
	var mu sync.Mutex // Mutex to synchronize writes to the WebSocket connection
	res := app.Db.Where(
		"id = ? AND email = ?",
		userId,
		email,
	).First(&user)
	if res.RowsAffected == 1 {
		jsonData := academyapi.SyncUserStats(app.Rdb, app.Db, user)
		if jsonData != nil {
			// Send the serialized JSON data over the WebSocket
			if err := conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
				fmt.Println("Socket: Failed to send data:", err)
				return
			}
		}
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			fmt.Println("Socket: Failed to send ping:", err)
			_ = conn.Close()
			return
		}
		go func() {
			pubsub := app.Rdb.Subscribe(c, fmt.Sprintf("notification_ch@%d", user.Id))
			defer pubsub.Close()

			ch := pubsub.Channel()
			for msg := range ch {
				var msgDecoded academyapi.WsResponseData
				err = json.Unmarshal([]byte(msg.Payload), &msgDecoded)
				if err == nil {
					res := app.Rdb.Set(context.Background(), fmt.Sprintf("notification_cache@%d:%d", user.Id, msgDecoded.Data.Id), msg.Payload, 1*time.Hour)
					fmt.Println("Rdb.Set", res)
				}
				mu.Lock()
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.Println("Socket: Failed to send ping:", err)
					mu.Unlock()
					_ = conn.Close()
					return
				}
				mu.Unlock()
			}
		}()
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	// Start listening for commands via ws
	go func() {
		defer conn.Close()

		for {
			messageType, p, err := conn.ReadMessage()
			if err != nil {
				log.Println(err)
				return
			}
			// Handle the received message
			switch messageType {
			case websocket.TextMessage:
				message := string(p)
				// Check if the message is an acknowledgment
				var ackMsg struct {
					Type string `json:"type"`
					Id   int    `json:"id"`
				}
				if err := json.Unmarshal([]byte(message), &ackMsg); err == nil {
					if ackMsg.Type == "ack" {
						// Remove the acknowledged message from Redis
						_, err := app.Rdb.Del(context.Background(), fmt.Sprintf("notification_cache@%d:%d", user.Id, ackMsg.Id)).Result()
						if err != nil {
							fmt.Println("failed to delete acknowledged message from Redis:", err)
						}
						fmt.Println("ACK RECEIVED", ackMsg)
						continue // Skip further processing since it's an ack message
					}
				}
				if message == academyapi.MessageTargetSync {
					_ = app.Db.Where(
						"id = ? AND email = ?",
						userId,
						email,
					).First(&user)
					jsonData := academyapi.SyncUserStats(app.Rdb, app.Db, user)
					if jsonData != nil {
						// Send the serialized JSON data over the WebSocket
						mu.Lock()
						if err := conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
							fmt.Println("Socket: Failed to send data:", err)
							mu.Unlock()
							return
						}
						mu.Unlock()
					}
				}
				// Sends a mockup payout notification for frontend work
				if message == api.MessageTypeIncomeReferral {
					fmt.Println(message)
					data := academyapi.WsResponseData{
						Target: api.MessageTargetNotification,
						Config: *academyapi.CurrentAppConfig,
						User: academyapi.UserData{
							ID:             user.Id,
							Email:          user.Email,
							Name:           user.Name,
							ReferralCode:   user.ReferralCode,
							RefCounter:     user.RefCounter,
							SpilloverCount: user.SpilloverCount,
							CurrentPackage: user.CurrentPackage,
						},
						Data: academyapi.NotificationData{
							Id:      rand.Intn(99999),
							Style:   api.MessageStyleSuccess,
							Type:    api.MessageTypeIncomeReferral,
							Message: "This is a referral commission notification mockup. This field contains the human readable payout description. Up to 200 symbols of text.",
							Amount:  17.5,
							Level:   1,
						},
					}
					jsonData, err := json.Marshal(data)
					if err != nil {
						log.Println("Socket: Failed to serialize data:", err)
						return
					}
					mu.Lock()
					if err := conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
						log.Println("Socket: Failed to send data:", err)
						mu.Unlock()
						return
					}
					mu.Unlock()
				}
			default:
				fmt.Println("Socket: Unhandled message type:", messageType)
			}
		}
	}()
	for {
		// We process all the cached notifications
		iter := app.Rdb.Scan(context.Background(), 0, fmt.Sprintf("notification_cache@%d:*", user.Id), 0).Iterator()
		for iter.Next(context.Background()) {
			lastNotification, _ := app.Rdb.Get(context.Background(), iter.Val()).Result()
			if len(lastNotification) > 0 {
				mu.Lock()
				if err := conn.WriteMessage(websocket.TextMessage, []byte(lastNotification)); err != nil {
					log.Println("Socket: Failed to send data:", err)
					mu.Unlock()
					_ = conn.Close()
					return
				}
				mu.Unlock()
			}
		}
		if stalePong(lastPong, timeout) {
			log.Println("Socket: Client did not respond to ping, closing connection")
			_ = conn.Close()
			return
		}
		mu.Lock()
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			log.Println("Socket: Failed to send ping:", err)
			mu.Unlock()
			return
		}
		mu.Unlock()
		time.Sleep(pingPeriod)
	}
}
