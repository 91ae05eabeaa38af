package services

import (
	"log"
	"sync"
	"time"

	"sklad-backend/models"
	"sklad-backend/utils"

	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// WSMessage представляет сообщение WebSocket
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StockPayload представляет payload изменения остатка
type StockPayload struct {
	MaterialID  uint   `json:"material_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

// DeletedPayload представляет payload удаления материала или категории
type DeletedPayload struct {
	ID uint `json:"id"`
}

// Client представляет подключенного клиента
type Client struct {
	UserID   uint
	Conn     *websocket.Conn
	Send     chan WSMessage
	LastPing time.Time
}

// Hub рассылает события склада всем подключенным клиентам
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan WSMessage
	mutex      sync.RWMutex
	db         *gorm.DB
}

// NewHub создает новый хаб
func NewHub(db *gorm.DB) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan WSMessage, 64),
		db:         db,
	}
}

// Run запускает хаб
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

			log.Printf("Client %d connected. Total clients: %d", client.UserID, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()

			log.Printf("Client %d disconnected. Total clients: %d", client.UserID, len(h.clients))

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// NotifyStockChanged рассылает событие изменения остатка.
// При падении остатка до минимального дополнительно уходит stock.low.
// Доставка не влияет на результат операции: хаб может отсутствовать.
func (h *Hub) NotifyStockChanged(material *models.Material) {
	if h == nil {
		return
	}

	payload := StockPayload{
		MaterialID:  material.ID,
		Name:        material.Name,
		Quantity:    material.Quantity,
		MinQuantity: material.MinQuantity,
	}

	h.publish(WSMessage{Type: "stock.changed", Payload: payload})

	if material.IsLowStock() {
		h.publish(WSMessage{Type: "stock.low", Payload: payload})
	}
}

// publish отдает событие хабу, не блокируя вызвавшую операцию
func (h *Hub) publish(message WSMessage) {
	select {
	case h.broadcast <- message:
	default:
	}
}

// NotifyMaterialDeleted рассылает событие удаления материала
func (h *Hub) NotifyMaterialDeleted(materialID uint) {
	if h == nil {
		return
	}
	h.publish(WSMessage{Type: "material.deleted", Payload: DeletedPayload{ID: materialID}})
}

// NotifyCategoryDeleted рассылает событие удаления категории
func (h *Hub) NotifyCategoryDeleted(categoryID uint) {
	if h == nil {
		return
	}
	h.publish(WSMessage{Type: "category.deleted", Payload: DeletedPayload{ID: categoryID}})
}

// HandleWebSocket обрабатывает WebSocket соединение
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	// Получаем JWT токен из query параметров
	tokenString := c.Query("token")
	if tokenString == "" {
		c.Close()
		return
	}

	userID, err := h.validateToken(tokenString)
	if err != nil {
		log.Printf("WebSocket auth error: %v", err)
		c.Close()
		return
	}

	client := &Client{
		UserID:   userID,
		Conn:     c,
		Send:     make(chan WSMessage, 16),
		LastPing: time.Now(),
	}

	h.register <- client

	go h.writePump(client)
	h.readPump(client)
}

// validateToken проверяет JWT токен и возвращает user_id
func (h *Hub) validateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(utils.GetJWTSecret()), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, jwt.ErrTokenMalformed
	}

	return uint(userID), nil
}

// writePump отправляет сообщения клиенту
func (h *Hub) writePump(client *Client) {
	for message := range client.Send {
		if err := client.Conn.WriteJSON(message); err != nil {
			break
		}
	}
	client.Conn.Close()
}

// readPump читает сообщения клиента до закрытия соединения
func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister <- client
	}()

	for {
		var message WSMessage
		if err := client.Conn.ReadJSON(&message); err != nil {
			break
		}

		// Клиенты ничего не публикуют, поддерживаем только ping
		if message.Type == "ping" {
			client.LastPing = time.Now()
			select {
			case client.Send <- WSMessage{Type: "pong"}:
			default:
			}
		}
	}
}
