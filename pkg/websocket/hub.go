package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub управляет подключенными сотрудниками и рассылкой уведомлений.
// Одна подписка на сотрудника (вкладку) - единственный механизм
// межклиентской синхронизации: сообщение лишь триггерит повторную
// загрузку списка, порядок доставки не гарантируется.
type Hub struct {
	clients         map[*Client]bool
	employeeClients map[uint64][]*Client
	Register        chan *Client
	unregister      chan *Client
	mu              sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:         make(map[*Client]bool),
		employeeClients: make(map[uint64][]*Client),
		Register:        make(chan *Client),
		unregister:      make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.employeeClients[client.EmployeeID] = append(h.employeeClients[client.EmployeeID], client)
			log.Printf("Клиент зарегистрирован: employeeID %d", client.EmployeeID)
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				clients := h.employeeClients[client.EmployeeID]
				for i, c := range clients {
					if c == client {
						h.employeeClients[client.EmployeeID] = append(clients[:i], clients[i+1:]...)
						break
					}
				}
				if len(h.employeeClients[client.EmployeeID]) == 0 {
					delete(h.employeeClients, client.EmployeeID)
				}
				log.Printf("Клиент отсоединен: employeeID %d", client.EmployeeID)
			}
			h.mu.Unlock()
		}
	}
}

// SendToEmployee отправляет уведомление всем соединениям конкретного сотрудника.
// Отсутствие активных соединений не является ошибкой.
func (h *Hub) SendToEmployee(employeeID uint64, payload interface{}, messageType string) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	envelope := Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("Ошибка сериализации сообщения для WebSocket: %v", err)
		return err
	}

	for _, client := range h.employeeClients[employeeID] {
		select {
		case client.Send <- messageBytes:
		default:
			// Переполненный буфер не должен блокировать quick-update
		}
	}

	return nil
}
