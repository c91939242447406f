package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	ErrClosed     = errors.New("connection is closed")
	ErrBufferFull = errors.New("send buffer is full")
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type Client struct {
	Conn *websocket.Conn
	R    chan []byte
	W    chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, bufferSize int) *Client {
	if conn == nil {
		return nil
	}

	if bufferSize <= 0 {
		bufferSize = 128
	}

	c := &Client{
		Conn: conn,
		R:    make(chan []byte, 128),
		W:    make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.TextMessage {
			select {
			case c.R <- msg:
			case <-c.done:
				return
			}
		}
	}
}

func (c *Client) runWriter() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.Close()

	for {
		select {
		case msg := <-c.W:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// Write queues msg without blocking. It returns ErrBufferFull if the peer is
// not draining fast enough and ErrClosed once the connection is gone.
func (c *Client) Write(msg []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.W <- msg:
		return nil
	case <-c.done:
		return ErrClosed
	default:
		return ErrBufferFull
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.Conn.Close()
	})
}
