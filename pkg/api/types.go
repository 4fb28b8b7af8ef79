package api

import (
	"github.com/permacache/permacache/pkg/item"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string
}

// ItemStore defines the store operations the handlers need
type ItemStore interface {
	Get(key []byte) (*item.Item, error)
	Put(key []byte, it *item.Item) error
	Delete(key []byte) error
	Exists(key []byte) (bool, error)
	Allocator() *item.Allocator
}
