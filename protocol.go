package main

import "encoding/json"

// Bridge client -> game message types
const (
	BridgeKey = "key" // key down/up from the input collaborator
)

// Bridge game -> client message types
const (
	BridgeWelcome = "welcome"
	BridgeError   = "error"
)

// Roles carried in bridge tokens
const (
	RoleViewer     = "viewer"     // receives frames only
	RoleController = "controller" // receives frames and may send keys
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; D stays raw until the type is known
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// KeyMsg reports one key transition
type KeyMsg struct {
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// WelcomeMsg is sent once on attach; stars never change so they are not part of frames
type WelcomeMsg struct {
	Role      string  `json:"role"`
	MapSize   float64 `json:"map"`
	MapPad    float64 `json:"pad"`
	MaxEnergy int     `json:"maxEnergy"`
	FrameRate int     `json:"fps"`
	Stars     []Star  `json:"stars"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
