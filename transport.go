package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
)

const (
	maxDatagramSize = 64 * 1024
	inboxSize       = 256
)

// DatagramRecorder journals datagrams passing through the transport
type DatagramRecorder interface {
	RecordDatagram(dir, payload string) error
}

// Transport exchanges text datagrams with one fixed server endpoint.
// Received datagrams are handed to the game loop through Inbox.
type Transport struct {
	conn    *net.UDPConn
	remote  *net.UDPAddr
	inbox   chan string
	journal DatagramRecorder
}

// DialTransport opens an unconnected UDP socket for the server at host:port
func DialTransport(host string, port int) (*Transport, error) {
	remote, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("resolve server: %w", err)
	}
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	return &Transport{
		conn:   conn,
		remote: remote,
		inbox:  make(chan string, inboxSize),
	}, nil
}

// SetJournal attaches a datagram journal
func (t *Transport) SetJournal(j DatagramRecorder) {
	t.journal = j
}

// LocalAddr returns the bound client address
func (t *Transport) LocalAddr() *net.UDPAddr {
	return t.conn.LocalAddr().(*net.UDPAddr)
}

// Send is fire-and-forget: failures are logged and dropped
func (t *Transport) Send(msg string) {
	if _, err := t.conn.WriteToUDP([]byte(msg), t.remote); err != nil {
		log.Printf("transport: send error: %v", err)
		return
	}
	t.record(DirOut, msg)
}

// Inbox delivers datagrams from the server in arrival order
func (t *Transport) Inbox() <-chan string {
	return t.inbox
}

// Run reads datagrams until ctx is cancelled. Datagrams from any other
// source are ignored; when the inbox is full the datagram is dropped.
func (t *Transport) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		t.conn.Close()
	}()

	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("transport: read error: %v", err)
			continue
		}
		if !t.fromServer(addr) {
			continue
		}
		msg := string(buf[:n])
		t.record(DirIn, msg)
		select {
		case t.inbox <- msg:
		default:
			log.Printf("transport: inbox full, dropping datagram")
		}
	}
}

func (t *Transport) fromServer(addr *net.UDPAddr) bool {
	return addr.Port == t.remote.Port && addr.IP.Equal(t.remote.IP)
}

func (t *Transport) record(dir, msg string) {
	if t.journal == nil {
		return
	}
	if err := t.journal.RecordDatagram(dir, msg); err != nil {
		log.Printf("transport: journal error: %v", err)
	}
}

// Close releases the socket
func (t *Transport) Close() error {
	return t.conn.Close()
}
