package iso8583

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/alovak/cardvalidation/gateway/models"
	"github.com/moov-io/iso8583"
	connection "github.com/moov-io/iso8583-connection"
	"github.com/moov-io/iso8583/field"
	"golang.org/x/exp/slog"
)

// Verifier answers card verification requests.
type Verifier interface {
	Verify(ctx context.Context, req models.VerificationRequest) models.VerificationResult
}

// Server accepts ISO 8583 connections and answers verification and
// network management messages.
type Server struct {
	Addr string

	logger   *slog.Logger
	verifier Verifier
	ln       net.Listener
	wg       sync.WaitGroup

	mu    sync.Mutex
	conns map[*connection.Connection]struct{}
}

func NewServer(logger *slog.Logger, addr string, verifier Verifier) *Server {
	return &Server{
		Addr:     addr,
		logger:   logger.With(slog.String("module", "iso8583")),
		verifier: verifier,
		conns:    make(map[*connection.Connection]struct{}),
	}
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	s.ln = ln
	s.Addr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.logger.Info("iso8583 server started", slog.String("addr", s.Addr))

		for {
			conn, err := ln.Accept()
			if err != nil {
				if !errors.Is(err, net.ErrClosed) {
					s.logger.Error("accepting connection", "err", err)
				}
				s.logger.Info("iso8583 server stopped")
				return
			}

			s.handleConn(conn)
		}
	}()

	return nil
}

func (s *Server) handleConn(conn net.Conn) {
	c, err := connection.NewFrom(conn, Spec, ReadMessageLength, WriteMessageLength,
		connection.InboundMessageHandler(s.handleMessage),
		connection.ConnectionClosedHandler(s.forget),
	)
	if err != nil {
		s.logger.Error("creating connection", "err", err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()

	// the peer may have hung up before c was tracked
	select {
	case <-c.Done():
		s.forget(c)
	default:
	}
}

// forget drops a connection closed by the peer.
func (s *Server) forget(c *connection.Connection) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// OpenConnections returns the number of tracked client connections.
func (s *Server) OpenConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) handleMessage(c *connection.Connection, message *iso8583.Message) {
	mti, err := message.GetMTI()
	if err != nil {
		s.logger.Error("getting MTI", "err", err)
		return
	}

	var response *VerificationResponse
	switch mti {
	case MTINetworkManagementRequest:
		response, err = s.networkManagement(message)
	case MTIVerificationRequest:
		response, err = s.verify(message)
	default:
		s.logger.Info("unsupported message", slog.String("mti", mti))
		return
	}
	if err != nil {
		s.logger.Error("handling message", slog.String("mti", mti), "err", err)
		return
	}

	reply := iso8583.NewMessage(Spec)
	if err := reply.Marshal(response); err != nil {
		s.logger.Error("marshaling response", "err", err)
		return
	}

	if err := c.Reply(reply); err != nil {
		s.logger.Error("replying", "err", err)
	}
}

func (s *Server) networkManagement(message *iso8583.Message) (*VerificationResponse, error) {
	request := &VerificationRequest{}
	if err := message.Unmarshal(request); err != nil {
		return nil, fmt.Errorf("unmarshaling request: %w", err)
	}

	return &VerificationResponse{
		MTI:          field.NewStringValue(MTINetworkManagementResponse),
		STAN:         copyValue(request.STAN),
		ResponseCode: field.NewStringValue(models.ResponseCodeApproved),
	}, nil
}

func (s *Server) verify(message *iso8583.Message) (*VerificationResponse, error) {
	request := &VerificationRequest{}
	if err := message.Unmarshal(request); err != nil {
		return nil, fmt.Errorf("unmarshaling request: %w", err)
	}

	result := s.verifier.Verify(context.Background(), models.VerificationRequest{
		PAN:        value(request.PAN),
		ExpiryYYMM: value(request.ExpirationDate),
	})

	response := &VerificationResponse{
		MTI:          field.NewStringValue(MTIVerificationResponse),
		PAN:          copyValue(request.PAN),
		STAN:         copyValue(request.STAN),
		ResponseCode: field.NewStringValue(result.ResponseCode),
	}
	if result.ResponseCode == models.ResponseCodeApproved {
		response.AdditionalResponseData = field.NewStringValue(result.Network.String())
	}

	return response, nil
}

// Close stops accepting connections and closes the open ones.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}

	err := s.ln.Close()

	s.mu.Lock()
	for c := range s.conns {
		if cerr := c.Close(); cerr != nil {
			s.logger.Debug("closing connection", "err", cerr)
		}
		delete(s.conns, c)
	}
	s.mu.Unlock()

	s.wg.Wait()

	return err
}
