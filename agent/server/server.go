package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

const (
	AgentCardPath = "/.well-known/agent.json"

	EmptyInputReply = "Please provide your phone plan needs (e.g., 'I need unlimited data for streaming')"
)

// PlanAgent is the part of the orchestrator the server needs.
type PlanAgent interface {
	EnsureCatalog(ctx context.Context) catalogx.Catalog
	Recommend(ctx context.Context, userText string) string
	Plans() catalogx.Catalog
}

type Server struct {
	cfg    Config
	agent  PlanAgent
	card   AgentCard
	logger zerolog.Logger
	router *gin.Engine
}

func New(cfg Config, agent PlanAgent, logger zerolog.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("plan agent is required")
	}
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		agent:  agent,
		card:   NewAgentCard(cfg),
		logger: logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET(AgentCardPath, s.handleAgentCard)
	r.GET("/healthz", s.handleHealth)
	r.POST("/", s.handleRPC)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Str("agent_card", AgentCardPath).Msg("agent server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("shutting down agent server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, s.card)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "plans": len(s.agent.Plans())})
}

func (s *Server) handleRPC(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRPCBodyBytes)

	var req rpcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(c, nil, codeInvalidRequest, "request body too large")
			return
		}
		s.writeError(c, nil, codeParseError, "parse error")
		return
	}
	if req.JSONRPC != jsonRPCVersion || strings.TrimSpace(req.Method) == "" {
		s.writeError(c, req.ID, codeInvalidRequest, "invalid request")
		return
	}

	switch req.Method {
	case MethodMessageSend:
		s.handleMessageSend(c, req)
	case MethodTasksCancel:
		s.logger.Warn().Msg("cancellation requested but not supported")
		s.writeError(c, req.ID, codeUnsupportedOperation, contractx.ErrCancelNotSupported.Error())
	default:
		s.writeError(c, req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method))
	}
}

func (s *Server) handleMessageSend(c *gin.Context, req rpcRequest) {
	var params messageSendParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(c, req.ID, codeInvalidParams, "invalid params")
		return
	}

	ctx := c.Request.Context()
	userText := params.Message.Text()
	s.logger.Info().Int("input_len", len(userText)).Msg("received user input")

	s.agent.EnsureCatalog(ctx)

	reply := EmptyInputReply
	if strings.TrimSpace(userText) != "" {
		rec := s.agent.Recommend(ctx, userText)
		reply = fmt.Sprintf("Plan Recommendation:\n\n%s\n\nBased on %d available plans", rec, len(s.agent.Plans()))
	}

	c.JSON(http.StatusOK, rpcResponse{
		JSONRPC: jsonRPCVersion,
		ID:      nullID(req.ID),
		Result: Message{
			Kind:      "message",
			Role:      "agent",
			MessageID: uuid.NewString(),
			ContextID: params.Message.ContextID,
			TaskID:    params.Message.TaskID,
			Parts:     []Part{{Kind: "text", Text: reply}},
		},
	})
}

func (s *Server) writeError(c *gin.Context, id json.RawMessage, code int, msg string) {
	c.JSON(http.StatusOK, rpcResponse{
		JSONRPC: jsonRPCVersion,
		ID:      nullID(id),
		Error:   &rpcError{Code: code, Message: msg},
	})
}
