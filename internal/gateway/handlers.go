package gateway

import (
	"fmt"
	"net/http"

	"agent-bridge/internal/clock"
	"agent-bridge/internal/relay"
)

type sendResponse struct {
	Status    string `json:"status"`
	MessageID int64  `json:"message_id"`
	Timestamp string `json:"timestamp"`
}

type messagesResponse struct {
	Agent    relay.Agent     `json:"agent"`
	Messages []relay.Message `json:"messages"`
	Count    int             `json:"count"`
}

type clearResponse struct {
	Status       string `json:"status"`
	ClearedCount int    `json:"cleared_count"`
}

type statusResponse struct {
	Status        string                            `json:"status"`
	Queues        map[relay.Agent]relay.QueueStatus `json:"queues"`
	TotalMessages int                               `json:"total_messages"`
	Timestamp     string                            `json:"timestamp"`
}

type historyResponse struct {
	Messages []relay.Message `json:"messages"`
	Count    int             `json:"count"`
}

type indexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// handleSend handles POST /message.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if s.opts.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	}
	req, err := decodeSend(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	msg, err := s.relay.Send(req.From, req.To, req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("message relayed",
		"message_id", msg.ID,
		"from", msg.From,
		"to", msg.To,
		"request_id", requestID(r.Context()))

	s.notify(r, msg)

	s.writeJSON(w, r, http.StatusOK, sendResponse{
		Status:    "success",
		MessageID: msg.ID,
		Timestamp: msg.Timestamp,
	})
}

// notify runs after the store lock is released; listener errors are logged
// and never change the response.
func (s *Server) notify(r *http.Request, msg relay.Message) {
	for _, l := range s.listeners {
		if err := l.MessageAccepted(r.Context(), msg); err != nil {
			s.log.Warn("listener failed",
				"message_id", msg.ID,
				"listener", fmt.Sprintf("%T", l),
				"error", err)
		}
	}
}

// handleMessages handles GET /messages/{agent}?clear=true.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	agent, err := pathAgent(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	msgs, err := s.relay.Retrieve(agent, clearRequested(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if msgs == nil {
		msgs = []relay.Message{}
	}
	s.writeJSON(w, r, http.StatusOK, messagesResponse{
		Agent:    agent,
		Messages: msgs,
		Count:    len(msgs),
	})
}

// handleClear handles POST /clear/{agent}.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	agent, err := pathAgent(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.relay.Clear(agent)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("queue cleared", "agent", agent, "cleared_count", n)
	s.writeJSON(w, r, http.StatusOK, clearResponse{Status: "success", ClearedCount: n})
}

// handleStatus handles GET /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.relay.Status()
	s.writeJSON(w, r, http.StatusOK, statusResponse{
		Status:        "running",
		Queues:        st.Queues,
		TotalMessages: st.TotalMessages,
		Timestamp:     clock.Stamp(s.clock),
	})
}

// handleHistory handles GET /history?limit=N.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := historyLimit(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	msgs := s.relay.History(limit)
	if msgs == nil {
		msgs = []relay.Message{}
	}
	s.writeJSON(w, r, http.StatusOK, historyResponse{Messages: msgs, Count: len(msgs)})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, indexResponse{
		Name:    serviceName,
		Version: serviceVersion,
		Endpoints: map[string]string{
			"POST /message":         "Send a message between agents",
			"GET /messages/<agent>": "Get pending messages for an agent",
			"POST /clear/<agent>":   "Clear messages for an agent",
			"GET /status":           "Get current queue status",
			"GET /history":          "Get full message history",
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, errorResponse{
		Error: fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
	})
}
