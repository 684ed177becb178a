package relay

import (
	"fmt"
	"strings"
)

// Agent is one of the two bridge participants.
type Agent string

const (
	AgentClaude Agent = "claude"
	AgentGPT    Agent = "gpt"
)

// agents is the closed set, in the order status and errors report them.
var agents = [...]Agent{AgentClaude, AgentGPT}

// Agents returns the valid agent identifiers.
func Agents() []Agent {
	out := make([]Agent, len(agents))
	copy(out, agents[:])
	return out
}

// index is the agent's slot in the store's queue array, or -1.
func (a Agent) index() int {
	for i, v := range agents {
		if v == a {
			return i
		}
	}
	return -1
}

func (a Agent) Valid() bool { return a.index() >= 0 }

func (a Agent) String() string { return string(a) }

// ParseAgent returns the agent named s; field is used to word the error
// ("sender", "recipient", "agent").
func ParseAgent(field, s string) (Agent, error) {
	a := Agent(s)
	if !a.Valid() {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("Invalid %s '%s'. Must be one of: %s", field, s, agentList()),
		}
	}
	return a, nil
}

func agentList() string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
