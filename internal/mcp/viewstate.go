package mcp

import (
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/hierarchy"
)

// viewStates holds one hierarchy expand/collapse state per MCP session. State
// lives only as long as the session.
type viewStates struct {
	mu     sync.Mutex
	states map[*sdkmcp.ServerSession]*hierarchy.ViewState
}

func newViewStates() *viewStates {
	return &viewStates{states: make(map[*sdkmcp.ServerSession]*hierarchy.ViewState)}
}

// with runs fn on the state for ss, creating it on first use. Calls are
// serialized since ViewState is not safe for concurrent use. A nil session
// gets a throwaway state.
func (v *viewStates) with(ss *sdkmcp.ServerSession, fn func(*hierarchy.ViewState)) {
	if ss == nil {
		fn(hierarchy.NewViewState())
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.lookup(ss))
}

func (v *viewStates) lookup(ss *sdkmcp.ServerSession) *hierarchy.ViewState {
	if st, ok := v.states[ss]; ok {
		return st
	}
	st := hierarchy.NewViewState()
	v.states[ss] = st
	go func() {
		_ = ss.Wait()
		v.mu.Lock()
		delete(v.states, ss)
		v.mu.Unlock()
	}()
	return st
}

func (v *viewStates) len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.states)
}
