package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-lander/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters InitialStateID, running OnEnter from the top-level ancestor down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state %d not found", m.InitialStateID)
	}
	if node.Path == nil {
		return fmt.Errorf("paths not compiled")
	}

	for _, id := range node.Path {
		for _, action := range m.nodes[id].OnEnter {
			action.Func(ctx, action.Args)
		}
	}
	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
	return nil
}

// Update runs OnUpdate actions and evaluates tick transitions, bubbling up to ancestors
// Returns true if a transition occurred
func (m *Machine[T]) Update(ctx T, dt time.Duration) bool {
	if m.activeStateID == StateNone {
		return false
	}
	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	for _, action := range leaf.OnUpdate {
		action.Func(ctx, action.Args)
	}

	return m.fire(ctx, event.EventTick)
}

// HandleEvent routes an external event to the active state and its ancestors
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == event.EventTick {
		return false
	}
	return m.fire(ctx, eventType)
}

func (m *Machine[T]) fire(ctx T, eventType event.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition exits up to the lowest common ancestor and enters down to target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	targetPath := targetNode.Path
	for i := 0; i < len(m.activePath) && i < len(targetPath); i++ {
		if m.activePath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	for i := len(m.activePath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action.Func(ctx, action.Args)
		}
	}

	// Active state is committed before OnEnter so entry actions observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action.Func(ctx, action.Args)
		}
	}
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action.Func(ctx, action.Args)
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// ActiveStateID returns the current leaf state
func (m *Machine[T]) ActiveStateID() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current leaf state's name, empty before Init
func (m *Machine[T]) ActiveStateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// IsIn reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) IsIn(id StateID) bool {
	for _, s := range m.activePath {
		if s == id {
			return true
		}
	}
	return false
}

// TimeInState returns the accumulated Update time since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// StateName returns the name of any registered state
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}
