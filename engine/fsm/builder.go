package fsm

import (
	"fmt"

	"github.com/lixenwraith/vi-lander/event"
)

// AddState adds a node to the machine, parentID StateNone for top-level states
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// Connect adds a transition whose guard is resolved from the registry by name
// Empty guard name means unconditional
func (m *Machine[T]) Connect(sourceID, targetID StateID, ev event.EventType, guard string) error {
	if _, ok := m.nodes[sourceID]; !ok {
		return fmt.Errorf("unknown source state %d", sourceID)
	}
	if _, ok := m.nodes[targetID]; !ok {
		return fmt.Errorf("unknown target state %d", targetID)
	}

	t := Transition[T]{TargetID: targetID, Event: ev}
	if guard != "" {
		fn, ok := m.guardReg[guard]
		if !ok {
			return fmt.Errorf("unknown guard '%s'", guard)
		}
		t.Guard = fn
	}
	m.AddTransition(sourceID, t)
	return nil
}

// OnEnter attaches a registered action to the state's entry
func (m *Machine[T]) OnEnter(id StateID, action string, args any) error {
	return m.attach(id, action, args, func(n *Node[T], a Action[T]) { n.OnEnter = append(n.OnEnter, a) })
}

// OnExit attaches a registered action to the state's exit
func (m *Machine[T]) OnExit(id StateID, action string, args any) error {
	return m.attach(id, action, args, func(n *Node[T], a Action[T]) { n.OnExit = append(n.OnExit, a) })
}

// OnUpdate attaches a registered action run every Update while the state is active
func (m *Machine[T]) OnUpdate(id StateID, action string, args any) error {
	return m.attach(id, action, args, func(n *Node[T], a Action[T]) { n.OnUpdate = append(n.OnUpdate, a) })
}

func (m *Machine[T]) attach(id StateID, action string, args any, add func(*Node[T], Action[T])) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("unknown state %d", id)
	}
	fn, ok := m.actionReg[action]
	if !ok {
		return fmt.Errorf("unknown action '%s'", action)
	}
	add(node, Action[T]{Func: fn, Args: args})
	return nil
}

// CompilePaths calculates the Path slice for every node in the graph
// Must be called after all nodes are added and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node

		for {
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", id, curr.ParentID)
			}
			if len(path) > len(m.nodes) {
				return fmt.Errorf("node %d has a parent cycle", id)
			}
			curr = parent
		}

		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path
	}
	return nil
}
