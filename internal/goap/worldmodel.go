package goap

// WorldModel holds everything one planning session needs: the agent's action
// library, the goals registered for the current plan and the live WorldState
// the agent owns.
type WorldModel struct {
	actions []Action
	goals   []Goal
	state   *WorldState
}

// NewWorldModel creates a WorldModel that borrows the agent's live state.
func NewWorldModel(state *WorldState) *WorldModel {
	return &WorldModel{state: state}
}

// Initialize clears the goals registered for the last plan. The action
// library and the live state are left alone.
func (m *WorldModel) Initialize() {
	m.goals = m.goals[:0]
}

// InitActions installs the action library. Called once at agent setup.
func (m *WorldModel) InitActions(actions []Action) {
	library := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			library = append(library, a)
		}
	}
	m.actions = library
}

// AddGoal registers a goal for the current plan.
func (m *WorldModel) AddGoal(goal Goal) {
	m.goals = append(m.goals, goal)
}

func (m *WorldModel) Actions() []Action {
	return m.actions
}

func (m *WorldModel) Goals() []Goal {
	return m.goals
}

// State returns the live WorldState, or nil if none was attached.
func (m *WorldModel) State() *WorldState {
	return m.state
}

// Action looks up an action in the library by name.
func (m *WorldModel) Action(name string) (Action, bool) {
	for _, a := range m.actions {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}
