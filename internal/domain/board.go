package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// GroupBy names the task attribute that defines board groups.
type GroupBy string

const (
	GroupByAssignee GroupBy = "assignee" // Sprint view: one lane per developer
	GroupByStatus   GroupBy = "status"   // Kanban view: one column per status
)

// IsValid returns true for a known grouping.
func (g GroupBy) IsValid() bool {
	return g == GroupByAssignee || g == GroupByStatus
}

// GroupKey returns the group the task belongs to under g.
func (g GroupBy) GroupKey(t *Task) string {
	if g == GroupByStatus {
		return string(t.Status)
	}
	return t.Assignee
}

// validateKey checks that key can be assigned as a group under g.
func (g GroupBy) validateKey(key string) error {
	if g == GroupByStatus && !Status(key).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, key)
	}
	return nil
}

// assign moves the task into group key under g.
func (g GroupBy) assign(t *Task, key string) {
	if g == GroupByStatus {
		t.Status = Status(key)
		return
	}
	t.Assignee = key
}

// MoveEvent is a drag from one position to another, possibly across groups.
type MoveEvent struct {
	SourceKey   string
	DestKey     string
	SourceIndex int
	DestIndex   int
}

// IsNoOp returns true if the event drops an item back where it was.
func (e MoveEvent) IsNoOp() bool {
	return e.SourceKey == e.DestKey && e.SourceIndex == e.DestIndex
}

// TaskChange is the persisted state of one task affected by a move.
type TaskChange struct {
	TaskID    string  `json:"id"`
	GroupBy   GroupBy `json:"group_by"`
	GroupKey  string  `json:"group_key"`
	Order     int     `json:"order"`
	Regrouped bool    `json:"regrouped"`
}

// Patch converts the change into a partial update. Values are absolute,
// so applying the patch twice has the same effect as applying it once.
func (c TaskChange) Patch() TaskPatch {
	order := c.Order
	p := TaskPatch{Order: &order}
	if c.Regrouped {
		key := c.GroupKey
		if c.GroupBy == GroupByStatus {
			status := Status(key)
			p.Status = &status
		} else {
			p.Assignee = &key
		}
	}
	return p
}

// MoveResult describes the outcome of Board.Move.
type MoveResult struct {
	Moved    *Task        // The dragged task after the move
	Changed  []TaskChange // Tasks whose order or group changed
	Snapshot []*Task      // Pre-move copies of every task in the affected groups
	NoOp     bool
}

// Board holds the authoritative state of a grouped, ordered task list.
type Board struct {
	tasks map[string]*Task
	ids   []string // insertion order, for stable iteration
	by    GroupBy
}

// NewBoard builds a board over tasks grouped by by. The board keeps its own
// copies of the tasks.
func NewBoard(tasks []*Task, by GroupBy) (*Board, error) {
	if !by.IsValid() {
		return nil, ErrInvalidGroupBy
	}
	b := &Board{tasks: make(map[string]*Task, len(tasks)), by: by}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if _, ok := b.tasks[t.ID]; !ok {
			b.ids = append(b.ids, t.ID)
		}
		b.tasks[t.ID] = t.Clone()
	}
	return b, nil
}

// GroupBy returns the board grouping.
func (b *Board) GroupBy() GroupBy {
	return b.by
}

// Get returns a copy of the task with id, or nil.
func (b *Board) Get(id string) *Task {
	return b.tasks[id].Clone()
}

// Tasks returns copies of all tasks in insertion order.
func (b *Board) Tasks() []*Task {
	out := make([]*Task, 0, len(b.ids))
	for _, id := range b.ids {
		out = append(out, b.tasks[id].Clone())
	}
	return out
}

// Group returns copies of the tasks in group key, sorted by order.
func (b *Board) Group(key string) []*Task {
	list := b.groups()[key]
	out := make([]*Task, len(list))
	for i, t := range list {
		out[i] = t.Clone()
	}
	return out
}

// Keys returns the group keys present on the board, sorted.
// For status boards every status column is included even when empty.
func (b *Board) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	if b.by == GroupByStatus {
		for _, s := range AllStatuses() {
			seen[string(s)] = true
			keys = append(keys, string(s))
		}
	}
	var extra []string
	for _, id := range b.ids {
		k := b.by.GroupKey(b.tasks[id])
		if !seen[k] {
			seen[k] = true
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

// groups builds key -> tasks sorted by current order from the board state.
// Ties are broken by id so the result is deterministic.
func (b *Board) groups() map[string][]*Task {
	groups := make(map[string][]*Task)
	for _, id := range b.ids {
		t := b.tasks[id]
		k := b.by.GroupKey(t)
		groups[k] = append(groups[k], t)
	}
	for _, list := range groups {
		slices.SortStableFunc(list, func(x, y *Task) int {
			if c := cmp.Compare(x.Order, y.Order); c != 0 {
				return c
			}
			return cmp.Compare(x.ID, y.ID)
		})
	}
	return groups
}

// Move applies a drag event to the board. The board is updated immediately;
// the result lists every task that needs persisting and a snapshot for Restore.
func (b *Board) Move(ev MoveEvent) (*MoveResult, error) {
	if ev.IsNoOp() {
		return &MoveResult{NoOp: true}, nil
	}

	groups := b.groups()
	src := groups[ev.SourceKey]
	if ev.SourceIndex < 0 || ev.SourceIndex >= len(src) {
		return nil, fmt.Errorf("%w: no item at %s[%d]", ErrInvalidMove, ev.SourceKey, ev.SourceIndex)
	}
	if ev.DestIndex < 0 {
		return nil, fmt.Errorf("%w: negative destination index %d", ErrInvalidMove, ev.DestIndex)
	}
	crossGroup := ev.SourceKey != ev.DestKey
	if crossGroup {
		if err := b.by.validateKey(ev.DestKey); err != nil {
			return nil, err
		}
	}

	dst := src
	if crossGroup {
		dst = groups[ev.DestKey]
	}

	// Snapshot before mutating anything.
	var snapshot []*Task
	before := make(map[string]*Task)
	for _, list := range [][]*Task{src, dst} {
		for _, t := range list {
			if _, ok := before[t.ID]; ok {
				continue
			}
			c := t.Clone()
			before[t.ID] = c
			snapshot = append(snapshot, c)
		}
	}

	item := src[ev.SourceIndex]
	src = slices.Delete(slices.Clone(src), ev.SourceIndex, ev.SourceIndex+1)
	if crossGroup {
		b.by.assign(item, ev.DestKey)
		dst = slices.Clone(dst)
	} else {
		dst = src
	}
	dst = slices.Insert(dst, min(ev.DestIndex, len(dst)), item)
	if !crossGroup {
		src = dst
	}

	renumber(src)
	if crossGroup {
		renumber(dst)
	}

	result := &MoveResult{Moved: item.Clone(), Snapshot: snapshot}
	lists := [][]*Task{src}
	if crossGroup {
		lists = append(lists, dst)
	}
	for _, list := range lists {
		for _, t := range list {
			prev := before[t.ID]
			regrouped := b.by.GroupKey(prev) != b.by.GroupKey(t)
			if prev.Order == t.Order && !regrouped {
				continue
			}
			result.Changed = append(result.Changed, TaskChange{
				TaskID:    t.ID,
				GroupBy:   b.by,
				GroupKey:  b.by.GroupKey(t),
				Order:     t.Order,
				Regrouped: regrouped,
			})
		}
	}
	return result, nil
}

// renumber assigns contiguous 1-based orders.
func renumber(list []*Task) {
	for i, t := range list {
		t.Order = i + 1
	}
}

// Put replaces or inserts a task.
func (b *Board) Put(t *Task) {
	if t == nil {
		return
	}
	if _, ok := b.tasks[t.ID]; !ok {
		b.ids = append(b.ids, t.ID)
	}
	b.tasks[t.ID] = t.Clone()
}

// Restore puts back pre-move copies of tasks.
func (b *Board) Restore(snapshot []*Task) {
	for _, t := range snapshot {
		b.Put(t)
	}
}

// NextOrder returns the order a task appended to group key would get.
func (b *Board) NextOrder(key string) int {
	return len(b.groups()[key]) + 1
}
