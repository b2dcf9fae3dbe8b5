package checkpoint

// Registry maps wire table names to handlers. It is read-only once the
// applier is built.
type Registry struct {
	handlers map[string]RecordHandler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]RecordHandler)}
}

// DefaultRegistry knows the synced tables under their client table names
// and their generic aliases.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	families := newFamilyHandler()
	r.Register("family", families)
	r.Register("group", families)

	r.Register("member", newMemberHandler())

	lists := newTaskListHandler()
	r.Register("task_list", lists)
	r.Register("list", lists)

	tasks := newTaskHandler()
	r.Register("task", tasks)
	r.Register("leaf_item", tasks)

	return r
}

// Register binds name to h, replacing any previous binding.
func (r *Registry) Register(name string, h RecordHandler) {
	r.handlers[name] = h
}

// Lookup finds the handler for a wire table name. Names are case-sensitive.
func (r *Registry) Lookup(name string) (RecordHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}
