package commands

import "sort"

// Registry maps slash command names to handlers.
type Registry struct {
	commands map[string]Command
}

// NewRegistry wires every command against the given dependencies.
func NewRegistry(d *Deps) *Registry {
	r := &Registry{commands: make(map[string]Command)}

	r.Register(Command{Name: "hello", Run: d.Hello})
	r.Register(Command{Name: "echo", Run: d.Echo})
	r.Register(Command{Name: "upload", Run: d.Upload})
	r.Register(Command{Name: "update", Async: true, Run: d.Update})
	r.Register(Command{Name: "get_latest_resume", Run: d.GetLatest})
	r.Register(Command{Name: "get_all_resumes", Run: d.GetAll})
	r.Register(Command{Name: "clear_resumes", Run: d.Clear})
	r.Register(Command{Name: "get_resume_diff", Run: d.Diff})
	r.Register(Command{Name: "get_annotations", Run: d.Annotations})
	r.Register(Command{Name: "ai_review", Async: true, Run: d.AIReview})

	return r
}

// Register adds or replaces a command by name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name] = cmd
}

// Lookup finds a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered command names, sorted for stable logging.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
