package dispatch

import "testing"

func TestRegistryRegisterLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(Command{Name: "up", Templates: []string{"up -d"}})
	r.Register(Command{Name: "down", Templates: []string{"down"}})

	c, ok := r.Lookup("up")
	if !ok {
		t.Fatalf("command not found")
	}
	if c.Templates[0] != "up -d" {
		t.Fatalf("unexpected template %q", c.Templates[0])
	}
	if _, ok := r.Lookup("sideways"); ok {
		t.Fatalf("unexpected command found")
	}

	cmds := r.Commands()
	if len(cmds) != 2 || cmds[0].Name != "up" || cmds[1].Name != "down" {
		t.Fatalf("Commands() did not keep registration order: %v", cmds)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(Command{Name: "dup"})
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on duplicate register")
		}
	}()
	r.Register(Command{Name: "dup"})
}

func TestDefaultRegistryShapes(t *testing.T) {
	r := DefaultRegistry([]string{"laravel.test", "mysql", "mysql"})

	for _, c := range r.Commands() {
		kinds := 0
		if len(c.Templates) > 0 {
			kinds++
		}
		if c.Builtin != nil {
			kinds++
		}
		if c.IsComposite() {
			kinds++
		}
		if kinds != 1 {
			t.Errorf("command %s must have exactly one of templates, builtin, steps", c.Name)
		}
		for _, step := range c.Steps {
			if _, ok := r.Lookup(step); !ok {
				t.Errorf("command %s references unknown step %s", c.Name, step)
			}
		}
		if c.StopWith != "" {
			if _, ok := r.Lookup(c.StopWith); !ok {
				t.Errorf("command %s references unknown stop command %s", c.Name, c.StopWith)
			}
		}
	}

	for _, name := range []string{"logs-laravel.test", "logs-mysql"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("expected per-service command %s", name)
		}
	}
}
