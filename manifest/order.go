package manifest

import (
	"fmt"
	"strings"

	"github.com/soapywu/pbxtarget/pbxproj"
)

// CycleError reports targets that embed or depend on each other in a loop.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "target dependency cycle: " + strings.Join(e.Path, " -> ")
}

// prerequisites are the manifest targets that must exist before t is added: the
// host it is embedded in and the targets it depends on. Targets not declared in
// the manifest are expected to exist in the project already.
func prerequisites(t pbxproj.TargetSpec, declared map[string]int) []string {
	var names []string
	if t.EmbedIn != "" {
		if _, ok := declared[t.EmbedIn]; ok {
			names = append(names, t.EmbedIn)
		}
	}
	for _, dep := range t.DependsOn {
		if _, ok := declared[dep]; ok {
			names = append(names, dep)
		}
	}
	return names
}

// order sorts targets so prerequisites come first, keeping declaration order
// otherwise.
func order(targets []pbxproj.TargetSpec) ([]pbxproj.TargetSpec, error) {
	declared := make(map[string]int, len(targets))
	for i, t := range targets {
		declared[t.Name] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(targets))
	sorted := make([]pbxproj.TargetSpec, 0, len(targets))
	var stack []string

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			start := 0
			for j, name := range stack {
				if name == targets[i].Name {
					start = j
				}
			}
			path := append(append([]string{}, stack[start:]...), targets[i].Name)
			return &CycleError{Path: path}
		}
		state[i] = visiting
		stack = append(stack, targets[i].Name)
		for _, name := range prerequisites(targets[i], declared) {
			if err := visit(declared[name]); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		sorted = append(sorted, targets[i])
		return nil
	}

	for i := range targets {
		if err := visit(i); err != nil {
			return nil, fmt.Errorf("order targets: %w", err)
		}
	}
	return sorted, nil
}
