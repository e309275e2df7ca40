package viewrouter

import (
	"sync"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

// Navigator owns the active section. Navigate accepts any string; meaning is
// imposed only when View resolves it.
type Navigator struct {
	mu     sync.RWMutex
	active string
}

// NewNavigator starts at DefaultSection.
func NewNavigator() *Navigator {
	return &Navigator{active: DefaultSection}
}

// Active returns the raw active section.
func (n *Navigator) Active() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.active
}

// Navigate sets the active section.
func (n *Navigator) Navigate(section string) {
	n.mu.Lock()
	n.active = section
	n.mu.Unlock()
}

// View is a resolved screen plus, for dashboards, the callback its quick
// action tiles use to change section.
type View struct {
	Descriptor
	Navigate func(section string) `json:"-"`
}

// View resolves the active section for role. Only dashboards receive a
// Navigate callback.
func (n *Navigator) View(role school.Role) View {
	v := View{Descriptor: Resolve(role, n.Active())}
	if v.Dashboard {
		v.Navigate = n.Navigate
	}
	return v
}
