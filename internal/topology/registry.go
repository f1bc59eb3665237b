package topology

import "evalgo.org/pvegraph/models"

// Seed carries the attributes a registry entry is created with.
type Seed struct {
	Label     string
	CIDR      string
	Gateway   string
	VLANAware int
	VLANID    string
}

// Entry is a bridge or VLAN discovered during one build.
type Entry struct {
	Name    string
	Kind    models.NodeType
	Seed    Seed
	Members []string
}

// Registry collects bridges and VLANs by name during one build. It is not
// safe for concurrent use; every build owns its own instance.
type Registry struct {
	entries map[string]*Entry
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// GetOrCreate returns the entry for name, creating it with kind and seed
// when absent. An existing entry keeps its original kind and seed.
func (r *Registry) GetOrCreate(name string, kind models.NodeType, seed Seed) *Entry {
	if e, ok := r.entries[name]; ok {
		return e
	}
	e := &Entry{Name: name, Kind: kind, Seed: seed, Members: []string{}}
	r.entries[name] = e
	r.order = append(r.order, name)
	return e
}

// AddMember appends node to the membership of name. Repeated discoveries are
// kept. It reports false when name is unknown.
func (r *Registry) AddMember(name, node string) bool {
	e, ok := r.entries[name]
	if !ok {
		return false
	}
	e.Members = append(e.Members, node)
	return true
}

// Get returns the entry for name.
func (r *Registry) Get(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Flatten returns the entries as graph nodes in first-seen order.
func (r *Registry) Flatten() []models.Node {
	nodes := make([]models.Node, 0, len(r.order))
	for _, name := range r.order {
		nodes = append(nodes, r.entries[name].node())
	}
	return nodes
}

func (e *Entry) node() models.Node {
	members := make([]string, len(e.Members))
	copy(members, e.Members)

	label := e.Seed.Label
	if label == "" {
		label = e.Name
	}

	n := models.Node{
		ID:      e.ID(),
		Label:   label,
		Type:    e.Kind,
		Segment: &models.Segment{CIDR: e.Seed.CIDR, Nodes: members},
	}
	if e.Kind == models.NodeVLAN {
		n.VLAN = &models.VLAN{VLANID: e.Seed.VLANID}
	} else {
		n.Bridge = &models.Bridge{VLANAware: e.Seed.VLANAware, Gateway: e.Seed.Gateway}
	}
	return n
}

// ID returns the graph node id of the entry. VLAN entries are keyed by
// their id already (vlan-<n>); bridges get the network- prefix.
func (e *Entry) ID() string {
	if e.Kind == models.NodeVLAN {
		return e.Name
	}
	return bridgeID(e.Name)
}

func bridgeID(name string) string {
	return "network-" + name
}
