package provkit

import "github.com/provkit/provkit/prov"

// nodeTable is the node factory's side table: it maps stable domain-object
// identifiers to the graph nodes created for them, so relation wiring can
// look up "the node for this domain object" without re-deriving
// identifiers and without storing graph pointers on the domain model.
type nodeTable struct {
	byKey map[string]*prov.Node
}

func newNodeTable() *nodeTable {
	return &nodeTable{byKey: make(map[string]*prov.Node)}
}

func (t *nodeTable) put(key string, n *prov.Node) {
	t.byKey[key] = n
}

func (t *nodeTable) get(key string) (*prov.Node, bool) {
	n, ok := t.byKey[key]
	return n, ok
}

// Domain keys. Sample names are unique within a project and file/program
// names within a sample, so these keys are collision-free for a valid
// model.

func projectKey(tag string) string {
	return "project/" + tag
}

func environmentKey(user, signature string) string {
	return "env/" + user + "/" + signature
}

func userAgentKey(user string) string {
	return "user/" + user
}

func sampleKey(sample string) string {
	return "sample/" + sample
}

func fileNodeKey(sample, file string) string {
	return "sample/" + sample + "/file/" + file
}

func programNodeKey(sample, program string) string {
	return "sample/" + sample + "/program/" + program
}
