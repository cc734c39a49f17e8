package ontology

// DefaultRelations are the edge types traversed for refinement when a graph
// is built without an explicit relation set. Correctness of the refinement
// partial order depends on these relations being acyclic in the snapshot.
var DefaultRelations = []string{"isa", "partof"}

type edge struct {
	to  Ref
	rel string
}

// Graph is an in-memory typed-edge concept DAG. It is built once (AddEdge)
// and read-only afterwards; closure queries after the build phase are safe
// from any number of goroutines.
type Graph struct {
	relations map[string]bool
	parents   map[Ref][]edge
	children  map[Ref][]edge
	edgeCount int
}

// NewGraph creates an empty graph whose closures traverse the given edge
// relations, or DefaultRelations when none are given.
func NewGraph(relations ...string) *Graph {
	if len(relations) == 0 {
		relations = DefaultRelations
	}
	set := make(map[string]bool, len(relations))
	for _, r := range relations {
		set[r] = true
	}
	return &Graph{
		relations: set,
		parents:   make(map[Ref][]edge),
		children:  make(map[Ref][]edge),
	}
}

// AddEdge records that child is related to parent via rel (e.g. KRAS isa
// RAS-family). Edges of relations outside the graph's traversal set are
// stored but never walked.
func (g *Graph) AddEdge(child, parent Ref, rel string) {
	g.parents[child] = append(g.parents[child], edge{to: parent, rel: rel})
	g.children[parent] = append(g.children[parent], edge{to: child, rel: rel})
	g.edgeCount++
}

// Ancestors implements Client by BFS over parent edges.
func (g *Graph) Ancestors(ns, id string) (map[Ref]bool, error) {
	return g.closure(Ref{Namespace: ns, ID: id}, g.parents), nil
}

// Descendants implements Client by BFS over child edges.
func (g *Graph) Descendants(ns, id string) (map[Ref]bool, error) {
	return g.closure(Ref{Namespace: ns, ID: id}, g.children), nil
}

// closure walks adj transitively from start, restricted to the traversal
// relations. The start node itself is not part of its own closure. The
// visited set guards termination even if a snapshot sneaks in a cycle.
func (g *Graph) closure(start Ref, adj map[Ref][]edge) map[Ref]bool {
	out := make(map[Ref]bool)
	queue := []Ref{start}
	visited := map[Ref]bool{start: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range adj[cur] {
			if !g.relations[e.rel] || visited[e.to] {
				continue
			}
			visited[e.to] = true
			out[e.to] = true
			queue = append(queue, e.to)
		}
	}
	return out
}

// Stats returns the number of distinct concepts and edges in the graph.
func (g *Graph) Stats() (nodes, edges int) {
	seen := make(map[Ref]bool)
	for r := range g.parents {
		seen[r] = true
	}
	for r := range g.children {
		seen[r] = true
	}
	return len(seen), g.edgeCount
}
