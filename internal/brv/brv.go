package brv

import (
	"fmt"
	"math/big"

	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// Result maps a vertex's stable graph index to its computed repetition
// value (spec §4.C: "an integer repetition value r(v) >= 0").
type Result map[int]int64

// Solve computes the repetition vector of g's own (flat) vertex set: every
// live, non-interface, non-removed vertex (spec §4.C). Interfaces and
// nested subgraphs are solved separately, one BRV per hierarchy level, by
// the caller (the SRT recurses into subgraphs itself).
func Solve(g *pisdf.Graph, snapshot pisdf.Snapshot) (Result, diag.Diagnostics) {
	vertices := balanceVertices(g)
	if len(vertices) == 0 {
		return Result{}, nil
	}

	adj, adjDs := buildAdjacency(g, vertices, snapshot)
	if adjDs.HasErrors() {
		return nil, adjDs
	}

	result := make(Result, len(vertices))
	var ds diag.Diagnostics

	visited := make(map[int]bool, len(vertices))
	for _, seed := range vertices {
		if visited[seed.Index] {
			continue
		}
		comp, compDs := solveComponent(seed, vertices, adj, visited)
		ds = append(ds, compDs...)
		for idx, r := range comp {
			result[idx] = r
		}
	}
	return result, ds
}

func balanceVertices(g *pisdf.Graph) []*pisdf.Vertex {
	var out []*pisdf.Vertex
	for _, v := range g.LiveVertices() {
		if v.Subtype.IsInterface() {
			continue
		}
		out = append(out, v)
	}
	return out
}

// relation is one edge's balance equation between two non-interface
// vertices of the same graph: r(a)*rateA == r(b)*rateB.
type relation struct {
	other *pisdf.Vertex
	// rateSelf is the rate declared on the endpoint belonging to the
	// vertex this relation is attached to; rateOther is the peer's.
	rateSelf, rateOther *big.Rat
}

func buildAdjacency(g *pisdf.Graph, vertices []*pisdf.Vertex, snapshot pisdf.Snapshot) (map[int][]relation, diag.Diagnostics) {
	inSet := make(map[int]*pisdf.Vertex, len(vertices))
	for _, v := range vertices {
		inSet[v.Index] = v
	}
	adj := make(map[int][]relation, len(vertices))
	var ds diag.Diagnostics
	for _, e := range g.Edges {
		if e.Src == nil || e.Snk == nil {
			continue
		}
		if _, ok := inSet[e.Src.Index]; !ok {
			continue
		}
		if _, ok := inSet[e.Snk.Index]; !ok {
			continue
		}
		if e.Src == e.Snk {
			continue // self-loops do not constrain the repetition vector
		}
		srcVal, err := e.SrcRate.Evaluate(snapshot)
		if err != nil {
			ds = append(ds, diag.New(diag.Error, diag.ExpressionErr, e.Src.Name, "failed to evaluate source rate", err.Error()))
			continue
		}
		snkVal, err := e.SnkRate.Evaluate(snapshot)
		if err != nil {
			ds = append(ds, diag.New(diag.Error, diag.ExpressionErr, e.Snk.Name, "failed to evaluate sink rate", err.Error()))
			continue
		}
		if srcVal < 0 || snkVal < 0 {
			ds = append(ds, diag.New(diag.Error, diag.Construction, e.Src.Name, "negative rate", "an edge rate evaluated to a negative value"))
			continue
		}
		srcRate, snkRate := ratOf(srcVal), ratOf(snkVal)
		adj[e.Src.Index] = append(adj[e.Src.Index], relation{other: e.Snk, rateSelf: srcRate, rateOther: snkRate})
		adj[e.Snk.Index] = append(adj[e.Snk.Index], relation{other: e.Src, rateSelf: snkRate, rateOther: srcRate})
	}
	return adj, ds
}

func ratOf(v float64) *big.Rat {
	return new(big.Rat).SetFloat64(v)
}

func solveComponent(seed *pisdf.Vertex, vertices []*pisdf.Vertex, adj map[int][]relation, visited map[int]bool) (map[int]int64, diag.Diagnostics) {
	// BFS collecting rationals relative to an arbitrary seed = 1, unless a
	// CONFIG actor is reachable, in which case it seeds the component at
	// exactly 1 (spec §4.C: "configuration actors are fixed at r = 1").
	start := seed
	for _, v := range bfsVertices(seed, adj) {
		if v.Subtype == pisdf.CONFIG {
			start = v
			break
		}
	}

	rats := map[int]*big.Rat{start.Index: big.NewRat(1, 1)}
	queue := []*pisdf.Vertex{start}
	visited[start.Index] = true

	var ds diag.Diagnostics
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curRat := rats[cur.Index]
		for _, rel := range adj[cur.Index] {
			// r(cur)*rateSelf == r(other)*rateOther  =>  r(other) = r(cur)*rateSelf/rateOther
			if rel.rateOther.Sign() == 0 {
				ds = append(ds, diag.New(diag.Error, diag.Model, cur.Name,
					"zero rate on a balance edge", "cannot compute a repetition value across a zero-rate edge"))
				continue
			}
			computed := new(big.Rat).Mul(curRat, rel.rateSelf)
			computed.Quo(computed, rel.rateOther)

			if existing, ok := rats[rel.other.Index]; ok {
				if existing.Cmp(computed) != 0 {
					ds = append(ds, diag.New(diag.Error, diag.Model, rel.other.Name,
						"inconsistent repetition vector",
						fmt.Sprintf("vertex %q requires incompatible repetition values across its incoming edges", rel.other.Name)))
				}
				continue
			}
			rats[rel.other.Index] = computed
			visited[rel.other.Index] = true
			queue = append(queue, rel.other)
		}
	}
	if ds.HasErrors() {
		return nil, ds
	}

	// Collect every config actor's rational; all must equal exactly 1.
	hasConfig := false
	for idx, r := range rats {
		v := vertexByIndex(vertices, idx)
		if v != nil && v.Subtype == pisdf.CONFIG {
			hasConfig = true
			if r.Cmp(big.NewRat(1, 1)) != 0 {
				ds = append(ds, diag.New(diag.Error, diag.Model, v.Name,
					"configuration actor cannot be held at repetition 1",
					"the graph's rates force a different repetition value for a configuration actor"))
			}
		}
	}
	if ds.HasErrors() {
		return nil, ds
	}

	if hasConfig {
		out := make(map[int]int64, len(rats))
		for idx, r := range rats {
			if !r.IsInt() {
				v := vertexByIndex(vertices, idx)
				name := ""
				if v != nil {
					name = v.Name
				}
				ds = append(ds, diag.New(diag.Error, diag.Model, name,
					"non-integer repetition value in a configuration-fixed component",
					"a configuration actor fixes this component's scale at 1, but the rates require a fractional repetition value elsewhere"))
				continue
			}
			out[idx] = r.Num().Int64()
		}
		if ds.HasErrors() {
			return nil, ds
		}
		return out, nil
	}

	return scaleToMinimalIntegers(rats), nil
}

// scaleToMinimalIntegers multiplies every rational by the LCM of their
// denominators (making them all integers), then divides by the GCD of the
// results, producing the least positive integer solution (spec §4.C).
func scaleToMinimalIntegers(rats map[int]*big.Rat) map[int]int64 {
	lcm := big.NewInt(1)
	for _, r := range rats {
		lcm = lcmInt(lcm, r.Denom())
	}

	scaled := make(map[int]*big.Int, len(rats))
	gcd := big.NewInt(0)
	for idx, r := range rats {
		n := new(big.Int).Mul(r.Num(), new(big.Int).Div(lcm, r.Denom()))
		scaled[idx] = n
		gcd = gcdInt(gcd, n)
	}
	if gcd.Sign() == 0 {
		gcd = big.NewInt(1)
	}

	out := make(map[int]int64, len(rats))
	for idx, n := range scaled {
		out[idx] = new(big.Int).Div(n, gcd).Int64()
	}
	return out
}

func gcdInt(a, b *big.Int) *big.Int {
	a = new(big.Int).Abs(a)
	b = new(big.Int).Abs(b)
	return new(big.Int).GCD(nil, nil, a, b)
}

func lcmInt(a, b *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int).Abs(b)
	}
	if b.Sign() == 0 {
		return new(big.Int).Abs(a)
	}
	g := gcdInt(a, b)
	out := new(big.Int).Div(a, g)
	out.Mul(out, b)
	return new(big.Int).Abs(out)
}

func bfsVertices(seed *pisdf.Vertex, adj map[int][]relation) []*pisdf.Vertex {
	seen := map[int]bool{seed.Index: true}
	out := []*pisdf.Vertex{seed}
	queue := []*pisdf.Vertex{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, rel := range adj[cur.Index] {
			if seen[rel.other.Index] {
				continue
			}
			seen[rel.other.Index] = true
			out = append(out, rel.other)
			queue = append(queue, rel.other)
		}
	}
	return out
}

func vertexByIndex(vertices []*pisdf.Vertex, idx int) *pisdf.Vertex {
	for _, v := range vertices {
		if v.Index == idx {
			return v
		}
	}
	return nil
}
