package kb

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// StatsProgressReporter reports progress during the statistics stage.
type StatsProgressReporter interface {
	OnStatsStart(totalNodes int)
	OnNodeProcessed()
	OnStatsComplete(nodeCount int, duration time.Duration)
}

// ComputeInfo computes out-degree, in-degree and descendant count for every
// node present in the graph and stores the results in the info map.
//
// Descendant count is directed reachability over outgoing edges. The naive
// per-node traversal is O(V*(V+E)) in the worst case; each node's traversal
// is read-only over the shared adjacency maps, so the work is spread across
// a bounded worker pool. A visited-set guard keeps traversal terminating on
// cyclic edge sets: every node in a cycle's reachable closure is counted
// exactly once, including the start node when a cycle leads back to it.
func (k *KnowledgeBase) ComputeInfo(ctx context.Context, workers int, progress StatsProgressReporter) error {
	if k.graph == nil {
		return fmt.Errorf("graph not built")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	adjacency, err := k.graph.AdjacencyMap()
	if err != nil {
		return fmt.Errorf("failed to build adjacency map: %w", err)
	}
	predecessors, err := k.graph.PredecessorMap()
	if err != nil {
		return fmt.Errorf("failed to build predecessor map: %w", err)
	}

	nodes := make([]string, 0, len(adjacency))
	for node := range adjacency {
		nodes = append(nodes, node)
	}

	startTime := time.Now()
	if progress != nil {
		progress.OnStatsStart(len(nodes))
	}

	successors := make(map[string][]string, len(adjacency))
	for node, targets := range adjacency {
		list := make([]string, 0, len(targets))
		for target := range targets {
			list = append(list, target)
		}
		successors[node] = list
	}

	infos := make([]NodeInfo, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			infos[i] = NodeInfo{
				OutDegree:   len(adjacency[node]),
				InDegree:    len(predecessors[node]),
				Descendants: countDescendants(node, successors),
			}
			if progress != nil {
				progress.OnNodeProcessed()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, node := range nodes {
		k.idToInfo[node] = infos[i]
	}

	if progress != nil {
		progress.OnStatsComplete(len(nodes), time.Since(startTime))
	}
	return nil
}

// countDescendants counts the distinct nodes reachable from start by
// following outgoing edges. The start node itself is counted only when a
// cycle leads back to it, so a node whose only successor is itself has a
// descendant count of one.
func countDescendants(start string, successors map[string][]string) int {
	visited := make(map[string]struct{})
	stack := []string{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, next := range successors[node] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}

	return len(visited)
}
