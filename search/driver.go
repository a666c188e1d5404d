package search

// Run drives the best-first search to completion and returns the best
// fully-scheduled Node found, or nil if the search space was exhausted
// without completing the program (spec §4.8).
func Run(root *Node, q Queue, ex Expander) *Node {
	root.Cost = root.Env.EvaluateCost(root)
	if !q.Push(root) {
		return q.BestFinalNode()
	}

	for q.Size() > 0 {
		n := q.Pop()
		if n == nil {
			continue
		}
		if n.Dead || n.Expanded {
			continue
		}
		n.Expanded = true

		if n.NumUnscheduledGates == 0 {
			if best := q.BestFinalNode(); best == nil || n.Cost < best.Cost {
				q.SetBestFinalNode(n)
			}
			continue
		}

		if best := q.BestFinalNode(); best != nil && n.Cost >= best.Cost {
			continue
		}

		ex.Expand(q, n)
	}

	return q.BestFinalNode()
}
