package plan

import (
	"container/heap"

	"github.com/hotdrink-go/hotdrink/solver/graph"
)

// priorityItem is one entry of the max-heap used by AdjustPriority, ordered
// by the priority weight of the variable it names.
type priorityItem struct {
	variable int
	priority int
}

type priorityQueue []priorityItem

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].priority > q[j].priority }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x any)         { *q = append(*q, x.(priorityItem)) }
func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// AdjustPriority recomputes a fresh ranker so that the variables just
// written by `plan` rank lowest (least likely to be re-disturbed) and the
// variables the plan read from, without anything downstream depending on
// them, rank according to their position in the previous ranking. This
// keeps the next plan's sources aligned with the most recently edited
// variables instead of drifting towards whatever the last plan happened to
// write.
//
// newRanker must be a fresh, empty ranker of the same size as ranker;
// AdjustPriority touches it in the right order and returns it.
func AdjustPriority(p Plan, ranker graph.VariableRanker, newRanker graph.VariableRanker) graph.VariableRanker {
	nVariables := ranker.Size()

	methodInDegree := make([]int, len(p))
	variableInDegree := make([]int, nVariables)
	variableToMethod := make([][]int, nVariables)

	for mi, step := range p {
		methodInDegree[mi] = len(step.Inputs())
		for _, i := range step.Inputs() {
			variableToMethod[i] = append(variableToMethod[i], mi)
		}
		for _, o := range step.Outputs() {
			variableInDegree[o]++
		}
	}

	priorities := make([]int, nVariables)
	oldRanking := ranker.Ranking()
	for pos, v := range oldRanking {
		priorities[v] = nVariables - 1 - pos
	}

	pq := make(priorityQueue, 0, nVariables)
	for vi, indeg := range variableInDegree {
		if indeg == 0 {
			pq = append(pq, priorityItem{variable: vi, priority: priorities[vi]})
		}
	}
	heap.Init(&pq)

	newOrder := make([]int, 0, nVariables)
	for pq.Len() > 0 {
		current := heap.Pop(&pq).(priorityItem)
		newOrder = append(newOrder, current.variable)
		for _, m := range variableToMethod[current.variable] {
			methodInDegree[m]--
			if methodInDegree[m] == 0 {
				for _, v := range p[m].Outputs() {
					variableInDegree[v]--
					if variableInDegree[v] == 0 {
						heap.Push(&pq, priorityItem{variable: v, priority: priorities[v]})
					}
				}
			}
		}
	}

	for i := len(newOrder) - 1; i >= 0; i-- {
		newRanker.Touch(newOrder[i])
	}
	return newRanker
}
